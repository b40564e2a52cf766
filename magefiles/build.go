//go:build mage

// Copyright (c) 2026 Petar Djukic. All rights reserved.
// SPDX-License-Identifier: MIT

// Package main provides build targets for the assetdesk project using Mage.
//
// Usage:
//
//	mage build          Compile the assetdesk binary to bin/
//	mage test:all       Run all tests
//	mage test:short     Run tests in -short mode
//	mage test:cover     Run all tests with a coverage profile
//	mage lint           Run go vet and golangci-lint
//	mage clean          Remove build artifacts
//	mage install        Install assetdesk to GOPATH/bin
package main

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/magefile/mage/mg"
	"github.com/magefile/mage/sh"
)

const (
	binGo      = "go"
	binaryName = "assetdesk"
	binaryDir  = "bin"
	cmdDir     = "./cmd/assetdesk"
	modulePath = "github.com/mesh-intelligence/assetdesk"
)

// ldflags stamps the version from ASSETDESK_VERSION, or the latest git tag.
func ldflags() string {
	version := os.Getenv("ASSETDESK_VERSION")
	if version == "" {
		if tag, err := sh.Output("git", "describe", "--tags", "--abbrev=0"); err == nil {
			version = strings.TrimPrefix(strings.TrimSpace(tag), "v")
		}
	}
	if version == "" {
		return ""
	}
	return "-X " + modulePath + "/pkg/assetdesk.Version=" + version
}

// Build compiles the assetdesk binary to bin/.
func Build() error {
	if err := os.MkdirAll(binaryDir, 0o755); err != nil {
		return err
	}
	args := []string{"build", "-v", "-o", filepath.Join(binaryDir, binaryName)}
	if flags := ldflags(); flags != "" {
		args = append(args, "-ldflags", flags)
	}
	return sh.RunV(binGo, append(args, cmdDir)...)
}

// Clean removes build artifacts.
func Clean() error {
	if err := os.RemoveAll(binaryDir); err != nil {
		return err
	}
	return sh.RunV(binGo, "clean")
}

// Install builds and copies the binary to GOPATH/bin.
func Install() error {
	mg.Deps(Build)
	gopath, err := sh.Output(binGo, "env", "GOPATH")
	if err != nil {
		return err
	}
	src := filepath.Join(binaryDir, binaryName)
	dst := filepath.Join(gopath, "bin", binaryName)
	return sh.Copy(dst, src)
}

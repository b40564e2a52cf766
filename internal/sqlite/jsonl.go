package sqlite

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mesh-intelligence/assetdesk/pkg/types"
)

// jsonlFiles maps each catalog table to its JSONL file in DataDir.
var jsonlFiles = map[string]string{
	types.VehiclesTable:     "vehicles.jsonl",
	types.BatteryPacksTable: "battery_packs.jsonl",
}

func jsonlPath(dataDir, table string) string {
	return filepath.Join(dataDir, jsonlFiles[table])
}

// initJSONLFiles creates missing JSONL files. firstRun is true when none of
// them existed, which is when the demo catalog gets seeded.
func initJSONLFiles(dataDir string) (firstRun bool, err error) {
	missing := 0
	for _, name := range jsonlFiles {
		path := filepath.Join(dataDir, name)
		if _, err := os.Stat(path); err == nil {
			continue
		} else if !os.IsNotExist(err) {
			return false, fmt.Errorf("stat %s: %w", name, err)
		}
		missing++
		if err := os.WriteFile(path, nil, 0o644); err != nil {
			return false, fmt.Errorf("create %s: %w", name, err)
		}
	}
	return missing == len(jsonlFiles), nil
}

// readJSONL reads a JSONL file and returns each non-empty, well-formed line.
// Malformed lines are skipped.
func readJSONL(path string) ([]json.RawMessage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	var records []json.RawMessage
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Bytes()
		if len(line) == 0 || !json.Valid(line) {
			continue
		}
		records = append(records, json.RawMessage(append([]byte(nil), line...)))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scanning %s: %w", path, err)
	}
	return records, nil
}

// writeJSONL atomically replaces path with records, one per line, using the
// temp-file, fsync, rename sequence.
func writeJSONL(path string, records []json.RawMessage) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".jsonl-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmpName)
		}
	}()

	w := bufio.NewWriter(tmp)
	for _, rec := range records {
		if _, err = w.Write(rec); err != nil {
			return fmt.Errorf("writing record: %w", err)
		}
		if err = w.WriteByte('\n'); err != nil {
			return fmt.Errorf("writing newline: %w", err)
		}
	}
	if err = w.Flush(); err != nil {
		return fmt.Errorf("flushing buffer: %w", err)
	}
	if err = tmp.Sync(); err != nil {
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}

// marshalRecords encodes entities as JSONL records.
func marshalRecords[T any](items []T) ([]json.RawMessage, error) {
	records := make([]json.RawMessage, 0, len(items))
	for _, it := range items {
		data, err := json.Marshal(it)
		if err != nil {
			return nil, err
		}
		records = append(records, data)
	}
	return records, nil
}

package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/assetdesk/internal/pages"
	"github.com/mesh-intelligence/assetdesk/pkg/types"
)

func (a *app) newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <asset> <tag>",
		Short: "Show one asset",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := a.openCatalog(cmd.Context())
			if err != nil {
				return err
			}
			defer cat.Detach()

			tbl, err := assetTable(cat, args[0])
			if err != nil {
				return err
			}
			record, err := tbl.Get(args[1])
			if err != nil {
				return classify(fmt.Errorf("get %s: %w", args[1], err))
			}
			if a.flags.jsonMode {
				return writeJSON(cmd.OutOrStdout(), record)
			}
			return renderFields(cmd.OutOrStdout(), pages.Describe(record))
		},
	}
}

func (a *app) newCreateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "create <asset> <json|->",
		Short: "Create or update an asset",
		Long: `Create stores an asset from a JSON object, read from the argument or from
stdin when the argument is "-". An asset with an existing asset_tag is
updated in place.

Example:
  assetdesk create vehicles '{"asset_tag":"VH-2001","model":"Ioniq 5","company":"Hyundai"}'
  cat pack.json | assetdesk create battery-packs -`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var data []byte
			if args[1] == "-" {
				b, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return sysError(fmt.Errorf("read stdin: %w", err))
				}
				data = b
			} else {
				data = []byte(args[1])
			}

			cat, err := a.openCatalog(cmd.Context())
			if err != nil {
				return err
			}
			defer cat.Detach()

			tbl, err := assetTable(cat, args[0])
			if err != nil {
				return err
			}
			name, _ := types.TableForAsset(args[0])
			record, err := decodeAsset(name, data)
			if err != nil {
				return userError(fmt.Errorf("%w: %w", types.ErrInvalidData, err))
			}
			tag, err := tbl.Set("", record)
			if err != nil {
				return classify(fmt.Errorf("create: %w", err))
			}
			a.logger.Info("asset saved", "table", name, "tag", tag)

			if a.flags.jsonMode {
				saved, err := tbl.Get(tag)
				if err != nil {
					return classify(err)
				}
				return writeJSON(cmd.OutOrStdout(), saved)
			}
			fmt.Fprintln(cmd.OutOrStdout(), tag)
			return nil
		},
	}
}

func (a *app) newDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <asset> <tag>",
		Short: "Delete an asset",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cat, err := a.openCatalog(cmd.Context())
			if err != nil {
				return err
			}
			defer cat.Detach()

			tbl, err := assetTable(cat, args[0])
			if err != nil {
				return err
			}
			if err := tbl.Delete(args[1]); err != nil {
				return classify(fmt.Errorf("delete %s: %w", args[1], err))
			}
			fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[1])
			return nil
		},
	}
}

// decodeAsset parses data into the entity type stored in table. Unknown
// fields are rejected so typos do not silently drop data.
func decodeAsset(table string, data []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	switch table {
	case types.VehiclesTable:
		var v types.Vehicle
		if err := dec.Decode(&v); err != nil {
			return nil, err
		}
		return &v, nil
	case types.BatteryPacksTable:
		var b types.BatteryPack
		if err := dec.Decode(&b); err != nil {
			return nil, err
		}
		return &b, nil
	default:
		return nil, types.ErrTableNotFound
	}
}

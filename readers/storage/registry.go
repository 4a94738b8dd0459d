package storage

import (
	"context"

	"github.com/lexcodex/sysdiag/config"
	"github.com/lexcodex/sysdiag/diag"
)

// Operations returns the storage category entries of the diagnostic set.
func Operations(cfg *config.Config) []diag.Operation {
	return []diag.Operation{
		{
			Name:        "storage devices",
			Tool:        "list_storage_devices",
			Category:    diag.CategoryStorage,
			Description: "List block devices with size, filesystem, and mount point.",
			Tags:        []string{"storage", "diagnostics", "block", "devices"},
			Run: func(ctx context.Context, args map[string]any) (*diag.Record, error) {
				return Devices(ctx, cfg)
			},
		},
		{
			Name:        "storage list-dir",
			Tool:        "list_directory",
			Category:    diag.CategoryStorage,
			Description: "List directory entries sorted by size, name, or modification time.",
			Tags:        []string{"storage", "diagnostics", "directory", "usage"},
			Params: []diag.Param{
				{Name: "path", Type: "string", Required: true, Positional: true,
					Description: "Directory to list."},
				{Name: "sort", Type: "string", Default: SortSize,
					Description: "Sort key: size, name, or modified."},
				{Name: "top", Type: "integer", Default: 20,
					Description: "Maximum number of entries to return."},
			},
			Run: func(ctx context.Context, args map[string]any) (*diag.Record, error) {
				path, _ := diag.StringArg(args, "path")
				sortKey, ok := diag.StringArg(args, "sort")
				if !ok {
					sortKey = SortSize
				}
				top, ok, err := diag.IntArg(args, "top")
				if err != nil {
					return nil, err
				}
				if !ok {
					top = 20
				}
				return ListDir(ctx, cfg, path, sortKey, top)
			},
		},
	}
}

package process

import (
	"context"

	"github.com/lexcodex/sysdiag/config"
	"github.com/lexcodex/sysdiag/diag"
)

// Operations returns the process category entries of the diagnostic set.
func Operations(cfg *config.Config) []diag.Operation {
	return []diag.Operation{
		{
			Name:        "process list",
			Tool:        "list_processes",
			Category:    diag.CategoryProcess,
			Description: "List running processes with CPU and memory usage, sorted by CPU.",
			Tags:        []string{"process", "diagnostics", "performance", "monitoring"},
			Params: []diag.Param{
				{Name: "top", Type: "integer", Default: 100,
					Description: "Maximum number of processes to return."},
			},
			Run: func(ctx context.Context, args map[string]any) (*diag.Record, error) {
				top, ok, err := diag.IntArg(args, "top")
				if err != nil {
					return nil, err
				}
				if !ok {
					top = 100
				}
				return List(ctx, cfg, top)
			},
		},
		{
			Name:        "process info",
			Tool:        "get_process_info",
			Category:    diag.CategoryProcess,
			Description: "Get detailed information about a specific process.",
			Tags:        []string{"process", "diagnostics", "details"},
			Params: []diag.Param{
				{Name: "pid", Type: "integer", Required: true, Positional: true,
					Description: "Process ID (must be >= 1)."},
			},
			Run: func(ctx context.Context, args map[string]any) (*diag.Record, error) {
				pid, ok, err := diag.IntArg(args, "pid")
				if err != nil {
					return nil, err
				}
				if !ok {
					return nil, diag.InvalidArgumentf("process info", "pid required")
				}
				return Info(ctx, cfg, pid)
			},
		},
		{
			Name:        "process limits",
			Tool:        "get_process_limits",
			Category:    diag.CategoryProcess,
			Description: "Get the resource limits of a specific process.",
			Tags:        []string{"process", "diagnostics", "limits", "resources"},
			Params: []diag.Param{
				{Name: "pid", Type: "integer", Required: true, Positional: true,
					Description: "Process ID (must be >= 1)."},
			},
			Run: func(ctx context.Context, args map[string]any) (*diag.Record, error) {
				pid, ok, err := diag.IntArg(args, "pid")
				if err != nil {
					return nil, err
				}
				if !ok {
					return nil, diag.InvalidArgumentf("process limits", "pid required")
				}
				return Limits(ctx, cfg, pid)
			},
		},
	}
}

package service

import (
	"context"

	"github.com/lexcodex/sysdiag/config"
	"github.com/lexcodex/sysdiag/diag"
)

// Operations returns the service category entries of the diagnostic set.
func Operations(cfg *config.Config) []diag.Operation {
	return []diag.Operation{
		{
			Name:        "service list",
			Tool:        "list_services",
			Category:    diag.CategoryService,
			Description: "List all systemd services with their current status.",
			Tags:        []string{"service", "systemd", "diagnostics"},
			Run: func(ctx context.Context, args map[string]any) (*diag.Record, error) {
				return List(ctx, cfg)
			},
		},
		{
			Name:        "service status",
			Tool:        "get_service_status",
			Category:    diag.CategoryService,
			Description: "Get the status of a specific systemd service.",
			Tags:        []string{"service", "systemd", "status", "diagnostics"},
			Params: []diag.Param{
				{Name: "service_name", Type: "string", Required: true, Positional: true,
					Description: "Name of the systemd service (e.g. 'nginx', 'sshd')."},
			},
			Run: func(ctx context.Context, args map[string]any) (*diag.Record, error) {
				name, _ := diag.StringArg(args, "service_name")
				return Status(ctx, cfg, name)
			},
		},
		{
			Name:        "service logs",
			Tool:        "get_service_logs",
			Category:    diag.CategoryService,
			Description: "Get recent journal entries for a specific systemd service.",
			Tags:        []string{"service", "systemd", "logs", "diagnostics"},
			Params: []diag.Param{
				{Name: "service_name", Type: "string", Required: true, Positional: true,
					Description: "Name of the systemd service."},
				{Name: "lines", Type: "integer", Default: 50,
					Description: "Number of log lines to retrieve (max 10000)."},
			},
			Run: func(ctx context.Context, args map[string]any) (*diag.Record, error) {
				name, _ := diag.StringArg(args, "service_name")
				lines, ok, err := diag.IntArg(args, "lines")
				if err != nil {
					return nil, err
				}
				if !ok {
					lines = 50
				}
				return Logs(ctx, cfg, name, lines)
			},
		},
	}
}

package logs

import (
	"context"

	"github.com/lexcodex/sysdiag/config"
	"github.com/lexcodex/sysdiag/diag"
)

// Operations returns the logs category entries of the diagnostic set.
func Operations(cfg *config.Config) []diag.Operation {
	return []diag.Operation{
		{
			Name:        "logs journal",
			Tool:        "get_journal_logs",
			Category:    diag.CategoryLogs,
			Description: "Get recent system journal entries, optionally filtered by priority.",
			Tags:        []string{"logs", "journal", "systemd", "diagnostics"},
			Params: []diag.Param{
				{Name: "lines", Type: "integer", Default: 50,
					Description: "Number of journal lines to retrieve (max 10000)."},
				{Name: "priority", Type: "string",
					Description: "Syslog priority filter: emerg..debug or 0-7."},
			},
			Run: func(ctx context.Context, args map[string]any) (*diag.Record, error) {
				lines, ok, err := diag.IntArg(args, "lines")
				if err != nil {
					return nil, err
				}
				if !ok {
					lines = 50
				}
				priority, _ := diag.StringArg(args, "priority")
				return Journal(ctx, cfg, lines, priority)
			},
		},
		{
			Name:        "logs audit",
			Tool:        "get_audit_logs",
			Category:    diag.CategoryLogs,
			Description: "Get recent kernel audit records from the journal.",
			Tags:        []string{"logs", "audit", "security", "diagnostics"},
			Params: []diag.Param{
				{Name: "lines", Type: "integer", Default: 50,
					Description: "Number of audit lines to retrieve (max 10000)."},
			},
			Run: func(ctx context.Context, args map[string]any) (*diag.Record, error) {
				lines, ok, err := diag.IntArg(args, "lines")
				if err != nil {
					return nil, err
				}
				if !ok {
					lines = 50
				}
				return Audit(ctx, cfg, lines)
			},
		},
		{
			Name:        "logs read",
			Tool:        "read_log_file",
			Category:    diag.CategoryLogs,
			Description: "Read the last lines of a plain log file.",
			Tags:        []string{"logs", "file", "diagnostics"},
			Params: []diag.Param{
				{Name: "path", Type: "string", Required: true, Positional: true,
					Description: "Path of the log file to read."},
				{Name: "lines", Type: "integer", Default: 50,
					Description: "Number of lines from the end of the file (max 10000)."},
			},
			Run: func(ctx context.Context, args map[string]any) (*diag.Record, error) {
				path, _ := diag.StringArg(args, "path")
				lines, ok, err := diag.IntArg(args, "lines")
				if err != nil {
					return nil, err
				}
				if !ok {
					lines = 50
				}
				return Read(ctx, cfg, path, lines)
			},
		},
	}
}

package system

import (
	"context"

	"github.com/lexcodex/sysdiag/config"
	"github.com/lexcodex/sysdiag/diag"
)

// Operations returns the system category entries of the diagnostic set.
func Operations(cfg *config.Config) []diag.Operation {
	return []diag.Operation{
		{
			Name:        "system info",
			Tool:        "get_system_info",
			Category:    diag.CategorySystem,
			Description: "Get basic system information including OS version, kernel, hostname, and uptime.",
			Tags:        []string{"system", "diagnostics", "linux", "info"},
			Run: func(ctx context.Context, args map[string]any) (*diag.Record, error) {
				return Info(ctx, cfg)
			},
		},
		{
			Name:        "system cpu",
			Tool:        "get_cpu_info",
			Category:    diag.CategorySystem,
			Description: "Get CPU model, core counts, frequency, and load averages.",
			Tags:        []string{"system", "diagnostics", "cpu", "performance", "load"},
			Run: func(ctx context.Context, args map[string]any) (*diag.Record, error) {
				return CPU(ctx, cfg)
			},
		},
		{
			Name:        "system memory",
			Tool:        "get_memory_info",
			Category:    diag.CategorySystem,
			Description: "Get memory usage including RAM and swap details.",
			Tags:        []string{"system", "diagnostics", "memory", "ram", "swap"},
			Run: func(ctx context.Context, args map[string]any) (*diag.Record, error) {
				return Memory(ctx, cfg)
			},
		},
		{
			Name:        "system disk",
			Tool:        "get_disk_usage",
			Category:    diag.CategorySystem,
			Description: "Get filesystem usage and mount points.",
			Tags:        []string{"system", "diagnostics", "disk", "storage", "filesystem"},
			Run: func(ctx context.Context, args map[string]any) (*diag.Record, error) {
				return Disk(ctx, cfg)
			},
		},
		{
			Name:        "system hardware",
			Tool:        "get_hardware_info",
			Category:    diag.CategorySystem,
			Description: "Get hardware inventory: vendor, product, BIOS, and CPU topology.",
			Tags:        []string{"system", "diagnostics", "hardware", "inventory"},
			Run: func(ctx context.Context, args map[string]any) (*diag.Record, error) {
				return Hardware(ctx, cfg)
			},
		},
	}
}

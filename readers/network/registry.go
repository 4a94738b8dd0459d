package network

import (
	"context"

	"github.com/lexcodex/sysdiag/config"
	"github.com/lexcodex/sysdiag/diag"
)

// Operations returns the network category entries of the diagnostic set.
func Operations(cfg *config.Config) []diag.Operation {
	return []diag.Operation{
		{
			Name:        "network interfaces",
			Tool:        "get_network_interfaces",
			Category:    diag.CategoryNetwork,
			Description: "Get network interface information including IP addresses.",
			Tags:        []string{"network", "diagnostics", "interface", "connectivity"},
			Run: func(ctx context.Context, args map[string]any) (*diag.Record, error) {
				return Interfaces(ctx, cfg)
			},
		},
		{
			Name:        "network ports",
			Tool:        "get_listening_ports",
			Category:    diag.CategoryNetwork,
			Description: "Get TCP and UDP ports that are listening on the system.",
			Tags:        []string{"network", "diagnostics", "ports", "listening", "security"},
			Run: func(ctx context.Context, args map[string]any) (*diag.Record, error) {
				return Ports(ctx, cfg)
			},
		},
		{
			Name:        "network routes",
			Tool:        "get_network_routes",
			Category:    diag.CategoryNetwork,
			Description: "Get the kernel routing table.",
			Tags:        []string{"network", "diagnostics", "routing"},
			Run: func(ctx context.Context, args map[string]any) (*diag.Record, error) {
				return Routes(ctx, cfg)
			},
		},
		{
			Name:        "network connections",
			Tool:        "get_network_connections",
			Category:    diag.CategoryNetwork,
			Description: "Get established TCP connections.",
			Tags:        []string{"network", "diagnostics", "connections", "tcp"},
			Run: func(ctx context.Context, args map[string]any) (*diag.Record, error) {
				return Connections(ctx, cfg)
			},
		},
	}
}

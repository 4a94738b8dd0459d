package main

import (
	"github.com/spf13/cobra"

	"github.com/lexcodex/sysdiag/readers/network"
)

func newNetworkCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "network",
		Short: "Network diagnostics commands",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "interfaces",
			Short: "Get network interface information",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				rec, err := network.Interfaces(cmd.Context(), cfg)
				return emit(cmd, rec, err)
			},
		},
		&cobra.Command{
			Use:   "ports",
			Short: "Get listening TCP and UDP ports",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				rec, err := network.Ports(cmd.Context(), cfg)
				return emit(cmd, rec, err)
			},
		},
		&cobra.Command{
			Use:   "routes",
			Short: "Get the kernel routing table",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				rec, err := network.Routes(cmd.Context(), cfg)
				return emit(cmd, rec, err)
			},
		},
		&cobra.Command{
			Use:   "connections",
			Short: "Get established TCP connections",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				rec, err := network.Connections(cmd.Context(), cfg)
				return emit(cmd, rec, err)
			},
		},
	)
	return cmd
}

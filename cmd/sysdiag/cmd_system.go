package main

import (
	"github.com/spf13/cobra"

	"github.com/lexcodex/sysdiag/readers/system"
)

func newSystemCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "system",
		Short: "System information commands",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "info",
			Short: "Get OS version, kernel, hostname, and uptime",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				rec, err := system.Info(cmd.Context(), cfg)
				return emit(cmd, rec, err)
			},
		},
		&cobra.Command{
			Use:   "cpu",
			Short: "Get CPU information and load averages",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				rec, err := system.CPU(cmd.Context(), cfg)
				return emit(cmd, rec, err)
			},
		},
		&cobra.Command{
			Use:   "memory",
			Short: "Get memory usage including RAM and swap",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				rec, err := system.Memory(cmd.Context(), cfg)
				return emit(cmd, rec, err)
			},
		},
		&cobra.Command{
			Use:   "disk",
			Short: "Get filesystem usage and mount points",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				rec, err := system.Disk(cmd.Context(), cfg)
				return emit(cmd, rec, err)
			},
		},
		&cobra.Command{
			Use:   "hardware",
			Short: "Get hardware inventory",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				rec, err := system.Hardware(cmd.Context(), cfg)
				return emit(cmd, rec, err)
			},
		},
	)
	return cmd
}

package main

import (
	"github.com/spf13/cobra"

	"github.com/lexcodex/sysdiag/readers/service"
)

func newServiceCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "service",
		Short: "Systemd service commands",
	}

	logsLines := 50
	logsCmd := &cobra.Command{
		Use:   "logs <service>",
		Short: "Get recent journal entries for a service",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := service.Logs(cmd.Context(), cfg, args[0], logsLines)
			return emit(cmd, rec, err)
		},
	}
	logsCmd.Flags().IntVar(&logsLines, "lines", 50, "Number of log lines to retrieve")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: "List all systemd services",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				rec, err := service.List(cmd.Context(), cfg)
				return emit(cmd, rec, err)
			},
		},
		&cobra.Command{
			Use:   "status <service>",
			Short: "Get the status of a specific service",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				rec, err := service.Status(cmd.Context(), cfg, args[0])
				return emit(cmd, rec, err)
			},
		},
		logsCmd,
	)
	return cmd
}

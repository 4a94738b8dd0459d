package main

import (
	"strconv"

	"github.com/spf13/cobra"

	"github.com/lexcodex/sysdiag/diag"
	"github.com/lexcodex/sysdiag/readers/process"
)

func newProcessCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "process",
		Short: "Process inspection commands",
	}

	listTop := 100
	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List running processes sorted by CPU usage",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := process.List(cmd.Context(), cfg, listTop)
			return emit(cmd, rec, err)
		},
	}
	listCmd.Flags().IntVar(&listTop, "top", 100, "Maximum number of processes to return")

	cmd.AddCommand(
		listCmd,
		&cobra.Command{
			Use:   "info <pid>",
			Short: "Get detailed info about a specific process",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				pid, err := parsePid(args[0])
				if err != nil {
					return err
				}
				rec, err := process.Info(cmd.Context(), cfg, pid)
				return emit(cmd, rec, err)
			},
		},
		&cobra.Command{
			Use:   "limits <pid>",
			Short: "Get the resource limits of a specific process",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				pid, err := parsePid(args[0])
				if err != nil {
					return err
				}
				rec, err := process.Limits(cmd.Context(), cfg, pid)
				return emit(cmd, rec, err)
			},
		},
	)
	return cmd
}

func parsePid(raw string) (int, error) {
	pid, err := strconv.Atoi(raw)
	if err != nil {
		return 0, diag.InvalidArgumentf("pid", "expected a positive integer, got %q", raw)
	}
	return pid, nil
}

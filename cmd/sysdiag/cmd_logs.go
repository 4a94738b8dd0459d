package main

import (
	"github.com/spf13/cobra"

	"github.com/lexcodex/sysdiag/readers/logs"
)

func newLogsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Log and audit commands",
	}

	journalLines := 50
	journalPriority := ""
	journalCmd := &cobra.Command{
		Use:   "journal",
		Short: "Get recent system journal entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := logs.Journal(cmd.Context(), cfg, journalLines, journalPriority)
			return emit(cmd, rec, err)
		},
	}
	journalCmd.Flags().IntVar(&journalLines, "lines", 50, "Number of journal lines to retrieve")
	journalCmd.Flags().StringVar(&journalPriority, "priority", "", "Priority filter: emerg..debug or 0-7")

	auditLines := 50
	auditCmd := &cobra.Command{
		Use:   "audit",
		Short: "Get recent kernel audit records",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := logs.Audit(cmd.Context(), cfg, auditLines)
			return emit(cmd, rec, err)
		},
	}
	auditCmd.Flags().IntVar(&auditLines, "lines", 50, "Number of audit lines to retrieve")

	readLines := 50
	readCmd := &cobra.Command{
		Use:   "read <path>",
		Short: "Read the last lines of a log file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := logs.Read(cmd.Context(), cfg, args[0], readLines)
			return emit(cmd, rec, err)
		},
	}
	readCmd.Flags().IntVar(&readLines, "lines", 50, "Number of lines from the end of the file")

	cmd.AddCommand(journalCmd, auditCmd, readCmd)
	return cmd
}

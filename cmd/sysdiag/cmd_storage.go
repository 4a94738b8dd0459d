package main

import (
	"github.com/spf13/cobra"

	"github.com/lexcodex/sysdiag/readers/storage"
)

func newStorageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "storage",
		Short: "Storage and disk analysis commands",
	}

	sortKey := storage.SortSize
	top := 20
	listDirCmd := &cobra.Command{
		Use:   "list-dir <path>",
		Short: "List directory entries sorted by size, name, or modification time",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := storage.ListDir(cmd.Context(), cfg, args[0], sortKey, top)
			return emit(cmd, rec, err)
		},
	}
	listDirCmd.Flags().StringVar(&sortKey, "sort", storage.SortSize, "Sort key: size, name, or modified")
	listDirCmd.Flags().IntVar(&top, "top", 20, "Maximum number of entries to return")

	cmd.AddCommand(
		&cobra.Command{
			Use:   "devices",
			Short: "List block devices",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				rec, err := storage.Devices(cmd.Context(), cfg)
				return emit(cmd, rec, err)
			},
		},
		listDirCmd,
	)
	return cmd
}

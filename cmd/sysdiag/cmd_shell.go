package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newShellCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Browse diagnostics interactively",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			program := tea.NewProgram(newShellModel(cfg), tea.WithAltScreen())
			_, err := program.Run()
			return err
		},
	}
}

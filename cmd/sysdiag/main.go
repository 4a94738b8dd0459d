package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/lexcodex/sysdiag/config"
	"github.com/lexcodex/sysdiag/diag"
	"github.com/lexcodex/sysdiag/render"
)

var (
	flagConfig string
	flagFormat string
	cfg        *config.Config
)

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "sysdiag",
		Short:         "Read-only Linux diagnostics for humans and tool-calling agents",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			loaded, err := config.Load(flagConfig)
			if err != nil {
				return err
			}
			cfg = loaded
			return nil
		},
	}
	root.PersistentFlags().StringVar(&flagConfig, "config", "", "Config file path (default "+config.DefaultPath+")")
	root.PersistentFlags().StringVar(&flagFormat, "format", "json", "Output format: json or text")
	root.AddCommand(
		newSystemCmd(), newServiceCmd(), newProcessCmd(),
		newNetworkCmd(), newLogsCmd(), newStorageCmd(),
		newManualCmd(), newShellCmd(),
	)
	return root
}

// emit renders a reader result in the requested format on stdout.
func emit(cmd *cobra.Command, rec *diag.Record, err error) error {
	if err != nil {
		return err
	}
	format, err := render.ParseFormat(flagFormat)
	if err != nil {
		return err
	}
	out, err := render.Render(rec, format)
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), strings.TrimRight(out, "\n"))
	return nil
}

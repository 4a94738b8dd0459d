package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/lexcodex/sysdiag/manual"
)

func newManualCmd() *cobra.Command {
	var out string
	var check bool
	cmd := &cobra.Command{
		Use:   "manual",
		Short: "Generate or verify the agent tool manifest",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				out = cfg.Manual.Out
			}
			if check {
				doc, err := manual.Read(out)
				if err != nil {
					return err
				}
				if err := manual.Verify(cfg, doc); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "manual %s matches the %d implemented operations\n", out, len(doc.Tools))
				return nil
			}
			doc := manual.Build(cfg)
			if err := manual.Verify(cfg, doc); err != nil {
				return err
			}
			if err := manual.Write(doc, out); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote manual with %d tools to %s\n", len(doc.Tools), out)
			return nil
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "Manifest output path (default from config)")
	cmd.Flags().BoolVar(&check, "check", false, "Verify the manifest on disk instead of writing it")
	return cmd
}

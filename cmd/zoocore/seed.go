package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"zoocore/internal/seed"
)

func newSeedCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Import a YAML fixture (the City Zoo data set by default)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			rt, err := newApp(ctx, opts.cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer func() { _ = rt.close() }()

			fx, err := seed.ReadFile(opts.cfg.Seed.File)
			if err != nil {
				return err
			}
			summary, err := seed.Load(ctx, rt.svc, fx)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if summary.Skipped {
				_, _ = fmt.Fprintln(out, "store already holds data; nothing imported")
				return nil
			}
			_, _ = fmt.Fprintf(out, "imported %d zoos, %d enclosures, %d animals, %d categories\n",
				summary.Zoos, summary.Enclosures, summary.Animals, summary.Categories)
			return nil
		},
	}
	cmd.Flags().String("file", "", "fixture file (defaults to the embedded data set)")
	_ = opts.v.BindPFlag("seed.file", cmd.Flags().Lookup("file"))
	return cmd
}

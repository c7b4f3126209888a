package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"zoocore/internal/core"
)

var errConstraintsNotSatisfied = errors.New("some constraints are not satisfied")

func newCheckCommand(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "check",
		Short: "Print the constraint report of every zoo",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			rt, err := newApp(ctx, opts.cfg, cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			defer func() { _ = rt.close() }()

			zoos, err := rt.svc.ListZoos(ctx, core.ZooFilter{})
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			failed := false
			for _, zoo := range zoos {
				report, err := rt.svc.ZooConstraints(ctx, zoo.ID)
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintf(out, "%s (%s)\n", report.Name, report.EntityID)
				for _, f := range report.Findings {
					_, _ = fmt.Fprintf(out, "  [%s] %s\n", marker(f.Status), f.Message)
				}
				if !report.Satisfied() {
					failed = true
				}
			}
			if failed {
				return errConstraintsNotSatisfied
			}
			return nil
		},
	}
}

func marker(status core.FindingStatus) string {
	switch status {
	case core.StatusSatisfied:
		return "ok"
	case core.StatusNotSatisfied:
		return "FAIL"
	default:
		return "info"
	}
}

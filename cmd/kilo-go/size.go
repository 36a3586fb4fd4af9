// ABOUTME: size command: prints the terminal geometry as "rows cols"
// ABOUTME: --probe forces the cursor-position report instead of the window-size query

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mauromedda/kilo-go/pkg/tui/terminal"
)

func (a *app) sizeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "size",
		Short: "Print the terminal size as rows and columns",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t, err := a.open()
			if err != nil {
				return err
			}

			var geo terminal.Geometry
			err = terminal.WithRawMode(t, func(*terminal.Session) error {
				s := terminal.NewStream(t)
				var err error
				if a.args.probe || a.cfg.CursorQueryForced() {
					geo, err = terminal.Probe(s)
				} else {
					geo, err = terminal.ResolveGeometry(t, s)
				}
				return err
			})
			if err != nil {
				return fmt.Errorf("resolving geometry: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d %d\n", geo.Rows, geo.Cols)
			return nil
		},
	}
	cmd.Flags().BoolVar(&a.args.probe, "probe", false, "Use the cursor-position probe")
	return cmd
}

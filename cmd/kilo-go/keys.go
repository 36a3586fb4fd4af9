// ABOUTME: keys command: prints each decoded key event on its own line until Ctrl-Q
// ABOUTME: Useful for checking which escape sequences a terminal sends

package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/mauromedda/kilo-go/pkg/tui"
	"github.com/mauromedda/kilo-go/pkg/tui/key"
	"github.com/mauromedda/kilo-go/pkg/tui/terminal"
)

const keysBanner = "Press keys to see their events; Ctrl-Q quits.\r\n"

func (a *app) keysCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "keys",
		Short: "Print decoded key events until Ctrl-Q",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t, err := a.open()
			if err != nil {
				return err
			}
			err = terminal.WithRawMode(t, func(*terminal.Session) error {
				return echoKeys(cmd.Context(), terminal.NewStream(t))
			})
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
}

// echoKeys writes one framed line per decoded event through the compositor.
func echoKeys(ctx context.Context, s *terminal.Stream) error {
	screen := tui.NewCompositor(s)
	emit := func(line string) error {
		return screen.Frame(func(c *tui.Compositor) {
			c.AppendString(line)
		})
	}

	if err := emit(keysBanner); err != nil {
		return err
	}
	dec := key.NewDecoder(s)
	for {
		k, err := dec.Next(ctx)
		if err != nil {
			return err
		}
		if err := emit(k.String() + "\r\n"); err != nil {
			return err
		}
		if k == key.Char(ctrlQ) {
			return nil
		}
	}
}

const ctrlQ = 'q' & 0x1f

// ABOUTME: Root command: opens the terminal and runs the viewer on an optional file
// ABOUTME: Resize notifications come from SIGWINCH; a termination signal ends the session cleanly

package main

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/mauromedda/kilo-go/internal/editor"
)

func (a *app) runViewer(cmd *cobra.Command, args []string) error {
	t, err := a.open()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	opts := editor.Options{
		TabStop:    a.cfg.TabStop,
		Welcome:    a.cfg.Welcome,
		Version:    version,
		ForceProbe: a.cfg.CursorQueryForced(),
	}
	if a.resize != nil {
		opts.Resize = a.resize(ctx)
	}

	e := editor.New(t, opts)
	if len(args) == 1 {
		if err := e.Open(args[0]); err != nil {
			return err
		}
	}

	if err := e.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

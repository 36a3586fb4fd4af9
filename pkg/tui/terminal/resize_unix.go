// ABOUTME: Unix-specific SIGWINCH watcher that tells the owner of the terminal to re-resolve geometry.
// ABOUTME: Notifications are coalesced into a channel of size 1 and stop when the context ends.

//go:build unix

package terminal

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// WatchResize returns a channel that receives a value after the terminal
// window changes size. Bursts of signals collapse into one pending value.
func WatchResize(ctx context.Context) <-chan struct{} {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGWINCH)

	notify := make(chan struct{}, 1)
	go func() {
		defer signal.Stop(sigCh)
		for {
			select {
			case <-ctx.Done():
				return
			case <-sigCh:
				select {
				case notify <- struct{}{}:
				default: // Already pending; coalesced
				}
			}
		}
	}()
	return notify
}

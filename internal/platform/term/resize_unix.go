//go:build unix

package term

import (
	"os"
	"os/signal"

	"golang.org/x/sys/unix"
)

// Resizable is notified when the terminal size changes.
type Resizable interface {
	MarkResized()
}

// WatchResize subscribes to SIGWINCH. Each signal marks the target resized
// and then calls hook, both from the watcher goroutine. The returned stop
// function unsubscribes and waits for the watcher to exit.
func WatchResize(target Resizable, hook func()) (stop func()) {
	sigCh := make(chan os.Signal, 1)
	stopCh := make(chan struct{})
	doneCh := make(chan struct{})

	signal.Notify(sigCh, unix.SIGWINCH)

	go func() {
		defer close(doneCh)
		for {
			select {
			case <-stopCh:
				return
			case <-sigCh:
				target.MarkResized()
				if hook != nil {
					hook()
				}
			}
		}
	}()

	return func() {
		signal.Stop(sigCh)
		close(stopCh)
		<-doneCh
	}
}

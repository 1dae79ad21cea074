package serviceutil

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
)

// Returns a context that will live until Ctrl+C is pressed.
// A second Ctrl+C exits on the spot, in case teardown is stuck
// waiting on the browser.
func SignalContext() context.Context {
	ctx, cancel := context.WithCancel(context.Background())

	sigs := make(chan os.Signal, 2)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigs
		slog.Warn("interrupted, cleaning up")
		cancel()
		<-sigs
		os.Exit(130)
	}()

	return ctx
}

// Fatal logs the message and exits. err may be nil for failures that
// need no underlying cause.
func Fatal(message string, err error) {
	if err != nil {
		slog.Error(message, "err", err.Error())
	} else {
		slog.Error(message)
	}
	os.Exit(1)
}

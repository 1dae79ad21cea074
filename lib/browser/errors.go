package browser

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/cdp"
)

var (
	// ErrStale marks a handle whose backing DOM node has been replaced or
	// destroyed. Re-acquiring the element usually recovers.
	ErrStale = errors.New("stale element reference")
	// ErrTimeout marks a bounded wait that expired before the element
	// reached the requested state.
	ErrTimeout = errors.New("timed out waiting for element")
	// ErrNotFound marks a one-shot lookup that matched nothing.
	ErrNotFound = errors.New("element not found")
)

// messages the devtools protocol reports when a node handle outlives the DOM
// it was resolved against
var staleMessages = []string{
	"Could not find object with given id",
	"Cannot find context with specified id",
	"Execution context was destroyed",
	"Node is detached from document",
}

func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.Canceled) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}

	var objNotFound *rod.ObjectNotFoundError
	if errors.As(err, &objNotFound) {
		return fmt.Errorf("%w: %v", ErrStale, err)
	}
	var protocolErr *cdp.Error
	if errors.As(err, &protocolErr) {
		for _, msg := range staleMessages {
			if strings.Contains(protocolErr.Message, msg) {
				return fmt.Errorf("%w: %v", ErrStale, err)
			}
		}
	}
	return err
}

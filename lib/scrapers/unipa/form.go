package unipa

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"syllabus-scraper/lib/browser"
	"syllabus-scraper/lib/textutil"
)

// Waits bundles every pacing constant for driving the search screen. The
// portal re-renders parts of the form over ajax with no completion signal,
// so interaction is bounded waits plus fixed settles. Tests shrink these to
// keep retry paths fast.
type Waits struct {
	// retry loop around individual form fields
	Attempts   int
	Find       time.Duration // one bounded element lookup
	StaleRetry time.Duration // pause after a stale handle or lookup timeout
	ErrorRetry time.Duration // pause after any other failure

	// dynamic criteria rows
	Presence    time.Duration // row lookup before declaring it absent
	OptionPolls int           // polls for the row's options to load
	PollGap     time.Duration

	// fixed settles after actions that trigger portal scripts
	LoginSettle   time.Duration // portal home finishing after login
	MenuSettle    time.Duration // menu tree expanding
	PageSettle    time.Duration // search screen opening in its window
	RefreshSettle time.Duration // ajax refresh after the campus pick
	ReloadSettle  time.Duration // form re-render after the department pick
	SearchSettle  time.Duration // results table rendering
}

// DefaultWaits is tuned against production portal latency.
func DefaultWaits() Waits {
	return Waits{
		Attempts:   5,
		Find:       5 * time.Second,
		StaleRetry: 2 * time.Second,
		ErrorRetry: 1 * time.Second,

		Presence:    20 * time.Second,
		OptionPolls: 10,
		PollGap:     1 * time.Second,

		LoginSettle:   10 * time.Second,
		MenuSettle:    2 * time.Second,
		PageSettle:    5 * time.Second,
		RefreshSettle: 2 * time.Second,
		ReloadSettle:  5 * time.Second,
		SearchSettle:  5 * time.Second,
	}
}

// Form fills the syllabus search screen. Every operation re-acquires its
// element on each attempt because the portal replaces DOM subtrees whenever
// a dropdown choice triggers a refresh.
type Form struct {
	surface Surface
	waits   Waits
}

func NewForm(surface Surface, waits Waits) *Form {
	return &Form{surface: surface, waits: waits}
}

// SetField clears the input at loc and types value into it, retrying around
// stale handles and slow renders.
func (f *Form) SetField(ctx context.Context, loc browser.Locator, value string) error {
	var lastErr error
	for attempt := 0; attempt < f.waits.Attempts; attempt++ {
		err := f.trySetField(ctx, loc, value)
		if err == nil {
			slog.Debug("field set", "locator", loc.String(), "value", value)
			return nil
		}
		lastErr = err
		if isTransient(err) {
			slog.Debug("field not settled yet, retrying", "locator", loc.String(), "error", err)
			if err := sleep(ctx, f.waits.StaleRetry); err != nil {
				return err
			}
			continue
		}
		slog.Warn("failed to fill field, retrying", "locator", loc.String(), "error", err)
		if err := sleep(ctx, f.waits.ErrorRetry); err != nil {
			return err
		}
	}
	return fmt.Errorf("failed to fill %s after %d attempts: %w", loc, f.waits.Attempts, lastErr)
}

func (f *Form) trySetField(ctx context.Context, loc browser.Locator, value string) error {
	el, err := f.surface.FindVisible(ctx, loc, f.waits.Find)
	if err != nil {
		return err
	}
	if err := el.Clear(ctx); err != nil {
		return err
	}
	return el.Input(ctx, value)
}

// SelectByText picks the option whose whitespace-stripped text contains
// target, selecting it by its exact on-screen text. A miss is retried like
// a failure: dropdowns fill over ajax and the full option list can arrive
// seconds after the element itself.
func (f *Form) SelectByText(ctx context.Context, loc browser.Locator, target string) error {
	var lastErr error
	var lastOptions []string
	for attempt := 0; attempt < f.waits.Attempts; attempt++ {
		matched, options, err := f.trySelectByText(ctx, loc, target)
		if err == nil && matched {
			return nil
		}
		if len(options) > 0 {
			lastOptions = options
		}
		if err != nil {
			lastErr = err
		} else {
			lastErr = fmt.Errorf("no option matching %q", target)
		}
		if err := sleep(ctx, f.waits.ErrorRetry); err != nil {
			return err
		}
	}
	if closest, similarity := textutil.Closest(target, lastOptions); closest != "" {
		slog.Warn("no option matched, closest on screen",
			"target", target, "closest", closest, "similarity", similarity)
	}
	return fmt.Errorf("failed to select %q on %s: %w", target, loc, lastErr)
}

func (f *Form) trySelectByText(ctx context.Context, loc browser.Locator, target string) (bool, []string, error) {
	el, err := f.surface.FindPresent(ctx, loc, f.waits.Find)
	if err != nil {
		return false, nil, err
	}
	options, err := el.Options(ctx)
	if err != nil {
		return false, nil, err
	}
	for _, option := range options {
		if textutil.ContainsStripped(option, target) {
			if err := el.SelectText(ctx, option); err != nil {
				return false, options, err
			}
			slog.Info("option selected", "locator", loc.String(), "option", option)
			return true, options, nil
		}
	}
	return false, options, nil
}

// FillOptional types value into the input at loc, best effort. Optional
// filter rows vary by install; when the row is missing or rejects input the
// search simply runs without the filter.
func (f *Form) FillOptional(ctx context.Context, loc browser.Locator, value string) {
	el, err := f.surface.FindPresent(ctx, loc, f.waits.Find)
	if err != nil {
		slog.Info("optional field not found, searching without it", "locator", loc.String(), "error", err)
		return
	}
	if err := el.Input(ctx, value); err != nil {
		slog.Info("optional field rejected input, searching without it", "locator", loc.String(), "error", err)
		return
	}
	slog.Info("optional field set", "locator", loc.String(), "value", value)
}

// Submit fires the search and gives the results table time to render. The
// submit button ignores synthesized mouse events on some portal skins, so
// the click goes through script.
func (f *Form) Submit(ctx context.Context) error {
	if err := f.surface.ScriptClick(ctx, locSearchButton); err != nil {
		return fmt.Errorf("failed to start search: %w", err)
	}
	return sleep(ctx, f.waits.SearchSettle)
}

// PageHTML returns the current markup of the search screen.
func (f *Form) PageHTML(ctx context.Context) (string, error) {
	return f.surface.HTML(ctx)
}

// isTransient reports whether a retry without backoff is likely to recover.
func isTransient(err error) bool {
	return errors.Is(err, browser.ErrStale) || errors.Is(err, browser.ErrTimeout)
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

package unipa

import (
	"context"
	"log/slog"

	"syllabus-scraper/lib/browser"
)

// OptionPicker asks the operator to choose one of options for the criteria
// row labeled label and returns the chosen option text verbatim.
type OptionPicker func(label string, options []string) (string, error)

// FieldState describes how far one dynamic criteria row got.
type FieldState int

const (
	// FieldSkipped means the row is not on this install's search screen.
	FieldSkipped FieldState = iota
	// FieldSet means the operator's choice was applied.
	FieldSet
	// FieldFailed means the choice could not be applied. The search still
	// runs with the portal's default for the row.
	FieldFailed
)

func (s FieldState) String() string {
	switch s {
	case FieldSkipped:
		return "skipped"
	case FieldSet:
		return "set"
	case FieldFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// FieldOutcome records what happened to one dynamic criteria row.
type FieldOutcome struct {
	Label   string
	State   FieldState
	Options []string
	Choice  string
	Err     error
}

// PromptDynamicField locates the criteria row labeled label, waits for its
// options to load over ajax, asks the operator to pick one and applies the
// choice. Every failure mode is non-fatal: the row is cosmetic filtering
// and the search can always run with the portal's default for it.
func (f *Form) PromptDynamicField(ctx context.Context, label string, pick OptionPicker) FieldOutcome {
	loc := dynamicFieldLocator(label)
	if _, err := f.surface.FindPresent(ctx, loc, f.waits.Presence); err != nil {
		slog.Info("criteria row not on this screen, skipping", "label", label)
		return FieldOutcome{Label: label, State: FieldSkipped, Err: err}
	}

	slog.Info("loading options", "label", label)
	options := f.pollOptions(ctx, loc)
	if len(options) == 0 {
		// prompt still happens so the flow stays uniform; picking the
		// sentinel leaves the row at the portal default
		options = []string{Unspecified}
	}

	choice, err := pick(label, options)
	if err != nil {
		return FieldOutcome{Label: label, State: FieldFailed, Options: options, Err: err}
	}

	el, err := f.surface.FindPresent(ctx, loc, f.waits.Find)
	if err == nil {
		err = el.SelectText(ctx, choice)
	}
	if err != nil {
		slog.Warn("failed to apply choice", "label", label, "choice", choice, "error", err)
		return FieldOutcome{Label: label, State: FieldFailed, Options: options, Choice: choice, Err: err}
	}
	slog.Info("criteria set", "label", label, "choice", choice)
	return FieldOutcome{Label: label, State: FieldSet, Options: options, Choice: choice}
}

// pollOptions reads the row's option list until more than the sentinel has
// loaded or the poll budget runs out. The last successful read wins, so a
// row that only ever offers the sentinel still comes back as one option.
func (f *Form) pollOptions(ctx context.Context, loc browser.Locator) []string {
	var options []string
	for i := 0; i < f.waits.OptionPolls; i++ {
		el, err := f.surface.FindPresent(ctx, loc, f.waits.PollGap)
		if err == nil {
			texts, err := el.Options(ctx)
			if err == nil {
				options = texts
				if len(options) > 1 {
					return options
				}
			}
		}
		if err := sleep(ctx, f.waits.PollGap); err != nil {
			return options
		}
	}
	return options
}

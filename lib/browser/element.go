package browser

import (
	"context"
	"fmt"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/input"
	"github.com/go-rod/rod/lib/proto"
)

// Element is a handle to one DOM node. Handles go stale when the portal
// re-renders; operations on a stale handle fail with ErrStale and callers
// re-acquire through the page.
type Element struct {
	el *rod.Element
}

// Clear selects the element's text and deletes it.
func (e *Element) Clear(ctx context.Context) error {
	el := e.el.Context(ctx)
	if err := el.SelectAllText(); err != nil {
		return fmt.Errorf("failed to clear element: %w", classify(err))
	}
	if err := el.Type(input.Backspace); err != nil {
		return fmt.Errorf("failed to clear element: %w", classify(err))
	}
	return nil
}

// Input types text into the element.
func (e *Element) Input(ctx context.Context, text string) error {
	if err := e.el.Context(ctx).Input(text); err != nil {
		return fmt.Errorf("failed to input text: %w", classify(err))
	}
	return nil
}

// Text returns the element's rendered text.
func (e *Element) Text(ctx context.Context) (string, error) {
	text, err := e.el.Context(ctx).Text()
	if err != nil {
		return "", fmt.Errorf("failed to read element text: %w", classify(err))
	}
	return text, nil
}

// Click scrolls the element into view and clicks it with the mouse.
func (e *Element) Click(ctx context.Context) error {
	el := e.el.Context(ctx)
	// best effort: portals with sticky headers can cover the target
	_ = el.ScrollIntoView()
	if err := el.Click(proto.InputMouseButtonLeft, 1); err != nil {
		return fmt.Errorf("failed to click element: %w", classify(err))
	}
	return nil
}

// Options returns the visible text of every option under a select element,
// in document order.
func (e *Element) Options(ctx context.Context) ([]string, error) {
	obj, err := e.el.Context(ctx).Eval(`() => Array.from(this.options ?? []).map(o => o.text)`)
	if err != nil {
		return nil, fmt.Errorf("failed to list options: %w", classify(err))
	}
	texts := []string{}
	for _, v := range obj.Value.Arr() {
		texts = append(texts, v.Str())
	}
	return texts, nil
}

// SelectText selects the option whose visible text equals text exactly and
// fires the input/change events the portal's scripts listen for.
func (e *Element) SelectText(ctx context.Context, text string) error {
	obj, err := e.el.Context(ctx).Eval(`(text) => {
		const options = Array.from(this.options ?? [])
		for (let i = 0; i < options.length; i++) {
			if (options[i].text === text) {
				this.selectedIndex = i
				this.dispatchEvent(new Event('input', { bubbles: true }))
				this.dispatchEvent(new Event('change', { bubbles: true }))
				return true
			}
		}
		return false
	}`, text)
	if err != nil {
		return fmt.Errorf("failed to select option %q: %w", text, classify(err))
	}
	if !obj.Value.Bool() {
		return fmt.Errorf("select option %q: %w", text, ErrNotFound)
	}
	return nil
}

package browser

import (
	"context"
	"fmt"
	"time"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"
)

// Page is a tab or a frame within one. All lookups on a frame-scoped Page
// run in that frame's context.
type Page struct {
	page *rod.Page
}

// Navigate loads url and waits for the load event.
func (p *Page) Navigate(ctx context.Context, url string) error {
	page := p.page.Context(ctx)
	if err := page.Navigate(url); err != nil {
		return fmt.Errorf("failed to navigate to %s: %w", url, classify(err))
	}
	if err := page.WaitLoad(); err != nil {
		return fmt.Errorf("failed to load %s: %w", url, classify(err))
	}
	return nil
}

// URL reports the page's current location.
func (p *Page) URL(ctx context.Context) (string, error) {
	info, err := p.page.Context(ctx).Info()
	if err != nil {
		return "", classify(err)
	}
	return info.URL, nil
}

// FirstFrame scopes the page to its first child frame. Portals that render
// their forms inside an iframe need lookups to run in frame context.
func (p *Page) FirstFrame(ctx context.Context) (*Page, error) {
	found, el, err := p.page.Context(ctx).Has("iframe, frame")
	if err != nil {
		return nil, fmt.Errorf("first frame: %w", classify(err))
	}
	if !found {
		return nil, fmt.Errorf("first frame: %w", ErrNotFound)
	}
	frame, err := el.Frame()
	if err != nil {
		return nil, fmt.Errorf("first frame: %w", classify(err))
	}
	return &Page{page: frame}, nil
}

// FindPresent waits up to timeout for an element matching loc to exist in
// the DOM, visible or not.
func (p *Page) FindPresent(ctx context.Context, loc Locator, timeout time.Duration) (*Element, error) {
	return p.find(ctx, loc, timeout, false)
}

// FindVisible waits up to timeout for an element matching loc to exist and
// become visible.
func (p *Page) FindVisible(ctx context.Context, loc Locator, timeout time.Duration) (*Element, error) {
	return p.find(ctx, loc, timeout, true)
}

func (p *Page) find(ctx context.Context, loc Locator, timeout time.Duration, visible bool) (*Element, error) {
	page := p.page.Context(ctx).Timeout(timeout)
	el, err := locateOn(page, loc)
	if err != nil {
		return nil, fmt.Errorf("find %s: %w", loc, classify(err))
	}
	if visible {
		if err := el.WaitVisible(); err != nil {
			return nil, fmt.Errorf("wait visible %s: %w", loc, classify(err))
		}
	}
	// rebind to the caller's context so the lookup deadline does not leak
	// into later operations on the element
	return &Element{el: el.Context(ctx)}, nil
}

// ScriptClick dispatches a click to loc from script. One-shot: the element
// must already be in the DOM. Buttons that reject synthesized mouse events
// still honor a script click.
func (p *Page) ScriptClick(ctx context.Context, loc Locator) error {
	page := p.page.Context(ctx)
	var (
		found bool
		el    *rod.Element
		err   error
	)
	if loc.By == ByXPath {
		found, el, err = page.HasX(loc.Value)
	} else {
		found, el, err = page.Has(loc.css())
	}
	if err != nil {
		return fmt.Errorf("script click %s: %w", loc, classify(err))
	}
	if !found {
		return fmt.Errorf("script click %s: %w", loc, ErrNotFound)
	}
	if _, err := el.Context(ctx).Eval(`() => this.click()`); err != nil {
		return fmt.Errorf("script click %s: %w", loc, classify(err))
	}
	return nil
}

// HTML returns the page's current markup.
func (p *Page) HTML(ctx context.Context) (string, error) {
	html, err := p.page.Context(ctx).HTML()
	if err != nil {
		return "", classify(err)
	}
	return html, nil
}

// Screenshot captures the full page as png.
func (p *Page) Screenshot(ctx context.Context) ([]byte, error) {
	data, err := p.page.Context(ctx).Screenshot(true, &proto.PageCaptureScreenshot{
		Format: proto.PageCaptureScreenshotFormatPng,
	})
	if err != nil {
		return nil, classify(err)
	}
	return data, nil
}

func locateOn(page *rod.Page, loc Locator) (*rod.Element, error) {
	if loc.By == ByXPath {
		return page.ElementX(loc.Value)
	}
	return page.Element(loc.css())
}

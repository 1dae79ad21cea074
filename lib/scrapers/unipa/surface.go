package unipa

import (
	"context"
	"time"

	"syllabus-scraper/lib/browser"
)

// Surface is the slice of page behavior the form logic needs. The browser
// package provides the real one; tests script their own.
type Surface interface {
	FindVisible(ctx context.Context, loc browser.Locator, timeout time.Duration) (Control, error)
	FindPresent(ctx context.Context, loc browser.Locator, timeout time.Duration) (Control, error)
	ScriptClick(ctx context.Context, loc browser.Locator) error
	HTML(ctx context.Context) (string, error)
}

// Control is one form control on the search screen.
type Control interface {
	Clear(ctx context.Context) error
	Input(ctx context.Context, text string) error
	Options(ctx context.Context) ([]string, error)
	SelectText(ctx context.Context, text string) error
	Click(ctx context.Context) error
}

type pageSurface struct {
	page *browser.Page
}

// NewSurface adapts a live page to the Surface interface.
func NewSurface(page *browser.Page) Surface {
	return pageSurface{page: page}
}

func (s pageSurface) FindVisible(ctx context.Context, loc browser.Locator, timeout time.Duration) (Control, error) {
	el, err := s.page.FindVisible(ctx, loc, timeout)
	if err != nil {
		return nil, err
	}
	return el, nil
}

func (s pageSurface) FindPresent(ctx context.Context, loc browser.Locator, timeout time.Duration) (Control, error) {
	el, err := s.page.FindPresent(ctx, loc, timeout)
	if err != nil {
		return nil, err
	}
	return el, nil
}

func (s pageSurface) ScriptClick(ctx context.Context, loc browser.Locator) error {
	return s.page.ScriptClick(ctx, loc)
}

func (s pageSurface) HTML(ctx context.Context) (string, error) {
	return s.page.HTML(ctx)
}

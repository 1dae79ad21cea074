// Package browser drives a headless chromium instance over the devtools
// protocol and narrows it down to the handful of operations portal scraping
// needs: bounded element lookup, typing, dropdown selection, script clicks
// and page diagnostics. Failures that a retry can plausibly recover from are
// folded into ErrStale and ErrTimeout so callers can classify without
// knowing protocol details.
package browser

import (
	"context"
	"fmt"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/rod/lib/proto"
)

// Options configures the chromium session.
type Options struct {
	// BinPath overrides browser binary discovery. When empty, the launcher
	// falls back to well-known install locations and then to a managed
	// download.
	BinPath  string
	Headless bool
}

// Session owns one chromium process and its devtools connection.
type Session struct {
	browser  *rod.Browser
	launcher *launcher.Launcher
}

// Launch starts chromium and connects to it. Close must be called to reap
// the process and its temp profile.
func Launch(ctx context.Context, opts Options) (*Session, error) {
	l := launcher.New().
		Headless(opts.Headless).
		NoSandbox(true).
		Set("disable-dev-shm-usage").
		Set("window-size", "1920,1080")
	if opts.BinPath != "" {
		l = l.Bin(opts.BinPath)
	} else if path, ok := launcher.LookPath(); ok {
		l = l.Bin(path)
	}

	controlURL, err := l.Launch()
	if err != nil {
		return nil, fmt.Errorf("failed to launch chromium: %w", err)
	}
	b := rod.New().ControlURL(controlURL).Context(ctx)
	if err := b.Connect(); err != nil {
		l.Cleanup()
		return nil, fmt.Errorf("failed to connect to chromium: %w", err)
	}
	return &Session{browser: b, launcher: l}, nil
}

// Close tears down the devtools connection, kills the browser process and
// removes its temp profile.
func (s *Session) Close() error {
	err := s.browser.Close()
	s.launcher.Cleanup()
	return err
}

// Open creates a tab, navigates it to url and waits for the load event.
func (s *Session) Open(ctx context.Context, url string) (*Page, error) {
	page, err := s.browser.Context(ctx).Page(proto.TargetCreateTarget{})
	if err != nil {
		return nil, classify(err)
	}
	p := &Page{page: page}
	if err := p.Navigate(ctx, url); err != nil {
		return nil, err
	}
	return p, nil
}

// AdoptNewWindow returns a handle to a window other than current, which is
// how portals that open their content in a popup hand control over. When no
// other window exists, current is returned unchanged.
func (s *Session) AdoptNewWindow(ctx context.Context, current *Page) (*Page, error) {
	pages, err := s.browser.Pages()
	if err != nil {
		return nil, classify(err)
	}
	for _, p := range pages {
		if current == nil || p.TargetID != current.page.TargetID {
			return &Page{page: p.Context(ctx)}, nil
		}
	}
	return current, nil
}

package unipa

import (
	"context"
	"fmt"
	"time"

	"syllabus-scraper/lib/browser"
)

// scriptedErrs pops one error per call, nil once drained.
type scriptedErrs []error

func (s *scriptedErrs) next() error {
	if len(*s) == 0 {
		return nil
	}
	err := (*s)[0]
	*s = (*s)[1:]
	return err
}

// fakeControl records every interaction and fails on cue. Options can be
// scripted per call to model dropdowns that fill over ajax.
type fakeControl struct {
	cleared      int
	inputs       []string
	selected     []string
	clicks       int
	options      []string
	optionsSeq   [][]string // per-call option lists, last one repeats
	optionsCalls int

	clearErr   scriptedErrs
	inputErr   scriptedErrs
	optionsErr scriptedErrs
	selectErr  scriptedErrs
	clickErr   scriptedErrs
}

func (c *fakeControl) Clear(ctx context.Context) error {
	if err := c.clearErr.next(); err != nil {
		return err
	}
	c.cleared++
	return nil
}

func (c *fakeControl) Input(ctx context.Context, text string) error {
	if err := c.inputErr.next(); err != nil {
		return err
	}
	c.inputs = append(c.inputs, text)
	return nil
}

func (c *fakeControl) Options(ctx context.Context) ([]string, error) {
	if err := c.optionsErr.next(); err != nil {
		return nil, err
	}
	c.optionsCalls++
	if len(c.optionsSeq) > 0 {
		idx := c.optionsCalls - 1
		if idx >= len(c.optionsSeq) {
			idx = len(c.optionsSeq) - 1
		}
		return c.optionsSeq[idx], nil
	}
	return c.options, nil
}

func (c *fakeControl) SelectText(ctx context.Context, text string) error {
	if err := c.selectErr.next(); err != nil {
		return err
	}
	c.selected = append(c.selected, text)
	return nil
}

func (c *fakeControl) Click(ctx context.Context) error {
	if err := c.clickErr.next(); err != nil {
		return err
	}
	c.clicks++
	return nil
}

// fakeSurface hands out controls by locator. Lookups on unregistered
// locators time out like a real page would.
type fakeSurface struct {
	controls  map[string]*fakeControl
	findErrs  map[string]*scriptedErrs
	findCalls map[string]int
	clicked   []string
	clickErr  scriptedErrs
	html      string
}

func newFakeSurface() *fakeSurface {
	return &fakeSurface{
		controls:  map[string]*fakeControl{},
		findErrs:  map[string]*scriptedErrs{},
		findCalls: map[string]int{},
	}
}

// control registers (or returns) the control behind loc.
func (s *fakeSurface) control(loc browser.Locator) *fakeControl {
	c, ok := s.controls[loc.String()]
	if !ok {
		c = &fakeControl{}
		s.controls[loc.String()] = c
	}
	return c
}

// failFind scripts lookup failures for loc, consumed one per find.
func (s *fakeSurface) failFind(loc browser.Locator, errs ...error) {
	q, ok := s.findErrs[loc.String()]
	if !ok {
		q = &scriptedErrs{}
		s.findErrs[loc.String()] = q
	}
	*q = append(*q, errs...)
}

func (s *fakeSurface) find(loc browser.Locator) (Control, error) {
	s.findCalls[loc.String()]++
	if q, ok := s.findErrs[loc.String()]; ok {
		if err := q.next(); err != nil {
			return nil, fmt.Errorf("find %s: %w", loc, err)
		}
	}
	c, ok := s.controls[loc.String()]
	if !ok {
		return nil, fmt.Errorf("find %s: %w", loc, browser.ErrTimeout)
	}
	return c, nil
}

func (s *fakeSurface) FindVisible(ctx context.Context, loc browser.Locator, timeout time.Duration) (Control, error) {
	return s.find(loc)
}

func (s *fakeSurface) FindPresent(ctx context.Context, loc browser.Locator, timeout time.Duration) (Control, error) {
	return s.find(loc)
}

func (s *fakeSurface) ScriptClick(ctx context.Context, loc browser.Locator) error {
	if err := s.clickErr.next(); err != nil {
		return err
	}
	s.clicked = append(s.clicked, loc.String())
	return nil
}

func (s *fakeSurface) HTML(ctx context.Context) (string, error) {
	return s.html, nil
}

// testWaits keeps attempt and poll budgets but drops every sleep so retry
// paths run instantly.
func testWaits() Waits {
	w := DefaultWaits()
	w.Find = time.Millisecond
	w.StaleRetry = 0
	w.ErrorRetry = 0
	w.Presence = time.Millisecond
	w.PollGap = 0
	w.LoginSettle = 0
	w.MenuSettle = 0
	w.PageSettle = 0
	w.RefreshSettle = 0
	w.ReloadSettle = 0
	w.SearchSettle = 0
	return w
}

// Package unipa scrapes the syllabus search of a UNIPA-style university
// portal. The portal is a classic server-rendered product: a login page, a
// menu tree that opens function screens in popup windows, and search forms
// whose dropdowns load over ajax. Nothing here depends on one university's
// content; selectors target the product's generated structure.
package unipa

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/codes"

	"syllabus-scraper/lib/browser"
)

// Credentials authenticate the operator against the portal.
type Credentials struct {
	UserID   string
	Password string
}

// BaseCriteria is everything chosen before the browser starts. Campus and
// Department equal to Unspecified (or empty) leave the portal defaults
// untouched.
type BaseCriteria struct {
	Year       string
	Campus     string
	Department string
}

// Client walks the portal from login to a parsed search. It owns no
// prompting; rows whose choices only exist after the portal renders them
// take an OptionPicker.
type Client struct {
	session *browser.Session
	page    *browser.Page
	form    *Form
	waits   Waits
}

func NewClient(session *browser.Session, waits Waits) *Client {
	return &Client{session: session, waits: waits}
}

// Login opens the portal's login page, authenticates and waits for the
// home screen's scripts to settle.
func (c *Client) Login(ctx context.Context, loginURL string, creds Credentials) error {
	ctx, span := tracer.Start(ctx, "unipa:Login")
	defer span.End()

	if err := c.login(ctx, loginURL, creds); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to login")
		return err
	}
	return nil
}

func (c *Client) login(ctx context.Context, loginURL string, creds Credentials) error {
	slog.Info("opening login page", "url", loginURL)
	page, err := c.session.Open(ctx, loginURL)
	if err != nil {
		return fmt.Errorf("failed to open login page: %w", err)
	}
	c.page = page

	user, err := page.FindVisible(ctx, locUserName, c.waits.Presence)
	if err != nil {
		return fmt.Errorf("login form did not appear: %w", err)
	}
	if err := user.Input(ctx, creds.UserID); err != nil {
		return fmt.Errorf("failed to enter user id: %w", err)
	}
	pass, err := page.FindPresent(ctx, locPassword, c.waits.Find)
	if err != nil {
		return fmt.Errorf("password field not found: %w", err)
	}
	if err := pass.Input(ctx, creds.Password); err != nil {
		return fmt.Errorf("failed to enter password: %w", err)
	}
	if err := c.clickLogin(ctx, page); err != nil {
		return err
	}
	slog.Info("logged in, waiting for the portal home to settle")
	return sleep(ctx, c.waits.LoginSettle)
}

// clickLogin prefers the labeled button and falls back to the theme
// classes, which is all some skins give the button.
func (c *Client) clickLogin(ctx context.Context, page *browser.Page) error {
	if btn, err := page.FindPresent(ctx, locLoginButton, c.waits.Find); err == nil {
		if err := btn.Click(ctx); err == nil {
			return nil
		}
	}
	btn, err := page.FindPresent(ctx, locLoginButtonAlt, c.waits.Find)
	if err != nil {
		return fmt.Errorf("login button not found: %w", err)
	}
	if err := btn.Click(ctx); err != nil {
		return fmt.Errorf("failed to click login button: %w", err)
	}
	return nil
}

// OpenSyllabusSearch walks the menu tree to the syllabus search screen,
// adopts the window it opens in and scopes lookups to its content frame.
func (c *Client) OpenSyllabusSearch(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "unipa:OpenSyllabusSearch")
	defer span.End()

	if err := c.openSyllabusSearch(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to open syllabus search")
		return err
	}
	return nil
}

func (c *Client) openSyllabusSearch(ctx context.Context) error {
	if c.page == nil {
		return errors.New("not logged in")
	}
	slog.Info("walking menu to syllabus search")
	if err := c.clickMenu(ctx, locMenuAcademic, c.waits.MenuSettle); err != nil {
		return err
	}
	if err := c.clickMenu(ctx, locMenuSyllabus, c.waits.MenuSettle); err != nil {
		return err
	}
	if err := c.clickMenu(ctx, locMenuSyllabusSearch, c.waits.PageSettle); err != nil {
		return err
	}

	page, err := c.session.AdoptNewWindow(ctx, c.page)
	if err != nil {
		return fmt.Errorf("failed to adopt search window: %w", err)
	}
	c.page = page
	if url, err := page.URL(ctx); err == nil {
		slog.Info("search screen open", "url", url)
	}

	// the function screen renders inside a frame on most installs; when
	// there is none the window itself is the form
	frame, err := page.FirstFrame(ctx)
	if err == nil {
		c.page = frame
	} else if !errors.Is(err, browser.ErrNotFound) {
		return fmt.Errorf("failed to enter search frame: %w", err)
	}
	c.form = NewForm(NewSurface(c.page), c.waits)
	return nil
}

func (c *Client) clickMenu(ctx context.Context, loc browser.Locator, settle time.Duration) error {
	item, err := c.page.FindVisible(ctx, loc, c.waits.Presence)
	if err != nil {
		return fmt.Errorf("menu item %s not found: %w", loc, err)
	}
	if err := item.Click(ctx); err != nil {
		return fmt.Errorf("failed to click menu item %s: %w", loc, err)
	}
	return sleep(ctx, settle)
}

// ApplyBase fills the criteria chosen up front. The year is the one field
// the search cannot run without: the portal would silently search a
// different academic year, so failure here aborts. Campus and department
// are rejected portal-side now and then and the search is still worth
// running, so their failures only warn.
func (c *Client) ApplyBase(ctx context.Context, criteria BaseCriteria) error {
	ctx, span := tracer.Start(ctx, "unipa:ApplyBase")
	defer span.End()

	if err := c.applyBase(ctx, criteria); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to apply base criteria")
		return err
	}
	return nil
}

func (c *Client) applyBase(ctx context.Context, criteria BaseCriteria) error {
	if c.form == nil {
		return errors.New("syllabus search not open")
	}
	slog.Info("applying base criteria",
		"year", criteria.Year, "campus", criteria.Campus, "department", criteria.Department)

	if err := c.form.SetField(ctx, locYearField, criteria.Year); err != nil {
		return fmt.Errorf("failed to set year: %w", err)
	}
	if chosen(criteria.Campus) {
		if err := c.form.SelectByText(ctx, locCampusSelect, criteria.Campus); err != nil {
			slog.Warn("campus not applied, searching without it", "campus", criteria.Campus, "error", err)
		}
		// the campus pick refreshes the form either way
		if err := sleep(ctx, c.waits.RefreshSettle); err != nil {
			return err
		}
	}
	if chosen(criteria.Department) {
		if err := c.form.SelectByText(ctx, locDepartmentSelect, criteria.Department); err != nil {
			slog.Warn("department not applied, searching without it", "department", criteria.Department, "error", err)
		} else {
			// a successful pick adds criteria rows to the screen
			slog.Info("waiting for the form to grow its criteria rows")
			if err := sleep(ctx, c.waits.ReloadSettle); err != nil {
				return err
			}
		}
	}
	return nil
}

func chosen(value string) bool {
	return value != "" && value != Unspecified
}

// PromptDynamicFields walks the ajax-loaded criteria rows in screen order,
// prompting for each. Outcomes come back for reporting; none are fatal.
func (c *Client) PromptDynamicFields(ctx context.Context, pick OptionPicker) []FieldOutcome {
	ctx, span := tracer.Start(ctx, "unipa:PromptDynamicFields")
	defer span.End()

	if c.form == nil {
		return nil
	}
	outcomes := make([]FieldOutcome, 0, len(DynamicFieldLabels))
	for _, label := range DynamicFieldLabels {
		outcomes = append(outcomes, c.form.PromptDynamicField(ctx, label, pick))
	}
	return outcomes
}

// SetSubjectFilter narrows the search by course name. Empty means no
// filter; the row itself is best effort.
func (c *Client) SetSubjectFilter(ctx context.Context, name string) {
	if name == "" || c.form == nil {
		return
	}
	c.form.FillOptional(ctx, subjectFilterLocator(), name)
}

// Search submits the form and waits for the results to render.
func (c *Client) Search(ctx context.Context) error {
	ctx, span := tracer.Start(ctx, "unipa:Search")
	defer span.End()

	if c.form == nil {
		err := errors.New("syllabus search not open")
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to run search")
		return err
	}
	slog.Info("running search")
	if err := c.form.Submit(ctx); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to run search")
		return err
	}
	return nil
}

// PageHTML returns the markup of the current search screen, frame included.
func (c *Client) PageHTML(ctx context.Context) (string, error) {
	if c.form == nil {
		return "", errors.New("syllabus search not open")
	}
	return c.form.PageHTML(ctx)
}

// Screenshot captures the current window for diagnostics. Valid as soon as
// login opened a page.
func (c *Client) Screenshot(ctx context.Context) ([]byte, error) {
	if c.page == nil {
		return nil, errors.New("no open page")
	}
	return c.page.Screenshot(ctx)
}

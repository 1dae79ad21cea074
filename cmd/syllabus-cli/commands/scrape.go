package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"syllabus-scraper/lib/browser"
	"syllabus-scraper/lib/prompt"
	"syllabus-scraper/lib/restyutil"
	"syllabus-scraper/lib/scrapers/unipa"
	"syllabus-scraper/lib/telemetry"
	"syllabus-scraper/lib/timezone"
	"syllabus-scraper/lib/util/serviceutil"
)

// PREVIEW_ROWS caps how many hits get echoed to the terminal before the
// export.
const PREVIEW_ROWS = 10

var scrapeOut *string

func init() {
	scrapeOut = scrapeCmd.Flags().String("out", "", "Directory for the exported csv, overrides output.dir from config.")
	rootCmd.AddCommand(scrapeCmd)
}

var scrapeCmd = &cobra.Command{
	Use:   "scrape [--out <dir>]",
	Short: "Logs into the portal, runs an interactive syllabus search and exports the hits as csv.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()
		telemetry.InstrumentPerfStats(ctx)

		cfg := loadConfig()
		if *scrapeOut != "" {
			cfg.Output.Dir = *scrapeOut
		}

		p := prompt.NewStdio()
		creds := askCredentials(p)
		criteria := askBaseCriteria(p, cfg)

		preflight(ctx, cfg)

		slog.Info("launching browser", "headful", cfg.Portal.Headful)
		session, err := browser.Launch(ctx, browser.Options{
			BinPath:  cfg.Portal.BrowserPath,
			Headless: !cfg.Portal.Headful,
		})
		if err != nil {
			serviceutil.Fatal("failed to launch browser", err)
		}

		client := unipa.NewClient(session, unipa.DefaultWaits())

		t1 := time.Now()
		runErr := runSearch(ctx, client, p, cfg, creds, criteria)
		t2 := time.Now()

		if runErr != nil {
			// capture what the browser was looking at before tearing down
			dumpCtx, cancel := context.WithTimeout(context.Background(), time.Second*15)
			saveDiagnostics(dumpCtx, client, cfg.Portal.DiagnosticsDir)
			cancel()
		}
		if err := session.Close(); err != nil {
			slog.Warn("browser did not shut down cleanly", "error", err)
		}
		if runErr != nil {
			serviceutil.Fatal("scrape failed", runErr)
		}

		slog.Info("scraping time", "seconds", t2.Sub(t1).Seconds())
	},
}

func askCredentials(p *prompt.Prompter) unipa.Credentials {
	userID, err := p.Line("学籍番号を入力してください: ")
	if err != nil {
		serviceutil.Fatal("failed to read user id", err)
	}
	password, err := p.Password("パスワードを入力してください (非表示): ")
	if err != nil {
		serviceutil.Fatal("failed to read password", err)
	}
	return unipa.Credentials{UserID: userID, Password: password}
}

func askBaseCriteria(p *prompt.Prompter, cfg Config) unipa.BaseCriteria {
	year, err := p.Year()
	if err != nil {
		serviceutil.Fatal("failed to read year", err)
	}
	campus, err := p.SelectIndex(unipa.LabelCampus, cfg.Portal.Campuses)
	if err != nil {
		serviceutil.Fatal("failed to read campus", err)
	}
	department, err := p.SelectIndex(unipa.LabelDepartment, cfg.Portal.Departments)
	if err != nil {
		serviceutil.Fatal("failed to read department", err)
	}
	return unipa.BaseCriteria{Year: year, Campus: campus, Department: department}
}

// preflight is advisory: a dead portal fails fast here, but only the
// browser session decides for real.
func preflight(ctx context.Context, cfg Config) {
	prober, err := unipa.NewProber(cfg.Portal.LoginUrl)
	if err != nil {
		serviceutil.Fatal("failed to build portal prober", err)
	}
	prober.SetInstrumentOutput(restyutil.NewFilesystemOutput(filepath.Join(cfg.Portal.DiagnosticsDir, "resty")))
	if err := prober.Probe(ctx); err != nil {
		slog.Warn("portal preflight failed, continuing anyway", "error", err)
	}
}

// runSearch is the portal session from login to export. It returns instead
// of exiting so the caller can capture diagnostics and close the browser.
func runSearch(ctx context.Context, client *unipa.Client, p *prompt.Prompter, cfg Config, creds unipa.Credentials, criteria unipa.BaseCriteria) error {
	if err := client.Login(ctx, cfg.Portal.LoginUrl, creds); err != nil {
		return err
	}
	if err := client.OpenSyllabusSearch(ctx); err != nil {
		return err
	}
	if err := client.ApplyBase(ctx, criteria); err != nil {
		return err
	}

	for _, outcome := range client.PromptDynamicFields(ctx, p.SelectIndex) {
		slog.Debug("criteria row", "label", outcome.Label, "state", outcome.State.String(), "choice", outcome.Choice)
	}

	subject, err := p.Line("\n【開講科目名】を入力 (入力なしでスキップ): ")
	if err != nil {
		return fmt.Errorf("failed to read subject filter: %w", err)
	}
	client.SetSubjectFilter(ctx, subject)

	if err := client.Search(ctx); err != nil {
		return err
	}

	html, err := client.PageHTML(ctx)
	if err != nil {
		return fmt.Errorf("failed to read results page: %w", err)
	}
	rows, err := unipa.ParseResults(html, criteria.Year, criteria.Department)
	if err != nil {
		return err
	}

	slog.Info("search finished", "hits", len(rows))
	if len(rows) == 0 {
		slog.Info("no rows matched the criteria, nothing to export")
		return nil
	}

	previewRows(rows)

	path, err := unipa.ExportFile(cfg.Output.Dir, criteria.Year, criteria.Department, rows)
	if err != nil {
		return err
	}
	slog.Info("export complete", "path", path, "rows", len(rows))
	return nil
}

// previewRows echoes the first hits so the operator can sanity check the
// export before opening it.
func previewRows(rows []unipa.Row) {
	tw := table.NewWriter()
	tw.SetOutputMirror(os.Stdout)
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"科目名", "教員名", "曜日時限"})
	limit := len(rows)
	if limit > PREVIEW_ROWS {
		limit = PREVIEW_ROWS
	}
	for _, row := range rows[:limit] {
		tw.AppendRow(table.Row{row.Subject, row.Teacher, row.Period})
	}
	tw.Render()
	if len(rows) > limit {
		fmt.Printf("... 他 %d 件\n", len(rows)-limit)
	}
}

// saveDiagnostics drops a screenshot and the page markup into dir so a
// failed run leaves something to debug from.
func saveDiagnostics(ctx context.Context, client *unipa.Client, dir string) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		slog.Error("failed to create diagnostics dir", "dir", dir, "error", err)
		return
	}
	stamp := timezone.Stamp(timezone.Now())

	if png, err := client.Screenshot(ctx); err != nil {
		slog.Error("failed to capture screenshot", "error", err)
	} else {
		path := filepath.Join(dir, "fatal_error_"+stamp+".png")
		if err := os.WriteFile(path, png, 0o644); err != nil {
			slog.Error("failed to write screenshot", "path", path, "error", err)
		} else {
			slog.Info("saved screenshot", "path", path)
		}
	}

	if html, err := client.PageHTML(ctx); err == nil {
		path := filepath.Join(dir, "fatal_error_"+stamp+".html")
		if err := os.WriteFile(path, []byte(html), 0o644); err != nil {
			slog.Error("failed to write page dump", "path", path, "error", err)
		} else {
			slog.Info("saved page dump", "path", path)
		}
	}
}

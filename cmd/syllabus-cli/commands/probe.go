package commands

import (
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"syllabus-scraper/lib/restyutil"
	"syllabus-scraper/lib/scrapers/unipa"
	"syllabus-scraper/lib/util/serviceutil"
)

func init() {
	rootCmd.AddCommand(probeCmd)
}

var probeCmd = &cobra.Command{
	Use:   "probe",
	Short: "Checks that the portal answers over https before an interactive run.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := loadConfig()

		prober, err := unipa.NewProber(cfg.Portal.LoginUrl)
		if err != nil {
			serviceutil.Fatal("failed to build portal prober", err)
		}
		prober.SetInstrumentOutput(restyutil.NewFilesystemOutput(filepath.Join(cfg.Portal.DiagnosticsDir, "resty")))

		if err := prober.Probe(cmd.Context()); err != nil {
			serviceutil.Fatal("portal not reachable", err)
		}
		slog.Info("portal looks healthy", "url", cfg.Portal.LoginUrl)
	},
}

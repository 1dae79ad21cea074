package commands

import (
	"syllabus-scraper/lib/configutil"
	"syllabus-scraper/lib/scrapers/unipa"
	"syllabus-scraper/lib/util/serviceutil"
)

type PortalConfig struct {
	LoginUrl    string `json:"loginUrl"`
	BrowserPath string `json:"browserPath"`
	// Headful turns the browser visible for debugging. The zero value is
	// the production default, so a local config override merges cleanly.
	Headful        bool     `json:"headful"`
	DiagnosticsDir string   `json:"diagnosticsDir"`
	Campuses       []string `json:"campuses"`
	Departments    []string `json:"departments"`
}

type OutputConfig struct {
	Dir string `json:"dir"`
}

type Config struct {
	Portal PortalConfig `json:"portal"`
	Output OutputConfig `json:"output"`
}

func loadConfig() Config {
	cfg, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil {
		serviceutil.Fatal("failed to read config", err)
	}
	if cfg.Portal.LoginUrl == "" {
		serviceutil.Fatal("config is missing portal.loginUrl", nil)
	}
	if len(cfg.Portal.Campuses) == 0 {
		cfg.Portal.Campuses = unipa.DefaultCampusOptions
	}
	if len(cfg.Portal.Departments) == 0 {
		cfg.Portal.Departments = unipa.DefaultDepartmentOptions
	}
	if cfg.Portal.DiagnosticsDir == "" {
		cfg.Portal.DiagnosticsDir = ".dev/diagnostics"
	}
	if cfg.Output.Dir == "" {
		cfg.Output.Dir = "."
	}
	return cfg
}

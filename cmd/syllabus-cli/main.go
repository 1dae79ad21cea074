package main

import (
	"syllabus-scraper/cmd/syllabus-cli/commands"
	"syllabus-scraper/lib/telemetry"
	"syllabus-scraper/lib/util/serviceutil"
)

func main() {
	ctx := serviceutil.SignalContext()
	telemetry.SetupFromEnv(ctx, "syllabus-cli")
	commands.ExecuteContext(ctx)
}

// Package export implements the export command: write built-in or
// site-derived mapping files to a target folder.
package export

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/sitetransform/layoutmap/models"
	"github.com/sitetransform/layoutmap/pkg/analyzer"
	"github.com/sitetransform/layoutmap/pkg/db"
	"github.com/sitetransform/layoutmap/pkg/exporter"
	"github.com/sitetransform/layoutmap/pkg/site"
	"github.com/sitetransform/layoutmap/pkg/templates"
)

func ExportAction(c *cli.Context) error {
	logLevel := slog.LevelInfo
	if c.Bool("quiet") {
		logLevel = slog.LevelError
	}
	logger := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))
	startTime := time.Now()

	wantWebParts := c.Bool("webparts")
	wantPageLayouts := c.Bool("pagelayouts")
	wantCustom := c.Bool("custom")

	if !wantWebParts && !wantPageLayouts && !wantCustom {
		fmt.Fprintln(os.Stderr, "Error: No export selected")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Usage:")
		fmt.Fprintln(os.Stderr, "  layoutmap export --webparts --pagelayouts")
		fmt.Fprintln(os.Stderr, "  layoutmap export --custom --site https://intranet.example.com")
		fmt.Fprintln(os.Stderr, "")
		fmt.Fprintln(os.Stderr, "Need help? Run: layoutmap export --help")
		return cli.Exit("", 1)
	}

	cfg, err := models.LoadConfig(c.String("config"))
	if err != nil {
		return err
	}

	folder, err := exporter.ResolveFolder(c.String("folder"))
	if err != nil {
		return err
	}
	logger.Info("Output folder resolved", "folder", folder)

	overwrite := c.Bool("overwrite")
	exp := exporter.New(templates.Embedded{})

	var results []exporter.Result
	var siteURL, siteID string

	if wantWebParts {
		results = append(results, exp.ExportTemplate(folder, templates.WebPartMapping, overwrite))
	}
	if wantPageLayouts {
		results = append(results, exp.ExportTemplate(folder, templates.PageLayoutMapping, overwrite))
	}

	if wantCustom {
		res, url, id := exportCustom(c, logger, cfg, exp, folder, overwrite)
		results = append(results, res)
		siteURL, siteID = url, id
	}

	for _, r := range results {
		switch r.Outcome {
		case exporter.OutcomeWritten:
			logger.Info("Mapping file written", "file", r.File, "path", r.Path)
		case exporter.OutcomeSkipped:
			logger.Info("Mapping file skipped", "file", r.File)
		case exporter.OutcomeFailed:
			logger.Error("Export branch failed", "file", r.File, "error", r.Err)
		}
	}

	written, skipped, failed := tally(results)
	fmt.Printf("Export complete: %d written, %d skipped, %d failed (%.1fs)\n",
		written, skipped, failed, time.Since(startTime).Seconds())

	recordRun(logger, exp, folder, overwrite, siteURL, siteID, results)

	if failed > 0 {
		var parts []string
		for _, r := range results {
			if r.Outcome == exporter.OutcomeFailed {
				parts = append(parts, r.Err.Error())
			}
		}
		return fmt.Errorf("%d export(s) failed: %s", failed, strings.Join(parts, "; "))
	}
	return nil
}

// exportCustom runs the site-derived branch. Connection or precondition
// failures come back as a failed Result so sibling branches are unaffected.
func exportCustom(c *cli.Context, logger *slog.Logger, cfg *models.Config, exp *exporter.Exporter, folder string, overwrite bool) (exporter.Result, string, string) {
	siteURL := c.String("site")
	if siteURL == "" {
		siteURL = cfg.SiteURL
	}
	if siteURL == "" {
		return exporter.Result{
			Outcome: exporter.OutcomeFailed,
			Err:     fmt.Errorf("custom mapping export requires a site URL (--site or site_url in config)"),
		}, "", ""
	}

	client, err := site.NewClient(siteURL, cfg.Timeout(), cfg.UserAgent)
	if err != nil {
		return exporter.Result{Outcome: exporter.OutcomeFailed, Err: err}, siteURL, ""
	}

	ctx, cancel := context.WithTimeout(c.Context, cfg.Timeout())
	defer cancel()

	conn, err := client.Connect(ctx)
	if err != nil {
		return exporter.Result{Outcome: exporter.OutcomeFailed, Err: err}, siteURL, ""
	}
	logger.Info("Connected to site", "site", siteURL, "site_id", conn.SiteID(), "kind", conn.Kind())

	an := analyzer.New(conn, siteURL)
	res := exp.ExportCustom(ctx, folder, overwrite, conn, an)
	return res, siteURL, conn.SiteID().String()
}

func tally(results []exporter.Result) (written, skipped, failed int) {
	for _, r := range results {
		switch r.Outcome {
		case exporter.OutcomeWritten:
			written++
		case exporter.OutcomeSkipped:
			skipped++
		case exporter.OutcomeFailed:
			failed++
		}
	}
	return written, skipped, failed
}

// recordRun logs the invocation to the local history database. History is
// ancillary: a database problem never fails the export itself.
func recordRun(logger *slog.Logger, exp *exporter.Exporter, folder string, overwrite bool, siteURL, siteID string, results []exporter.Result) {
	database, err := db.Open()
	if err != nil {
		logger.Error("failed to open history database", "error", err)
		return
	}
	defer database.Close()

	written, skipped, failed := tally(results)
	runID, err := database.RecordRun(db.Run{
		SiteURL:   siteURL,
		SiteID:    siteID,
		Folder:    folder,
		Overwrite: overwrite,
		Written:   written,
		Skipped:   skipped,
		Failed:    failed,
	})
	if err != nil {
		logger.Error("failed to record run", "error", err)
		return
	}

	for _, r := range results {
		a := db.Artifact{
			RunID:    runID,
			FileName: r.File,
			Outcome:  string(r.Outcome),
		}
		if r.Err != nil {
			a.Error = r.Err.Error()
		}
		if r.Outcome == exporter.OutcomeWritten {
			if stats, err := exp.Store.GetFileStats(r.Path); err == nil {
				a.SizeBytes = stats.SizeBytes
			}
		}
		if err := database.RecordArtifact(a); err != nil {
			logger.Error("failed to record artifact", "error", err, "file", r.File)
		}
	}
}

// Package history implements the history command over the local export
// run database.
package history

import (
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	dbpkg "github.com/sitetransform/layoutmap/pkg/db"
)

func HistoryAction(c *cli.Context) error {
	database, err := dbpkg.Open()
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	limit := c.Int("limit")
	runs, err := database.ListRuns(limit)
	if err != nil {
		return fmt.Errorf("failed to list runs: %w", err)
	}

	if len(runs) == 0 {
		fmt.Println("No export runs found")
		return nil
	}

	// Print table header
	fmt.Printf("%-6s %-20s %-9s %-9s %-8s %-8s %-8s %-30s\n",
		"ID", "Created", "Written", "Skipped", "Failed", "Ovrwrt", "Site", "Folder")
	fmt.Println(strings.Repeat("-", 110))

	for _, r := range runs {
		siteLabel := "-"
		if r.SiteURL != "" {
			siteLabel = "yes"
		}
		fmt.Printf("%-6d %-20s %-9d %-9d %-8d %-8t %-8s %-30s\n",
			r.RunID,
			r.CreatedAt.Format("2006-01-02 15:04:05"),
			r.Written,
			r.Skipped,
			r.Failed,
			r.Overwrite,
			siteLabel,
			r.Folder,
		)
	}

	fmt.Printf("\nTotal: %d runs\n", len(runs))
	fmt.Printf("\nTip: Use 'layoutmap history show <id>' to see per-file outcomes\n")

	return nil
}

// ShowAction prints the per-file outcomes for one run.
func ShowAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("run ID required\nUsage: layoutmap history show <run_id>")
	}

	var runID int64
	if _, err := fmt.Sscanf(c.Args().First(), "%d", &runID); err != nil {
		return fmt.Errorf("invalid run ID: %s", c.Args().First())
	}

	database, err := dbpkg.Open()
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer database.Close()

	artifacts, err := database.GetRunArtifacts(runID)
	if err != nil {
		return fmt.Errorf("failed to get run artifacts: %w", err)
	}

	if len(artifacts) == 0 {
		fmt.Printf("No artifacts found for run %d\n", runID)
		return nil
	}

	fmt.Printf("Run %d\n", runID)
	fmt.Println(strings.Repeat("=", 60))
	for i, a := range artifacts {
		fmt.Printf("%2d. [%s] %s\n", i+1, a.Outcome, a.FileName)
		if a.Error != "" {
			fmt.Printf("    Error: %s\n", a.Error)
		} else if a.SizeBytes > 0 {
			fmt.Printf("    Size: %d bytes\n", a.SizeBytes)
		}
	}

	return nil
}

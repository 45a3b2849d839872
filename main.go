package main

import (
	"log"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/sitetransform/layoutmap/internal/export"
	"github.com/sitetransform/layoutmap/internal/history"
	"github.com/sitetransform/layoutmap/internal/inspect"
)

func main() {
	app := &cli.App{
		Name:  "layoutmap",
		Usage: "Export page layout mapping files for page transformation",
		Commands: []*cli.Command{
			{
				Name:   "export",
				Usage:  "Export built-in or site-derived mapping files",
				Action: export.ExportAction,
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "webparts",
						Usage: "Export the built-in web part mapping (webpartmapping.xml)",
					},
					&cli.BoolFlag{
						Name:  "pagelayouts",
						Usage: "Export the built-in page layout mapping (pagelayoutmapping.xml)",
					},
					&cli.BoolFlag{
						Name:  "custom",
						Usage: "Export a custom page layout mapping derived from the connected site",
					},
					&cli.StringFlag{
						Name:  "folder",
						Usage: "Output folder (must exist); defaults to the current directory",
					},
					&cli.BoolFlag{
						Name:  "overwrite",
						Usage: "Replace existing mapping files instead of skipping them",
					},
					&cli.StringFlag{
						Name:  "site",
						Usage: "Site URL for --custom (overrides config)",
					},
					&cli.StringFlag{
						Name:  "config",
						Value: "config.yaml",
						Usage: "Path to the YAML config file",
					},
					&cli.BoolFlag{
						Name:  "quiet",
						Usage: "Only log errors",
					},
				},
			},
			{
				Name:   "inspect",
				Usage:  "Connect to a site and print its descriptor and page layouts as YAML",
				Action: inspect.InspectAction,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "site",
						Usage: "Site URL (overrides config)",
					},
					&cli.StringFlag{
						Name:  "config",
						Value: "config.yaml",
						Usage: "Path to the YAML config file",
					},
				},
			},
			{
				Name:   "history",
				Usage:  "List past export runs",
				Action: history.HistoryAction,
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Value: 20,
						Usage: "Maximum number of runs to list",
					},
				},
				Subcommands: []*cli.Command{
					{
						Name:   "show",
						Usage:  "Show per-file outcomes for a run",
						Action: history.ShowAction,
					},
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}

// Package inspect implements the inspect command: connect to a site and
// print what the analyzer would see, without writing anything.
package inspect

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v2"
	"gopkg.in/yaml.v3"

	"github.com/sitetransform/layoutmap/models"
	"github.com/sitetransform/layoutmap/pkg/site"
)

// report is the YAML document printed to stdout.
type report struct {
	Site struct {
		URL        string `yaml:"url"`
		ID         string `yaml:"id"`
		Kind       string `yaml:"kind,omitempty"`
		Title      string `yaml:"title,omitempty"`
		Publishing bool   `yaml:"publishing"`
	} `yaml:"site"`
	Layouts []models.PageLayout `yaml:"layouts"`
}

func InspectAction(c *cli.Context) error {
	cfg, err := models.LoadConfig(c.String("config"))
	if err != nil {
		return err
	}

	siteURL := c.String("site")
	if siteURL == "" {
		siteURL = cfg.SiteURL
	}
	if siteURL == "" {
		return fmt.Errorf("site URL is required (--site or site_url in config)")
	}

	client, err := site.NewClient(siteURL, cfg.Timeout(), cfg.UserAgent)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Context, cfg.Timeout())
	defer cancel()

	conn, err := client.Connect(ctx)
	if err != nil {
		return err
	}

	var rep report
	rep.Site.URL = conn.URL()
	rep.Site.ID = conn.SiteID().String()
	rep.Site.Kind = conn.Kind()
	rep.Site.Title = conn.Title()
	rep.Site.Publishing = conn.IsPublishingSite()

	rep.Layouts, err = conn.PageLayouts(ctx)
	if err != nil {
		return err
	}

	yamlBytes, err := yaml.Marshal(rep)
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}

	fmt.Print(string(yamlBytes))
	return nil
}

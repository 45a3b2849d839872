// Package site talks to a hosted publishing site over its REST surface and
// answers the two questions the exporter needs: is this a publishing site,
// and what is its unique identifier. It also lists the page layouts the
// analyzer inspects.
package site

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"

	"github.com/sitetransform/layoutmap/models"
)

// Descriptor is the site metadata document served at /_api/site.
type Descriptor struct {
	ID    uuid.UUID `json:"id"`
	Kind  string    `json:"kind"` // publishing, team, communication, ...
	Title string    `json:"title"`
}

type layoutList struct {
	Layouts []models.PageLayout `json:"layouts"`
}

// Client fetches site resources over HTTP.
type Client struct {
	baseURL   *url.URL
	client    *http.Client
	userAgent string
}

// NewClient validates the site URL and builds a client with the given
// request timeout.
func NewClient(siteURL string, timeout time.Duration, userAgent string) (*Client, error) {
	u, err := url.Parse(siteURL)
	if err != nil {
		return nil, fmt.Errorf("invalid site URL: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("invalid site URL %q: scheme must be http or https", siteURL)
	}

	return &Client{
		baseURL:   u,
		client:    &http.Client{Timeout: timeout},
		userAgent: userAgent,
	}, nil
}

// Connect fetches the site descriptor and home page, classifies the site,
// and returns a Site handle scoped to this invocation.
func (c *Client) Connect(ctx context.Context) (*Site, error) {
	desc, err := c.descriptor(ctx)
	if err != nil {
		return nil, err
	}

	home, err := c.GetPage(ctx, "/")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch site home page: %w", err)
	}

	return &Site{
		client:     c,
		desc:       desc,
		publishing: classify(desc, home),
	}, nil
}

func (c *Client) descriptor(ctx context.Context) (*Descriptor, error) {
	body, err := c.get(ctx, "/_api/site")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch site descriptor: %w", err)
	}

	var desc Descriptor
	if err := json.Unmarshal(body, &desc); err != nil {
		return nil, fmt.Errorf("failed to parse site descriptor: %w", err)
	}
	if desc.ID == uuid.Nil {
		return nil, fmt.Errorf("site descriptor has no id")
	}
	return &desc, nil
}

// PageLayouts lists the page layouts in use on the site.
func (c *Client) PageLayouts(ctx context.Context) ([]models.PageLayout, error) {
	body, err := c.get(ctx, "/_api/layouts")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch page layouts: %w", err)
	}

	var list layoutList
	if err := json.Unmarshal(body, &list); err != nil {
		return nil, fmt.Errorf("failed to parse page layout list: %w", err)
	}
	return list.Layouts, nil
}

// GetPage fetches a page (site-relative or absolute URL) and parses it.
func (c *Client) GetPage(ctx context.Context, pageURL string) (*goquery.Document, error) {
	body, err := c.get(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(string(body)))
	if err != nil {
		return nil, fmt.Errorf("failed to parse HTML: %w", err)
	}
	return doc, nil
}

func (c *Client) get(ctx context.Context, ref string) ([]byte, error) {
	target, err := c.resolve(ref)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	if c.userAgent != "" {
		req.Header.Set("User-Agent", c.userAgent)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to make HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch %s, status code: %d", target, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return body, nil
}

func (c *Client) resolve(ref string) (string, error) {
	u, err := url.Parse(ref)
	if err != nil {
		return "", fmt.Errorf("invalid page URL %q: %w", ref, err)
	}
	return c.baseURL.ResolveReference(u).String(), nil
}

// BaseURL returns the site root as given to NewClient.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Site is a connected site, scoped to a single invocation. Classification
// and identity are resolved once at Connect time.
type Site struct {
	client     *Client
	desc       *Descriptor
	publishing bool
}

func (s *Site) IsPublishingSite() bool { return s.publishing }

func (s *Site) SiteID() uuid.UUID { return s.desc.ID }

func (s *Site) Title() string { return s.desc.Title }

func (s *Site) Kind() string { return s.desc.Kind }

func (s *Site) URL() string { return s.client.BaseURL() }

func (s *Site) PageLayouts(ctx context.Context) ([]models.PageLayout, error) {
	return s.client.PageLayouts(ctx)
}

func (s *Site) LayoutPage(ctx context.Context, pageURL string) (*goquery.Document, error) {
	return s.client.GetPage(ctx, pageURL)
}

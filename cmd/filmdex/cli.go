package main

import (
	"context"
	"io"

	"github.com/filmdex/filmdex"
	"github.com/filmdex/filmdex/crawl"
	"github.com/filmdex/filmdex/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdout   io.Writer
	Stderr   io.Writer
	DB       *sqlite.DB
	Sites    filmdex.SiteService
	Releases filmdex.ReleaseService
	Sitemaps filmdex.SitemapService
	Crawler  *crawl.Crawler
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Verbose bool `short:"v" help:"Enable debug logging"`

	Add      AddCmd      `cmd:"" help:"Register a catalog site"`
	Crawl    CrawlCmd    `cmd:"" help:"Crawl a site's detail pages"`
	Sites    SitesCmd    `cmd:"" help:"List registered sites"`
	Releases ReleasesCmd `cmd:"" help:"List releases for a site"`
	Show     ShowCmd     `cmd:"" help:"Show one release with its link sections"`
	Delete   DeleteCmd   `cmd:"" help:"Delete a site and its releases"`
}

// AddCmd is the "add" subcommand.
type AddCmd struct {
	Name    string   `arg:"" help:"Site name"`
	URL     string   `arg:"" help:"Site base URL"`
	Preview bool     `short:"p" help:"Show discovered URLs without registering the site"`
	Filter  []string `short:"F" name:"filter" help:"Filter detail URLs by regex (repeatable)"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	Name        string  `arg:"" help:"Site name"`
	Concurrency int     `short:"c" default:"4" help:"Concurrent fetch limit"`
	Rate        float64 `short:"r" default:"1.0" help:"Requests per second per domain"`
	Browser     bool    `short:"b" help:"Fetch with headless Chrome instead of plain HTTP"`
}

// SitesCmd is the "sites" subcommand.
type SitesCmd struct{}

// ReleasesCmd is the "releases" subcommand.
type ReleasesCmd struct {
	Name  string `arg:"" help:"Site name"`
	Title string `short:"t" help:"Filter by title substring"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID string `arg:"" help:"Release ID"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	Name  string `arg:"" help:"Site name"`
	Force bool   `help:"Confirm deletion"`
}

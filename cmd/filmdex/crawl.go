package main

import (
	"fmt"

	"github.com/filmdex/filmdex"
	"github.com/filmdex/filmdex/crawl"
)

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
	sites, err := deps.Sites.FindSites(deps.Ctx, filmdex.SiteFilter{Name: &c.Name})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", filmdex.ErrorMessage(err))
		return err
	}
	if len(sites) == 0 {
		fmt.Fprintf(deps.Stderr, "error: site %q not found. Use 'filmdex sites' to see registered sites.\n", c.Name)
		return filmdex.Errorf(filmdex.ENOTFOUND, "site %q not found", c.Name)
	}
	site := sites[0]

	progress := func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "  Found %d pages\n", event.Total)
		case crawl.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n", event.URL, event.Error)
		case crawl.ProgressFinished:
			// Summary printed after crawl completes
		}
	}

	result, err := deps.Crawler.CrawlSite(deps.Ctx, site, progress)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error crawling: %v\n", err)
		return err
	}

	fmt.Fprintf(deps.Stdout, "  Saved %d releases (%d unchanged, %d failed)\n",
		result.Saved, result.Skipped, result.Failed)
	fmt.Fprintf(deps.Stdout, "  %d download links, %d unresolved\n",
		result.Links, result.Unresolved)
	return nil
}

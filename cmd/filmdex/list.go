package main

import (
	"fmt"

	"github.com/filmdex/filmdex"
)

// Run executes the sites command.
func (c *SitesCmd) Run(deps *Dependencies) error {
	sites, err := deps.Sites.FindSites(deps.Ctx, filmdex.SiteFilter{})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", filmdex.ErrorMessage(err))
		return err
	}

	if len(sites) == 0 {
		fmt.Fprintln(deps.Stdout, "No sites found. Use 'filmdex add' to register one.")
		return nil
	}

	for _, s := range sites {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s\n", s.ID, s.Name, s.BaseURL)
	}

	return nil
}

// Run executes the releases command.
func (c *ReleasesCmd) Run(deps *Dependencies) error {
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

	filter := filmdex.ReleaseFilter{SiteID: &site.ID}
	if c.Title != "" {
		filter.Title = &c.Title
	}

	releases, err := deps.Releases.FindReleases(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", filmdex.ErrorMessage(err))
		return err
	}

	if len(releases) == 0 {
		fmt.Fprintf(deps.Stdout, "No releases for %q. Use 'filmdex crawl %s' to crawl it.\n", c.Name, c.Name)
		return nil
	}

	for _, r := range releases {
		fmt.Fprintf(deps.Stdout, "%s  %s  %s\n", r.ID, r.FetchedAt.Format("2006-01-02"), r.Title)
	}

	return nil
}

package main

import (
	"fmt"

	"github.com/filmdex/filmdex"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return filmdex.Errorf(filmdex.EINVALID, "use --force to confirm deletion")
	}

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
	if err := deps.Sites.DeleteSite(deps.Ctx, site.ID); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", filmdex.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted site %q\n", site.Name)
	return nil
}

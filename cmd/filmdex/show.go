package main

import (
	"fmt"
	"strings"

	"github.com/filmdex/filmdex"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	release, err := deps.Releases.FindReleaseByID(deps.Ctx, c.ID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", filmdex.ErrorMessage(err))
		return err
	}

	fmt.Fprintln(deps.Stdout, release.Title)
	fmt.Fprintf(deps.Stdout, "  %s\n", release.SourceURL)
	printField(deps, "Year", release.Year)
	printField(deps, "Language", release.Language)
	printField(deps, "Quality", release.Quality)
	printField(deps, "Format", release.Format)
	if len(release.Tags) > 0 {
		printField(deps, "Tags", strings.Join(release.Tags, ", "))
	}

	if release.Synopsis != "" {
		fmt.Fprintf(deps.Stdout, "\n%s\n", release.Synopsis)
	}

	for _, section := range release.Sections {
		fmt.Fprintf(deps.Stdout, "\n%s\n", section.Heading)
		for _, group := range section.Groups {
			name := group.Name
			if ann := annotation(group.Quality, group.Size); ann != "" {
				name += " (" + ann + ")"
			}
			fmt.Fprintf(deps.Stdout, "  %s\n", name)
			for _, link := range group.Links {
				fmt.Fprintf(deps.Stdout, "    %-10s %s  %s\n", link.Type, link.Label, link.URL)
			}
		}
		for _, group := range section.EpisodeGroups {
			fmt.Fprintf(deps.Stdout, "  %s (%s)\n", group.Label, group.Type)
			for _, episode := range group.Episodes.Keys() {
				url, _ := group.Episodes.Get(episode)
				fmt.Fprintf(deps.Stdout, "    E%-3s %s\n", episode, url)
			}
		}
	}

	fmt.Fprintln(deps.Stdout)
	for _, count := range release.Stats.Counts {
		fmt.Fprintf(deps.Stdout, "  %s: %d\n", count.Type, count.Count)
	}
	if release.Stats.Unresolved > 0 {
		fmt.Fprintf(deps.Stdout, "  unresolved: %d\n", release.Stats.Unresolved)
	}

	return nil
}

func printField(deps *Dependencies, name, value string) {
	if value != "" {
		fmt.Fprintf(deps.Stdout, "  %-9s %s\n", name+":", value)
	}
}

func annotation(quality, size string) string {
	switch {
	case quality != "" && size != "":
		return quality + ", " + size
	case quality != "":
		return quality
	default:
		return size
	}
}

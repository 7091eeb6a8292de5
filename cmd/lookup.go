package cmd

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

// commandTimeout bounds a single command, including every page it walks
const commandTimeout = 2 * time.Minute

func commandContext(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, commandTimeout)
}

func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id < 0 {
		return 0, fmt.Errorf("invalid id %q: must be a non-negative integer", arg)
	}
	return id, nil
}

func parseIDs(args []string) ([]int, error) {
	ids := make([]int, 0, len(args))
	for _, arg := range args {
		id, err := parseID(arg)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// addPaginationFlags registers --page and --per-page on a listing command
func addPaginationFlags(cmd *cobra.Command) {
	cmd.Flags().Int("page", 1, "Page number (1-indexed)")
	cmd.Flags().Int("per-page", 50, "Items per page")
}

func paginationFlags(cmd *cobra.Command) (page, perPage int) {
	page, _ = cmd.Flags().GetInt("page")
	perPage, _ = cmd.Flags().GetInt("per-page")
	return page, perPage
}

var artistCmd = &cobra.Command{
	Use:   "artist <id>",
	Short: "Show an artist",
	Long: `Show an artist by Discogs id.

With --releases, list the artist's releases and masters instead. --all
walks every page of the listing.

Template fields follow the API: .Name, .RealName, .Profile, .Members,
.Aliases, and so on.`,
	Args: cobra.ExactArgs(1),
	RunE: runArtist,
}

var labelCmd = &cobra.Command{
	Use:   "label <id>",
	Short: "Show a label",
	Long: `Show a label by Discogs id, including its parent and sublabels.

With --releases, list the label's releases instead.`,
	Args: cobra.ExactArgs(1),
	RunE: runLabel,
}

var releaseCmd = &cobra.Command{
	Use:   "release <id>...",
	Short: "Show one or more releases",
	Long: `Show releases by Discogs id. Several ids are fetched in parallel and
printed in the order given.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runRelease,
}

var masterCmd = &cobra.Command{
	Use:   "master <id>",
	Short: "Show a master release",
	Long: `Show a master release by Discogs id.

With --versions, list every release grouped under the master.`,
	Args: cobra.ExactArgs(1),
	RunE: runMaster,
}

func init() {
	rootCmd.AddCommand(artistCmd, labelCmd, releaseCmd, masterCmd)

	artistCmd.Flags().Bool("releases", false, "List the artist's releases")
	artistCmd.Flags().Bool("all", false, "With --releases, fetch every page")
	addPaginationFlags(artistCmd)

	labelCmd.Flags().Bool("releases", false, "List the label's releases")
	addPaginationFlags(labelCmd)

	masterCmd.Flags().Bool("versions", false, "List the master's versions")
	addPaginationFlags(masterCmd)
}

func runArtist(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	client, err := newCatalog()
	if err != nil {
		return err
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	out := cmd.OutOrStdout()
	releases, _ := cmd.Flags().GetBool("releases")
	all, _ := cmd.Flags().GetBool("all")
	page, perPage := paginationFlags(cmd)

	switch {
	case releases && all:
		summaries, err := client.AllArtistReleases(ctx, id, perPage)
		if err != nil {
			return explain(err)
		}
		t := newTable("ID", "TYPE", "YEAR", "ARTIST", "TITLE", "FORMAT")
		for _, r := range summaries {
			t.add(strconv.Itoa(r.ID), r.Type, itoa(r.Year), r.Artist, r.Title, r.Format)
		}
		t.render(out)
		return nil

	case releases:
		listing, err := client.ArtistReleases(ctx, id, page, perPage)
		if err != nil {
			return explain(err)
		}
		return render(out, listing, func(w io.Writer) { printReleaseListing(w, listing) })

	default:
		artist, err := client.Artist(ctx, id)
		if err != nil {
			return explain(err)
		}
		return render(out, artist, func(w io.Writer) { printArtist(w, artist) })
	}
}

func runLabel(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	client, err := newCatalog()
	if err != nil {
		return err
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	out := cmd.OutOrStdout()
	if releases, _ := cmd.Flags().GetBool("releases"); releases {
		page, perPage := paginationFlags(cmd)
		listing, err := client.LabelReleases(ctx, id, page, perPage)
		if err != nil {
			return explain(err)
		}
		return render(out, listing, func(w io.Writer) { printReleaseListing(w, listing) })
	}

	label, err := client.Label(ctx, id)
	if err != nil {
		return explain(err)
	}
	return render(out, label, func(w io.Writer) { printLabel(w, label) })
}

func runRelease(cmd *cobra.Command, args []string) error {
	ids, err := parseIDs(args)
	if err != nil {
		return err
	}

	client, err := newCatalog()
	if err != nil {
		return err
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	releases, err := client.Releases(ctx, ids)
	if err != nil {
		return explain(err)
	}

	out := cmd.OutOrStdout()
	for i, release := range releases {
		if i > 0 && (cfg == nil || cfg.OutputFormat == "") {
			fmt.Fprintln(out)
		}
		if err := render(out, release, func(w io.Writer) { printRelease(w, release) }); err != nil {
			return err
		}
	}
	return nil
}

func runMaster(cmd *cobra.Command, args []string) error {
	id, err := parseID(args[0])
	if err != nil {
		return err
	}

	client, err := newCatalog()
	if err != nil {
		return err
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	out := cmd.OutOrStdout()
	if versions, _ := cmd.Flags().GetBool("versions"); versions {
		page, perPage := paginationFlags(cmd)
		listing, err := client.MasterVersions(ctx, id, page, perPage)
		if err != nil {
			return explain(err)
		}
		return render(out, listing, func(w io.Writer) { printVersionListing(w, listing) })
	}

	master, err := client.Master(ctx, id)
	if err != nil {
		return explain(err)
	}
	return render(out, master, func(w io.Writer) { printMaster(w, master) })
}

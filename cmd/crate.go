package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jfmyers9/crates/internal/crate"
)

var crateCmd = &cobra.Command{
	Use:   "crate",
	Short: "Manage your local crate of releases",
	Long: `The crate is a local SQLite collection of releases you picked. Entries
are stored with their full Discogs data and can be listed offline.

The database lives at crate_db in the config file
(default ~/.config/crates/crate.db).`,
}

var crateAddCmd = &cobra.Command{
	Use:   "add <release-id>...",
	Short: "Fetch releases and add them to the crate",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCrateAdd,
}

var crateListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List releases in the crate",
	Args:    cobra.NoArgs,
	RunE:    runCrateList,
}

var crateRemoveCmd = &cobra.Command{
	Use:     "rm <release-id>...",
	Aliases: []string{"remove"},
	Short:   "Remove releases from the crate",
	Args:    cobra.MinimumNArgs(1),
	RunE:    runCrateRemove,
}

var crateRefreshCmd = &cobra.Command{
	Use:   "refresh [release-id]...",
	Short: "Re-fetch releases in the crate from Discogs",
	Long:  `Re-fetch releases from Discogs and update the stored copies. With no ids, every release in the crate is refreshed.`,
	RunE:  runCrateRefresh,
}

func init() {
	rootCmd.AddCommand(crateCmd)
	crateCmd.AddCommand(crateAddCmd, crateListCmd, crateRemoveCmd, crateRefreshCmd)
}

func openCrate() (*crate.Crate, error) {
	if err := os.MkdirAll(filepath.Dir(cfg.CrateDB), 0755); err != nil {
		return nil, fmt.Errorf("failed to create crate directory: %w", err)
	}
	c, err := crate.Open(cfg.CrateDB)
	if err != nil {
		return nil, fmt.Errorf("failed to open crate: %w", err)
	}
	return c, nil
}

func runCrateAdd(cmd *cobra.Command, args []string) error {
	ids, err := parseIDs(args)
	if err != nil {
		return err
	}

	client, err := newCatalog()
	if err != nil {
		return err
	}

	c, err := openCrate()
	if err != nil {
		return err
	}
	defer c.Close()

	ctx, cancel := commandContext(cmd)
	defer cancel()

	releases, err := client.Releases(ctx, ids)
	if err != nil {
		return explain(err)
	}

	out := cmd.OutOrStdout()
	for _, release := range releases {
		if err := c.Add(ctx, release); err != nil {
			return err
		}
		logger.Debug().Int("release", release.ID).Msg("Added to crate")
		fmt.Fprintf(out, "✓ Added %d: %s - %s\n", release.ID, crate.ArtistNames(release), release.Title)
	}
	return nil
}

func runCrateList(cmd *cobra.Command, args []string) error {
	c, err := openCrate()
	if err != nil {
		return err
	}
	defer c.Close()

	ctx, cancel := commandContext(cmd)
	defer cancel()

	entries, err := c.List(ctx)
	if err != nil {
		return err
	}

	return printCrate(cmd.OutOrStdout(), entries)
}

func printCrate(out io.Writer, entries []crate.Entry) error {
	if cfg != nil && cfg.OutputFormat != "" {
		for _, e := range entries {
			line, err := formatRecord(cfg.OutputFormat, e)
			if err != nil {
				return fmt.Errorf("failed to format output: %w", err)
			}
			fmt.Fprintln(out, line)
		}
		return nil
	}

	if len(entries) == 0 {
		fmt.Fprintln(out, "Crate is empty. Add releases with 'crates crate add <id>'.")
		return nil
	}

	t := newTable("ID", "YEAR", "COUNTRY", "ARTIST", "TITLE", "ADDED")
	for _, e := range entries {
		t.add(strconv.Itoa(e.ID), itoa(e.Year), e.Country, e.Artists, e.Title, e.AddedAt.Format("2006-01-02"))
	}
	t.render(out)
	return nil
}

func runCrateRemove(cmd *cobra.Command, args []string) error {
	ids, err := parseIDs(args)
	if err != nil {
		return err
	}

	c, err := openCrate()
	if err != nil {
		return err
	}
	defer c.Close()

	ctx, cancel := commandContext(cmd)
	defer cancel()

	out := cmd.OutOrStdout()
	for _, id := range ids {
		if err := c.Remove(ctx, id); err != nil {
			return err
		}
		fmt.Fprintf(out, "✓ Removed %d\n", id)
	}
	return nil
}

func runCrateRefresh(cmd *cobra.Command, args []string) error {
	ids, err := parseIDs(args)
	if err != nil {
		return err
	}

	client, err := newCatalog()
	if err != nil {
		return err
	}

	c, err := openCrate()
	if err != nil {
		return err
	}
	defer c.Close()

	ctx, cancel := commandContext(cmd)
	defer cancel()

	if len(ids) == 0 {
		ids, err = crateIDs(ctx, c)
		if err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	failed := 0
	for _, id := range ids {
		e, err := c.Refresh(ctx, id, client.Fetch)
		if err != nil {
			failed++
			logger.Warn().Err(err).Int("release", id).Msg("Failed to refresh release")
			continue
		}
		fmt.Fprintf(out, "✓ Refreshed %d: %s - %s\n", e.ID, e.Artists, e.Title)
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d releases failed to refresh", failed, len(ids))
	}
	return nil
}

func crateIDs(ctx context.Context, c *crate.Crate) ([]int, error) {
	entries, err := c.List(ctx)
	if err != nil {
		return nil, err
	}
	ids := make([]int, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ID)
	}
	return ids, nil
}

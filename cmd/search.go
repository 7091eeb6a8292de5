package cmd

import (
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jfmyers9/crates/internal/catalog"
	"github.com/jfmyers9/crates/pkg/discogs"
)

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the Discogs database",
	Long: `Search the Discogs database. Discogs requires credentials for search;
run 'crates auth' first.

Examples:
  crates search nevermind --type release --year 1991
  crates search --artist "Aphex Twin" --format Vinyl --per-page 10`,
	RunE: runSearch,
}

// searchFlags maps flag names to the SearchParams field they fill
var searchFlags = []struct {
	name  string
	usage string
	field func(*catalog.SearchParams) *string
}{
	{"title", "Combined \"Artist - Title\" search", func(p *catalog.SearchParams) *string { return &p.Title }},
	{"release-title", "Release title", func(p *catalog.SearchParams) *string { return &p.ReleaseTitle }},
	{"credit", "Release credit", func(p *catalog.SearchParams) *string { return &p.Credit }},
	{"artist", "Artist name", func(p *catalog.SearchParams) *string { return &p.Artist }},
	{"anv", "Artist name variation", func(p *catalog.SearchParams) *string { return &p.ANV }},
	{"label", "Label name", func(p *catalog.SearchParams) *string { return &p.Label }},
	{"genre", "Genre", func(p *catalog.SearchParams) *string { return &p.Genre }},
	{"style", "Style", func(p *catalog.SearchParams) *string { return &p.Style }},
	{"country", "Release country", func(p *catalog.SearchParams) *string { return &p.Country }},
	{"year", "Release year", func(p *catalog.SearchParams) *string { return &p.Year }},
	{"format", "Format, e.g. Vinyl", func(p *catalog.SearchParams) *string { return &p.Format }},
	{"catno", "Catalog number", func(p *catalog.SearchParams) *string { return &p.Catno }},
	{"barcode", "Barcode", func(p *catalog.SearchParams) *string { return &p.Barcode }},
	{"track", "Track title", func(p *catalog.SearchParams) *string { return &p.Track }},
	{"submitter", "Submitter username", func(p *catalog.SearchParams) *string { return &p.Submitter }},
	{"contributor", "Contributor username", func(p *catalog.SearchParams) *string { return &p.Contributor }},
}

func init() {
	rootCmd.AddCommand(searchCmd)

	searchCmd.Flags().String("type", "", "Result type: release, master, artist or label")
	for _, f := range searchFlags {
		// --format is the global template flag; the search filter is --media
		name := f.name
		if name == "format" {
			name = "media"
		}
		searchCmd.Flags().String(name, "", f.usage)
	}
	addPaginationFlags(searchCmd)
}

// searchParams collects flags and arguments into SearchParams
func searchParams(cmd *cobra.Command, args []string) (catalog.SearchParams, error) {
	p := catalog.SearchParams{Query: strings.Join(args, " ")}

	if t, _ := cmd.Flags().GetString("type"); t != "" {
		st, err := discogs.ParseSearchType(t)
		if err != nil {
			return p, err
		}
		p.Type = st
	}

	for _, f := range searchFlags {
		name := f.name
		if name == "format" {
			name = "media"
		}
		v, _ := cmd.Flags().GetString(name)
		*f.field(&p) = v
	}

	if cmd.Flags().Changed("page") || cmd.Flags().Changed("per-page") {
		p.Page, p.PerPage = paginationFlags(cmd)
	}
	return p, nil
}

func runSearch(cmd *cobra.Command, args []string) error {
	params, err := searchParams(cmd, args)
	if err != nil {
		return err
	}

	client, err := newCatalog()
	if err != nil {
		return err
	}

	ctx, cancel := commandContext(cmd)
	defer cancel()

	results, err := client.Search(ctx, params)
	if err != nil {
		return explain(err)
	}
	return render(cmd.OutOrStdout(), results, func(w io.Writer) { printSearchResults(w, results) })
}

package cmd

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/template"

	"github.com/mattn/go-runewidth"

	"github.com/jfmyers9/crates/pkg/discogs"
)

// maxColumnWidth caps table columns so long titles don't wrap the terminal
const maxColumnWidth = 48

// formatRecord applies the template to a record
func formatRecord(templateStr string, data any) (string, error) {
	tmpl, err := template.New("output").Funcs(template.FuncMap{
		"join": strings.Join,
	}).Parse(templateStr)
	if err != nil {
		return "", fmt.Errorf("invalid template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("template execution failed: %w", err)
	}

	return buf.String(), nil
}

// render prints data through the configured template, or with fallback
// when no template is set
func render(w io.Writer, data any, fallback func(io.Writer)) error {
	if cfg != nil && cfg.OutputFormat != "" {
		out, err := formatRecord(cfg.OutputFormat, data)
		if err != nil {
			return fmt.Errorf("failed to format output: %w", err)
		}
		fmt.Fprintln(w, out)
		return nil
	}
	fallback(w)
	return nil
}

// padToWidth pads or truncates text to a fixed display width.
// Width is measured in display columns, accounting for Unicode characters.
// If width <= 0, returns text unchanged.
// If text is longer than width, truncates with "..." suffix.
func padToWidth(text string, width int) string {
	if width <= 0 {
		return text
	}

	const ellipsis = "..."
	current := runewidth.StringWidth(text)

	if current > width {
		if width <= len(ellipsis) {
			return ellipsis[:width]
		}
		text = runewidth.Truncate(text, width-len(ellipsis), "") + ellipsis
		current = runewidth.StringWidth(text)
	}

	// Wide runes can leave the truncated text a column short
	if current < width {
		text += strings.Repeat(" ", width-current)
	}
	return text
}

// table writes aligned columns. Widths are display widths, so CJK titles
// line up.
type table struct {
	headers []string
	rows    [][]string
}

func newTable(headers ...string) *table {
	return &table{headers: headers}
}

func (t *table) add(cells ...string) {
	t.rows = append(t.rows, cells)
}

func (t *table) widths() []int {
	widths := make([]int, len(t.headers))
	for _, row := range append([][]string{t.headers}, t.rows...) {
		for i, cell := range row {
			if i >= len(widths) {
				break
			}
			if w := runewidth.StringWidth(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}
	for i := range widths {
		if widths[i] > maxColumnWidth {
			widths[i] = maxColumnWidth
		}
	}
	return widths
}

func (t *table) render(w io.Writer) {
	widths := t.widths()
	for _, row := range append([][]string{t.headers}, t.rows...) {
		cells := make([]string, len(widths))
		for i := range widths {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			if i == len(widths)-1 {
				// No trailing padding on the last column
				if runewidth.StringWidth(cell) > widths[i] {
					cell = padToWidth(cell, widths[i])
				}
				cells[i] = cell
				continue
			}
			cells[i] = padToWidth(cell, widths[i])
		}
		fmt.Fprintln(w, strings.TrimRight(strings.Join(cells, "  "), " "))
	}
}

// fields prints "Label: value" lines, skipping empty values
func fields(w io.Writer, pairs ...string) {
	width := 0
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] != "" && runewidth.StringWidth(pairs[i]) > width {
			width = runewidth.StringWidth(pairs[i])
		}
	}
	for i := 0; i+1 < len(pairs); i += 2 {
		if pairs[i+1] == "" {
			continue
		}
		fmt.Fprintf(w, "%s  %s\n", padToWidth(pairs[i]+":", width+1), pairs[i+1])
	}
}

func itoa(n int) string {
	if n == 0 {
		return ""
	}
	return strconv.Itoa(n)
}

func names(artists []discogs.Artist) string {
	out := make([]string, 0, len(artists))
	for _, a := range artists {
		name := a.Name
		if a.ANV != "" {
			name = a.ANV
		}
		out = append(out, name)
	}
	return strings.Join(out, ", ")
}

func labelNames(labels []discogs.Label) string {
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		if l.Catno != "" {
			out = append(out, l.Name+" ("+l.Catno+")")
			continue
		}
		out = append(out, l.Name)
	}
	return strings.Join(out, ", ")
}

func formatNames(formats []discogs.ReleaseFormat) string {
	out := make([]string, 0, len(formats))
	for _, f := range formats {
		s := f.Name
		if len(f.Descriptions) > 0 {
			s += " (" + strings.Join(f.Descriptions, ", ") + ")"
		}
		out = append(out, s)
	}
	return strings.Join(out, "; ")
}

func pageFooter(w io.Writer, p discogs.Pagination) {
	fmt.Fprintf(w, "\npage %d of %d (%d items)\n", p.Page, p.Pages, p.Items)
}

func printArtist(w io.Writer, a *discogs.Artist) {
	fields(w,
		"ID", strconv.Itoa(a.ID),
		"Name", a.Name,
		"Real name", a.RealName,
		"Profile", a.Profile,
		"Members", names(a.Members),
		"Aliases", names(a.Aliases),
		"Groups", names(a.Groups),
		"Quality", string(a.DataQuality),
		"URL", a.URI,
	)
}

func printLabel(w io.Writer, l *discogs.Label) {
	parent := ""
	if l.ParentLabel != nil {
		parent = l.ParentLabel.Name
	}
	sub := make([]string, 0, len(l.Sublabels))
	for _, s := range l.Sublabels {
		sub = append(sub, s.Name)
	}
	fields(w,
		"ID", strconv.Itoa(l.ID),
		"Name", l.Name,
		"Profile", l.Profile,
		"Contact", l.ContactInfo,
		"Parent", parent,
		"Sublabels", strings.Join(sub, ", "),
		"Quality", string(l.DataQuality),
		"URL", l.URI,
	)
}

func printRelease(w io.Writer, r *discogs.Release) {
	fields(w,
		"ID", strconv.Itoa(r.ID),
		"Title", r.Title,
		"Artists", names(r.Artists),
		"Labels", labelNames(r.Labels),
		"Format", formatNames(r.Formats),
		"Country", r.Country,
		"Released", r.Released,
		"Genres", strings.Join(r.Genres, ", "),
		"Styles", strings.Join(r.Styles, ", "),
		"Status", string(r.Status),
		"Quality", string(r.DataQuality),
		"Master", itoa(r.MasterID),
		"URL", r.URI,
	)
	printTracklist(w, r.Tracklist)
}

func printMaster(w io.Writer, m *discogs.Master) {
	fields(w,
		"ID", strconv.Itoa(m.ID),
		"Title", m.Title,
		"Artists", names(m.Artists),
		"Year", itoa(m.Year),
		"Genres", strings.Join(m.Genres, ", "),
		"Styles", strings.Join(m.Styles, ", "),
		"Main release", itoa(m.MainRelease),
		"Quality", string(m.DataQuality),
		"URL", m.URI,
	)
	printTracklist(w, m.Tracklist)
}

func printTracklist(w io.Writer, tracks []discogs.Track) {
	if len(tracks) == 0 {
		return
	}
	fmt.Fprintln(w)
	t := newTable("POS", "TITLE", "DURATION")
	var add func(tracks []discogs.Track, indent string)
	add = func(tracks []discogs.Track, indent string) {
		for _, tr := range tracks {
			t.add(tr.Position, indent+tr.Title, tr.Duration)
			add(tr.SubTracks, indent+"  ")
		}
	}
	add(tracks, "")
	t.render(w)
}

func printReleaseListing(w io.Writer, l *discogs.ReleaseListing) {
	t := newTable("ID", "TYPE", "YEAR", "ARTIST", "TITLE", "FORMAT")
	for _, r := range l.Releases {
		t.add(strconv.Itoa(r.ID), r.Type, itoa(r.Year), r.Artist, r.Title, r.Format)
	}
	t.render(w)
	pageFooter(w, l.Pagination)
}

func printVersionListing(w io.Writer, l *discogs.VersionListing) {
	t := newTable("ID", "RELEASED", "COUNTRY", "LABEL", "CATNO", "FORMAT", "TITLE")
	for _, v := range l.Versions {
		t.add(strconv.Itoa(v.ID), v.Released, v.Country, v.Label, v.Catno, v.Format, v.Title)
	}
	t.render(w)
	pageFooter(w, l.Pagination)
}

func printSearchResults(w io.Writer, s *discogs.SearchResults) {
	t := newTable("ID", "TYPE", "YEAR", "TITLE", "FORMAT")
	for _, r := range s.Results {
		t.add(strconv.Itoa(r.ID), r.Type, r.Year, r.Title, strings.Join(r.Format, ", "))
	}
	t.render(w)
	pageFooter(w, s.Pagination)
}

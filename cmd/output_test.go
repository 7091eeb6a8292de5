package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/mattn/go-runewidth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jfmyers9/crates/pkg/discogs"
)

func TestPadToWidth(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		width    int
		expected string
	}{
		{
			name:     "no padding when width is 0",
			input:    "Hello",
			width:    0,
			expected: "Hello",
		},
		{
			name:     "no padding when width is negative",
			input:    "Hello",
			width:    -1,
			expected: "Hello",
		},
		{
			name:     "pad short text with spaces",
			input:    "Hi",
			width:    10,
			expected: "Hi        ",
		},
		{
			name:     "exact width unchanged",
			input:    "Hello",
			width:    5,
			expected: "Hello",
		},
		{
			name:     "truncate long text with ellipsis",
			input:    "This is a very long string that needs truncation",
			width:    20,
			expected: "This is a very lo...",
		},
		{
			name:     "handle emoji correctly",
			input:    "🎵 Music",
			width:    15,
			expected: "🎵 Music       ", // emoji is 2 chars wide, so 8 total + 7 spaces
		},
		{
			name:     "truncate emoji text",
			input:    "🎵 This is a very long song title",
			width:    15,
			expected: "🎵 This is a...",
		},
		{
			name:     "handle unicode characters",
			input:    "日本語",
			width:    10,
			expected: "日本語    ",
		},
		{
			name:     "truncate unicode text",
			input:    "日本語とても長いテキスト",
			width:    10,
			expected: "日本語... ", // 日本語 is 6 chars, ... is 3, need 1 space
		},
		{
			name:     "empty string padding",
			input:    "",
			width:    5,
			expected: "     ",
		},
		{
			name:     "single character padding",
			input:    "A",
			width:    5,
			expected: "A    ",
		},
		{
			name:     "minimum width for truncation",
			input:    "Hello",
			width:    3,
			expected: "...",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := padToWidth(tt.input, tt.width)
			if result != tt.expected {
				t.Errorf("padToWidth(%q, %d) = %q, expected %q",
					tt.input, tt.width, result, tt.expected)
			}

			// Verify the result has the expected display width (if width > 0)
			if tt.width > 0 {
				resultWidth := runewidth.StringWidth(result)
				if resultWidth != tt.width {
					t.Errorf("padToWidth(%q, %d) produced width %d, expected %d",
						tt.input, tt.width, resultWidth, tt.width)
				}
			}
		})
	}
}

func TestFormatRecord(t *testing.T) {
	release := &discogs.Release{
		ID:     1,
		Title:  "Selected Ambient Works 85-92",
		Genres: []string{"Electronic", "Ambient"},
		Artists: []discogs.Artist{
			{Name: "Aphex Twin"},
		},
	}

	out, err := formatRecord(`{{(index .Artists 0).Name}} - {{.Title}} [{{join .Genres ", "}}]`, release)
	require.NoError(t, err)
	assert.Equal(t, "Aphex Twin - Selected Ambient Works 85-92 [Electronic, Ambient]", out)

	_, err = formatRecord("{{.Title", release)
	assert.ErrorContains(t, err, "invalid template")

	_, err = formatRecord("{{.Missing}}", release)
	assert.ErrorContains(t, err, "template execution failed")
}

func TestTableRender(t *testing.T) {
	tbl := newTable("ID", "TITLE", "YEAR")
	tbl.add("1", "日本語", "1991")
	tbl.add("22", "A", "")

	var buf bytes.Buffer
	tbl.render(&buf)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "ID  TITLE   YEAR", lines[0])
	assert.Equal(t, "1   日本語  1991", lines[1])
	assert.Equal(t, "22  A", lines[2])
}

func TestTableTruncatesWideColumns(t *testing.T) {
	tbl := newTable("TITLE", "ID")
	tbl.add(strings.Repeat("x", maxColumnWidth+10), "1")

	var buf bytes.Buffer
	tbl.render(&buf)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 2)
	assert.True(t, strings.HasSuffix(lines[1], "...  1"), lines[1])
	assert.Equal(t, maxColumnWidth+3, runewidth.StringWidth(lines[1]))
}

func TestFields(t *testing.T) {
	var buf bytes.Buffer
	fields(&buf, "ID", "7", "Real name", "", "Name", "Orbital")

	assert.Equal(t, "ID:    7\nName:  Orbital\n", buf.String())
}

func TestNames(t *testing.T) {
	artists := []discogs.Artist{{Name: "Aphex Twin", ANV: "AFX"}, {Name: "Squarepusher"}}
	assert.Equal(t, "AFX, Squarepusher", names(artists))
	assert.Equal(t, "", names(nil))
}

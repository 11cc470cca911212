package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"github.com/rshade/artgrid/internal/artwork"
	"github.com/rshade/artgrid/internal/config"
	"github.com/rshade/artgrid/internal/pagination"
	"github.com/rshade/artgrid/internal/selection"
	"github.com/rshade/artgrid/internal/tui"
)

// Table layout.
const (
	tabwriterPadding = 2
	colWidthTitle    = 40
	colWidthOrigin   = 18
	colWidthArtist   = 32
)

// PageOutput is the JSON shape of one page.
type PageOutput struct {
	Meta    pagination.Meta   `json:"meta"`
	Records []artwork.Artwork `json:"records"`
}

// SelectionOutput is the JSON shape of a selection result.
type SelectionOutput struct {
	Target       int               `json:"target"`
	Selected     int               `json:"selected"`
	StartPage    int               `json:"start_page"`
	PagesFetched []int             `json:"pages_fetched"`
	Stop         string            `json:"stop"`
	Error        string            `json:"error,omitempty"`
	Records      []artwork.Artwork `json:"records"`
}

func newSelectionOutput(r selection.Result) SelectionOutput {
	out := SelectionOutput{
		Target:       r.Target,
		Selected:     r.Len(),
		StartPage:    r.StartPage,
		PagesFetched: r.PagesFetched,
		Stop:         r.Stop.String(),
		Records:      r.Records,
	}
	if r.Err != nil {
		out.Error = r.Err.Error()
	}
	if out.PagesFetched == nil {
		out.PagesFetched = []int{}
	}
	if out.Records == nil {
		out.Records = []artwork.Artwork{}
	}
	return out
}

// renderPage dispatches to the renderer for format.
func renderPage(w io.Writer, format string, state pagination.State) error {
	records := state.Records
	if records == nil {
		records = []artwork.Artwork{}
	}

	switch format {
	case config.OutputTable:
		if err := renderRecordsTable(w, records); err != nil {
			return err
		}
		return renderPageFooter(w, state.Meta())
	case config.OutputJSON:
		return renderJSON(w, PageOutput{Meta: state.Meta(), Records: records})
	case config.OutputNDJSON:
		return renderNDJSON(w, records)
	default:
		return unsupportedFormat(format)
	}
}

// renderSelection dispatches to the renderer for format.
func renderSelection(w io.Writer, format string, r selection.Result) error {
	switch format {
	case config.OutputTable:
		if err := renderRecordsTable(w, r.Records); err != nil {
			return err
		}
		_, err := fmt.Fprintf(w, "\nSelected %s of %s rows starting at page %d (%s)\n",
			tui.FormatCount(r.Len()), tui.FormatCount(r.Target), r.StartPage, r.Stop)
		return err
	case config.OutputJSON:
		return renderJSON(w, newSelectionOutput(r))
	case config.OutputNDJSON:
		return renderNDJSON(w, r.Records)
	default:
		return unsupportedFormat(format)
	}
}

func unsupportedFormat(format string) error {
	return fmt.Errorf("unsupported output format: %s (supported: table, json, ndjson)", format)
}

// renderRecordsTable writes records as an aligned text table.
func renderRecordsTable(w io.Writer, records []artwork.Artwork) error {
	tw := tabwriter.NewWriter(w, 0, 0, tabwriterPadding, ' ', 0)

	if _, err := fmt.Fprintln(tw, "ID\tTITLE\tORIGIN\tARTIST\tDATES"); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}
	if _, err := fmt.Fprintln(tw, "--\t-----\t------\t------\t-----"); err != nil {
		return fmt.Errorf("writing separator: %w", err)
	}

	for _, a := range records {
		dates := a.DateRange()
		if dates == "" {
			dates = "-"
		}
		if _, err := fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			strconv.Itoa(a.ID),
			orDash(tui.Truncate(a.Title, colWidthTitle)),
			orDash(tui.Truncate(a.PlaceOfOrigin, colWidthOrigin)),
			orDash(tui.Truncate(a.ArtistDisplay, colWidthArtist)),
			dates,
		); err != nil {
			return fmt.Errorf("writing row: %w", err)
		}
	}
	return tw.Flush()
}

func renderPageFooter(w io.Writer, meta pagination.Meta) error {
	_, err := fmt.Fprintf(w, "\nPage %s of %s · rows %s-%s of %s\n",
		tui.FormatCount(meta.CurrentPage), tui.FormatCount(meta.TotalPages),
		tui.FormatCount(meta.FirstRow), tui.FormatCount(meta.LastRow), tui.FormatCount(meta.TotalItems))
	return err
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func renderJSON(w io.Writer, v any) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("encoding JSON: %w", err)
	}
	return nil
}

func renderNDJSON(w io.Writer, records []artwork.Artwork) error {
	for _, a := range records {
		data, err := json.Marshal(a)
		if err != nil {
			return fmt.Errorf("marshaling record: %w", err)
		}
		if _, err = fmt.Fprintf(w, "%s\n", data); err != nil {
			return fmt.Errorf("writing NDJSON line: %w", err)
		}
	}
	return nil
}

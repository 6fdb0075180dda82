package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/evcraddock/museum-visit/internal/web"
)

// printJSON marshals v as indented JSON and writes it to out.
func printJSON(out io.Writer, v interface{}) error {
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// printPageTable prints the screens and the number of ways out of each.
func printPageTable(out io.Writer, resp *web.PagesResponse) error {
	if len(resp.Pages) == 0 {
		_, err := fmt.Fprintln(out, "No pages found.")
		return err
	}

	exits := make(map[string]int)
	for _, e := range resp.Edges {
		exits[string(e.From)]++
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintln(w, "PAGE\tTITLE\tSIGNED IN\tEXITS"); err != nil {
		return fmt.Errorf("writing table header: %w", err)
	}
	if _, err := fmt.Fprintln(w, "----\t-----\t---------\t-----"); err != nil {
		return fmt.Errorf("writing table separator: %w", err)
	}

	for _, p := range resp.Pages {
		if _, err := fmt.Fprintf(w, "%s\t%s\t%s\t%d\n",
			p.Page, p.Title, yesNo(p.Authenticated), exits[string(p.Page)]); err != nil {
			return fmt.Errorf("writing table row: %w", err)
		}
	}

	if err := w.Flush(); err != nil {
		return fmt.Errorf("flushing table: %w", err)
	}

	_, err := fmt.Fprintf(out, "\nTotal: %d pages, %d edges\n", len(resp.Pages), len(resp.Edges))
	return err
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

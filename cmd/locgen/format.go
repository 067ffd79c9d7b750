package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fwojciec/locgen"
)

// sourceElements is the JSON shape of one source when several are printed.
type sourceElements struct {
	Source   string                `json:"source"`
	Elements []*locgen.ElementInfo `json:"elements"`
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	return enc.Encode(v)
}

// writeElements prints one block per element with its locators aligned in
// columns.
func writeElements(w io.Writer, elems []*locgen.ElementInfo) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for i, el := range elems {
		if i > 0 {
			fmt.Fprintln(tw)
		}
		fmt.Fprintf(tw, "%s\n", el.Key)
		fmt.Fprintf(tw, "  tag:        %s\n", el.TagName)
		if el.ID != "" {
			fmt.Fprintf(tw, "  id:         %s\n", el.ID)
		}
		if el.Name != "" {
			fmt.Fprintf(tw, "  name:       %s\n", el.Name)
		}
		if len(el.Classes) > 0 {
			fmt.Fprintf(tw, "  classes:    %s\n", strings.Join(el.Classes, " "))
		}
		if el.TextContentSample != "" {
			fmt.Fprintf(tw, "  text:       %q\n", el.TextContentSample)
		}
		if len(el.Attributes) > 0 {
			attrs := make([]string, len(el.Attributes))
			for i, a := range el.Attributes {
				attrs[i] = fmt.Sprintf("%s=%q", a.Name, a.Value)
			}
			fmt.Fprintf(tw, "  attributes: %s\n", strings.Join(attrs, " "))
		}
		fmt.Fprintln(tw, "  locators:")
		for _, loc := range el.Locators {
			fmt.Fprintf(tw, "    %s\t%s\t%s\n", loc.Type, loc.Value, loc.Description)
		}
	}
	return tw.Flush()
}

func writeRuns(w io.Writer, runs []*locgen.Run) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tCREATED\tELEMENTS\tSOURCE")
	for _, r := range runs {
		fmt.Fprintf(tw, "%s\t%s\t%d\t%s\n", r.ID, r.CreatedAt.Format("2006-01-02 15:04:05"), r.ElementCount, r.Source)
	}
	return tw.Flush()
}

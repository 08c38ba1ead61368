package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/codalotl/retransdiff/internal/diff"
	"github.com/codalotl/retransdiff/internal/hunk"
)

type diffOutput struct {
	Lang        string         `json:"lang"`
	Granularity string         `json:"granularity"`
	Segments    []diff.Segment `json:"segments"`
	Elements    []hunk.Element `json:"elements"`
	HunkCount   int            `json:"hunk_count"`
	Stats       diff.Stats     `json:"stats"`
}

func (a *app) diffCommand() *cobra.Command {
	var (
		cf       compareFlags
		color    string
		table    bool
		inline   bool
		asJSON   bool
		colWidth int
	)
	cmd := &cobra.Command{
		Use:   "diff ORIGINAL RETRANSLATED",
		Short: "Show the numbered hunks between a text and its retranslation",
		Long: `Show the numbered hunks between a text and its retranslation.

ORIGINAL and RETRANSLATED are file paths; "-" reads stdin. Hunk numbers are the indices accepted by "rebuild --revert".`,
		Args: exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if table && inline {
				return usageErrorf("--table and --inline are mutually exclusive")
			}
			c, err := a.compare(cmd, &cf, args)
			if err != nil {
				return err
			}

			if asJSON {
				out := diffOutput{
					Lang:        c.lang,
					Granularity: c.granularity.String(),
					Segments:    c.segments,
					Elements:    c.elements,
					HunkCount:   hunk.Count(c.elements),
					Stats:       diff.ComputeStats(c.segments),
				}
				if out.Segments == nil {
					out.Segments = []diff.Segment{}
				}
				if out.Elements == nil {
					out.Elements = []hunk.Element{}
				}
				enc := json.NewEncoder(a.out)
				enc.SetIndent("", "  ")
				return enc.Encode(out)
			}

			mode := color
			if mode == "" {
				mode = a.cfg.Color
			}
			useColor, err := a.useColor(mode)
			if err != nil {
				return err
			}
			opts := hunk.RenderOptions{Color: useColor, ColumnWidth: colWidth}

			var body string
			switch {
			case table:
				body = hunk.RenderTable(c.elements, nil, opts)
			case inline:
				body = diff.RenderInline(c.segments, useColor)
			default:
				body = hunk.RenderAnnotated(c.elements, nil, opts)
			}
			fmt.Fprint(a.out, withNewline(body))
			fmt.Fprintln(a.out, formatStats(diff.ComputeStats(c.segments)))
			return nil
		},
	}
	cf.register(cmd)
	cmd.Flags().StringVar(&color, "color", "", "auto, always, or never (default: color setting)")
	cmd.Flags().BoolVar(&table, "table", false, "show one row per hunk instead of the annotated text")
	cmd.Flags().BoolVar(&inline, "inline", false, "show the inline diff without hunk numbers")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print segments, elements, and stats as JSON")
	cmd.Flags().IntVar(&colWidth, "width", 0, "max display width of table text columns")
	return cmd
}

func formatStats(s diff.Stats) string {
	if !s.Changed() {
		return "no changes"
	}
	noun := "hunks"
	if s.Changes == 1 {
		noun = "hunk"
	}
	return fmt.Sprintf("%d %s: -%d +%d runes, %d unchanged", s.Changes, noun, s.RemovedRunes, s.AddedRunes, s.EqualRunes)
}

func withNewline(s string) string {
	if s == "" || strings.HasSuffix(s, "\n") {
		return s
	}
	return s + "\n"
}

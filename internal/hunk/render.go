package hunk

import (
	"fmt"
	"strings"

	"github.com/codalotl/retransdiff/internal/diff"
	"github.com/mattn/go-runewidth"
)

// RenderOptions controls RenderAnnotated and RenderTable.
type RenderOptions struct {
	Color       bool // ANSI colors for terminals.
	ColumnWidth int  // Max display width of the text columns in RenderTable. Defaults to 32.
}

const defaultColumnWidth = 32

// RenderAnnotated renders elements inline, labelling each hunk with its index. A kept hunk is shown as "#i[-old-]{+new+}"; a reverted hunk is labelled "#i<" and shows the same two
// sides, so the caller can see what the revert restores. With color, hunk labels are dimmed and the side that will be emitted by RebuildText is highlighted while the other is dimmed.
func RenderAnnotated(elements []Element, reverted RevertSet, opts RenderOptions) string {
	var b strings.Builder
	for _, el := range elements {
		if el.Kind == ElementEqual {
			b.WriteString(el.Text)
			continue
		}
		if el.Hunk == nil {
			continue
		}
		h := el.Hunk
		isReverted := reverted.Has(h.Index)

		label := fmt.Sprintf("#%d", h.Index)
		if isReverted {
			label += "<"
		}
		if opts.Color {
			b.WriteString(diff.ColorDim + label + diff.ColorReset)
		} else {
			b.WriteString(label)
		}

		oldText, newText := h.RemovedText(), h.AddedText()
		if !opts.Color {
			if oldText != "" {
				diff.WriteRemoved(&b, oldText, false)
			}
			if newText != "" {
				diff.WriteAdded(&b, newText, false)
			}
			continue
		}

		// Color: highlight the side that survives the rebuild.
		if oldText != "" {
			if isReverted {
				diff.WriteRemoved(&b, oldText, true)
			} else {
				b.WriteString(diff.ColorDim + oldText + diff.ColorReset)
			}
		}
		if newText != "" {
			if isReverted {
				b.WriteString(diff.ColorDim + newText + diff.ColorReset)
			} else {
				diff.WriteAdded(&b, newText, true)
			}
		}
	}
	return b.String()
}

// RenderTable renders one row per hunk: index, op, state (kept/reverted), original wording, and new wording. Text columns are cut to opts.ColumnWidth display cells (East Asian wide
// characters count as two) and padded so columns line up. Newlines and tabs in hunk text are shown as \n and \t.
//
// If elements has no hunks, the result is "no changes".
func RenderTable(elements []Element, reverted RevertSet, opts RenderOptions) string {
	hunks := Hunks(elements)
	if len(hunks) == 0 {
		return "no changes"
	}

	width := opts.ColumnWidth
	if width <= 0 {
		width = defaultColumnWidth
	}
	cond := runewidth.NewCondition()
	cond.EastAsianWidth = false
	cond.StrictEmojiNeutral = true

	cell := func(s string) string {
		s = escapeControl(s)
		s = cond.Truncate(s, width, "…")
		return cond.FillRight(s, width)
	}

	idxWidth := len(fmt.Sprintf("#%d", hunks[len(hunks)-1].Index))
	var rows []string
	header := fmt.Sprintf("%-*s  %-7s  %-8s  %s  %s", idxWidth, "#", "op", "state", cond.FillRight("original", width), "retranslated")
	if opts.Color {
		header = diff.ColorCyanBold + header + diff.ColorReset
	}
	rows = append(rows, strings.TrimRight(header, " "))

	for _, h := range hunks {
		state := "kept"
		if reverted.Has(h.Index) {
			state = "reverted"
		}
		oldCell, newCell := cell(h.RemovedText()), cell(h.AddedText())
		if opts.Color {
			oldCell = diff.ColorBlackFG + diff.ColorPinkSpan + oldCell + diff.ColorReset
			newCell = diff.ColorBlackFG + diff.ColorGreenSpan + newCell + diff.ColorReset
		}
		row := fmt.Sprintf("%-*s  %-7s  %-8s  %s  %s", idxWidth, fmt.Sprintf("#%d", h.Index), h.Op(), state, oldCell, newCell)
		rows = append(rows, strings.TrimRight(row, " "))
	}
	return strings.Join(rows, "\n")
}

func escapeControl(s string) string {
	if !strings.ContainsAny(s, "\n\r\t") {
		return s
	}
	r := strings.NewReplacer("\n", `\n`, "\r", `\r`, "\t", `\t`)
	return r.Replace(s)
}

package cli

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"
	"github.com/spf13/cobra"

	"github.com/codalotl/retransdiff/internal/store"
)

// historyColumnWidth is the display width of each text column in history listings.
const historyColumnWidth = 30

func (a *app) historyCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List, search, and delete saved translations",
	}

	var asJSON bool
	list := &cobra.Command{
		Use:   "list",
		Short: "List saved translations, newest first",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(cmd.Context()); err != nil {
				return err
			}
			items, err := a.store.ListHistory(cmd.Context())
			if err != nil {
				return err
			}
			return a.printHistory(items, asJSON)
		},
	}
	list.Flags().BoolVar(&asJSON, "json", false, "print as JSON")

	var searchJSON bool
	search := &cobra.Command{
		Use:   "search KEYWORD",
		Short: "List saved translations whose original or translated text contains KEYWORD",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(cmd.Context()); err != nil {
				return err
			}
			items, err := a.store.SearchHistory(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return a.printHistory(items, searchJSON)
		},
	}
	search.Flags().BoolVar(&searchJSON, "json", false, "print as JSON")

	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete one saved translation",
		Args:  exactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseInt(args[0], 10, 64)
			if err != nil {
				return usageErrorf("invalid history id %q", args[0])
			}
			if err := a.load(cmd.Context()); err != nil {
				return err
			}
			deleted, err := a.store.DeleteHistory(cmd.Context(), id)
			if err != nil {
				return err
			}
			if !deleted {
				return fmt.Errorf("history #%d: %w", id, store.ErrNotFound)
			}
			fmt.Fprintf(a.out, "deleted history #%d\n", id)
			return nil
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear",
		Short: "Delete every saved translation",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.load(cmd.Context()); err != nil {
				return err
			}
			if err := a.store.DeleteAllHistory(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "deleted all history")
			return nil
		},
	}

	cmd.AddCommand(list, search, del, clearCmd)
	return cmd
}

func (a *app) printHistory(items []store.HistoryItem, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(a.out)
		enc.SetIndent("", "  ")
		return enc.Encode(items)
	}
	if len(items) == 0 {
		fmt.Fprintln(a.out, "no history")
		return nil
	}
	idWidth := len(strconv.FormatInt(items[0].ID, 10)) + 1
	for _, it := range items {
		line := fmt.Sprintf("%-*s  %s  %s>%s  %s  %s",
			idWidth, "#"+strconv.FormatInt(it.ID, 10),
			it.CreatedAt.Format("2006-01-02 15:04"),
			it.SourceLang, it.TargetLang,
			historyCell(it.OriginalText),
			historyCell(it.TranslatedText),
		)
		fmt.Fprintln(a.out, strings.TrimRight(line, " "))
	}
	return nil
}

func historyCell(s string) string {
	s = strings.Join(strings.Fields(s), " ")
	return runewidth.FillRight(runewidth.Truncate(s, historyColumnWidth, "…"), historyColumnWidth)
}

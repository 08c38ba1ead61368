package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/codalotl/retransdiff/internal/clipboard"
	"github.com/codalotl/retransdiff/internal/hunk"
	"github.com/codalotl/retransdiff/internal/store"
)

var clipboardWrite = clipboard.Write

func (a *app) rebuildCommand() *cobra.Command {
	var (
		cf          compareFlags
		revert      string
		all         bool
		save        bool
		toClipboard bool
	)
	cmd := &cobra.Command{
		Use:   "rebuild ORIGINAL RETRANSLATED",
		Short: "Print the retranslation with selected hunks reverted to the original wording",
		Long: `Print the retranslation with selected hunks reverted to the original wording.

--revert takes hunk indices as shown by "diff", as a comma-separated list of numbers and ranges (ex: 0,2-4). Indices that name no hunk are reported and ignored.`,
		Args: exactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if all && revert != "" {
				return usageErrorf("--all and --revert are mutually exclusive")
			}
			set, err := hunk.ParseRevertSet(revert)
			if err != nil {
				return usageError{err: err}
			}

			c, err := a.compare(cmd, &cf, args)
			if err != nil {
				return err
			}

			review := hunk.NewReviewFromElements(c.elements)
			if all {
				review.RevertAll()
			} else {
				review.Apply(set)
			}
			applied := review.Reverted()
			for _, i := range set.Sorted() {
				if !applied.Has(i) {
					fmt.Fprintf(a.err, "warning: no hunk #%d (diff has %d)\n", i, review.Len())
				}
			}

			text := review.Text()
			fmt.Fprint(a.out, text)

			if toClipboard {
				if err := clipboardWrite(cmd.Context(), text); err != nil {
					return err
				}
				fmt.Fprintln(a.err, "copied to clipboard")
			}

			if save {
				item, err := a.store.CreateHistory(cmd.Context(), store.NewHistory{
					OriginalText:   c.original,
					TranslatedText: text,
					SourceLang:     c.lang,
					TargetLang:     c.lang,
				})
				if err != nil {
					return err
				}
				a.logger.Info().Int64("history_id", item.ID).Str("reverted", applied.String()).Msg("rebuild saved")
				fmt.Fprintf(a.err, "saved as history #%d\n", item.ID)
			}
			return nil
		},
	}
	cf.register(cmd)
	cmd.Flags().StringVar(&revert, "revert", "", "hunk indices to revert (ex: 0,2-4)")
	cmd.Flags().BoolVar(&all, "all", false, "revert every hunk")
	cmd.Flags().BoolVar(&save, "save", false, "record the original and rebuilt text in history")
	cmd.Flags().BoolVar(&toClipboard, "copy", false, "also copy the rebuilt text to the clipboard")
	return cmd
}

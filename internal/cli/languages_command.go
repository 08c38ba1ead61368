package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/codalotl/retransdiff/internal/segmenter"
)

func (a *app) languagesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "languages",
		Short: "List supported language codes and their default diff granularity",
		Args:  noArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, l := range segmenter.Languages() {
				fmt.Fprintf(a.out, "%-8s %-12s %s\n", l.Code, l.Name, segmenter.GranularityFor(l.Code))
			}
			return nil
		},
	}
}

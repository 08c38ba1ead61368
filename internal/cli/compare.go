package cli

import (
	"github.com/spf13/cobra"

	"github.com/codalotl/retransdiff/internal/diff"
	"github.com/codalotl/retransdiff/internal/hunk"
	"github.com/codalotl/retransdiff/internal/segmenter"
)

// compareFlags are shared by diff and rebuild.
type compareFlags struct {
	lang        string
	granularity string
}

func (f *compareFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.lang, "lang", "", "language code of both texts (default: default_lang setting)")
	cmd.Flags().StringVar(&f.granularity, "granularity", "", "auto, word, rune, or grapheme (default: granularity setting)")
}

type comparison struct {
	original     string
	retranslated string
	lang         string
	granularity  segmenter.Granularity
	segments     []diff.Segment
	elements     []hunk.Element
}

// compare loads config, reads ORIGINAL and RETRANSLATED from args, and diffs them.
func (a *app) compare(cmd *cobra.Command, f *compareFlags, args []string) (*comparison, error) {
	if err := a.load(cmd.Context()); err != nil {
		return nil, err
	}
	texts, err := a.readInputs(args[0], args[1])
	if err != nil {
		return nil, err
	}

	lang := segmenter.Canonicalize(f.lang)
	if lang == "" {
		lang = a.cfg.DefaultLang
	}
	name := f.granularity
	if name == "" {
		name = a.cfg.Granularity
	}
	g, err := segmenter.Resolve(name, lang)
	if err != nil {
		return nil, usageError{err: err}
	}

	segs := diff.ComputeDiffGranularity(texts[0], texts[1], g)
	a.logger.Debug().Str("lang", lang).Stringer("granularity", g).Int("segments", len(segs)).Msg("diff computed")
	return &comparison{
		original:     texts[0],
		retranslated: texts[1],
		lang:         lang,
		granularity:  g,
		segments:     segs,
		elements:     hunk.GroupIntoElements(segs),
	}, nil
}

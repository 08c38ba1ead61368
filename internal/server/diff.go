package server

import (
	"net/http"

	"github.com/codalotl/retransdiff/internal/diff"
	"github.com/codalotl/retransdiff/internal/hunk"
	"github.com/codalotl/retransdiff/internal/segmenter"
)

type diffRequest struct {
	Original     string `json:"original" validate:"required,min=1"`
	Retranslated string `json:"retranslated" validate:"required,min=1"`
	Lang         string `json:"lang" validate:"omitempty,langcode"`
	Granularity  string `json:"granularity" validate:"omitempty,oneof=auto word rune char grapheme"`
}

type diffResponse struct {
	Lang        string         `json:"lang"`
	Granularity string         `json:"granularity"`
	Segments    []diff.Segment `json:"segments"`
	Elements    []hunk.Element `json:"elements"`
	HunkCount   int            `json:"hunk_count"`
	Stats       diff.Stats     `json:"stats"`
}

type rebuildRequest struct {
	diffRequest
	Reverted []int `json:"reverted" validate:"dive,min=0"`
}

type rebuildResponse struct {
	Text string `json:"text"`
}

// compare resolves lang and granularity defaults from config and computes the diff.
func (s *Server) compare(req diffRequest) (lang string, g segmenter.Granularity, segs []diff.Segment, err error) {
	cfg := s.config()
	lang = req.Lang
	if lang == "" {
		lang = cfg.DefaultLang
	}
	name := req.Granularity
	if name == "" {
		name = cfg.Granularity
	}
	g, err = segmenter.Resolve(name, lang)
	if err != nil {
		return "", 0, nil, err
	}
	return lang, g, diff.ComputeDiffGranularity(req.Original, req.Retranslated, g), nil
}

func (s *Server) handleDiff(w http.ResponseWriter, r *http.Request) {
	var req diffRequest
	if !s.decode(w, r, &req) {
		return
	}
	lang, g, segs, err := s.compare(req)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	elements := hunk.GroupIntoElements(segs)
	if segs == nil {
		segs = []diff.Segment{}
	}
	if elements == nil {
		elements = []hunk.Element{}
	}
	writeJSON(w, http.StatusOK, diffResponse{
		Lang:        lang,
		Granularity: g.String(),
		Segments:    segs,
		Elements:    elements,
		HunkCount:   hunk.Count(elements),
		Stats:       diff.ComputeStats(segs),
	})
}

func (s *Server) handleRebuild(w http.ResponseWriter, r *http.Request) {
	var req rebuildRequest
	if !s.decode(w, r, &req) {
		return
	}
	_, _, segs, err := s.compare(req.diffRequest)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	elements := hunk.GroupIntoElements(segs)
	writeJSON(w, http.StatusOK, rebuildResponse{
		Text: hunk.RebuildText(elements, hunk.NewRevertSet(req.Reverted...)),
	})
}

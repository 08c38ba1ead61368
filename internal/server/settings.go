package server

import (
	"net/http"

	"github.com/codalotl/retransdiff/internal/config"
)

type settingValue struct {
	Value  string `json:"value"`
	Source string `json:"source"`
}

type settingsResponse struct {
	Settings map[string]settingValue `json:"settings"`
}

type settingsUpdate struct {
	DefaultLang *string `json:"default_lang" validate:"omitnil,langcode"`
	Granularity *string `json:"granularity" validate:"omitnil,oneof=auto word rune char grapheme"`
}

func (s *Server) settingsResponse() settingsResponse {
	resp := settingsResponse{Settings: map[string]settingValue{}}
	for _, e := range s.config().Entries() {
		resp.Settings[e.Key] = settingValue{Value: e.Value, Source: e.Provenance.String()}
	}
	return resp
}

func (s *Server) handleGetSettings(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.settingsResponse())
}

func (s *Server) handlePutSettings(w http.ResponseWriter, r *http.Request) {
	var req settingsUpdate
	if !s.decode(w, r, &req) {
		return
	}
	for key, v := range map[string]*string{
		config.KeyDefaultLang: req.DefaultLang,
		config.KeyGranularity: req.Granularity,
	} {
		if v == nil {
			continue
		}
		if err := s.store.SetSetting(r.Context(), key, *v); err != nil {
			s.internalError(w, r, err)
			return
		}
	}

	all, err := s.store.AllSettings(r.Context())
	if err != nil {
		s.internalError(w, r, err)
		return
	}
	next := s.config().Clone()
	if err := next.ApplySettings(all); err != nil {
		s.internalError(w, r, err)
		return
	}
	s.mu.Lock()
	s.cfg = next
	s.mu.Unlock()
	writeJSON(w, http.StatusOK, s.settingsResponse())
}

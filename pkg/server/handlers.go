package server

import (
	"encoding/json"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/matzehuels/chaosgame/pkg/buildinfo"
	"github.com/matzehuels/chaosgame/pkg/core/game"
	"github.com/matzehuels/chaosgame/pkg/errors"
	"github.com/matzehuels/chaosgame/pkg/pipeline"
	"github.com/matzehuels/chaosgame/pkg/store"
)

// gameInfo describes one catalog entry.
type gameInfo struct {
	Type                      game.Type          `json:"type"`
	Name                      string             `json:"name"`
	Description               string             `json:"description"`
	AdditionalControls        []game.ControlType `json:"additional_controls"`
	FixedTransforms           bool               `json:"fixed_transforms"`
	DisableTargetColoringMode bool               `json:"disable_target_coloring_mode"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.cfg.Stats.Snapshot())
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, buildinfo.Get())
}

func (s *Server) handleGames(w http.ResponseWriter, r *http.Request) {
	var out []gameInfo
	for _, g := range game.Catalog() {
		_, fixed := g.NumTransforms(game.Controls{})
		out = append(out, gameInfo{
			Type:                      g.Type(),
			Name:                      g.Name(),
			Description:               g.Description(),
			AdditionalControls:        g.AdditionalControls(),
			FixedTransforms:           fixed,
			DisableTargetColoringMode: g.DisableTargetColoringMode(),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handlePresets(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, game.Presets())
}

// handleRender runs the pipeline for the options in the body and responds
// with the artifact in the format given by the query (default svg).
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	opts, err := decodeOptions(r)
	if err != nil {
		writeError(w, err)
		return
	}
	format := r.URL.Query().Get("format")
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		writeError(w, err)
		return
	}
	opts.Formats = []string{format}
	opts.Logger = s.cfg.Logger
	if err := opts.ValidateAndSetDefaults(); err != nil {
		writeError(w, err)
		return
	}

	res, err := s.cfg.Runner.Execute(r.Context(), opts)
	if err != nil {
		writeError(w, err)
		return
	}

	rec := store.NewRecord(opts, res, s.cfg.RecordTTL)
	if err := s.cfg.Store.Save(r.Context(), rec); err != nil {
		s.cfg.Logger.Warn("failed to save render record", "id", rec.ID, "error", err)
	}

	h := w.Header()
	h.Set("Content-Type", contentTypes[format])
	h.Set("X-Render-ID", rec.ID)
	h.Set("X-Points", strconv.Itoa(res.Stats.Points))
	h.Set("X-Stuck", strconv.FormatBool(res.Stats.Stuck))
	if res.CacheInfo.RenderHit {
		h.Set("X-Cache", "hit")
	} else {
		h.Set("X-Cache", "miss")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.Artifacts[format])
}

func (s *Server) handleListRenders(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, errors.New(errors.ErrCodeInvalidInput, "invalid limit %q", v))
			return
		}
		limit = n
	}
	recs, err := s.cfg.Store.List(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	if recs == nil {
		recs = []*store.Record{}
	}
	writeJSON(w, http.StatusOK, recs)
}

func (s *Server) handleGetRender(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := errors.ValidateID(id); err != nil {
		writeError(w, err)
		return
	}
	rec, err := s.cfg.Store.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

// decodeOptions reads pipeline options from the request body. An empty
// body yields zero options, which validate to the defaults.
func decodeOptions(r *http.Request) (pipeline.Options, error) {
	var opts pipeline.Options
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1))
	if err != nil {
		return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "read body")
	}
	if len(body) > maxBodyBytes {
		return opts, errors.New(errors.ErrCodeInvalidInput, "request body exceeds %d bytes", maxBodyBytes)
	}
	if len(body) == 0 {
		return opts, nil
	}
	if err := json.Unmarshal(body, &opts); err != nil {
		return opts, errors.Wrap(errors.ErrCodeInvalidInput, err, "invalid options JSON")
	}
	return opts, nil
}

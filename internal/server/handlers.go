package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/matzehuels/panelfit/pkg/buildinfo"
	perrors "github.com/matzehuels/panelfit/pkg/errors"
	"github.com/matzehuels/panelfit/pkg/pipeline"
	"github.com/matzehuels/panelfit/pkg/render"
	"github.com/matzehuels/panelfit/pkg/scene"
	"github.com/matzehuels/panelfit/pkg/store"
)

type layoutResponse struct {
	ID        string          `json:"id,omitempty"`
	SceneHash string          `json:"scene_hash"`
	Cached    bool            `json:"cached"`
	Layout    pipeline.Layout `json:"layout"`
}

type summary struct {
	ID        string `json:"id"`
	Name      string `json:"name,omitempty"`
	CreatedAt string `json:"created_at"`
	Engine    string `json:"engine"`
	Items     int    `json:"items"`
}

type errorBody struct {
	Error errorDetail `json:"error"`
}

type errorDetail struct {
	Code    perrors.Code `json:"code"`
	Message string       `json:"message"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"build":  buildinfo.Get(),
		"store":  s.store != nil,
	})
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	body := http.MaxBytesReader(w, r.Body, s.maxBody)
	sc, err := scene.Read(body, scene.FormatJSON)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeError(w, r, http.StatusRequestEntityTooLarge,
				perrors.New(perrors.ErrCodeInvalidInput, "scene larger than %d bytes", tooLarge.Limit))
			return
		}
		s.fail(w, r, err)
		return
	}

	opts, err := s.requestOptions(r, sc)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	hash, err := pipeline.SceneHash(sc)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	l, cached, err := s.runner.ArrangeWithCacheInfo(r.Context(), sc, opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}

	resp := layoutResponse{SceneHash: hash, Cached: cached, Layout: l}
	status := http.StatusOK
	if save, _ := strconv.ParseBool(r.URL.Query().Get("save")); save {
		if s.store == nil {
			s.fail(w, r, perrors.New(perrors.ErrCodeUnsupported, "saving layouts requires a store"))
			return
		}
		doc := store.NewDocument(r.URL.Query().Get("name"), sc, l)
		if err := s.store.Put(r.Context(), doc); err != nil {
			s.fail(w, r, err)
			return
		}
		resp.ID = doc.ID
		status = http.StatusCreated
		w.Header().Set("Location", "/v1/layouts/"+doc.ID)
	}
	writeJSON(w, status, resp)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w, r) {
		return
	}
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.fail(w, r, perrors.New(perrors.ErrCodeInvalidInput, "invalid limit %q", v))
			return
		}
		limit = n
	}
	docs, err := s.store.List(r.Context(), limit)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	out := make([]summary, len(docs))
	for i, d := range docs {
		out[i] = summary{
			ID:        d.ID,
			Name:      d.Name,
			CreatedAt: d.CreatedAt.Format(time.RFC3339),
			Engine:    d.Layout.Engine,
			Items:     len(d.Layout.Items),
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"layouts": out})
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w, r) {
		return
	}
	id, svg := strings.CutSuffix(chi.URLParam(r, "id"), ".svg")
	doc, err := s.store.Get(r.Context(), id)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	if !svg {
		writeJSON(w, http.StatusOK, doc)
		return
	}

	opts := s.base
	opts.Formats = []string{string(render.FormatSVG)}
	if v := r.URL.Query().Get("labels"); v != "" {
		opts.Labels, _ = strconv.ParseBool(v)
	}
	artifacts, err := s.runner.Render(r.Context(), doc.Layout, opts)
	if err != nil {
		s.fail(w, r, err)
		return
	}
	w.Header().Set("Content-Type", render.FormatSVG.ContentType())
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(artifacts[string(render.FormatSVG)])
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	if !s.requireStore(w, r) {
		return
	}
	if err := s.store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// requestOptions layers base options, the scene and query parameters.
func (s *Server) requestOptions(r *http.Request, sc *scene.Scene) (pipeline.Options, error) {
	q := r.URL.Query()
	var over pipeline.Options
	ints := map[string]*int{
		"width":     &over.Width,
		"height":    &over.Height,
		"padding":   &over.Padding,
		"max_tries": &over.MaxTries,
	}
	for name, dst := range ints {
		if v := q.Get(name); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return pipeline.Options{}, perrors.New(perrors.ErrCodeInvalidOption, "invalid %s %q", name, v)
			}
			*dst = n
		}
	}
	if v := q.Get("seed"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return pipeline.Options{}, perrors.New(perrors.ErrCodeInvalidOption, "invalid seed %q", v)
		}
		over.Seed = pipeline.Uint64(n)
	}
	if v := q.Get("randomize"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return pipeline.Options{}, perrors.New(perrors.ErrCodeInvalidOption, "invalid randomize %q", v)
		}
		over.Randomize = pipeline.Bool(b)
	}
	over.Style = q.Get("style")
	over.Align = q.Get("align")
	over.Gap = q.Get("gap")
	over.Refresh, _ = strconv.ParseBool(q.Get("refresh"))

	return s.base.Merge(pipeline.FromScene(sc)).Merge(over), nil
}

func (s *Server) requireStore(w http.ResponseWriter, r *http.Request) bool {
	if s.store == nil {
		s.fail(w, r, perrors.New(perrors.ErrCodeUnsupported, "no layout store configured"))
		return false
	}
	return true
}

// fail maps a coded error to its HTTP status.
func (s *Server) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := http.StatusInternalServerError
	switch {
	case perrors.IsInvalid(err):
		status = http.StatusBadRequest
	case perrors.Is(err, perrors.ErrCodeNotFound):
		status = http.StatusNotFound
	case perrors.Is(err, perrors.ErrCodeUnsupported):
		status = http.StatusNotImplemented
	}
	s.writeError(w, r, status, err)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	detail := errorDetail{Code: perrors.GetCode(err), Message: perrors.UserMessage(err)}
	if status >= http.StatusInternalServerError && status != http.StatusNotImplemented {
		s.logger.Error("request failed", "err", err, "request_id", middleware.GetReqID(r.Context()))
		detail = errorDetail{Code: perrors.ErrCodeInternal, Message: "internal error"}
	}
	writeJSON(w, status, errorBody{Error: detail})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

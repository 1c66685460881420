package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/matzehuels/artifactscout/pkg/deps"
	apperr "github.com/matzehuels/artifactscout/pkg/errors"
	"github.com/matzehuels/artifactscout/pkg/observability"
	"github.com/matzehuels/artifactscout/pkg/version"
)

type versionsResponse struct {
	Coordinate string            `json:"coordinate"`
	Versions   []version.Version `json:"versions"`
}

type urlResponse struct {
	Coordinate string `json:"coordinate"`
	URL        string `json:"url"`
}

type urlsRequest struct {
	Coordinates []string `json:"coordinates"`
	Cross       string   `json:"cross,omitempty"`
}

type urlsResponse struct {
	URLs map[string]string `json:"urls"`
}

type statsResponse struct {
	Lookups  observability.Stats `json:"lookups"`
	Breakers map[string]string   `json:"breakers"`
}

type errorBody struct {
	Code    apperr.Code `json:"code"`
	Message string      `json:"message"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersions(w http.ResponseWriter, r *http.Request) {
	c, err := coordinateFromQuery(r, false)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}
	fresh, _ := strconv.ParseBool(r.URL.Query().Get("fresh"))

	dep := deps.Scope(c, s.opts.Resolvers...)
	var vs []version.Version
	if fresh {
		vs = s.opts.Service.VersionsFresh(r.Context(), dep)
	} else {
		vs = s.opts.Service.Versions(r.Context(), dep)
	}
	writeJSON(w, http.StatusOK, versionsResponse{Coordinate: c.String(), Versions: vs})
}

func (s *Server) handleURL(w http.ResponseWriter, r *http.Request) {
	c, err := coordinateFromQuery(r, true)
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return
	}

	u, ok := s.opts.Service.ArtifactURL(r.Context(), deps.Scope(c, s.opts.Resolvers...))
	if !ok {
		writeError(w, http.StatusNotFound, apperr.New(apperr.ErrCodeNotFound, "no URL found for %s", c))
		return
	}
	writeJSON(w, http.StatusOK, urlResponse{Coordinate: c.String(), URL: u.String()})
}

func (s *Server) handleURLs(w http.ResponseWriter, r *http.Request) {
	var req urlsRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBody)).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, apperr.Wrap(apperr.ErrCodeInvalidInput, err, "invalid request body"))
		return
	}
	if len(req.Coordinates) > s.opts.MaxBatch {
		writeError(w, http.StatusBadRequest, apperr.New(apperr.ErrCodeInvalidInput, "too many coordinates (max %d)", s.opts.MaxBatch))
		return
	}

	coords := make([]deps.Coordinate, 0, len(req.Coordinates))
	for _, raw := range req.Coordinates {
		c, err := deps.ParseQualified(raw, req.Cross, nil, true)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		coords = append(coords, c)
	}

	mapping := s.opts.Service.ArtifactIDURLMapping(r.Context(), deps.ScopedDependencies{
		Dependencies: coords,
		Resolvers:    s.opts.Resolvers,
	})
	out := make(map[string]string, len(mapping))
	for name, u := range mapping {
		out[name] = u.String()
	}
	writeJSON(w, http.StatusOK, urlsResponse{URLs: out})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	resp := statsResponse{Lookups: s.opts.Counters.Snapshot(), Breakers: map[string]string{}}
	if s.opts.Breakers != nil {
		resp.Breakers = s.opts.Breakers()
	}
	writeJSON(w, http.StatusOK, resp)
}

func coordinateFromQuery(r *http.Request, requireVersion bool) (deps.Coordinate, error) {
	q := r.URL.Query()
	raw := q.Get("coordinate")
	if raw == "" {
		return deps.Coordinate{}, apperr.New(apperr.ErrCodeInvalidInput, "missing coordinate parameter")
	}
	return deps.ParseQualified(raw, q.Get("cross"), q["attr"], requireVersion)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	code := apperr.GetCode(err)
	if code == "" {
		code = apperr.ErrCodeInternal
	}
	writeJSON(w, status, errorResponse{Error: errorBody{Code: code, Message: apperr.UserMessage(err)}})
}

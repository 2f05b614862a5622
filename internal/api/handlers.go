package api

import (
	"encoding/json"
	"net/http"

	"github.com/shaftworks/shaftdraw/pkg/buildinfo"
	"github.com/shaftworks/shaftdraw/pkg/errors"
	"github.com/shaftworks/shaftdraw/pkg/pipeline"
	"github.com/shaftworks/shaftdraw/pkg/shaft"
)

// RenderRequest is the body of POST /v1/render.
type RenderRequest struct {
	// Document is the TOML shaft document text.
	Document string `json:"document"`

	// Format selects the output: svg (default), pdf, png, or json.
	Format string `json:"format,omitempty"`

	Title string `json:"title,omitempty"`
	Page  string `json:"page,omitempty"`
	Units string `json:"units,omitempty"`

	Datums           bool     `json:"datums,omitempty"`
	NoDiameters      bool     `json:"no_diameters,omitempty"`
	TierOrigin       *float64 `json:"tier_origin,omitempty"`
	FallbackDiameter float64  `json:"fallback_diameter,omitempty"`
	PixelsPerMM      float64  `json:"pixels_per_mm,omitempty"`

	Refresh bool `json:"refresh,omitempty"`
}

// InspectResponse is the body of POST /v1/inspect.
type InspectResponse struct {
	DocHash    string           `json:"doc_hash"`
	Title      string           `json:"title,omitempty"`
	Window     shaft.Window     `json:"window"`
	Components []shaft.Resolved `json:"components"`
}

// errorResponse is the JSON error envelope.
type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

var contentTypes = map[string]string{
	pipeline.FormatSVG:  "image/svg+xml",
	pipeline.FormatPDF:  "application/pdf",
	pipeline.FormatPNG:  "image/png",
	pipeline.FormatJSON: "application/json",
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"version": buildinfo.Version,
		"commit":  buildinfo.Commit,
		"date":    buildinfo.Date,
	})
}

// handleRender renders a document to a single format and streams the
// artifact back with its content type.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeRenderRequest(w, r)
	if !ok {
		return
	}

	format := req.Format
	if format == "" {
		format = pipeline.FormatSVG
	}
	if err := pipeline.ValidateFormat(format); err != nil {
		s.writeError(w, err)
		return
	}

	result, err := s.runner.Execute(r.Context(), pipeline.Options{
		Source:           []byte(req.Document),
		Title:            req.Title,
		Page:             req.Page,
		Units:            req.Units,
		Datums:           req.Datums,
		NoDiameters:      req.NoDiameters,
		TierOrigin:       req.TierOrigin,
		FallbackDiameter: req.FallbackDiameter,
		Formats:          []string{format},
		PixelsPerMM:      req.PixelsPerMM,
		Refresh:          req.Refresh,
		Logger:           s.logger,
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", contentTypes[format])
	w.Header().Set("X-Doc-Hash", result.DocHash)
	if result.CacheInfo.RenderHit {
		w.Header().Set("X-Cache", "hit")
	} else {
		w.Header().Set("X-Cache", "miss")
	}
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(result.Artifacts[format])
}

// handleInspect resolves a document and returns the component list and
// measurement window without rendering.
func (s *Server) handleInspect(w http.ResponseWriter, r *http.Request) {
	req, ok := s.decodeRenderRequest(w, r)
	if !ok {
		return
	}

	opts := pipeline.Options{
		Source:           []byte(req.Document),
		Units:            req.Units,
		FallbackDiameter: req.FallbackDiameter,
		Logger:           s.logger,
	}
	doc, docHash, err := s.runner.Load(opts)
	if err != nil {
		s.writeError(w, err)
		return
	}
	resolved, err := pipeline.ResolveComponents(doc, opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	span := doc.OverallLength
	for _, rc := range resolved {
		if end := rc.End(); end > span {
			span = end
		}
	}
	window, err := shaft.ComputeWindow(span, doc.Segments())
	if err != nil {
		s.writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, InspectResponse{
		DocHash:    docHash,
		Title:      doc.Title,
		Window:     window,
		Components: resolved,
	})
}

func (s *Server) decodeRenderRequest(w http.ResponseWriter, r *http.Request) (RenderRequest, bool) {
	var req RenderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode request body"))
		return req, false
	}
	if req.Document == "" {
		s.writeError(w, errors.New(errors.ErrCodeInvalidDocument, "document is required"))
		return req, false
	}
	return req, true
}

// writeError maps structured error codes to HTTP status codes.
func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidDocument, errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidUnit, errors.ErrCodeInvalidPage,
		errors.ErrCodeInvalidGeometry:
		status = http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeUnsupported:
		status = http.StatusUnprocessableEntity
	}

	if status == http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	writeJSON(w, status, errorResponse{
		Code:    string(errors.GetCode(err)),
		Message: errors.UserMessage(err),
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

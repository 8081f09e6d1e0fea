// internal/adapters/http_server/handlers.go
package httpserver

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"driftly/internal/domain"
)

const maxBody = 1 << 20

type Planner interface {
	Generate(ctx context.Context, req domain.TripRequest) (domain.Plan, error)
	Parse(markdown string) domain.Plan
}

type Renderer interface {
	Render(src []byte) ([]byte, error)
}

type Handlers struct {
	P Planner
	R Renderer
}

type problem struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
}

type markdownBody struct {
	Markdown string `json:"markdown"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Post("/v1/itineraries", h.generate)
	s.mux.Post("/v1/itineraries/parse", h.parse)
	s.mux.Post("/v1/itineraries/render", h.render)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(problem{Type: "about:blank", Title: title, Status: status, Detail: detail}); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// calcETagAndBody marshals once and hashes once, returning both ETag and body.
func calcETagAndBody(v any) (string, []byte) {
	body, err := json.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("failed to marshal object for ETag/body")
		return "", nil
	}
	sum := sha1.Sum(body)
	etag := `W/"` + hex.EncodeToString(sum[:]) + `"`
	return etag, body
}

func writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if body == nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "could not encode response")
		return
	}
	if inm := r.Header.Get("If-None-Match"); inm != "" && inm == etag {
		w.Header().Set("ETag", etag)
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("ETag", etag)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(body); err != nil {
		log.Error().Err(err).Msg("failed to write response body")
	}
}

// badBody writes the problem for a body read/decode failure.
func badBody(w http.ResponseWriter, err error) {
	var mbe *http.MaxBytesError
	if errors.As(err, &mbe) {
		writeProblem(w, http.StatusRequestEntityTooLarge, "Payload Too Large", "body exceeds 1 MiB")
		return
	}
	writeProblem(w, http.StatusBadRequest, "Invalid Body", err.Error())
}

// readMarkdown accepts either {"markdown": "..."} JSON or a raw text body.
func readMarkdown(w http.ResponseWriter, r *http.Request) (string, error) {
	body := http.MaxBytesReader(w, r.Body, maxBody)
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct == "application/json" {
		var in markdownBody
		if err := json.NewDecoder(body).Decode(&in); err != nil {
			return "", err
		}
		return in.Markdown, nil
	}
	b, err := io.ReadAll(body)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (h *Handlers) generate(w http.ResponseWriter, r *http.Request) {
	var req domain.TripRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		badBody(w, err)
		return
	}

	plan, err := h.P.Generate(r.Context(), req)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrInvalidRequest):
		writeProblem(w, http.StatusBadRequest, "Invalid Trip Request", strings.TrimPrefix(err.Error(), domain.ErrInvalidRequest.Error()+": "))
		return
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		writeProblem(w, http.StatusGatewayTimeout, "Timeout", "itinerary generation timed out")
		return
	case errors.Is(err, domain.ErrUpstream):
		log.Warn().Err(err).Msg("itinerary generation failed")
		writeProblem(w, http.StatusBadGateway, "Bad Gateway", "Failed to generate itinerary. Please try again later.")
		return
	default:
		log.Error().Err(err).Msg("generate itinerary")
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "unexpected error")
		return
	}
	writeJSON(w, r, plan)
}

func (h *Handlers) parse(w http.ResponseWriter, r *http.Request) {
	md, err := readMarkdown(w, r)
	if err != nil {
		badBody(w, err)
		return
	}
	writeJSON(w, r, h.P.Parse(md))
}

func (h *Handlers) render(w http.ResponseWriter, r *http.Request) {
	md, err := readMarkdown(w, r)
	if err != nil {
		badBody(w, err)
		return
	}
	out, err := h.R.Render([]byte(md))
	if err != nil {
		log.Error().Err(err).Msg("render itinerary")
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "could not render markdown")
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(out); err != nil {
		log.Error().Err(err).Msg("failed to write render body")
	}
}

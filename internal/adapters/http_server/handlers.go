// internal/adapters/http_server/handlers.go
package httpserver

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"
	"encoding/xml"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"pytech_site/internal/adapters/observability"
	"pytech_site/internal/app"
	"pytech_site/internal/domain"
)

const (
	maxCityLimit      = 500
	maxEnquiryBody    = 64 << 10
	retryAfterSeconds = "30"
)

type Handlers struct {
	Resolver  *app.Resolver
	Synth     *app.Synthesizer
	Directory *app.Directory
	Intake    *app.Intake
	SiteURL   string // absolute base for sitemap.xml
}

type problem struct {
	Type        string             `json:"type"`
	Title       string             `json:"title"`
	Status      int                `json:"status"`
	Detail      string             `json:"detail,omitempty"`
	FieldErrors domain.FieldErrors `json:"fieldErrors,omitempty"`
}

func (s *Server) MountHandlers(h *Handlers) {
	s.mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); _, _ = w.Write([]byte("ok")) })
	s.mux.Get("/v1/pages/{service}/{city}", h.getPage)
	s.mux.Get("/v1/services", h.listServices)
	s.mux.Get("/v1/cities", h.searchCities)
	s.mux.Get("/v1/sitemap", h.getSitemap)
	s.mux.Get("/sitemap.xml", h.getSitemapXML)
	s.mux.Post("/v1/enquiries", h.postEnquiry)
}

func writeProblem(w http.ResponseWriter, status int, title, detail string) {
	writeProblemBody(w, problem{Type: "about:blank", Title: title, Status: status, Detail: detail})
}

func writeProblemBody(w http.ResponseWriter, p problem) {
	w.Header().Set("Content-Type", "application/problem+json")
	w.WriteHeader(p.Status)
	if err := json.NewEncoder(w).Encode(p); err != nil {
		log.Error().Err(err).Msg("write JSON problem response failed")
	}
}

// writeUnavailable is the single rendering of "the catalog could not be asked".
func writeUnavailable(w http.ResponseWriter, err error) {
	log.Warn().Err(err).Msg("catalog unavailable")
	w.Header().Set("Retry-After", retryAfterSeconds)
	writeProblem(w, http.StatusServiceUnavailable, "Catalog Unavailable", "content is temporarily unavailable, come back shortly")
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("write JSON response failed")
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

// writeCached writes v with a weak ETag, answering 304 when the client already has it.
func writeCached(w http.ResponseWriter, r *http.Request, v any) {
	etag, body := calcETagAndBody(v)
	if body == nil {
		writeProblem(w, http.StatusInternalServerError, "Internal Error", "could not render response")
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

func (h *Handlers) getPage(w http.ResponseWriter, r *http.Request) {
	res := h.Resolver.Resolve(r.Context(), chi.URLParam(r, "service"), chi.URLParam(r, "city"))
	observability.ObservePageLookup(res.Status.String())

	switch {
	case res.Found():
		writeCached(w, r, h.Synth.SynthesizeLookup(res))
	case res.NotFound():
		writeProblem(w, http.StatusNotFound, "Page Not Found", "this combination does not exist ("+res.Status.String()+")")
	default:
		writeUnavailable(w, res.Err)
	}
}

func (h *Handlers) listServices(w http.ResponseWriter, r *http.Request) {
	services, err := h.Resolver.ListServices(r.Context())
	if err != nil {
		writeUnavailable(w, err)
		return
	}
	if services == nil {
		services = []domain.Service{}
	}
	writeCached(w, r, services)
}

func (h *Handlers) searchCities(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if ls := r.URL.Query().Get("limit"); ls != "" {
		l, err := strconv.Atoi(ls)
		if err != nil || l <= 0 || l > maxCityLimit {
			writeProblem(w, http.StatusBadRequest, "Invalid limit", "limit must be an integer between 1 and "+strconv.Itoa(maxCityLimit))
			return
		}
		limit = l
	}
	cities, err := h.Directory.Search(r.Context(), r.URL.Query().Get("q"), limit)
	if err != nil {
		writeUnavailable(w, err)
		return
	}
	writeJSON(w, http.StatusOK, cities)
}

func (h *Handlers) getSitemap(w http.ResponseWriter, r *http.Request) {
	sm, err := h.Resolver.Sitemap(r.Context())
	if err != nil {
		writeUnavailable(w, err)
		return
	}
	writeCached(w, r, sm)
}

type xmlURLSet struct {
	XMLName xml.Name `xml:"urlset"`
	XMLNS   string   `xml:"xmlns,attr"`
	URLs    []xmlURL `xml:"url"`
}

type xmlURL struct {
	Loc        string `xml:"loc"`
	ChangeFreq string `xml:"changefreq"`
	Priority   string `xml:"priority"`
}

func (h *Handlers) getSitemapXML(w http.ResponseWriter, r *http.Request) {
	sm, err := h.Resolver.Sitemap(r.Context())
	if err != nil {
		writeUnavailable(w, err)
		return
	}
	set := xmlURLSet{XMLNS: "http://www.sitemaps.org/schemas/sitemap/0.9", URLs: make([]xmlURL, 0, len(sm.URLs))}
	for _, u := range sm.URLs {
		set.URLs = append(set.URLs, xmlURL{Loc: h.SiteURL + u.URL, ChangeFreq: "monthly", Priority: "0.8"})
	}
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(xml.Header))
	if err := xml.NewEncoder(w).Encode(set); err != nil {
		log.Error().Err(err).Msg("write sitemap.xml failed")
	}
}

type enquiryResponse struct {
	app.Outcome
	Warning string `json:"warning,omitempty"`
}

func (h *Handlers) postEnquiry(w http.ResponseWriter, r *http.Request) {
	var e domain.Enquiry
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxEnquiryBody))
	if err := dec.Decode(&e); err != nil {
		writeProblem(w, http.StatusBadRequest, "Invalid Body", "request body must be a JSON enquiry")
		return
	}
	// server-assigned
	e.ID, e.CreatedAt = "", time.Time{}

	out, err := h.Intake.Submit(r.Context(), r.Header.Get("X-Form-ID"), e)
	observability.ObserveEnquiry(out.State.String())
	if errors.Is(err, domain.ErrSubmissionInFlight) {
		writeProblem(w, http.StatusConflict, "Submission In Progress", "this form is already being submitted")
		return
	}

	switch out.State {
	case app.StateInvalid:
		writeProblemBody(w, problem{
			Type:        "about:blank",
			Title:       "Invalid Enquiry",
			Status:      http.StatusUnprocessableEntity,
			Detail:      "please correct the highlighted fields",
			FieldErrors: out.FieldErrors,
		})
	case app.StateFailed:
		log.Error().Err(out.HandOffErr).Msg("enquiry hand-off failed")
		writeProblem(w, http.StatusBadGateway, "Submission Failed", "your enquiry could not be sent, please try again")
	case app.StatePartiallyFailed:
		log.Error().Err(out.PersistErr).Str("enquiry_id", out.EnquiryID).Msg("enquiry not recorded after hand-off")
		writeJSON(w, http.StatusAccepted, enquiryResponse{Outcome: out, Warning: "your enquiry was sent but could not be recorded"})
	default:
		log.Info().Str("enquiry_id", out.EnquiryID).Msg("enquiry received")
		writeJSON(w, http.StatusCreated, enquiryResponse{Outcome: out})
	}
}

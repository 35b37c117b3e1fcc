// Package chi implements the HTTP API over the chi router.
package chi

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/seedfolio/seedfolio/internal/domain"
	"github.com/seedfolio/seedfolio/internal/domain/company"
	cataloguc "github.com/seedfolio/seedfolio/internal/usecase/catalog"
	healthuc "github.com/seedfolio/seedfolio/internal/usecase/health"
	searchuc "github.com/seedfolio/seedfolio/internal/usecase/search"
)

// errorCode identifies the error class in API responses.
type errorCode string

const (
	codeBadRequest       errorCode = "bad_request"
	codeValidationFailed errorCode = "validation_failed"
	codeQueryTooLong     errorCode = "query_too_long"
	codeNotFound         errorCode = "not_found"
	codeEmbeddingError   errorCode = "embedding_provider_error"
	codeInternalError    errorCode = "internal_error"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Server holds the HTTP handlers for the API.
type Server struct {
	search        *searchuc.Service
	catalog       *cataloguc.Service
	embedder      searchuc.Embedder
	health        *healthuc.Service
	embedModel    string
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(
	search *searchuc.Service,
	catalog *cataloguc.Service,
	embedder searchuc.Embedder,
	health *healthuc.Service,
	embedModel string,
	logger *zap.Logger,
) *Server {
	s := &Server{
		search:     search,
		catalog:    catalog,
		embedder:   embedder,
		health:     health,
		embedModel: embedModel,
		logger:     logger,
	}
	s.errorHandlers = []errorHandler{
		sentinelHandler(domain.ErrQueryTooLong, http.StatusBadRequest, codeQueryTooLong),
		sentinelHandler(domain.ErrInvalidInput, http.StatusBadRequest, codeValidationFailed),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, codeNotFound),
		sentinelHandler(domain.ErrEmbeddingUnavailable, http.StatusBadGateway, codeEmbeddingError),
	}
	return s
}

// Register mounts the API routes on r. Middlewares are applied by the caller.
func (s *Server) Register(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/search", s.Search)
		r.Get("/companies", s.ListCompanies)
		r.Get("/filters", s.FilterOptions)
		r.Post("/embedding", s.Embedding)
	})
}

// --- Request/response types ---

type searchRequest struct {
	Query   string       `json:"query"`
	Filters filterParams `json:"filters"`
	Sort    string       `json:"sort,omitempty"`
	Order   string       `json:"order,omitempty"`
}

type filterParams struct {
	Category    string `json:"category"`
	Cohort      string `json:"cohort"`
	Location    string `json:"location"`
	Term        string `json:"term"`
	PodcastOnly bool   `json:"podcast_only"`
}

type companyItem struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Website     string   `json:"website,omitempty"`
	Description string   `json:"description"`
	Category    string   `json:"category,omitempty"`
	Cohort      string   `json:"cohort,omitempty"`
	Location    string   `json:"location,omitempty"`
	Tags        []string `json:"tags,omitempty"`

	CrunchbaseLink   string `json:"crunchbaseLink,omitempty"`
	GoogleSearchLink string `json:"googleSearchLink,omitempty"`

	HasPodcastContent bool   `json:"hasPodcastContent,omitempty"`
	PodcastSearchLink string `json:"podcastSearchLink,omitempty"`

	Similarity *float64 `json:"similarity,omitempty"`
}

type companyListResponse struct {
	Items []companyItem `json:"items"`
	Total int           `json:"total"`
}

type filterOptionsResponse struct {
	Categories []string `json:"categories"`
	Cohorts    []string `json:"cohorts"`
	Locations  []string `json:"locations"`
	Tags       []string `json:"tags"`
}

type embeddingRequest struct {
	Text string `json:"text"`
}

type embeddingResponse struct {
	Embedding  []float32 `json:"embedding"`
	Model      string    `json:"model"`
	Dimensions int       `json:"dimensions"`
}

type errorResponse struct {
	Code    errorCode `json:"code"`
	Message string    `json:"message"`
}

type healthResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks"`
}

// --- Handlers ---

// Search handles POST /api/v1/search.
func (s *Server) Search(w http.ResponseWriter, r *http.Request) {
	var req searchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	results, err := s.search.Search(r.Context(), req.Query, filterSetFromParams(req.Filters))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	// Explicit sort overrides the default relevance order.
	if req.Sort != "" {
		key, err := company.ParseKey(req.Sort)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
			return
		}
		order, err := company.ParseOrder(req.Order)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
			return
		}
		results = company.Sort(results, key, order)
	}

	writeJSON(w, http.StatusOK, companyListResponse{
		Items: scoredToItems(results),
		Total: len(results),
	})
}

// ListCompanies handles GET /api/v1/companies.
func (s *Server) ListCompanies(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filters := company.FilterSet{
		Category:    q.Get("category"),
		Cohort:      q.Get("cohort"),
		Location:    q.Get("location"),
		Term:        q.Get("term"),
		PodcastOnly: q.Get("podcast_only") == "true",
	}

	key := company.KeyName
	order := company.Asc
	if sortParam := q.Get("sort"); sortParam != "" {
		var err error
		key, err = company.ParseKey(sortParam)
		if err != nil {
			writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
			return
		}
		order, err = company.ParseOrder(q.Get("order"))
		if err != nil {
			writeError(w, http.StatusBadRequest, codeValidationFailed, err.Error())
			return
		}
	}

	results := s.catalog.List(filters, key, order)
	writeJSON(w, http.StatusOK, companyListResponse{
		Items: scoredToItems(results),
		Total: len(results),
	})
}

// FilterOptions handles GET /api/v1/filters.
func (s *Server) FilterOptions(w http.ResponseWriter, r *http.Request) {
	opts := s.catalog.Options()
	writeJSON(w, http.StatusOK, filterOptionsResponse{
		Categories: opts.Categories,
		Cohorts:    opts.Cohorts,
		Locations:  opts.Locations,
		Tags:       opts.Tags,
	})
}

// Embedding handles POST /api/v1/embedding.
func (s *Server) Embedding(w http.ResponseWriter, r *http.Request) {
	var req embeddingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, codeBadRequest, "Invalid request body: "+err.Error())
		return
	}

	if req.Text == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "text is required")
		return
	}
	if len(req.Text) > domain.MaxEmbedTextLen {
		writeError(w, http.StatusBadRequest, codeQueryTooLong, "text exceeds maximum length")
		return
	}

	result, err := s.embedder.Embed(r.Context(), req.Text)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, embeddingResponse{
		Embedding:  result.Embedding,
		Model:      s.embedModel,
		Dimensions: len(result.Embedding),
	})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	checks := make(map[string]string, len(report.Checks))
	for k, v := range report.Checks {
		checks[k] = string(v)
	}

	httpStatus := http.StatusOK
	if report.Status != healthuc.Healthy {
		httpStatus = http.StatusServiceUnavailable
	}

	writeJSON(w, httpStatus, healthResponse{
		Status: string(report.Status),
		Checks: checks,
	})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}

// --- Helpers ---

func filterSetFromParams(p filterParams) company.FilterSet {
	return company.FilterSet{
		Category:    p.Category,
		Cohort:      p.Cohort,
		Location:    p.Location,
		Term:        p.Term,
		PodcastOnly: p.PodcastOnly,
	}
}

func scoredToItems(results []company.Scored) []companyItem {
	items := make([]companyItem, len(results))
	for i, r := range results {
		items[i] = companyItem{
			ID:                r.ID,
			Name:              r.Name,
			Website:           r.Website,
			Description:       r.Description,
			Category:          r.Category,
			Cohort:            r.Cohort,
			Location:          r.Location,
			Tags:              r.Tags,
			CrunchbaseLink:    r.CrunchbaseLink,
			GoogleSearchLink:  r.GoogleSearchLink,
			HasPodcastContent: r.HasPodcastContent,
			PodcastSearchLink: r.PodcastSearchLink,
		}
		if r.HasScore {
			sim := r.Similarity
			items[i].Similarity = &sim
		}
	}
	return items
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code errorCode, message string) {
	writeJSON(w, status, errorResponse{
		Code:    code,
		Message: message,
	})
}

// safeDomainMessage returns a sentinel error message for the client without exposing internals.
func safeDomainMessage(err error) string {
	sentinels := []error{
		domain.ErrQueryTooLong,
		domain.ErrInvalidInput,
		domain.ErrNotFound,
		domain.ErrEmbeddingUnavailable,
	}
	for _, s := range sentinels {
		if errors.Is(err, s) {
			return s.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code errorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, codeInternalError, "internal error")
}

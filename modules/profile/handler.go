package profile

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"sync"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/go-chi/chi/v5"
	"github.com/starfederation/datastar-go/datastar"
	"golang.org/x/crypto/bcrypt"

	"github.com/dmitrymomot/fieldrules/pkg/apischema"
	"github.com/dmitrymomot/fieldrules/pkg/catalog"
	"github.com/dmitrymomot/fieldrules/pkg/logger"
	"github.com/dmitrymomot/fieldrules/pkg/validator"
)

// Handler serves the profile routes over one evaluator and store.
type Handler struct {
	ev       *validator.Evaluator
	store    Store
	log      *slog.Logger
	cost     int
	basePath string
	title    string
	schema   func() *openapi3.T
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithBcryptCost overrides bcrypt.DefaultCost for password hashes.
func WithBcryptCost(cost int) HandlerOption {
	return func(h *Handler) { h.cost = cost }
}

// WithBasePath sets the prefix the router is mounted under, used for the
// form action and feedback URLs.
func WithBasePath(path string) HandlerOption {
	return func(h *Handler) { h.basePath = strings.TrimSuffix(path, "/") }
}

// WithSchemaTitle sets the title of the exported OpenAPI document.
func WithSchemaTitle(title string) HandlerOption {
	return func(h *Handler) { h.title = title }
}

func NewHandler(ev *validator.Evaluator, store Store, log *slog.Logger, opts ...HandlerOption) *Handler {
	if log == nil {
		log = slog.New(slog.DiscardHandler)
	}
	h := &Handler{
		ev:    ev,
		store: store,
		log:   log.With(logger.Component("profile")),
		cost:  bcrypt.DefaultCost,
		title: "Profile",
	}
	for _, opt := range opts {
		opt(h)
	}
	h.schema = sync.OnceValue(func() *openapi3.T { return apischema.Document(ev, h.title) })
	return h
}

// Router returns the profile routes. Mount it under the base path given to
// WithBasePath.
func Router(h *Handler) chi.Router {
	r := chi.NewRouter()
	r.Get("/rules", h.rules)
	r.Get("/schema", h.openAPI)
	r.Get("/form", h.form)
	r.Post("/validate", h.validate)
	r.Get("/validate/{field}", h.validateField)
	r.Post("/validate/{field}", h.liveFeedback)
	r.Post("/profiles", h.create)
	return r
}

func (h *Handler) rules(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, envelope{
		Data: h.ev.Descriptors(),
		Meta: map[string]any{"catalog_version": h.ev.Catalog().Version()},
	})
}

func (h *Handler) openAPI(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	if err := json.NewEncoder(w).Encode(h.schema()); err != nil {
		h.log.ErrorContext(r.Context(), "failed to encode schema", logger.Error(err))
	}
}

func (h *Handler) form(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	view := formView(h.basePath+"/profiles", h.basePath+"/validate/", h.ev.Descriptors())
	if err := view.Render(r.Context(), w); err != nil {
		h.log.ErrorContext(r.Context(), "failed to render form", logger.Error(err))
	}
}

func (h *Handler) validate(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.bind(w, r)
	if !ok {
		return
	}
	report, ok := h.judge(w, r, rec)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, envelope{Data: report})
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.bind(w, r)
	if !ok {
		return
	}
	// a submitted profile carries every field; absent ones count as empty
	for _, field := range h.ev.Catalog().Fields() {
		if _, present := rec[field]; present {
			continue
		}
		if rule, _ := h.ev.Catalog().Get(field); rule.Kind == catalog.KindCollection {
			rec[field] = []string{}
		} else {
			rec[field] = ""
		}
	}
	if _, ok := h.judge(w, r, rec); !ok {
		return
	}

	p, err := newProfile(rec, h.cost)
	if err != nil {
		h.log.ErrorContext(r.Context(), "failed to build profile", logger.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", ErrHashPassword)
		return
	}
	if err := h.store.Save(r.Context(), p); err != nil {
		if errors.Is(err, ErrUsernameTaken) {
			writeError(w, http.StatusConflict, "username_taken", err)
			return
		}
		h.log.ErrorContext(r.Context(), "failed to save profile", logger.Error(err))
		writeError(w, http.StatusInternalServerError, "internal_error", ErrStore)
		return
	}

	h.log.InfoContext(r.Context(), "profile created", slog.String("profile_id", p.ID.String()))
	writeJSON(w, http.StatusCreated, envelope{Data: p})
}

// validateField judges a single field passed as ?value= and answers with the
// feedback element as HTML.
func (h *Handler) validateField(w http.ResponseWriter, r *http.Request) {
	field := chi.URLParam(r, "field")
	verdict, ok := h.judgeField(w, r, field, func() (any, error) {
		return r.URL.Query().Get("value"), nil
	})
	if !ok {
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := feedbackView(verdict).Render(r.Context(), w); err != nil {
		h.log.ErrorContext(r.Context(), "failed to render feedback", logger.Field(field), logger.Error(err))
	}
}

// liveFeedback serves the form's datastar @post: the field value comes from
// the signals in the request body, never the URL, and the feedback element is
// patched over SSE.
func (h *Handler) liveFeedback(w http.ResponseWriter, r *http.Request) {
	field := chi.URLParam(r, "field")
	verdict, ok := h.judgeField(w, r, field, func() (any, error) {
		signals := map[string]any{}
		if err := datastar.ReadSignals(r, &signals); err != nil {
			return nil, errors.Join(ErrMalformedBody, err)
		}
		return signals[field], nil
	})
	if !ok {
		return
	}
	sse := datastar.NewSSE(w, r)
	if err := sse.PatchElementTempl(feedbackView(verdict), datastar.WithSelector("#"+feedbackID(field))); err != nil {
		h.log.ErrorContext(r.Context(), "failed to patch feedback", logger.Field(field), logger.Error(err))
	}
}

// judgeField evaluates one catalog field and writes the error response when
// the field is unknown, the value cannot be read or has the wrong shape.
func (h *Handler) judgeField(w http.ResponseWriter, r *http.Request, field string, read func() (any, error)) (validator.FieldVerdict, bool) {
	rule, ok := h.ev.Catalog().Get(field)
	if !ok {
		writeError(w, http.StatusNotFound, "unknown_field", validator.ErrUnknownField)
		return validator.FieldVerdict{}, false
	}

	value, err := read()
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err)
		return validator.FieldVerdict{}, false
	}
	if rule.Kind == catalog.KindCollection {
		value = splitCollection(value)
	} else if value == nil {
		value = ""
	}

	verdict, err := h.ev.Evaluate(field, value)
	if err != nil {
		h.log.ErrorContext(r.Context(), "contract violation", logger.Field(field), logger.Error(err))
		writeError(w, http.StatusBadRequest, "contract_violation", err)
		return validator.FieldVerdict{}, false
	}
	return verdict, true
}

func (h *Handler) bind(w http.ResponseWriter, r *http.Request) (validator.Record, bool) {
	rec, err := bindRecord(w, r, h.ev.Catalog())
	if err == nil {
		return rec, true
	}
	if errors.Is(err, ErrUnsupportedMediaType) {
		writeError(w, http.StatusUnsupportedMediaType, "unsupported_media_type", err)
	} else {
		writeError(w, http.StatusBadRequest, "bad_request", err)
	}
	return nil, false
}

// judge validates rec and writes the failure response when the record is not
// accepted. Rejections are logged at warn, contract violations at error.
func (h *Handler) judge(w http.ResponseWriter, r *http.Request, rec validator.Record) (validator.Report, bool) {
	report, err := h.ev.ValidateRecord(rec)
	if err != nil {
		h.log.ErrorContext(r.Context(), "contract violation", logger.Error(err))
		writeError(w, http.StatusBadRequest, "contract_violation", err)
		return validator.Report{}, false
	}
	if !report.Accepted {
		failures := report.Failures()
		pairs := make([][2]string, 0, len(failures))
		for _, v := range failures {
			pairs = append(pairs, [2]string{v.Field, string(v.Reason)})
		}
		h.log.WarnContext(r.Context(), "profile record rejected",
			logger.CatalogVersion(h.ev.Catalog().Version()),
			logger.Rejected(pairs...),
		)
		writeRejected(w, report)
		return report, false
	}
	return report, true
}

// splitCollection turns a collection signal into items. Lists pass through,
// strings are split on commas, and blank items are dropped.
func splitCollection(v any) any {
	switch val := v.(type) {
	case nil:
		return []string{}
	case string:
		items := []string{}
		for part := range strings.SplitSeq(val, ",") {
			if part = strings.TrimSpace(part); part != "" {
				items = append(items, part)
			}
		}
		return items
	}
	return v
}

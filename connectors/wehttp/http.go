package wehttp

import (
	"errors"
	"io"
	"mime"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/weegigs/wee-ledger/internal/metrics"
	"github.com/weegigs/wee-ledger/we"
)

const CorrelationHeader = "X-Correlation-Id"

// MaxCallBytes caps the body of a POSTed call.
const MaxCallBytes = 64 << 10

// UnknownMethod labels metrics for methods the contract does not declare.
const UnknownMethod = "unknown"

type HandlerOption func(service *httpService)

func Logger(log *zerolog.Logger) HandlerOption {
	return func(service *httpService) {
		service.log = log
	}
}

func Metrics(recorder metrics.Recorder) HandlerOption {
	return func(service *httpService) {
		service.metrics = recorder
	}
}

// MetricsEndpoint mounts handler on GET /metrics.
func MetricsEndpoint(handler http.Handler) HandlerOption {
	return func(service *httpService) {
		service.scrape = handler
	}
}

func NewHandler(registry we.Registry, options ...HandlerOption) http.Handler {
	service := &httpService{registry: registry}
	for _, option := range options {
		option(service)
	}
	if service.log == nil {
		service.log = &log.Logger
	}
	if service.metrics == nil {
		service.metrics = metrics.NoopRecorder{}
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)

	if service.scrape != nil {
		r.Method(http.MethodGet, "/metrics", service.scrape)
	}

	r.Group(func(r chi.Router) {
		r.Use(render.SetContentType(render.ContentTypeJSON))

		r.Method(http.MethodGet, "/", service.listContracts())
		r.Method(http.MethodGet, "/{kind}/{key}", service.getResource())
		r.Method(http.MethodGet, "/{kind}/{key}/{method}", service.getView())
		r.Method(http.MethodPost, "/{kind}/{key}", service.executeCall())
	})

	return WithTelemetry(r, "ledger-http")
}

type httpService struct {
	log      *zerolog.Logger
	registry we.Registry
	metrics  metrics.Recorder
	scrape   http.Handler
}

type contractDescription struct {
	Kind    we.ContractKind `json:"kind"`
	Methods []we.MethodName `json:"methods"`
	Views   []we.MethodName `json:"views"`
}

func (service *httpService) listContracts() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		descriptions := make([]contractDescription, 0, len(service.registry))
		for _, kind := range service.registry.Kinds() {
			endpoint := service.registry[kind]
			descriptions = append(descriptions, contractDescription{
				Kind:    kind,
				Methods: endpoint.Methods(),
				Views:   endpoint.Views(),
			})
		}

		render.JSON(w, r, descriptions)
	}
}

func (service *httpService) getResource() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind := we.ContractKind(chi.URLParam(r, "kind"))
		key := chi.URLParam(r, "key")

		endpoint, err := service.registry.Lookup(kind)
		if err != nil {
			service.fail(w, r, err)
			return
		}

		resource, err := endpoint.Resource(r.Context(), key)
		if err != nil {
			service.log.Info().Err(err).Str("kind", kind.String()).Str("key", key).Msg("failed to load resource")
			service.fail(w, r, err)
			return
		}

		render.JSON(w, r, resource)
	}
}

func (service *httpService) getView() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind := we.ContractKind(chi.URLParam(r, "kind"))
		key := chi.URLParam(r, "key")
		method := we.MethodName(chi.URLParam(r, "method"))
		start := time.Now()

		endpoint, err := service.registry.Lookup(kind)
		if err != nil {
			service.fail(w, r, err)
			return
		}

		result, err := endpoint.View(r.Context(), key, method)
		service.observe(endpoint, method, err, false, start)
		if err != nil {
			service.fail(w, r, err)
			return
		}

		render.JSON(w, r, render.M{"result": result})
	}
}

func (service *httpService) executeCall() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		kind := we.ContractKind(chi.URLParam(r, "kind"))
		key := chi.URLParam(r, "key")
		start := time.Now()

		contentType := r.Header.Get("Content-type")
		mediaType, _, err := mime.ParseMediaType(contentType)
		if mediaType != "application/json" || err != nil {
			service.respond(w, r, http.StatusUnsupportedMediaType, "unsupported content type")
			return
		}

		endpoint, err := service.registry.Lookup(kind)
		if err != nil {
			service.fail(w, r, err)
			return
		}

		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, MaxCallBytes))
		if err != nil {
			var tooLarge *http.MaxBytesError
			if errors.As(err, &tooLarge) {
				service.respond(w, r, http.StatusRequestEntityTooLarge, "request body too large")
				return
			}
			service.respond(w, r, http.StatusBadRequest, "invalid request body")
			return
		}

		var call we.RemoteCall
		if err := json.Unmarshal(body, &call); err != nil || call.Method == "" {
			service.log.Info().Err(err).Msg("failed to unmarshal call")
			service.respond(w, r, http.StatusBadRequest, "invalid request body")
			return
		}

		correlationId := r.Header.Get(CorrelationHeader)
		if correlationId == "" {
			correlationId = uuid.NewString()
		}
		w.Header().Set(CorrelationHeader, correlationId)

		result, err := endpoint.Call(r.Context(), key, call, we.WithCorrelationId(we.CorrelationID(correlationId)))
		service.observe(endpoint, call.Method, err, result.Committed, start)
		if err != nil {
			service.log.Info().Err(err).Str("kind", kind.String()).Str("key", key).Str("method", call.Method.String()).Msg("call failed")
			service.fail(w, r, err)
			return
		}

		if !result.Committed {
			render.JSON(w, r, render.M{"result": result.Result})
			return
		}

		response := make(we.Resource, len(result.Resource)+1)
		for k, v := range result.Resource {
			response[k] = v
		}
		response["$logs"] = result.Logs

		render.JSON(w, r, response)
	}
}

func (service *httpService) observe(endpoint we.Endpoint, method we.MethodName, err error, committed bool, start time.Time) {
	outcome := metrics.OutcomeViewed
	switch {
	case err != nil && StatusOf(err) < http.StatusInternalServerError:
		outcome = metrics.OutcomeRejected
	case err != nil:
		outcome = metrics.OutcomeFailed
	case committed:
		outcome = metrics.OutcomeCommitted
	}

	service.metrics.ObserveCall(endpoint.Kind().String(), methodLabel(endpoint, method), outcome, time.Since(start))
}

// methodLabel keeps metric cardinality bounded by the declared methods and views.
func methodLabel(endpoint we.Endpoint, method we.MethodName) string {
	for _, names := range [][]we.MethodName{endpoint.Methods(), endpoint.Views()} {
		for _, name := range names {
			if name == method {
				return method.String()
			}
		}
	}

	return UnknownMethod
}

func (service *httpService) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusOf(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		message = "internal error"
	}

	service.respond(w, r, status, message)
}

func (service *httpService) respond(w http.ResponseWriter, r *http.Request, status int, message string) {
	render.Status(r, status)
	render.JSON(w, r, render.M{"error": message})
}

// Package welambda serves contract calls behind an API Gateway HTTP API.
package welambda

import (
	"context"
	"encoding/base64"
	"net/http"
	"strings"

	"github.com/aws/aws-lambda-go/events"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/weegigs/wee-ledger/connectors/wehttp"
	"github.com/weegigs/wee-ledger/we"
)

type GatewayHandler = func(ctx context.Context, event events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error)

type HandlerOption func(*gateway)

func Logger(log *zerolog.Logger) HandlerOption {
	return func(g *gateway) {
		g.log = log
	}
}

type gateway struct {
	registry we.Registry
	log      *zerolog.Logger
}

// NewHandler routes on the kind, key and method path parameters, so the API
// routes must be declared as /{kind}/{key} and /{kind}/{key}/{method}.
func NewHandler(registry we.Registry, options ...HandlerOption) GatewayHandler {
	g := &gateway{registry: registry}
	for _, option := range options {
		option(g)
	}
	if g.log == nil {
		g.log = &log.Logger
	}

	return g.handle
}

func (g *gateway) handle(ctx context.Context, event events.APIGatewayV2HTTPRequest) (events.APIGatewayV2HTTPResponse, error) {
	kind := we.ContractKind(event.PathParameters["kind"])
	key := event.PathParameters["key"]
	method := we.MethodName(event.PathParameters["method"])

	if kind == "" || key == "" {
		return failure(http.StatusBadRequest, "missing contract kind or key")
	}

	endpoint, err := g.registry.Lookup(kind)
	if err != nil {
		return fail(err)
	}

	switch event.RequestContext.HTTP.Method {
	case http.MethodGet:
		if method == "" {
			resource, err := endpoint.Resource(ctx, key)
			if err != nil {
				return fail(err)
			}
			return respond(http.StatusOK, resource, nil)
		}

		result, err := endpoint.View(ctx, key, method)
		if err != nil {
			return fail(err)
		}
		return respond(http.StatusOK, map[string]any{"result": result}, nil)

	case http.MethodPost:
		body := []byte(event.Body)
		if event.IsBase64Encoded {
			body, err = base64.StdEncoding.DecodeString(event.Body)
			if err != nil {
				return failure(http.StatusBadRequest, "invalid request body")
			}
		}

		var call we.RemoteCall
		if err := json.Unmarshal(body, &call); err != nil || call.Method == "" {
			return failure(http.StatusBadRequest, "invalid request body")
		}

		correlationId := header(event.Headers, wehttp.CorrelationHeader)
		if correlationId == "" {
			correlationId = event.RequestContext.RequestID
		}
		if correlationId == "" {
			correlationId = uuid.NewString()
		}

		result, err := endpoint.Call(ctx, key, call, we.WithCorrelationId(we.CorrelationID(correlationId)))
		if err != nil {
			g.log.Info().Err(err).Str("kind", kind.String()).Str("key", key).Str("method", call.Method.String()).Msg("call failed")
			return fail(err)
		}

		headers := map[string]string{wehttp.CorrelationHeader: correlationId}
		if !result.Committed {
			return respond(http.StatusOK, map[string]any{"result": result.Result}, headers)
		}

		response := make(we.Resource, len(result.Resource)+1)
		for k, v := range result.Resource {
			response[k] = v
		}
		response["$logs"] = result.Logs

		return respond(http.StatusOK, response, headers)

	default:
		return failure(http.StatusMethodNotAllowed, "method not allowed")
	}
}

// API Gateway lower cases header names.
func header(headers map[string]string, name string) string {
	if value, ok := headers[name]; ok {
		return value
	}

	return headers[strings.ToLower(name)]
}

func respond(status int, body any, headers map[string]string) (events.APIGatewayV2HTTPResponse, error) {
	encoded, err := json.Marshal(body)
	if err != nil {
		return events.APIGatewayV2HTTPResponse{}, err
	}

	all := map[string]string{"Content-Type": "application/json"}
	for k, v := range headers {
		all[k] = v
	}

	return events.APIGatewayV2HTTPResponse{
		StatusCode: status,
		Headers:    all,
		Body:       string(encoded),
	}, nil
}

func fail(err error) (events.APIGatewayV2HTTPResponse, error) {
	status := wehttp.StatusOf(err)
	if status == http.StatusInternalServerError {
		return events.APIGatewayV2HTTPResponse{}, err
	}

	return failure(status, err.Error())
}

func failure(status int, message string) (events.APIGatewayV2HTTPResponse, error) {
	return respond(status, map[string]string{"error": message}, nil)
}

package welambda_test

import (
	"context"
	"encoding/base64"
	"net/http"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"

	"github.com/weegigs/wee-ledger/connectors/welambda"
	"github.com/weegigs/wee-ledger/contracts/calculator"
	"github.com/weegigs/wee-ledger/contracts/counter"
	"github.com/weegigs/wee-ledger/stores/memory"
	"github.com/weegigs/wee-ledger/we"
)

func request(method string, params map[string]string, body string) events.APIGatewayV2HTTPRequest {
	event := events.APIGatewayV2HTTPRequest{
		PathParameters: params,
		Body:           body,
		Headers:        map[string]string{"x-correlation-id": "lambda-test"},
	}
	event.RequestContext.HTTP.Method = method

	return event
}

func decode(t *testing.T, response events.APIGatewayV2HTTPResponse) map[string]any {
	var body map[string]any
	assert.Nil(t, json.Unmarshal([]byte(response.Body), &body))
	return body
}

func TestGatewayHandler(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStateStore()
	handler := welambda.NewHandler(we.NewRegistry(
		counter.NewEndpoint(counter.NewService(store, we.BinaryStateMarshaller{})),
		calculator.NewEndpoint(calculator.NewService(store, we.BinaryStateMarshaller{})),
	))

	t.Run("executes calls", func(t *testing.T) {
		response, err := handler(ctx, request(http.MethodPost, map[string]string{"kind": "counter", "key": "lambda"}, `{"method": "decrement"}`))
		if !assert.Nil(t, err) {
			return
		}

		assert.Equal(t, http.StatusOK, response.StatusCode)
		assert.Equal(t, "lambda-test", response.Headers["X-Correlation-Id"])

		body := decode(t, response)
		assert.Equal(t, -2.0, body["val"])
		assert.Len(t, body["$logs"], 2)
	})

	t.Run("decodes base64 bodies", func(t *testing.T) {
		event := request(http.MethodPost, map[string]string{"kind": "calculator", "key": "lambda"}, base64.StdEncoding.EncodeToString([]byte(`{"method": "mul", "args": {"x": 3, "y": 4}}`)))
		event.IsBase64Encoded = true

		response, err := handler(ctx, event)
		if !assert.Nil(t, err) {
			return
		}
		assert.Equal(t, 12.0, decode(t, response)["val"])
	})

	t.Run("serves resources and views", func(t *testing.T) {
		response, err := handler(ctx, request(http.MethodGet, map[string]string{"kind": "counter", "key": "lambda"}, ""))
		if !assert.Nil(t, err) {
			return
		}
		assert.Equal(t, "counter.lambda", decode(t, response)["$id"])

		response, err = handler(ctx, request(http.MethodGet, map[string]string{"kind": "counter", "key": "lambda", "method": "get_value"}, ""))
		if !assert.Nil(t, err) {
			return
		}
		assert.Equal(t, -2.0, decode(t, response)["result"])
	})

	t.Run("maps errors", func(t *testing.T) {
		response, _ := handler(ctx, request(http.MethodGet, map[string]string{"kind": "counter"}, ""))
		assert.Equal(t, http.StatusBadRequest, response.StatusCode)

		response, _ = handler(ctx, request(http.MethodGet, map[string]string{"kind": "abacus", "key": "x"}, ""))
		assert.Equal(t, http.StatusNotFound, response.StatusCode)

		response, _ = handler(ctx, request(http.MethodPost, map[string]string{"kind": "calculator", "key": "x"}, `{"method": "div", "args": [4, 0]}`))
		assert.Equal(t, http.StatusUnprocessableEntity, response.StatusCode)

		response, _ = handler(ctx, request(http.MethodDelete, map[string]string{"kind": "calculator", "key": "x"}, ""))
		assert.Equal(t, http.StatusMethodNotAllowed, response.StatusCode)

		response, _ = handler(ctx, request(http.MethodGet, map[string]string{"kind": "counter", "key": ">", "method": "get_num"}, ""))
		assert.Equal(t, http.StatusBadRequest, response.StatusCode)
	})

	t.Run("decodes positional arguments", func(t *testing.T) {
		response, err := handler(ctx, request(http.MethodPost, map[string]string{"kind": "calculator", "key": "positional"}, `{"method": "multiply", "args": [3, 3]}`))
		if !assert.Nil(t, err) {
			return
		}

		assert.Equal(t, http.StatusOK, response.StatusCode)
		body := decode(t, response)
		assert.Equal(t, 9.0, body["val"])
		assert.Equal(t, []any{"Multiplied 3 by 3: 9", "Make sure you don't overflow, my friend."}, body["$logs"])
	})
}

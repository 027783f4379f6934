package wehttp_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/goccy/go-json"
	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/weegigs/wee-ledger/connectors/wehttp"
	"github.com/weegigs/wee-ledger/contracts/calculator"
	"github.com/weegigs/wee-ledger/contracts/counter"
	"github.com/weegigs/wee-ledger/internal/metrics"
	"github.com/weegigs/wee-ledger/stores/memory"
	"github.com/weegigs/wee-ledger/we"
)

func newServer(recorder metrics.Recorder) http.Handler {
	store := memory.NewStateStore()
	marshaller := we.JsonStateMarshaller{}
	registry := we.NewRegistry(
		counter.NewEndpoint(counter.NewService(store, marshaller)),
		calculator.NewEndpoint(calculator.NewService(store, marshaller)),
	)

	return wehttp.NewHandler(registry, wehttp.Metrics(recorder))
}

func post(handler http.Handler, path string, body string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	request.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, request)
	return w
}

func get(handler http.Handler, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	var body map[string]any
	assert.Nil(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestHttpHandler(t *testing.T) {
	recorder := metrics.NewPrometheusRecorder(prom.NewRegistry())
	handler := newServer(recorder)

	t.Run("returns the zero state for a new contract", func(t *testing.T) {
		w := get(handler, "/counter/fresh")
		assert.Equal(t, http.StatusOK, w.Code)

		body := decode(t, w)
		assert.Equal(t, 0.0, body["val"])
		assert.Equal(t, "counter.fresh", body["$id"])
		assert.Equal(t, string(we.InitialRevision), body["$revision"])
	})

	t.Run("executes a call and returns its logs", func(t *testing.T) {
		w := post(handler, "/counter/http", `{"method": "increment"}`)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.NotEmpty(t, w.Header().Get(wehttp.CorrelationHeader))

		body := decode(t, w)
		assert.Equal(t, 2.0, body["val"])
		assert.Equal(t, []any{"Increased number to 2", "Make sure you don't overflow, my friend."}, body["$logs"])
	})

	t.Run("keeps the caller's correlation id", func(t *testing.T) {
		request := httptest.NewRequest(http.MethodPost, "/counter/http", strings.NewReader(`{"method": "reset"}`))
		request.Header.Set("Content-Type", "application/json")
		request.Header.Set(wehttp.CorrelationHeader, "abc")
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, request)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "abc", w.Header().Get(wehttp.CorrelationHeader))
	})

	t.Run("executes calls with arguments", func(t *testing.T) {
		w := post(handler, "/calculator/args", `{"method": "multiply", "args": [3, 3]}`)
		assert.Equal(t, http.StatusOK, w.Code)

		body := decode(t, w)
		assert.Equal(t, 9.0, body["val"])
		assert.Equal(t, []any{"Multiplied 3 by 3: 9", "Make sure you don't overflow, my friend."}, body["$logs"])

		w = post(handler, "/calculator/args", `{"method": "divide", "args": {"x": 20, "y": 10}}`)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 2.0, decode(t, w)["val"])
	})

	t.Run("rejects keys that address more than one contract", func(t *testing.T) {
		assert.Equal(t, http.StatusBadRequest, get(handler, "/counter/%3E/get_num").Code)
		assert.Equal(t, http.StatusBadRequest, get(handler, "/counter/a*b").Code)
		assert.Equal(t, http.StatusBadRequest, get(handler, "/counter/a%20b").Code)
		assert.Equal(t, http.StatusBadRequest, post(handler, "/counter/%3E", `{"method": "increment"}`).Code)
	})

	t.Run("rejects oversized bodies", func(t *testing.T) {
		body := `{"method": "increment", "args": "` + strings.Repeat("x", wehttp.MaxCallBytes) + `"}`
		assert.Equal(t, http.StatusRequestEntityTooLarge, post(handler, "/counter/large", body).Code)
	})

	t.Run("serves views by path and by call", func(t *testing.T) {
		post(handler, "/calculator/view", `{"method": "mul", "args": [5, 20]}`)

		w := get(handler, "/calculator/view/get_result")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 100.0, decode(t, w)["result"])

		w = post(handler, "/calculator/view", `{"method": "get_result"}`)
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, 100.0, decode(t, w)["result"])
	})

	t.Run("maps errors to statuses", func(t *testing.T) {
		assert.Equal(t, http.StatusNotFound, get(handler, "/abacus/one").Code)
		assert.Equal(t, http.StatusNotFound, post(handler, "/counter/errors", `{"method": "multiply"}`).Code)
		assert.Equal(t, http.StatusBadRequest, post(handler, "/calculator/errors", `{"method": "divide", "args": {"x": 1}}`).Code)
		assert.Equal(t, http.StatusBadRequest, post(handler, "/calculator/errors", `not json`).Code)
		assert.Equal(t, http.StatusUnprocessableEntity, post(handler, "/calculator/errors", `{"method": "div", "args": [1, 0]}`).Code)

		request := httptest.NewRequest(http.MethodPost, "/counter/errors", strings.NewReader(`{"method": "increment"}`))
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, request)
		assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
	})

	t.Run("lists contracts", func(t *testing.T) {
		w := get(handler, "/")
		assert.Equal(t, http.StatusOK, w.Code)

		var contracts []map[string]any
		assert.Nil(t, json.Unmarshal(w.Body.Bytes(), &contracts))
		assert.Len(t, contracts, 2)
		assert.Equal(t, "calculator", contracts[0]["kind"])
	})

	t.Run("records call outcomes", func(t *testing.T) {
		count, err := testutil.GatherAndCount(recorder.Registry(), "ledger_calls_total")
		assert.Nil(t, err)
		assert.Greater(t, count, 0)
	})
}

type observation struct {
	kind    string
	method  string
	outcome metrics.Outcome
}

type capture struct {
	observed []observation
}

func (c *capture) ObserveCall(kind string, method string, outcome metrics.Outcome, _ time.Duration) {
	c.observed = append(c.observed, observation{kind, method, outcome})
}

func TestCallOutcomes(t *testing.T) {
	recorder := &capture{}
	handler := newServer(recorder)

	post(handler, "/counter/outcomes", `{"method": "increment"}`)
	post(handler, "/counter/outcomes", `{"method": "get_num"}`)
	get(handler, "/counter/outcomes/get_value")
	post(handler, "/calculator/outcomes", `{"method": "div", "args": [1, 0]}`)
	post(handler, "/counter/outcomes", `{"method": "junk"}`)
	get(handler, "/counter/outcomes/bogus")

	assert.Equal(t, []observation{
		{"counter", "increment", metrics.OutcomeCommitted},
		{"counter", "get_num", metrics.OutcomeViewed},
		{"counter", "get_value", metrics.OutcomeViewed},
		{"calculator", "div", metrics.OutcomeRejected},
		{"counter", wehttp.UnknownMethod, metrics.OutcomeRejected},
		{"counter", wehttp.UnknownMethod, metrics.OutcomeRejected},
	}, recorder.observed)
}

func TestMethodLabelsStayBounded(t *testing.T) {
	recorder := metrics.NewPrometheusRecorder(prom.NewRegistry())
	handler := newServer(recorder)

	for i := 0; i < 50; i++ {
		get(handler, fmt.Sprintf("/counter/bounded/bogus%d", i))
		post(handler, "/counter/bounded", fmt.Sprintf(`{"method": "junk%d"}`, i))
	}

	count, err := testutil.GatherAndCount(recorder.Registry(), "ledger_calls_total")
	assert.Nil(t, err)
	assert.Equal(t, 1, count)
}

func TestStatusOf(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, wehttp.StatusOf(we.MethodNotFound("nope")))
	assert.Equal(t, http.StatusNotFound, wehttp.StatusOf(we.ContractNotFound("nope")))
	assert.Equal(t, http.StatusBadRequest, wehttp.StatusOf(we.InvalidArguments("mul", assert.AnError)))
	assert.Equal(t, http.StatusBadRequest, wehttp.StatusOf(we.InvalidContractId(we.ContractId{Kind: "counter", Key: ">"}, "contains a wildcard")))
	assert.Equal(t, http.StatusConflict, wehttp.StatusOf(we.RevisionConflict))
	assert.Equal(t, http.StatusInternalServerError, wehttp.StatusOf(assert.AnError))
}

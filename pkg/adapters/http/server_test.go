package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/aretw0/tmsim"
	"github.com/aretw0/tmsim/internal/logging"
	"github.com/aretw0/tmsim/pkg/document"
	"github.com/aretw0/tmsim/pkg/domain"
	"github.com/aretw0/tmsim/pkg/observability"
)

const valid = "alphabet: (#ab )\ntape: (*ab )\nq0(a) -> q0(a)R\nq0( ) -> q1( )L\n"

func newTestHandler(opts ...HandlerOption) http.Handler {
	opts = append([]HandlerOption{WithLogger(logging.NewNop())}, opts...)
	return NewHandler(tmsim.New(), opts...)
}

func TestConvert_JSON(t *testing.T) {
	handler := newTestHandler()

	req := httptest.NewRequest("POST", "/convert", strings.NewReader(valid))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	assert.NotEmpty(t, w.Header().Get(HeaderRequestID))

	var doc document.Document
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &doc))
	assert.Len(t, doc.Rules, 2)
	assert.Equal(t, []string{"#", "a", "b", " "}, doc.Alphabet)
}

func TestConvert_YAML(t *testing.T) {
	handler := newTestHandler()

	req := httptest.NewRequest("POST", "/convert?format=yaml", strings.NewReader(valid))
	req.Header.Set(HeaderRequestID, "req-42")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/yaml", w.Header().Get("Content-Type"))
	assert.Equal(t, "req-42", w.Header().Get(HeaderRequestID))

	var doc document.Document
	require.NoError(t, yaml.Unmarshal(w.Body.Bytes(), &doc))
	assert.Equal(t, "q0", doc.InitialState)
}

func TestConvert_Errors(t *testing.T) {
	tests := []struct {
		name   string
		target string
		body   string
		status int
		kind   string
		line   int
	}{
		{"Bad Format", "/convert?format=xml", valid, http.StatusBadRequest, "bad_request", 0},
		{"Syntax", "/convert", "alphabet: (a)\ntape: (a)\nnope\n", http.StatusUnprocessableEntity, domain.KindSyntax, 3},
		{"Missing Declaration", "/convert", "alphabet: (a)\n", http.StatusUnprocessableEntity, domain.KindMissingDeclaration, 0},
		{"Conflict", "/convert", "alphabet: (ab)\ntape: (a)\nq0(a) -> q1(b)R\nq0(a) -> q2(a)L\n", http.StatusUnprocessableEntity, domain.KindConflictingRule, 4},
		{"Legacy Named States", "/convert?format=legacy", "alphabet: (a)\ntape: (a)\nstart(a) -> q1(a)R\n", http.StatusUnprocessableEntity, domain.KindInternal, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := newTestHandler()

			req := httptest.NewRequest("POST", tt.target, strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			handler.ServeHTTP(w, req)

			require.Equal(t, tt.status, w.Code)
			var resp ErrorResponse
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.kind, resp.Kind)
			assert.Equal(t, tt.line, resp.Line)
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestConvert_BodyTooLarge(t *testing.T) {
	handler := newTestHandler(WithMaxBodyBytes(16))

	req := httptest.NewRequest("POST", "/convert", strings.NewReader(valid))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestValidate(t *testing.T) {
	handler := newTestHandler()

	req := httptest.NewRequest("POST", "/validate", strings.NewReader("alphabet: (a)\ntape: (a)\nq0(x) -> q1(y)R\n"))
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	var resp ValidateResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Valid)
	require.Len(t, resp.Errors, 2)
	assert.Equal(t, domain.KindUnknownSymbol, resp.Errors[0].Kind)
	assert.Equal(t, 3, resp.Errors[1].Line)

	req = httptest.NewRequest("POST", "/validate", strings.NewReader(valid))
	w = httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Valid)
	assert.Empty(t, resp.Errors)
}

func TestHealthzAndMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(reg)
	conv := tmsim.New(tmsim.WithLifecycleHooks(metrics.Hooks()))
	handler := NewHandler(conv,
		WithLogger(logging.NewNop()),
		WithMetricsHandler(promhttp.HandlerFor(reg, promhttp.HandlerOpts{})),
	)

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("POST", "/convert", strings.NewReader(valid)))
	require.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `tmsim_conversions_total{format="json",outcome="ok"} 1`)
}

func TestCORSPreflight(t *testing.T) {
	handler := newTestHandler()

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("OPTIONS", "/convert", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "*", w.Header().Get("Access-Control-Allow-Origin"))
}

package metrics

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveOperation(t *testing.T) {
	m := New(nil)

	m.ObserveOperation("deposit", nil)
	m.ObserveOperation("deposit", nil)
	m.ObserveOperation("withdraw", errors.New("insufficient funds"))

	assert.Equal(t, float64(2), testutil.ToFloat64(m.LedgerOperations.WithLabelValues("deposit", "success")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.LedgerOperations.WithLabelValues("withdraw", "failure")))
}

func TestObserveOperation_NilReceiver(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() { m.ObserveOperation("deposit", nil) })
}

func TestMiddleware_LabelsByRouteTemplate(t *testing.T) {
	m := New(nil)
	router := mux.NewRouter()
	router.HandleFunc("/statements/date", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}).Methods(http.MethodGet)
	router.Use(m.Middleware)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/statements/date?date=2024-01-01", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, float64(1), testutil.ToFloat64(m.HTTPRequests.WithLabelValues("GET", "/statements/date", "404")))
}

func TestHandler_ExposesAccountGauge(t *testing.T) {
	m := New(func() float64 { return 3 })

	srv := httptest.NewServer(m.Handler())
	defer srv.Close()

	resp, err := http.Get(srv.URL)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(body), "finapi_accounts 3"))
}

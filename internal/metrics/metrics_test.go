package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/Anas-en/College-event-management/internal/domain"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestRecorder_ObserveLoad(t *testing.T) {
	r := New()

	r.ObserveLoad("events", domain.LoadOK, 3)
	r.ObserveLoad("events", domain.LoadOK, 4)
	r.ObserveLoad("events", domain.LoadUnavailable, 0)

	assert.Equal(t, 2.0, testutil.ToFloat64(r.loads.WithLabelValues("events", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.loads.WithLabelValues("events", "unavailable")))
	assert.Equal(t, 4.0, testutil.ToFloat64(r.collectionSize.WithLabelValues("events")))
}

func TestRecorder_ObserveSave(t *testing.T) {
	r := New()

	r.ObserveSave("registrations", 7)

	assert.Equal(t, 1.0, testutil.ToFloat64(r.saves.WithLabelValues("registrations")))
	assert.Equal(t, 7.0, testutil.ToFloat64(r.collectionSize.WithLabelValues("registrations")))
}

func TestRecorder_ObserveBootstrap(t *testing.T) {
	r := New()

	r.ObserveBootstrap(domain.BootstrapFailed)
	r.ObserveBootstrap(domain.BootstrapSeeded)

	assert.Equal(t, 1.0, testutil.ToFloat64(r.bootstraps.WithLabelValues("failed")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.bootstraps.WithLabelValues("seeded")))
}

func TestRecorder_Handler(t *testing.T) {
	r := New()
	r.ObserveBootstrap(domain.BootstrapExisting)

	w := httptest.NewRecorder()
	r.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `event_board_bootstrap_total{outcome="existing"} 1`)
}

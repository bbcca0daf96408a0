package metrics_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cafe-inventory/pkg/metrics"
)

func TestHandler_PublicaFuentes(t *testing.T) {
	reg := metrics.NewRegistry(metrics.Sources{
		Items:         func() int { return 3 },
		Online:        func() bool { return false },
		Notifications: func() uint64 { return 7 },
	})

	rec := httptest.NewRecorder()
	metrics.Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	body := rec.Body.String()
	assert.Contains(t, body, "cafe_inventory_items 3")
	assert.Contains(t, body, "cafe_online 0")
	assert.Contains(t, body, "cafe_notifications_total 7")
	assert.Contains(t, body, "go_goroutines")
}

func TestNewRegistry_FuentesNilNoSeRegistran(t *testing.T) {
	reg := metrics.NewRegistry(metrics.Sources{})

	rec := httptest.NewRecorder()
	metrics.Handler(reg).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.NotContains(t, rec.Body.String(), "cafe_")
}

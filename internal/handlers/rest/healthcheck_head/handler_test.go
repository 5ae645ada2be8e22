package healthcheck_head_test

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"easygo/internal/handlers/rest/healthcheck_head"
)

func TestHealthcheckHeadHandler(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name           string
		isShuttingDown bool
		expectedStatus int
	}{
		{
			name:           "Сервис работает, возвращает 204",
			isShuttingDown: false,
			expectedStatus: http.StatusNoContent,
		},
		{
			name:           "Сервис останавливается, возвращает 503",
			isShuttingDown: true,
			expectedStatus: http.StatusServiceUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var isShuttingDown atomic.Bool
			isShuttingDown.Store(tt.isShuttingDown)

			handler := healthcheck_head.New(&isShuttingDown)
			req := httptest.NewRequest(http.MethodHead, "/healthcheck", http.NoBody)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code, "unexpected status code")
		})
	}
}

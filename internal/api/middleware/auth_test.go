package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/glossup/GLS-SchedulingService/internal/domain"
)

func TestAuth(t *testing.T) {
	tests := []struct {
		name       string
		userID     string
		userRole   string
		wantStatus int
		wantID     int64
		wantRole   domain.ActorRole
	}{
		{"customer", "3", "customer", http.StatusOK, 3, domain.RoleCustomer},
		{"company manager", "8", "company", http.StatusOK, 8, domain.RoleCompany},
		{"missing headers", "", "", http.StatusUnauthorized, 0, ""},
		{"non-numeric id", "abc", "customer", http.StatusUnauthorized, 0, ""},
		{"zero id", "0", "customer", http.StatusUnauthorized, 0, ""},
		{"negative id", "-5", "customer", http.StatusUnauthorized, 0, ""},
		{"unknown role", "3", "admin", http.StatusUnauthorized, 0, ""},
		{"missing role", "3", "", http.StatusUnauthorized, 0, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotID int64
			var gotRole domain.ActorRole
			called := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				var ok bool
				gotID, gotRole, ok = ActorFromContext(r.Context())
				require.True(t, ok)
				called = true
			})

			req := httptest.NewRequest(http.MethodGet, "/api/v1/bookings/1", nil)
			if tt.userID != "" {
				req.Header.Set(HeaderUserID, tt.userID)
			}
			if tt.userRole != "" {
				req.Header.Set(HeaderUserRole, tt.userRole)
			}
			rec := httptest.NewRecorder()

			Auth(next).ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.True(t, called)
				assert.Equal(t, tt.wantID, gotID)
				assert.Equal(t, tt.wantRole, gotRole)
			} else {
				assert.False(t, called, "rejected request must not reach the handler")
				assert.JSONEq(t, `{"error":"unauthorized"}`, rec.Body.String())
			}
		})
	}
}

func TestActorFromContextWithoutAuth(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	_, _, ok := ActorFromContext(req.Context())
	assert.False(t, ok)
}

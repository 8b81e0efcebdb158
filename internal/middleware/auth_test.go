package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/parlor-dev/parlor/internal/domain"
	jwt_internal "github.com/parlor-dev/parlor/internal/jwt"
)

func TestNeedAuth(t *testing.T) {
	jwtService := jwt_internal.New("test_secret", time.Hour)
	user := &domain.User{Id: primitive.NewObjectID(), Username: "alice", Email: "alice@example.com"}
	token, err := jwtService.NewToken(user)
	require.NoError(t, err)

	tests := []struct {
		name           string
		cookie         *http.Cookie
		header         string
		expectedStatus int
		authenticated  bool
	}{
		{
			name:           "Valid cookie",
			cookie:         &http.Cookie{Name: "accessToken", Value: token},
			expectedStatus: http.StatusOK,
			authenticated:  true,
		},
		{
			name:           "Valid bearer header",
			header:         "Bearer " + token,
			expectedStatus: http.StatusOK,
			authenticated:  true,
		},
		{
			name:           "No token",
			expectedStatus: http.StatusUnauthorized,
		},
		{
			name:           "Invalid token",
			cookie:         &http.Cookie{Name: "accessToken", Value: "invalid_token"},
			expectedStatus: http.StatusUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", "http://example.com", nil)
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()

			handler := NeedAuth(jwtService)(func(w http.ResponseWriter, r *http.Request) {
				principal := GetUserFromContext(r)
				require.NotNil(t, principal, "authenticated requests must carry the principal in context")
				assert.Equal(t, user.Id, principal.AuthorId)
				assert.Equal(t, user.Username, principal.Username)
				assert.Equal(t, user.Email, principal.Email)
				w.WriteHeader(http.StatusOK)
			})
			handler(rr, req)

			assert.Equal(t, tt.expectedStatus, rr.Code)
			if !tt.authenticated {
				assert.Nil(t, GetUserFromContext(req))
			}
		})
	}
}

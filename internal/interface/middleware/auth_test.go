package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/explorea/countries-api/pkg/helpers"
)

func newGateRouter(jwt *helpers.JWTManager) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/protected", Auth(jwt, nil), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"user_id": c.GetString(CtxUserIDKey)})
	})
	return r
}

func gateRequest(t *testing.T, r *gin.Engine, authHeader string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not JSON: %v", err)
	}
	return w, body
}

func TestAuth_NoToken(t *testing.T) {
	jwt := &helpers.JWTManager{Secret: []byte("secret"), TokenTTL: time.Hour}
	r := newGateRouter(jwt)

	w, body := gateRequest(t, r, "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if body["message"] != "No token provided." {
		t.Fatalf("unexpected message: %v", body["message"])
	}
}

func TestAuth_NonBearerScheme(t *testing.T) {
	jwt := &helpers.JWTManager{Secret: []byte("secret"), TokenTTL: time.Hour}
	r := newGateRouter(jwt)

	w, body := gateRequest(t, r, "Basic dXNlcjpwdw==")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if body["message"] != "No token provided." {
		t.Fatalf("unexpected message: %v", body["message"])
	}
}

func TestAuth_MalformedToken(t *testing.T) {
	jwt := &helpers.JWTManager{Secret: []byte("secret"), TokenTTL: time.Hour}
	r := newGateRouter(jwt)

	w, body := gateRequest(t, r, "Bearer not-a-valid-jwt")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if body["message"] != "Token is not valid." {
		t.Fatalf("unexpected message: %v", body["message"])
	}
}

func TestAuth_ExpiredToken(t *testing.T) {
	expired := &helpers.JWTManager{Secret: []byte("secret"), TokenTTL: -1 * time.Minute}
	tok, _, err := expired.Issue("user-1")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	jwt := &helpers.JWTManager{Secret: []byte("secret"), TokenTTL: time.Hour}
	r := newGateRouter(jwt)

	w, body := gateRequest(t, r, "Bearer "+tok)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if body["message"] != "Token is not valid." {
		t.Fatalf("unexpected message: %v", body["message"])
	}
}

func TestAuth_ValidTokenInjectsIdentity(t *testing.T) {
	jwt := &helpers.JWTManager{Secret: []byte("secret"), TokenTTL: time.Hour}
	tok, _, err := jwt.Issue("user-42")
	if err != nil {
		t.Fatalf("Issue error: %v", err)
	}

	r := newGateRouter(jwt)
	w, body := gateRequest(t, r, "Bearer "+tok)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if body["user_id"] != "user-42" {
		t.Fatalf("expected user-42 in context, got %v", body["user_id"])
	}
}

package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/chirp-bdsa/chirp/database/dbtest"
	"github.com/golang-jwt/jwt/v5"
)

const testJWTSecret = "chirp_test_jwt_secret_key_1234567890"

func newTestRouter(t *testing.T, extra map[string]string) http.Handler {
	t.Helper()
	c := map[string]string{"JWT_SECRET": testJWTSecret}
	for k, v := range extra {
		c[k] = v
	}
	return newRouter(dbtest.New(t), withConfig(c))
}

func makeTestJWT(t *testing.T, name, email string, expiresIn time.Duration) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"name":  name,
		"email": email,
		"exp":   time.Now().Add(expiresIn).Unix(),
	})
	signed, err := token.SignedString([]byte(testJWTSecret))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}
	return signed
}

func tokenFor(t *testing.T, name string) string {
	t.Helper()
	return makeTestJWT(t, name, strings.ToLower(name)+"@chirp.test", time.Hour)
}

func doRequest(t *testing.T, h http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func mustStatus(t *testing.T, rec *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if rec.Code != expected {
		t.Fatalf("expected status %d, got %d: %s", expected, rec.Code, rec.Body.String())
	}
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(rec.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", rec.Body.String(), err)
	}
	return v
}

func mustPostCheep(t *testing.T, h http.Handler, author, text string) {
	t.Helper()
	body, _ := json.Marshal(createCheepRequest{Text: text})
	rec := doRequest(t, h, http.MethodPost, "/cheeps", tokenFor(t, author), string(body))
	mustStatus(t, rec, http.StatusCreated)
}

func doPreflight(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

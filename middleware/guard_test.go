package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestBearerToken(t *testing.T) {
	cases := []struct {
		header string
		token  string
		ok     bool
	}{
		{"Bearer abc", "abc", true},
		{"Bearer ", "", false},
		{"", "", false},
		{"Basic abc", "", false},
		{"bearer abc", "", false},
	}
	for _, c := range cases {
		token, ok := bearerToken(c.header)
		if token != c.token || ok != c.ok {
			t.Fatalf("bearerToken(%q) = (%q, %v), want (%q, %v)", c.header, token, ok, c.token, c.ok)
		}
	}
}

func TestGuardNilEngine(t *testing.T) {
	handler := Guard(nil)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("next handler must not run")
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Bearer something")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestIdentityFromContextMissing(t *testing.T) {
	if _, ok := IdentityFromContext(context.Background()); ok {
		t.Fatal("empty context must not yield an identity")
	}
}

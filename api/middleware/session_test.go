package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/uuid"
)

func sessionHandler(t *testing.T, captured *string) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		*captured = CartSessionFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
}

func TestCartSessionAssignsNewVisitor(t *testing.T) {
	t.Parallel()

	var seen string
	handler := CartSession(nil, time.Hour, false)(sessionHandler(t, &seen))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest("GET", "/", nil))

	if _, err := uuid.Parse(seen); err != nil {
		t.Fatalf("expected a uuid session id, got %q", seen)
	}

	cookies := w.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != sessionCookieName {
		t.Fatalf("expected session cookie, got %+v", cookies)
	}
	if cookies[0].Value != seen {
		t.Fatal("cookie and context session must match")
	}
	if !cookies[0].HttpOnly || cookies[0].SameSite != http.SameSiteLaxMode {
		t.Fatalf("unexpected cookie attributes: %+v", cookies[0])
	}
}

func TestCartSessionReusesValidCookie(t *testing.T) {
	t.Parallel()

	var seen string
	handler := CartSession(nil, time.Hour, false)(sessionHandler(t, &seen))

	existing := uuid.NewString()
	r := httptest.NewRequest("GET", "/", nil)
	r.AddCookie(&http.Cookie{Name: sessionCookieName, Value: existing})

	handler.ServeHTTP(httptest.NewRecorder(), r)

	if seen != existing {
		t.Fatalf("expected session %q to be reused, got %q", existing, seen)
	}
}

func TestCartSessionReplacesMalformedCookie(t *testing.T) {
	t.Parallel()

	var seen string
	handler := CartSession(nil, time.Hour, false)(sessionHandler(t, &seen))

	r := httptest.NewRequest("GET", "/", nil)
	r.AddCookie(&http.Cookie{Name: sessionCookieName, Value: "not-a-uuid"})

	handler.ServeHTTP(httptest.NewRecorder(), r)

	if seen == "not-a-uuid" {
		t.Fatal("malformed session value must not be accepted")
	}
	if _, err := uuid.Parse(seen); err != nil {
		t.Fatalf("expected replacement uuid, got %q", seen)
	}
}

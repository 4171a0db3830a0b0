package middleware

import (
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
)

func testContext() echo.Context {
	e := echo.New()
	req := httptest.NewRequest("GET", "/v1/my-bookings", nil)
	return e.NewContext(req, httptest.NewRecorder())
}

// The JWT middleware stores the token subject under "user_id" as the
// float64 the claims decoder produced.  The rate limiter must key on
// that value, not fall through to the anonymous bucket.
func TestCurrentUserIDReadsJWTSubject(t *testing.T) {
	c := testContext()
	c.Set("user_id", float64(7))
	if got := currentUserID(c); got != "7" {
		t.Fatalf("expected user id 7, got %q", got)
	}

	c = testContext()
	c.Set("user_id", "42")
	if got := currentUserID(c); got != "42" {
		t.Fatalf("expected user id 42, got %q", got)
	}

	if got := currentUserID(testContext()); got != "anon" {
		t.Fatalf("expected anon without a session, got %q", got)
	}
}

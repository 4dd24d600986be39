package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/voicedeck/recorder-api/internal/core/domain"
)

type fakeSessions struct {
	tokens map[string]int64
}

func (f *fakeSessions) Start(ctx context.Context, userID int64) (string, error) {
	return "", errors.New("not implemented")
}

func (f *fakeSessions) Resolve(ctx context.Context, token string) (int64, error) {
	id, ok := f.tokens[token]
	if !ok {
		return 0, domain.ErrNotLoggedIn
	}
	return id, nil
}

func (f *fakeSessions) End(ctx context.Context, token string) error {
	return nil
}

func runSession(t *testing.T, cookie *http.Cookie, sessions *fakeSessions) (int64, bool, error) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	c := e.NewContext(req, httptest.NewRecorder())

	var gotID int64
	var gotOK bool
	next := func(c echo.Context) error {
		gotID, gotOK = UserID(c)
		return nil
	}

	err := Session(sessions)(next)(c)
	return gotID, gotOK, err
}

func TestSessionMissingCookie(t *testing.T) {
	_, _, err := runSession(t, nil, &fakeSessions{})
	if !errors.Is(err, domain.ErrNotLoggedIn) {
		t.Errorf("err = %v, want ErrNotLoggedIn", err)
	}
}

func TestSessionEmptyCookie(t *testing.T) {
	cookie := &http.Cookie{Name: CookieName, Value: ""}
	_, _, err := runSession(t, cookie, &fakeSessions{})
	if !errors.Is(err, domain.ErrNotLoggedIn) {
		t.Errorf("err = %v, want ErrNotLoggedIn", err)
	}
}

func TestSessionUnknownToken(t *testing.T) {
	cookie := &http.Cookie{Name: CookieName, Value: "bogus"}
	_, _, err := runSession(t, cookie, &fakeSessions{tokens: map[string]int64{}})
	if !errors.Is(err, domain.ErrNotLoggedIn) {
		t.Errorf("err = %v, want ErrNotLoggedIn", err)
	}
}

func TestSessionValidTokenInjectsUserID(t *testing.T) {
	cookie := &http.Cookie{Name: CookieName, Value: "tok-42"}
	sessions := &fakeSessions{tokens: map[string]int64{"tok-42": 42}}

	id, ok, err := runSession(t, cookie, sessions)
	if err != nil {
		t.Fatalf("err = %v", err)
	}
	if !ok || id != 42 {
		t.Errorf("UserID = (%d, %v), want (42, true)", id, ok)
	}
}

func TestUserIDWithoutMiddleware(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	if _, ok := UserID(c); ok {
		t.Error("UserID reported a user on a bare context")
	}
}

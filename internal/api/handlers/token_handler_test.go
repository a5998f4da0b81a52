package handlers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
func (nopLogger) Debug(string, ...interface{}) {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Fatal(string, ...interface{}) {}

type fakeMinter struct {
	token string
	err   error
}

func (f *fakeMinter) Mint(room, identity string) (string, error) {
	return f.token, f.err
}

func request(t *testing.T, minter *fakeMinter, query string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/get-token?"+query, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := NewTokenHandler(minter, nopLogger{})
	if err := h.GetToken(c); err != nil {
		t.Fatalf("handler returned error: %v", err)
	}
	return rec
}

func TestGetTokenMissingParams(t *testing.T) {
	for _, query := range []string{"", "roomName=demo", "participantName=alice"} {
		rec := request(t, &fakeMinter{token: "tok"}, query)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("query %q: expected 400, got %d", query, rec.Code)
		}
	}
}

func TestGetTokenSuccess(t *testing.T) {
	rec := request(t, &fakeMinter{token: "tok-123"}, "roomName=demo&participantName=alice")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "tok-123") {
		t.Errorf("response should contain the token, got %s", rec.Body.String())
	}
}

func TestGetTokenMintFailure(t *testing.T) {
	rec := request(t, &fakeMinter{err: errors.New("boom")}, "roomName=demo&participantName=alice")
	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500, got %d", rec.Code)
	}
}

package middleware

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

func TestRequestID_Generated(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/pacientes", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := RequestID()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatal(err)
	}

	id, _ := c.Get("request_id").(string)
	if id == "" {
		t.Fatal("request_id not set on context")
	}
	if got := rec.Header().Get(HeaderRequestID); got != id {
		t.Errorf("response header = %q, want %q", got, id)
	}
}

func TestRequestID_Propagated(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "client-supplied-id")
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := RequestID()(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatal(err)
	}

	if id, _ := c.Get("request_id").(string); id != "client-supplied-id" {
		t.Errorf("request_id = %q, want client-supplied-id", id)
	}
}

func TestLogger_WritesRequestLine(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/api/consultas", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set("request_id", "req-1")

	handler := Logger(logger)(func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	})
	if err := handler(c); err != nil {
		t.Fatal(err)
	}

	line := buf.String()
	for _, want := range []string{`"request_id":"req-1"`, `"method":"GET"`, `"path":"/api/consultas"`, `"status":200`} {
		if !strings.Contains(line, want) {
			t.Errorf("log line missing %s: %s", want, line)
		}
	}
}

func TestRecovery_ReturnsInternalError(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := Recovery(logger)(func(c echo.Context) error {
		panic("boom")
	})
	if err := handler(c); err != nil {
		t.Fatal(err)
	}

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
	if !strings.Contains(buf.String(), "panic recovered") {
		t.Error("panic not logged")
	}
}

package webserver

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zaptest"
)

func TestRequestLogger(t *testing.T) {
	logger := zaptest.NewLogger(t)
	mw := RequestLogger(logger)

	e := echo.New()

	t.Run("successful request", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ok", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		handler := mw(func(c echo.Context) error {
			return c.String(http.StatusOK, "ok")
		})

		err := handler(c)
		assert.NoError(t, err)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("failing request", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/fail", nil)
		rec := httptest.NewRecorder()
		c := e.NewContext(req, rec)

		handler := mw(func(c echo.Context) error {
			return echo.NewHTTPError(http.StatusBadRequest, "bad input")
		})

		err := handler(c)
		assert.Error(t, err)

		var he *echo.HTTPError
		assert.True(t, errors.As(err, &he))
		assert.Equal(t, http.StatusBadRequest, he.Code)
	})
}

func TestRecovery(t *testing.T) {
	logger := zaptest.NewLogger(t)
	mw := Recovery(logger)

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/panic", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	handler := mw(func(c echo.Context) error {
		panic("boom")
	})

	err := handler(c)
	assert.Error(t, err)

	var he *echo.HTTPError
	assert.True(t, errors.As(err, &he))
	assert.Equal(t, http.StatusInternalServerError, he.Code)
}

func TestNew_InvalidPort(t *testing.T) {
	_, err := New(WithPort(-1))
	assert.Error(t, err)
}

func TestNew_HealthRoute(t *testing.T) {
	srv, err := New(WithPort(8099), WithLogger(zaptest.NewLogger(t)))
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	srv.Echo().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

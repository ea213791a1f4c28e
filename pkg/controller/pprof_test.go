package controller_test

import (
	"cruise/pkg/controller"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPprofMux_Index(t *testing.T) {
	rec := httptest.NewRecorder()
	controller.PprofMux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, controller.PprofPath, nil))

	res := rec.Result()
	require.Equal(t, http.StatusOK, res.StatusCode)
	require.NotEmpty(t, res.Header.Get("Content-Type"))
}

func TestPprofMux_NamedProfile(t *testing.T) {
	rec := httptest.NewRecorder()
	controller.PprofMux().ServeHTTP(rec,
		httptest.NewRequest(http.MethodGet, controller.PprofPath+"goroutine?debug=1", nil))

	require.Equal(t, http.StatusOK, rec.Result().StatusCode)
}

func TestPprofMux_Cmdline(t *testing.T) {
	rec := httptest.NewRecorder()
	controller.PprofMux().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, controller.PprofPath+"cmdline", nil))

	require.Equal(t, http.StatusOK, rec.Result().StatusCode)
}

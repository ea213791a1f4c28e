package api_test

import (
	"context"
	"cruise/internal/api"
	"cruise/internal/cruise"
	"cruise/pkg/domain"
	"cruise/pkg/rowreader/csvfile"
	"cruise/pkg/serrors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	mockrowreader "cruise/pkg/rowreader/mock"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

const sample = `CAB01,Deck1,2,300
CAB02,Deck2,2,200,5
CAB03,Deck3,2,250,Spa
P01,Mario,Rossi
P02,Luigi,Verdi
`

func writeSample(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "cruise.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func newTestServer(t *testing.T, path string) (*api.Server, cruise.Registry) {
	t.Helper()

	registry := cruise.NewSynchronized(cruise.New(cruise.Options{Name: "Mediterranean"}))
	srv, err := api.NewServer(context.Background(), api.Deps{
		Registry: registry,
		Reader:   csvfile.New(path),
	}, api.Options{MetricsPath: "/metrics", RequestTimeout: 5 * time.Second})
	require.NoError(t, err)
	require.NoError(t, srv.Load(context.Background()))

	return srv, registry
}

func do(t *testing.T, srv *api.Server, method, target, body string) (int, string) {
	t.Helper()

	var r io.Reader
	if body != "" {
		r = strings.NewReader(body)
	}
	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(method, target, r))

	res := rec.Result()
	b, err := io.ReadAll(res.Body)
	require.NoError(t, err)

	return res.StatusCode, string(b)
}

func TestGetCruise(t *testing.T) {
	srv, _ := newTestServer(t, writeSample(t, sample))

	status, body := do(t, srv, http.MethodGet, "/v1/cruise", "")
	require.Equal(t, http.StatusOK, status)
	require.JSONEq(t, `{"name":"Mediterranean","cabins":3,"passengers":2,"assignedCabins":0}`, body)
}

func TestListCabins_ByPrice(t *testing.T) {
	srv, _ := newTestServer(t, writeSample(t, sample))

	status, body := do(t, srv, http.MethodGet, "/v1/cabins", "")
	require.Equal(t, http.StatusOK, status)
	require.JSONEq(t, `[
		{"code":"CAB02","deck":"Deck2","capacity":2,"kind":"animal","basePrice":200,"price":205,"animalFee":5,"available":true},
		{"code":"CAB03","deck":"Deck3","capacity":2,"kind":"deluxe","basePrice":250,"price":250,"amenity":"Spa","available":true},
		{"code":"CAB01","deck":"Deck1","capacity":2,"kind":"base","basePrice":300,"price":300,"available":true}
	]`, body)
}

func TestCreateAssignment(t *testing.T) {
	srv, registry := newTestServer(t, writeSample(t, sample))

	status, body := do(t, srv, http.MethodPost, "/v1/assignments", `{"cabin":"CAB02","passenger":"P01"}`)
	require.Equal(t, http.StatusCreated, status)
	require.JSONEq(t, `{"code":"P01","firstName":"Mario","lastName":"Rossi","cabin":"CAB02"}`, body)

	cabin, _ := registry.FindCabin("CAB02")
	require.False(t, cabin.IsAvailable())

	status, body = do(t, srv, http.MethodGet, "/v1/cabins?available=true", "")
	require.Equal(t, http.StatusOK, status)
	require.NotContains(t, body, "CAB02")

	status, body = do(t, srv, http.MethodGet, "/v1/passengers", "")
	require.Equal(t, http.StatusOK, status)
	require.JSONEq(t, `[
		{"code":"P01","firstName":"Mario","lastName":"Rossi","cabin":"CAB02"},
		{"code":"P02","firstName":"Luigi","lastName":"Verdi","cabin":null}
	]`, body)
}

// reloadedRegistry behaves as if a reload dropped every passenger right after
// each successful assignment.
type reloadedRegistry struct {
	cruise.Registry
}

func (r reloadedRegistry) FindPassenger(string) (*domain.Passenger, bool) { return nil, false }

func TestCreateAssignment_PassengerReloadedAway(t *testing.T) {
	registry := reloadedRegistry{Registry: cruise.NewSynchronized(cruise.New(cruise.Options{Name: "Mediterranean"}))}
	srv, err := api.NewServer(context.Background(), api.Deps{
		Registry: registry,
		Reader:   csvfile.New(writeSample(t, sample)),
	}, api.Options{})
	require.NoError(t, err)
	require.NoError(t, srv.Load(context.Background()))

	status, body := do(t, srv, http.MethodPost, "/v1/assignments", `{"cabin":"CAB02","passenger":"P01"}`)
	require.Equal(t, http.StatusCreated, status)
	require.JSONEq(t, `{"code":"P01","firstName":"","lastName":"","cabin":"CAB02"}`, body)
}

func TestCreateAssignment_Errors(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		status int
		code   string
	}{
		{name: "Cabin Not Found", body: `{"cabin":"CABXX","passenger":"P99"}`, status: 404, code: "CABIN_NOT_FOUND"},
		{name: "Passenger Not Found", body: `{"cabin":"CAB01","passenger":"P99"}`, status: 404, code: "PASSENGER_NOT_FOUND"},
		{name: "Cabin Unavailable", body: `{"cabin":"CAB02","passenger":"P02"}`, status: 409, code: "CABIN_UNAVAILABLE"},
		{
			name:   "Passenger Already Assigned",
			body:   `{"cabin":"CAB01","passenger":"P01"}`,
			status: 409,
			code:   "PASSENGER_ALREADY_ASSIGNED",
		},
		{name: "Invalid JSON", body: `{"cabin":`, status: 400, code: "BAD_REQUEST"},
		{name: "Missing Fields", body: `{"cabin":"CAB01"}`, status: 400, code: "BAD_REQUEST"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, _ := newTestServer(t, writeSample(t, sample))
			status, _ := do(t, srv, http.MethodPost, "/v1/assignments", `{"cabin":"CAB02","passenger":"P01"}`)
			require.Equal(t, http.StatusCreated, status)

			status, body := do(t, srv, http.MethodPost, "/v1/assignments", tt.body)
			require.Equal(t, tt.status, status)
			require.Contains(t, body, `"code":"`+tt.code+`"`)
		})
	}
}

func TestReload(t *testing.T) {
	path := writeSample(t, sample)
	srv, _ := newTestServer(t, path)

	status, _ := do(t, srv, http.MethodPost, "/v1/assignments", `{"cabin":"CAB02","passenger":"P01"}`)
	require.Equal(t, http.StatusCreated, status)

	require.NoError(t, os.WriteFile(path, []byte("CAB09,Deck9,4,900\n"), 0o600))
	status, body := do(t, srv, http.MethodPost, "/v1/reload", "")
	require.Equal(t, http.StatusOK, status)
	require.JSONEq(t, `{"name":"Mediterranean","cabins":1,"passengers":0,"assignedCabins":0}`, body)
}

func TestReload_Errors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{
			name:   "Source Not Found",
			err:    serrors.With(serrors.ErrSourceNotFound, "could not open cruise.csv"),
			status: http.StatusServiceUnavailable,
			code:   "SOURCE_NOT_FOUND",
		},
		{
			name:   "Malformed Record",
			err:    serrors.With(serrors.ErrMalformedRecord, "record 2: invalid capacity"),
			status: http.StatusUnprocessableEntity,
			code:   "MALFORMED_RECORD",
		},
		{
			name:   "Unclassified",
			err:    io.ErrUnexpectedEOF,
			status: http.StatusInternalServerError,
			code:   "INTERNAL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reader := mockrowreader.NewMockReader(gomock.NewController(t))
			reader.EXPECT().ReadRecords(gomock.Any()).Return(nil, tt.err)

			srv, err := api.NewServer(context.Background(), api.Deps{
				Registry: cruise.NewSynchronized(cruise.New(cruise.Options{})),
				Reader:   reader,
			}, api.Options{})
			require.NoError(t, err)

			status, body := do(t, srv, http.MethodPost, "/v1/reload", "")
			require.Equal(t, tt.status, status)
			require.Contains(t, body, `"code":"`+tt.code+`"`)
			if tt.status == http.StatusInternalServerError {
				require.NotContains(t, body, tt.err.Error())
			}
		})
	}
}

func TestMetrics(t *testing.T) {
	srv, _ := newTestServer(t, writeSample(t, sample))

	_, _ = do(t, srv, http.MethodPost, "/v1/assignments", `{"cabin":"CAB02","passenger":"P01"}`)
	_, _ = do(t, srv, http.MethodPost, "/v1/assignments", `{"cabin":"CAB01","passenger":"P01"}`)

	status, body := do(t, srv, http.MethodGet, "/metrics", "")
	require.Equal(t, http.StatusOK, status)
	require.Contains(t, body, "cruise_assignments")
	require.Contains(t, body, `PASSENGER_ALREADY_ASSIGNED`)
	require.Contains(t, body, "cruise_load_duration")
}

func TestRequestIDAndCORS(t *testing.T) {
	srv, _ := newTestServer(t, writeSample(t, sample))

	rec := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rec, httptest.NewRequest(http.MethodOptions, "/v1/assignments", nil))
	require.Equal(t, http.StatusNoContent, rec.Code)
	require.NotEmpty(t, rec.Header().Get("X-Request-Id"))
	require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}

func TestShutdown(t *testing.T) {
	srv, _ := newTestServer(t, writeSample(t, sample))
	require.NoError(t, srv.Shutdown(context.Background()))
}

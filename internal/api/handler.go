package api

import (
	"context"
	"cruise/internal/cruise"
	"cruise/pkg/domain"
	"cruise/pkg/metrics"
	"cruise/pkg/rowreader"
	"cruise/pkg/serrors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-faster/jx"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// maxBodyBytes bounds the size of request bodies.
const maxBodyBytes = 1 << 16

// Deps are the collaborators the handlers serve.
type Deps struct {
	// Registry must be safe for concurrent use, see cruise.NewSynchronized.
	Registry cruise.Registry
	// Reader is the source POST /v1/reload reloads from.
	Reader rowreader.Reader
}

type handler struct {
	deps Deps

	assignments  metric.Int64Counter
	loadDuration metric.Float64Histogram
}

func newHandler(deps Deps, meter metric.Meter) (*handler, error) {
	assignments, err := meter.Int64Counter(metrics.Assignments,
		metric.WithDescription("Number of passenger assignment attempts."),
		metric.WithUnit("{assignment}"))
	if err != nil {
		return nil, fmt.Errorf("could not create assignments counter: %w", err)
	}

	loadDuration, err := meter.Float64Histogram(metrics.LoadDuration,
		metric.WithDescription("Duration of cruise data loads."),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(metrics.DefaultBuckets...))
	if err != nil {
		return nil, fmt.Errorf("could not create load duration histogram: %w", err)
	}

	return &handler{deps: deps, assignments: assignments, loadDuration: loadDuration}, nil
}

func (h *handler) register(mux *http.ServeMux) {
	mux.HandleFunc("GET /v1/cruise", h.getCruise)
	mux.HandleFunc("GET /v1/cabins", h.listCabins)
	mux.HandleFunc("GET /v1/passengers", h.listPassengers)
	mux.HandleFunc("POST /v1/assignments", h.createAssignment)
	mux.HandleFunc("POST /v1/reload", h.reload)
}

func (h *handler) getCruise(w http.ResponseWriter, r *http.Request) {
	var e jx.Encoder
	encodeSummary(&e, h.deps.Registry.Summary())
	writeJSON(w, http.StatusOK, &e)
}

// listCabins returns cabins by ascending price, or only the available ones in
// source order when ?available=true.
func (h *handler) listCabins(w http.ResponseWriter, r *http.Request) {
	cabins := h.deps.Registry.CabinsByPrice()
	if r.URL.Query().Get("available") == "true" {
		cabins = h.deps.Registry.AvailableCabins()
	}

	var e jx.Encoder
	encodeCabins(&e, cabins)
	writeJSON(w, http.StatusOK, &e)
}

func (h *handler) listPassengers(w http.ResponseWriter, r *http.Request) {
	var e jx.Encoder
	encodeEntries(&e, h.deps.Registry.ListPassengers())
	writeJSON(w, http.StatusOK, &e)
}

func (h *handler) createAssignment(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err != nil {
		writeError(ctx, w, serrors.Wrap(errBadRequest, err, "could not read request body"))

		return
	}
	req, err := decodeAssignment(jx.DecodeBytes(body))
	if err != nil {
		writeError(ctx, w, serrors.Wrap(errBadRequest, err, "invalid assignment payload"))

		return
	}
	if req.Cabin == "" || req.Passenger == "" {
		writeError(ctx, w, serrors.With(errBadRequest, "cabin and passenger are required"))

		return
	}

	err = h.deps.Registry.AssignPassenger(ctx, req.Cabin, req.Passenger)
	h.assignments.Add(ctx, 1, metric.WithAttributes(attribute.String(metrics.Result, resultOf(err))))
	if err != nil {
		writeError(ctx, w, err)

		return
	}

	// a reload may have replaced the passenger since the assignment
	passenger, ok := h.deps.Registry.FindPassenger(req.Passenger)
	if !ok {
		passenger = &domain.Passenger{Code: req.Passenger}
	}
	var e jx.Encoder
	encodeEntry(&e, cruise.PassengerEntry{Passenger: passenger, CabinCode: req.Cabin})
	writeJSON(w, http.StatusCreated, &e)
}

func (h *handler) reload(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	if err := h.load(ctx); err != nil {
		writeError(ctx, w, err)

		return
	}

	var e jx.Encoder
	encodeSummary(&e, h.deps.Registry.Summary())
	writeJSON(w, http.StatusOK, &e)
}

// load reloads the registry from the configured reader and records how long
// it took.
func (h *handler) load(ctx context.Context) error {
	start := time.Now()
	err := h.deps.Registry.Load(ctx, h.deps.Reader)
	h.loadDuration.Record(ctx, time.Since(start).Seconds(),
		metric.WithAttributes(attribute.String(metrics.Result, resultOf(err))))
	if err != nil {
		return fmt.Errorf("could not load cruise: %w", err)
	}

	return nil
}

// resultOf names the outcome of an operation for metric attributes.
func resultOf(err error) string {
	if err == nil {
		return "ok"
	}
	if k := serrors.KindOf(err); k != nil {
		return k.Error()
	}

	return errInternal.Error()
}

package api

import (
	"context"
	"cruise/pkg/logger"
	"cruise/pkg/serrors"
	"errors"
	"net/http"

	"github.com/go-faster/jx"
	"go.uber.org/zap"
)

// errBadRequest marks a request the API could not make sense of.
var errBadRequest = serrors.NewKind("BAD_REQUEST") //nolint: gochecknoglobals

var errInternal = serrors.NewKind("INTERNAL") //nolint: gochecknoglobals

// statusOf maps an error kind to its HTTP status.
func statusOf(k serrors.Kind) int {
	switch {
	case k == nil:
		return http.StatusInternalServerError
	case errors.Is(k, errBadRequest):
		return http.StatusBadRequest
	case errors.Is(k, serrors.ErrCabinNotFound), errors.Is(k, serrors.ErrPassengerNotFound):
		return http.StatusNotFound
	case errors.Is(k, serrors.ErrCabinUnavailable),
		errors.Is(k, serrors.ErrPassengerAlreadyAssigned),
		errors.Is(k, serrors.ErrAlreadyAssigned):
		return http.StatusConflict
	case errors.Is(k, serrors.ErrMalformedRecord):
		return http.StatusUnprocessableEntity
	case errors.Is(k, serrors.ErrSourceNotFound):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// writeError renders err as {"code": ..., "message": ...}. Errors without a
// kind are logged and reported as INTERNAL without their details.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	k := serrors.KindOf(err)
	status := statusOf(k)
	code, message := errInternal.Error(), "internal error"
	if status != http.StatusInternalServerError {
		code, message = k.Error(), serrors.MessageOf(err)
	} else {
		logger.Error(ctx, "request failed", zap.Error(err))
	}

	var e jx.Encoder
	e.Obj(func(e *jx.Encoder) {
		e.Field("code", func(e *jx.Encoder) { e.Str(code) })
		e.Field("message", func(e *jx.Encoder) { e.Str(message) })
	})
	writeJSON(w, status, &e)
}

func writeJSON(w http.ResponseWriter, status int, e *jx.Encoder) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(e.Bytes())
}

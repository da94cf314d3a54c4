// internal/adapters/in/http/handler/helper.go
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/sudipto39/Shop-Xpress/internal/application/usecase"
	cartdom "github.com/sudipto39/Shop-Xpress/internal/domain/cart"
	orderdom "github.com/sudipto39/Shop-Xpress/internal/domain/order"
	productdom "github.com/sudipto39/Shop-Xpress/internal/domain/product"
	userdom "github.com/sudipto39/Shop-Xpress/internal/domain/user"
)

// ============================================================
// HTTP helpers
// ============================================================

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeErr(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": strings.TrimSpace(msg)})
}

func methodNotAllowed(w http.ResponseWriter) {
	writeErr(w, http.StatusMethodNotAllowed, "method_not_allowed")
}

func notFound(w http.ResponseWriter) {
	writeErr(w, http.StatusNotFound, "not_found")
}

func badRequest(w http.ResponseWriter, msg string) {
	writeErr(w, http.StatusBadRequest, msg)
}

func readJSON(r *http.Request, dst any) error {
	if dst == nil {
		return errors.New("dst is nil")
	}
	dec := json.NewDecoder(http.MaxBytesReader(nil, r.Body, 1<<20)) // 1MB
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}

// writeDomainErr maps application/domain errors onto HTTP statuses so each
// handler doesn't repeat the taxonomy.
func writeDomainErr(w http.ResponseWriter, err error) {
	switch {
	case err == nil:
		return

	// 400 validation
	case errors.Is(err, usecase.ErrCartInvalidArgument),
		errors.Is(err, usecase.ErrOrderInvalidArgument),
		errors.Is(err, usecase.ErrOrderEmptyCart),
		errors.Is(err, usecase.ErrOrderTotalMismatch),
		errors.Is(err, usecase.ErrInvalidPaymentResponse),
		errors.Is(err, usecase.ErrMergeInvalidArgument),
		errors.Is(err, usecase.ErrProductInvalidArgument),
		errors.Is(err, usecase.ErrUserInvalidArgument),
		errors.Is(err, usecase.ErrAdminInvalidArgument),
		errors.Is(err, cartdom.ErrInvalidCart),
		errors.Is(err, productdom.ErrInvalidName),
		errors.Is(err, productdom.ErrInvalidPrice),
		errors.Is(err, productdom.ErrInvalidCategory),
		errors.Is(err, productdom.ErrInvalidSize),
		errors.Is(err, orderdom.ErrInvalidAddress),
		errors.Is(err, orderdom.ErrInvalidTotal):
		writeErr(w, http.StatusBadRequest, err.Error())

	// 402-ish payment rejections are reported as 400 per the API contract
	case errors.Is(err, usecase.ErrPaymentSignatureInvalid),
		errors.Is(err, usecase.ErrPaymentOrderMismatch):
		writeErr(w, http.StatusBadRequest, err.Error())

	// 403
	case errors.Is(err, usecase.ErrOrderForbidden):
		writeErr(w, http.StatusForbidden, err.Error())

	case errors.Is(err, usecase.ErrGatewayUnavailable):
		writeErr(w, http.StatusServiceUnavailable, err.Error())

	// 404
	case errors.Is(err, usecase.ErrCartItemNotFound),
		errors.Is(err, usecase.ErrCartProductUnknown),
		errors.Is(err, productdom.ErrNotFound),
		errors.Is(err, orderdom.ErrNotFound),
		errors.Is(err, userdom.ErrNotFound):
		writeErr(w, http.StatusNotFound, err.Error())

	// 409
	case errors.Is(err, orderdom.ErrAlreadyPaid),
		errors.Is(err, orderdom.ErrInvalidTransition),
		errors.Is(err, usecase.ErrOrderStockShortfall),
		errors.Is(err, productdom.ErrOutOfStock):
		writeErr(w, http.StatusConflict, err.Error())

	default:
		writeErr(w, http.StatusInternalServerError, "internal error")
	}
}

package handler

import (
	"log/slog"
	"net/http"

	"github.com/riteshkumar/finapi/internal/errors"
	u "github.com/riteshkumar/finapi/internal/utils"
)

const (
	msgCustomerNotFound  = "Customer not found!"
	msgAccountExists     = "Account Already exists!"
	msgInsufficientFunds = "Insufficient funds!"
	msgInvalidRequest    = "invalid request payload"
)

func writeServiceError(w http.ResponseWriter, logger *slog.Logger, err error, operation string) {
	switch {
	case errors.IsNotFound(err):
		u.WriteError(w, http.StatusNotFound, msgCustomerNotFound, "")
	case errors.IsAlreadyExists(err):
		u.WriteError(w, http.StatusBadRequest, msgAccountExists, "")
	case errors.IsInsufficientFunds(err):
		u.WriteError(w, http.StatusBadRequest, msgInsufficientFunds, "")
	case errors.IsValidationError(err):
		u.WriteError(w, http.StatusBadRequest, "validation error", err.Error())
	default:
		logger.Error("internal server error during "+operation, "error", err.Error())
		u.WriteError(w, http.StatusInternalServerError, "internal server error", "")
	}
}

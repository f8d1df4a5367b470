package handler

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/riteshkumar/finapi/internal/models"
	"github.com/riteshkumar/finapi/internal/service"
	u "github.com/riteshkumar/finapi/internal/utils"
)

type AccountHandler struct {
	accountService service.AccountService
	resolver       *AccountResolver
	logger         *slog.Logger
}

func NewAccountHandler(accountService service.AccountService, resolver *AccountResolver, logger *slog.Logger) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
		resolver:       resolver,
		logger:         logger,
	}
}

func (h *AccountHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/account", h.CreateAccount).Methods(http.MethodPost)
	router.HandleFunc("/customers", h.resolver.Require(h.GetAccount)).Methods(http.MethodGet)
	router.HandleFunc("/account", h.resolver.Require(h.UpdateAccount)).Methods(http.MethodPut)
	router.HandleFunc("/account", h.resolver.Require(h.DeleteAccount)).Methods(http.MethodDelete)
}

func (h *AccountHandler) CreateAccount(w http.ResponseWriter, r *http.Request) {
	var req models.CreateAccountRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.Warn("invalid create account request", "error", err.Error())
		u.WriteError(w, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}

	if _, err := h.accountService.CreateAccount(r.Context(), &req); err != nil {
		writeServiceError(w, h.logger, err, "create account")
		return
	}

	u.WriteMessage(w, http.StatusCreated, "Account successfully created!")
}

func (h *AccountHandler) GetAccount(w http.ResponseWriter, r *http.Request, account *models.Account) {
	u.WriteJSON(w, http.StatusOK, account)
}

func (h *AccountHandler) UpdateAccount(w http.ResponseWriter, r *http.Request, account *models.Account) {
	var req models.UpdateAccountRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.Warn("invalid update account request", "error", err.Error())
		u.WriteError(w, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}

	if _, err := h.accountService.UpdateAccount(r.Context(), account, &req); err != nil {
		writeServiceError(w, h.logger, err, "update account")
		return
	}

	u.WriteMessage(w, http.StatusCreated, "Customer successfully updated")
}

func (h *AccountHandler) DeleteAccount(w http.ResponseWriter, r *http.Request, account *models.Account) {
	if err := h.accountService.DeleteAccount(r.Context(), account); err != nil {
		writeServiceError(w, h.logger, err, "delete account")
		return
	}

	u.WriteJSON(w, http.StatusNoContent, nil)
}

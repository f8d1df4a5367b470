package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/riteshkumar/finapi/internal/models"
	"github.com/riteshkumar/finapi/internal/service"
	u "github.com/riteshkumar/finapi/internal/utils"
)

type StatementHandler struct {
	statementService service.StatementService
	resolver         *AccountResolver
	logger           *slog.Logger
}

func NewStatementHandler(statementService service.StatementService, resolver *AccountResolver, logger *slog.Logger) *StatementHandler {
	return &StatementHandler{
		statementService: statementService,
		resolver:         resolver,
		logger:           logger,
	}
}

func (h *StatementHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/statements", h.resolver.Require(h.ListStatements)).Methods(http.MethodGet)
	router.HandleFunc("/statements/date", h.resolver.Require(h.ListStatementsByDate)).Methods(http.MethodGet)
	router.HandleFunc("/deposit", h.resolver.Require(h.Deposit)).Methods(http.MethodPost)
	router.HandleFunc("/withdraw", h.resolver.Require(h.Withdraw)).Methods(http.MethodPost)
	router.HandleFunc("/balance", h.resolver.Require(h.Balance)).Methods(http.MethodGet)
}

func (h *StatementHandler) ListStatements(w http.ResponseWriter, r *http.Request, account *models.Account) {
	statements, err := h.statementService.ListStatements(r.Context(), account)
	if err != nil {
		writeServiceError(w, h.logger, err, "list statements")
		return
	}

	u.WriteJSON(w, http.StatusOK, statements)
}

func (h *StatementHandler) ListStatementsByDate(w http.ResponseWriter, r *http.Request, account *models.Account) {
	statements, err := h.statementService.ListStatementsByDate(r.Context(), account, r.URL.Query().Get("date"))
	if err != nil {
		writeServiceError(w, h.logger, err, "list statements by date")
		return
	}

	u.WriteJSON(w, http.StatusOK, statements)
}

func (h *StatementHandler) Deposit(w http.ResponseWriter, r *http.Request, account *models.Account) {
	var req models.DepositRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.Warn("invalid deposit request", "error", err.Error())
		u.WriteError(w, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}

	if _, err := h.statementService.Deposit(r.Context(), account, &req); err != nil {
		writeServiceError(w, h.logger, err, "deposit")
		return
	}

	u.WriteMessage(w, http.StatusCreated, fmt.Sprintf("Deposited %s for %s", u.FormatAmount(req.Amount), account.Name))
}

func (h *StatementHandler) Withdraw(w http.ResponseWriter, r *http.Request, account *models.Account) {
	var req models.WithdrawRequest
	if err := decodeJSON(w, r, &req); err != nil {
		h.logger.Warn("invalid withdraw request", "error", err.Error())
		u.WriteError(w, http.StatusBadRequest, msgInvalidRequest, err.Error())
		return
	}

	if _, err := h.statementService.Withdraw(r.Context(), account, &req); err != nil {
		writeServiceError(w, h.logger, err, "withdraw")
		return
	}

	u.WriteMessage(w, http.StatusCreated, fmt.Sprintf("Withdraw %s for %s", u.FormatAmount(req.Amount), account.Name))
}

func (h *StatementHandler) Balance(w http.ResponseWriter, r *http.Request, account *models.Account) {
	balance, err := h.statementService.Balance(r.Context(), account)
	if err != nil {
		writeServiceError(w, h.logger, err, "balance")
		return
	}

	u.WriteJSON(w, http.StatusOK, models.BalanceResponse{Balance: balance})
}

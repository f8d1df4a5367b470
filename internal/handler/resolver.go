package handler

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/riteshkumar/finapi/internal/models"
	"github.com/riteshkumar/finapi/internal/service"
)

// DefaultTaxIDHeader is the request header carrying the caller's tax id.
const DefaultTaxIDHeader = "cpf"

// AccountHandlerFunc serves a request on behalf of an already resolved account.
type AccountHandlerFunc func(w http.ResponseWriter, r *http.Request, account *models.Account)

// AccountResolver is the lookup gate in front of every account-scoped route.
type AccountResolver struct {
	accountService service.AccountService
	header         string
	logger         *slog.Logger
}

func NewAccountResolver(accountService service.AccountService, header string, logger *slog.Logger) *AccountResolver {
	if header == "" {
		header = DefaultTaxIDHeader
	}
	return &AccountResolver{
		accountService: accountService,
		header:         header,
		logger:         logger,
	}
}

// Header returns the name of the header the resolver reads.
func (ar *AccountResolver) Header() string {
	return ar.header
}

// Require resolves the account named by the request header and hands it to next.
// When no account matches, the request ends here with 404.
func (ar *AccountResolver) Require(next AccountHandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		taxID := strings.TrimSpace(r.Header.Get(ar.header))

		account, err := ar.accountService.ResolveAccount(r.Context(), taxID)
		if err != nil {
			writeServiceError(w, ar.logger, err, "resolve account")
			return
		}

		next(w, r, account)
	}
}

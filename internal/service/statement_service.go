package service

import (
	"context"
	"fmt"
	"log/slog"
	"math"
	"strings"
	"time"

	"github.com/riteshkumar/finapi/internal/errors"
	"github.com/riteshkumar/finapi/internal/metrics"
	"github.com/riteshkumar/finapi/internal/models"
	"github.com/riteshkumar/finapi/internal/repository"
)

// DateLayout is the format of the date accepted by ListStatementsByDate.
const DateLayout = "2006-01-02"

type StatementService interface {
	Deposit(ctx context.Context, account *models.Account, req *models.DepositRequest) (*models.Statement, error)
	Withdraw(ctx context.Context, account *models.Account, req *models.WithdrawRequest) (*models.Statement, error)
	ListStatements(ctx context.Context, account *models.Account) ([]models.Statement, error)
	ListStatementsByDate(ctx context.Context, account *models.Account, date string) ([]models.Statement, error)
	Balance(ctx context.Context, account *models.Account) (float64, error)
}

type StatementServiceImpl struct {
	accountRepo repository.AccountRepository
	metrics     *metrics.Metrics
	logger      *slog.Logger
	location    *time.Location
	now         func() time.Time
}

type StatementOption func(*StatementServiceImpl)

// WithLocation sets the time zone used to decide which calendar day a statement falls on.
func WithLocation(loc *time.Location) StatementOption {
	return func(s *StatementServiceImpl) {
		if loc != nil {
			s.location = loc
		}
	}
}

// WithClock replaces time.Now as the source of statement timestamps.
func WithClock(now func() time.Time) StatementOption {
	return func(s *StatementServiceImpl) {
		if now != nil {
			s.now = now
		}
	}
}

func NewStatementService(accountRepo repository.AccountRepository, m *metrics.Metrics, logger *slog.Logger, opts ...StatementOption) *StatementServiceImpl {
	s := &StatementServiceImpl{
		accountRepo: accountRepo,
		metrics:     m,
		logger:      logger,
		location:    time.Local,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Deposit appends a credit entry to the account.
func (s *StatementServiceImpl) Deposit(ctx context.Context, account *models.Account, req *models.DepositRequest) (*models.Statement, error) {
	if err := validateAmount(req.Amount); err != nil {
		s.logger.Warn("invalid deposit request",
			"account_id", account.ID,
			"amount", req.Amount,
		)
		return nil, err
	}

	entry := models.Statement{
		Description: strings.TrimSpace(req.Description),
		Amount:      req.Amount,
		Kind:        models.KindCredit,
		CreatedAt:   s.now(),
	}

	_, err := s.accountRepo.Update(ctx, account.ID, func(a *models.Account) error {
		a.Statements = append(a.Statements, entry)
		return nil
	})
	s.metrics.ObserveOperation("deposit", err)
	if err != nil {
		s.logger.Error("failed to record deposit",
			"account_id", account.ID,
			"amount", req.Amount,
			"error", err.Error(),
		)
		return nil, fmt.Errorf("deposit: %w", err)
	}

	s.logger.Info("deposit recorded",
		"account_id", account.ID,
		"amount", req.Amount,
	)
	return &entry, nil
}

// Withdraw appends a debit entry when the current balance covers the amount.
// The balance check and the append happen under the same store lock.
func (s *StatementServiceImpl) Withdraw(ctx context.Context, account *models.Account, req *models.WithdrawRequest) (*models.Statement, error) {
	if err := validateAmount(req.Amount); err != nil {
		s.logger.Warn("invalid withdraw request",
			"account_id", account.ID,
			"amount", req.Amount,
		)
		return nil, err
	}

	entry := models.Statement{
		Description: strings.TrimSpace(req.Description),
		Amount:      req.Amount,
		Kind:        models.KindDebit,
		CreatedAt:   s.now(),
	}

	var balance float64
	_, err := s.accountRepo.Update(ctx, account.ID, func(a *models.Account) error {
		balance = models.ComputeBalance(a.Statements)
		if balance < req.Amount {
			return errors.ErrInsufficientFunds
		}
		a.Statements = append(a.Statements, entry)
		return nil
	})
	s.metrics.ObserveOperation("withdraw", err)
	if err != nil {
		if errors.IsInsufficientFunds(err) {
			s.logger.Warn("insufficient funds for withdrawal",
				"account_id", account.ID,
				"available_balance", balance,
				"requested_amount", req.Amount,
			)
			return nil, err
		}
		s.logger.Error("failed to record withdrawal",
			"account_id", account.ID,
			"amount", req.Amount,
			"error", err.Error(),
		)
		return nil, fmt.Errorf("withdraw: %w", err)
	}

	s.logger.Info("withdrawal recorded",
		"account_id", account.ID,
		"amount", req.Amount,
		"balance", balance-req.Amount,
	)
	return &entry, nil
}

func (s *StatementServiceImpl) ListStatements(ctx context.Context, account *models.Account) ([]models.Statement, error) {
	if account.Statements == nil {
		return []models.Statement{}, nil
	}
	return account.Statements, nil
}

// ListStatementsByDate returns the entries created on the given calendar day (YYYY-MM-DD),
// ignoring time of day.
func (s *StatementServiceImpl) ListStatementsByDate(ctx context.Context, account *models.Account, date string) ([]models.Statement, error) {
	date = strings.TrimSpace(date)
	if date == "" {
		return nil, errors.NewValidationError("date", "must be non-empty")
	}

	day, err := time.ParseInLocation(DateLayout, date, s.location)
	if err != nil {
		s.logger.Warn("invalid statement date",
			"account_id", account.ID,
			"date", date,
		)
		return nil, fmt.Errorf("%w: %q, expected %s", errors.ErrInvalidDate, date, DateLayout)
	}

	filtered := make([]models.Statement, 0)
	for _, entry := range account.Statements {
		if sameDay(entry.CreatedAt.In(s.location), day) {
			filtered = append(filtered, entry)
		}
	}
	return filtered, nil
}

func (s *StatementServiceImpl) Balance(ctx context.Context, account *models.Account) (float64, error) {
	return models.ComputeBalance(account.Statements), nil
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func validateAmount(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return errors.ErrInvalidAmount
	}
	return nil
}

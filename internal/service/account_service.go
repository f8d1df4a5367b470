package service

import (
	"context"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/riteshkumar/finapi/internal/errors"
	"github.com/riteshkumar/finapi/internal/metrics"
	"github.com/riteshkumar/finapi/internal/models"
	"github.com/riteshkumar/finapi/internal/repository"
)

type AccountService interface {
	CreateAccount(ctx context.Context, req *models.CreateAccountRequest) (*models.Account, error)
	ResolveAccount(ctx context.Context, taxID string) (*models.Account, error)
	UpdateAccount(ctx context.Context, account *models.Account, req *models.UpdateAccountRequest) (*models.Account, error)
	DeleteAccount(ctx context.Context, account *models.Account) error
}

type AccountServiceImpl struct {
	accountRepo repository.AccountRepository
	metrics     *metrics.Metrics
	logger      *slog.Logger
}

func NewAccountService(accountRepo repository.AccountRepository, m *metrics.Metrics, logger *slog.Logger) *AccountServiceImpl {
	return &AccountServiceImpl{
		accountRepo: accountRepo,
		metrics:     m,
		logger:      logger,
	}
}

func (s *AccountServiceImpl) CreateAccount(ctx context.Context, req *models.CreateAccountRequest) (*models.Account, error) {
	taxID := strings.TrimSpace(req.Identifier())
	name := strings.TrimSpace(req.Name)

	if err := s.validateCreateRequest(taxID, name); err != nil {
		s.logger.Warn("invalid create account request",
			"tax_id", taxID,
			"error", err.Error(),
		)
		return nil, err
	}

	exists, err := s.accountRepo.ExistsByTaxID(ctx, taxID)
	if err != nil {
		s.logger.Error("failed to check account existence",
			"tax_id", taxID,
			"error", err.Error(),
		)
		return nil, err
	}
	if exists {
		s.logger.Warn("account already exists",
			"tax_id", taxID,
		)
		s.metrics.ObserveOperation("create_account", errors.ErrAccountAlreadyExists)
		return nil, errors.ErrAccountAlreadyExists
	}

	account := &models.Account{
		ID:         uuid.New().String(),
		TaxID:      taxID,
		Name:       name,
		Statements: []models.Statement{},
	}

	// the repository re-checks uniqueness under its lock, so a concurrent create still loses here
	err = s.accountRepo.Create(ctx, account)
	s.metrics.ObserveOperation("create_account", err)
	if err != nil {
		if errors.IsAlreadyExists(err) {
			s.logger.Warn("account already exists",
				"tax_id", taxID,
			)
			return nil, err
		}

		s.logger.Error("failed to create account",
			"tax_id", taxID,
			"error", err.Error(),
		)
		return nil, err
	}

	s.logger.Info("account created successfully",
		"account_id", account.ID,
		"tax_id", taxID,
	)
	return account, nil
}

// ResolveAccount finds the account registered under taxID.
func (s *AccountServiceImpl) ResolveAccount(ctx context.Context, taxID string) (*models.Account, error) {
	if taxID == "" {
		return nil, errors.ErrAccountNotFound
	}

	account, err := s.accountRepo.GetByTaxID(ctx, taxID)
	if err != nil {
		if errors.IsNotFound(err) {
			s.logger.Warn("account not found",
				"tax_id", taxID,
			)
			return nil, err
		}
		s.logger.Error("failed to get account",
			"tax_id", taxID,
			"error", err.Error(),
		)
		return nil, err
	}

	return account, nil
}

func (s *AccountServiceImpl) UpdateAccount(ctx context.Context, account *models.Account, req *models.UpdateAccountRequest) (*models.Account, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, errors.NewValidationError("name", "must be non-empty")
	}

	updated, err := s.accountRepo.Update(ctx, account.ID, func(a *models.Account) error {
		a.Name = name
		return nil
	})
	s.metrics.ObserveOperation("update_account", err)
	if err != nil {
		s.logger.Error("failed to update account",
			"account_id", account.ID,
			"error", err.Error(),
		)
		return nil, err
	}

	s.logger.Info("account updated successfully",
		"account_id", account.ID,
		"old_name", account.Name,
		"new_name", name,
	)
	return updated, nil
}

func (s *AccountServiceImpl) DeleteAccount(ctx context.Context, account *models.Account) error {
	err := s.accountRepo.Delete(ctx, account.ID)
	s.metrics.ObserveOperation("delete_account", err)
	if err != nil {
		s.logger.Error("failed to delete account",
			"account_id", account.ID,
			"error", err.Error(),
		)
		return err
	}

	s.logger.Info("account deleted successfully",
		"account_id", account.ID,
		"tax_id", account.TaxID,
	)
	return nil
}

func (s *AccountServiceImpl) validateCreateRequest(taxID, name string) error {
	if taxID == "" {
		return errors.NewValidationError("taxId", "must be non-empty")
	}
	if name == "" {
		return errors.NewValidationError("name", "must be non-empty")
	}
	return nil
}

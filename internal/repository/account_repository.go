package repository

import (
	"context"
	"sync"

	"github.com/riteshkumar/finapi/internal/errors"
	"github.com/riteshkumar/finapi/internal/models"
)

type AccountRepository interface {
	Create(ctx context.Context, account *models.Account) error
	ExistsByTaxID(ctx context.Context, taxID string) (bool, error)
	GetByTaxID(ctx context.Context, taxID string) (*models.Account, error)
	Update(ctx context.Context, id string, fn func(account *models.Account) error) (*models.Account, error)
	Delete(ctx context.Context, id string) error
	Count(ctx context.Context) int
}

// MemoryAccountRepository keeps accounts in insertion order for the lifetime of the process.
// All reads hand out copies; stored records are only touched under mu.
type MemoryAccountRepository struct {
	mu       sync.RWMutex
	accounts []*models.Account
}

func NewAccountRepository() *MemoryAccountRepository {
	return &MemoryAccountRepository{}
}

// Create appends the account unless another one already holds its tax id.
func (r *MemoryAccountRepository) Create(ctx context.Context, account *models.Account) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if r.indexOfTaxID(account.TaxID) >= 0 {
		return errors.ErrAccountAlreadyExists
	}
	r.accounts = append(r.accounts, account.Clone())
	return nil
}

func (r *MemoryAccountRepository) ExistsByTaxID(ctx context.Context, taxID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.indexOfTaxID(taxID) >= 0, nil
}

func (r *MemoryAccountRepository) GetByTaxID(ctx context.Context, taxID string) (*models.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	i := r.indexOfTaxID(taxID)
	if i < 0 {
		return nil, errors.ErrAccountNotFound
	}
	return r.accounts[i].Clone(), nil
}

// Update runs fn against a working copy of the account with the given id while holding the
// write lock. The copy replaces the stored record only when fn succeeds, so a failed fn changes
// nothing. Tax ids can be reused after a delete, so writes are keyed by id.
func (r *MemoryAccountRepository) Update(ctx context.Context, id string, fn func(account *models.Account) error) (*models.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOfID(id)
	if i < 0 {
		return nil, errors.ErrAccountNotFound
	}

	working := r.accounts[i].Clone()
	if err := fn(working); err != nil {
		return nil, err
	}
	// id and tax id are immutable
	working.ID = r.accounts[i].ID
	working.TaxID = r.accounts[i].TaxID

	r.accounts[i] = working
	return working.Clone(), nil
}

// Delete removes the account with the given id, keeping the order of the rest.
func (r *MemoryAccountRepository) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	i := r.indexOfID(id)
	if i < 0 {
		return errors.ErrAccountNotFound
	}
	r.accounts = append(r.accounts[:i], r.accounts[i+1:]...)
	return nil
}

func (r *MemoryAccountRepository) Count(ctx context.Context) int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.accounts)
}

// indexOfTaxID must be called with mu held.
func (r *MemoryAccountRepository) indexOfTaxID(taxID string) int {
	for i, account := range r.accounts {
		if account.TaxID == taxID {
			return i
		}
	}
	return -1
}

// indexOfID must be called with mu held.
func (r *MemoryAccountRepository) indexOfID(id string) int {
	for i, account := range r.accounts {
		if account.ID == id {
			return i
		}
	}
	return -1
}

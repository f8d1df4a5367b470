package models

import (
	"time"
)

type StatementKind string

const (
	KindCredit StatementKind = "credit"
	KindDebit  StatementKind = "debit"
)

type Account struct {
	ID         string      `json:"id"`
	TaxID      string      `json:"taxId"`
	Name       string      `json:"name"`
	Statements []Statement `json:"statements"`
}

// Clone returns a copy that shares no statement storage with a.
func (a *Account) Clone() *Account {
	cp := *a
	cp.Statements = make([]Statement, len(a.Statements))
	copy(cp.Statements, a.Statements)
	return &cp
}

type Statement struct {
	Description string        `json:"description,omitempty"`
	Amount      float64       `json:"amount"`
	Kind        StatementKind `json:"kind"`
	CreatedAt   time.Time     `json:"createdAt"`
}

type CreateAccountRequest struct {
	TaxID string `json:"taxId"`
	CPF   string `json:"cpf"`
	Name  string `json:"name"`
}

// Identifier returns the tax id, accepting the legacy "cpf" field name.
func (r *CreateAccountRequest) Identifier() string {
	if r.TaxID != "" {
		return r.TaxID
	}
	return r.CPF
}

type UpdateAccountRequest struct {
	Name string `json:"name"`
}

type DepositRequest struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

type WithdrawRequest struct {
	Description string  `json:"description"`
	Amount      float64 `json:"amount"`
}

type MessageResponse struct {
	Msg string `json:"msg"`
}

type BalanceResponse struct {
	Balance float64 `json:"balance"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

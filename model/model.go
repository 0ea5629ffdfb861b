package model

import "github.com/shopspring/decimal"

// Package model defines the data structures shared by the ledger core and
// the HTTP layer.

// All monetary values use "github.com/shopspring/decimal" instead of float64.
// Binary floating point cannot represent most decimal amounts exactly, and the
// per-deposit interest calculation (amount * rate / 100) must not accumulate
// rounding drift across a movement history.

// Movement type labels as shown to the presentation layer. A movement is a
// deposit when positive, a withdrawal otherwise.
const (
	MovementDeposit    = "deposit"
	MovementWithdrawal = "withdrawal"
)

// Account represents one user account held by the directory.
// Owner, Username, PIN and InterestRate are fixed at construction; only the
// movement list changes over the account's lifetime, and only by appending.
type Account struct {
	Owner        string
	Username     string // lowercase initials of Owner, derived once at directory construction
	PIN          int
	InterestRate decimal.Decimal // percent, e.g. 1.2 means 1.2%
	Movements    []decimal.Decimal
}

// LoginRequest defines the expected JSON body for logging in.
// The PIN is carried as the raw input string; coercion to a number happens in
// the session controller, so non-numeric input simply never matches.
type LoginRequest struct {
	Username string `json:"username"`
	PIN      string `json:"pin"`
}

// TransferRequest defines the expected JSON body for a peer-to-peer transfer.
type TransferRequest struct {
	To     string          `json:"to"`
	Amount decimal.Decimal `json:"amount"`
}

// LoanRequest defines the expected JSON body for requesting a loan.
type LoanRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// CloseRequest defines the expected JSON body for closing the current
// account. Username and PIN are a re-authentication step, not a target: a
// close only ever removes the logged-in account.
type CloseRequest struct {
	Username string `json:"username"`
	PIN      string `json:"pin"`
}

// MovementRow is a single movement as rendered to the client.
type MovementRow struct {
	Amount decimal.Decimal `json:"amount"`
	Type   string          `json:"type"`
}

// SessionView is the full presentation snapshot for the active session. It is
// recomputed from the movement history after every operation; nothing in it
// is cached state.
type SessionView struct {
	WelcomeName      string          `json:"welcome_name"`
	Movements        []MovementRow   `json:"movements"`
	Balance          decimal.Decimal `json:"balance"`
	TotalDeposits    decimal.Decimal `json:"total_deposits"`
	TotalWithdrawals decimal.Decimal `json:"total_withdrawals"`
	TotalInterest    decimal.Decimal `json:"total_interest"`
	SessionActive    bool            `json:"session_active"`
	CountdownSeconds int64           `json:"countdown_seconds"`
}

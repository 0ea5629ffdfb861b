// Package session implements the controller mediating every state-changing
// operation between the presentation layer and the account directory: login,
// transfer, loan, account closure and the display sort toggle. Each operation
// either fully applies or fully rejects; a rejected operation leaves the
// directory and the session untouched.
package session

import (
	"errors"
	"strconv"
	"strings"
	"sync"
	"time"

	"bankist-api/ledger"
	"bankist-api/model"
	"bankist-api/storage"

	"github.com/shopspring/decimal"
)

// Rejection reasons. The core contract is still "no mutation, no crash"; the
// typed errors exist so the HTTP layer can pick a status code and a log line.
var (
	ErrNoSession         = errors.New("no active session")
	ErrBadCredentials    = errors.New("bad credentials")
	ErrBadAmount         = errors.New("amount must be positive")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrSameAccount       = errors.New("cannot transfer to own account")
	ErrRecipientNotFound = errors.New("recipient not found")
	ErrNotEligible       = errors.New("no qualifying movement for requested loan")
)

// A loan is granted only if some single movement covers this fraction of the
// requested amount.
var loanCollateralRatio = decimal.RequireFromString("0.1")

// Bank is the operation surface the presentation layer consumes.
type Bank interface {
	Login(username, pin string) (*model.SessionView, error)
	Transfer(to string, amount decimal.Decimal) (*model.SessionView, error)
	Loan(amount decimal.Decimal) (*model.SessionView, error)
	Close(username, pin string) error
	ToggleSort() (*model.SessionView, error)
	View() (*model.SessionView, error)
}

// Controller holds the currently authenticated account and the display sort
// flag. One mutex serializes all operations: a transfer mutates two accounts
// jointly and must not interleave with anything else touching either.
type Controller struct {
	mu        sync.Mutex
	directory *storage.Directory
	countdown time.Duration

	current  *model.Account // nil when logged out; non-owning, the directory owns it
	sorted   bool
	deadline time.Time        // display countdown only, never ends the session
	now      func() time.Time // swapped out in tests
}

// NewController creates a controller in the logged-out state. countdown is
// how long the presentation-layer timer runs after each login.
func NewController(directory *storage.Directory, countdown time.Duration) *Controller {
	return &Controller{
		directory: directory,
		countdown: countdown,
		now:       time.Now,
	}
}

// Login authenticates against the directory. The PIN arrives as the raw
// input string; non-numeric input never matches any account. A successful
// login replaces any previous session and resets the sort toggle.
func (c *Controller) Login(username, pin string) (*model.SessionView, error) {
	n, err := strconv.Atoi(strings.TrimSpace(pin))
	if err != nil {
		return nil, ErrBadCredentials
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	account, err := c.directory.FindByCredentials(username, n)
	if err != nil {
		return nil, ErrBadCredentials
	}
	c.current = account
	c.sorted = false
	c.deadline = c.now().Add(c.countdown)
	return c.view(), nil
}

// Transfer moves amount from the current account to the named recipient.
// Both movement appends happen inside the same critical section, so either
// both sides commit or neither does.
func (c *Controller) Transfer(to string, amount decimal.Decimal) (*model.SessionView, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return nil, ErrNoSession
	}
	recipient, err := c.directory.FindByUsername(to)
	if err != nil {
		return nil, ErrRecipientNotFound
	}
	if !amount.IsPositive() {
		return nil, ErrBadAmount
	}
	if ledger.Balance(c.current.Movements).LessThan(amount) {
		return nil, ErrInsufficientFunds
	}
	if recipient.Username == c.current.Username {
		return nil, ErrSameAccount
	}

	c.current.Movements = append(c.current.Movements, amount.Neg())
	recipient.Movements = append(recipient.Movements, amount)
	return c.view(), nil
}

// Loan credits the requested amount if some single existing movement reaches
// a tenth of it. The check is against individual movements, not their sum.
func (c *Controller) Loan(amount decimal.Decimal) (*model.SessionView, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return nil, ErrNoSession
	}
	if !amount.IsPositive() {
		return nil, ErrBadAmount
	}
	required := amount.Mul(loanCollateralRatio)
	eligible := false
	for _, m := range c.current.Movements {
		if m.Cmp(required) >= 0 {
			eligible = true
			break
		}
	}
	if !eligible {
		return nil, ErrNotEligible
	}

	c.current.Movements = append(c.current.Movements, amount)
	return c.view(), nil
}

// Close re-authenticates and removes the logged-in account from the
// directory, ending the session. Credentials are compared against the
// session, not the directory, so no other account can ever be removed.
func (c *Controller) Close(username, pin string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return ErrNoSession
	}
	n, err := strconv.Atoi(strings.TrimSpace(pin))
	if err != nil || username != c.current.Username || n != c.current.PIN {
		return ErrBadCredentials
	}
	if err := c.directory.Remove(c.current.Username); err != nil {
		return err
	}
	c.current = nil
	return nil
}

// ToggleSort flips the display order between insertion order and ascending
// by value. Account data is not touched.
func (c *Controller) ToggleSort() (*model.SessionView, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return nil, ErrNoSession
	}
	c.sorted = !c.sorted
	return c.view(), nil
}

// View recomputes the presentation snapshot for the current session.
func (c *Controller) View() (*model.SessionView, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.current == nil {
		return nil, ErrNoSession
	}
	return c.view(), nil
}

// view assembles the view-model from the movement history. Callers hold c.mu.
func (c *Controller) view() *model.SessionView {
	account := c.current

	shown := account.Movements
	if c.sorted {
		shown = ledger.SortedAscending(shown)
	}
	rows := make([]model.MovementRow, len(shown))
	for i, m := range shown {
		kind := model.MovementWithdrawal
		if m.IsPositive() {
			kind = model.MovementDeposit
		}
		rows[i] = model.MovementRow{Amount: m, Type: kind}
	}

	remaining := int64(c.deadline.Sub(c.now()).Seconds())
	if remaining < 0 {
		remaining = 0
	}

	return &model.SessionView{
		WelcomeName:      firstName(account.Owner),
		Movements:        rows,
		Balance:          ledger.Balance(account.Movements),
		TotalDeposits:    ledger.TotalDeposits(account.Movements),
		TotalWithdrawals: ledger.TotalWithdrawals(account.Movements),
		TotalInterest:    ledger.QualifyingInterest(account.Movements, account.InterestRate),
		SessionActive:    true,
		CountdownSeconds: remaining,
	}
}

func firstName(owner string) string {
	if fields := strings.Fields(owner); len(fields) > 0 {
		return fields[0]
	}
	return owner
}

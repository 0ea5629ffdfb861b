// storage/memory.go

package storage

import (
	"errors"
	"fmt"
	"strings"
	"sync"
	"unicode"

	"bankist-api/model"

	"github.com/shopspring/decimal"
)

// Custom errors for the storage layer.
var (
	ErrNotFound          = errors.New("account not found")
	ErrDuplicateUsername = errors.New("duplicate username")
)

// Directory is the in-memory account collection. Accounts are created once
// from seed data at construction and removed only by account closure; there
// is no durable backend behind it.
//
// The mutex guards the map itself. Movement lists are mutated exclusively by
// the session controller, which serializes all operations, so lookups hand
// out the directory's own pointers rather than copies.
type Directory struct {
	mu       sync.RWMutex
	accounts map[string]*model.Account
}

// NewDirectory builds the directory from seed accounts, deriving each
// username from the owner name. Two owners whose names produce the same
// initials are rejected here rather than silently overwriting each other.
func NewDirectory(seed []SeedAccount) (*Directory, error) {
	d := &Directory{accounts: make(map[string]*model.Account, len(seed))}
	for _, s := range seed {
		username := DeriveUsername(s.Owner)
		if _, exists := d.accounts[username]; exists {
			return nil, fmt.Errorf("%w: %q for owner %q", ErrDuplicateUsername, username, s.Owner)
		}
		d.accounts[username] = &model.Account{
			Owner:        s.Owner,
			Username:     username,
			PIN:          s.PIN,
			InterestRate: s.InterestRate,
			Movements:    append([]decimal.Decimal(nil), s.Movements...),
		}
	}
	return d, nil
}

// DeriveUsername returns the lowercase first letter of every space-separated
// token of the owner name, e.g. "Steven Thomas Williams" -> "stw".
func DeriveUsername(owner string) string {
	var b strings.Builder
	for _, token := range strings.Fields(owner) {
		for _, r := range token {
			b.WriteRune(unicode.ToLower(r))
			break
		}
	}
	return b.String()
}

// FindByCredentials returns the account matching both username and PIN, or
// ErrNotFound. Callers coerce the PIN input to a number before lookup.
func (d *Directory) FindByCredentials(username string, pin int) (*model.Account, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	a, ok := d.accounts[username]
	if !ok || a.PIN != pin {
		return nil, ErrNotFound
	}
	return a, nil
}

// FindByUsername looks up an account ignoring the PIN, used to resolve
// transfer recipients.
func (d *Directory) FindByUsername(username string) (*model.Account, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	a, ok := d.accounts[username]
	if !ok {
		return nil, ErrNotFound
	}
	return a, nil
}

// Remove deletes the account with the given username.
func (d *Directory) Remove(username string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if _, ok := d.accounts[username]; !ok {
		return ErrNotFound
	}
	delete(d.accounts, username)
	return nil
}

// Len reports how many accounts the directory currently holds.
func (d *Directory) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.accounts)
}

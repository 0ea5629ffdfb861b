package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"bankist-api/model"
	"bankist-api/session"
)

// SessionHandler holds dependencies for login, session view, sort toggle and
// account closure.
type SessionHandler struct {
	bank session.Bank
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(bank session.Bank) *SessionHandler {
	return &SessionHandler{bank: bank}
}

// LoginHandler authenticates a username/PIN pair and opens the session.
// It expects a JSON body with "username" and "pin" (the PIN as entered, so a
// non-numeric PIN is just a failed match, not a malformed request).
//
// Method: POST
// Path: /login
// Success: 200 OK with the session view
// Error: 400 Bad Request (for invalid JSON)
// Error: 401 Unauthorized (for a bad username/PIN combination)
func (h *SessionHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	view, err := h.bank.Login(req.Username, req.PIN)
	if err != nil {
		log.Printf("Login rejected for %q: %v", req.Username, err)
		http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// GetSessionHandler returns the current session view, recomputed from the
// movement history.
//
// Method: GET
// Path: /session
// Success: 200 OK
// Error: 401 Unauthorized (if nobody is logged in)
func (h *SessionHandler) GetSessionHandler(w http.ResponseWriter, r *http.Request) {
	view, err := h.bank.View()
	if err != nil {
		http.Error(w, "No active session", http.StatusUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// ToggleSortHandler flips the movement display order between insertion order
// and ascending by value, and returns the re-ordered view.
//
// Method: POST
// Path: /session/sort
// Success: 200 OK
// Error: 401 Unauthorized (if nobody is logged in)
func (h *SessionHandler) ToggleSortHandler(w http.ResponseWriter, r *http.Request) {
	view, err := h.bank.ToggleSort()
	if err != nil {
		http.Error(w, "No active session", http.StatusUnauthorized)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// CloseAccountHandler re-authenticates the logged-in user and removes their
// account, ending the session. It can never remove any other account.
//
// Method: POST
// Path: /close
// Success: 200 OK with {"session_active": false}
// Error: 400 Bad Request (for invalid JSON)
// Error: 401 Unauthorized (no session, or re-authentication mismatch)
func (h *SessionHandler) CloseAccountHandler(w http.ResponseWriter, r *http.Request) {
	var req model.CloseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.bank.Close(req.Username, req.PIN); err != nil {
		log.Printf("Close rejected for %q: %v", req.Username, err)
		switch {
		case errors.Is(err, session.ErrNoSession), errors.Is(err, session.ErrBadCredentials):
			http.Error(w, "Invalid credentials", http.StatusUnauthorized)
		default:
			http.Error(w, "Failed to close account", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]bool{"session_active": false})
}

// currencies is the static currency table served to clients. The ledger core
// never reads it.
var currencies = map[string]string{
	"USD": "United States dollar",
	"EUR": "Euro",
	"GBP": "Pound sterling",
}

// CurrenciesHandler serves the static currency table.
//
// Method: GET
// Path: /currencies
// Success: 200 OK
func (h *SessionHandler) CurrenciesHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, currencies)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("Error writing JSON response: %v", err)
	}
}

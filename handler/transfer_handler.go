package handler

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	"bankist-api/model"
	"bankist-api/session"
)

// TransferHandler holds dependencies for transfer and loan handlers.
type TransferHandler struct {
	bank session.Bank
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(bank session.Bank) *TransferHandler {
	return &TransferHandler{bank: bank}
}

// CreateTransferHandler moves money from the logged-in account to another
// account. Both movement lists are updated atomically; a rejected transfer
// changes neither.
//
// Method: POST
// Path: /transfers
// Success: 200 OK with the sender's updated session view
// Error: 400 Bad Request (invalid JSON, non-positive amount, self-transfer)
// Error: 401 Unauthorized (if nobody is logged in)
// Error: 404 Not Found (unknown recipient)
// Error: 422 Unprocessable Entity (insufficient balance)
func (h *TransferHandler) CreateTransferHandler(w http.ResponseWriter, r *http.Request) {
	var req model.TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	view, err := h.bank.Transfer(req.To, req.Amount)
	if err != nil {
		log.Printf("Transfer rejected: %v", err)
		switch {
		case errors.Is(err, session.ErrNoSession):
			http.Error(w, "No active session", http.StatusUnauthorized)
		case errors.Is(err, session.ErrRecipientNotFound):
			http.Error(w, "Recipient not found", http.StatusNotFound)
		case errors.Is(err, session.ErrBadAmount):
			http.Error(w, "Transfer amount must be positive", http.StatusBadRequest)
		case errors.Is(err, session.ErrSameAccount):
			http.Error(w, "Cannot transfer to own account", http.StatusBadRequest)
		case errors.Is(err, session.ErrInsufficientFunds):
			http.Error(w, "Insufficient funds", http.StatusUnprocessableEntity)
		default:
			http.Error(w, "Failed to process transfer", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, view)
}

// CreateLoanHandler requests a loan for the logged-in account. The loan is
// granted only if a single existing movement reaches a tenth of the
// requested amount.
//
// Method: POST
// Path: /loans
// Success: 200 OK with the updated session view
// Error: 400 Bad Request (invalid JSON, non-positive amount)
// Error: 401 Unauthorized (if nobody is logged in)
// Error: 422 Unprocessable Entity (no qualifying movement)
func (h *TransferHandler) CreateLoanHandler(w http.ResponseWriter, r *http.Request) {
	var req model.LoanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	view, err := h.bank.Loan(req.Amount)
	if err != nil {
		log.Printf("Loan rejected: %v", err)
		switch {
		case errors.Is(err, session.ErrNoSession):
			http.Error(w, "No active session", http.StatusUnauthorized)
		case errors.Is(err, session.ErrBadAmount):
			http.Error(w, "Loan amount must be positive", http.StatusBadRequest)
		case errors.Is(err, session.ErrNotEligible):
			http.Error(w, "No qualifying movement for requested loan", http.StatusUnprocessableEntity)
		default:
			http.Error(w, "Failed to process loan", http.StatusInternalServerError)
		}
		return
	}

	writeJSON(w, http.StatusOK, view)
}

package core

import (
	"errors"
	"fmt"
	"strings"
)

type (
	// IncomeEntry is a single income record. Entries are append-only:
	// once inserted they are never updated or deleted.
	IncomeEntry struct {
		ID          int64  `json:"id"`
		Date        string `json:"fecha"`
		Amount      Amount `json:"monto"`
		Description string `json:"descripcion"`
	}

	// ExpenseEntry is a single expense record with an optional receipt
	// attachment stored in the file store.
	ExpenseEntry struct {
		ID          int64   `json:"id"`
		Date        string  `json:"fecha"`
		Amount      Amount  `json:"monto"`
		Description string  `json:"descripcion"`
		Attachment  *string `json:"archivo"`
	}

	// MaintenanceEvent records a vehicle maintenance intervention.
	// NextOdometer and NextDate carry when the next service is due; both
	// are pass-through data, never validated against each other.
	MaintenanceEvent struct {
		ID           int64   `json:"id"`
		Type         string  `json:"tipo"`
		Date         string  `json:"fecha"`
		Odometer     int64   `json:"kilometraje"`
		Description  string  `json:"descripcion"`
		Component    string  `json:"componente"`
		NextOdometer *int64  `json:"proximo_kilometraje"`
		NextDate     *string `json:"proxima_fecha"`
		Cost         Amount  `json:"costo"`
		Attachment   *string `json:"archivo"`
	}

	// Summary aggregates all income and expense rows at call time.
	Summary struct {
		TotalIncome  Amount
		TotalExpense Amount
		Balance      Amount
		Expenses     []ExpenseEntry
	}
)

var (
	ErrMissingField    = errors.New("missing required field")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrInvalidOdometer = errors.New("invalid odometer reading")
)

// IsValidationError reports whether err belongs to the input-validation
// taxonomy, as opposed to storage or filesystem failures.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrMissingField) ||
		errors.Is(err, ErrInvalidAmount) ||
		errors.Is(err, ErrInvalidOdometer)
}

func (e IncomeEntry) Validate() error {
	if strings.TrimSpace(e.Date) == "" {
		return fmt.Errorf("%w: fecha", ErrMissingField)
	}
	return nil
}

func (e ExpenseEntry) Validate() error {
	if strings.TrimSpace(e.Date) == "" {
		return fmt.Errorf("%w: fecha", ErrMissingField)
	}
	return nil
}

func (e MaintenanceEvent) Validate() error {
	if strings.TrimSpace(e.Type) == "" {
		return fmt.Errorf("%w: tipo", ErrMissingField)
	}
	if strings.TrimSpace(e.Date) == "" {
		return fmt.Errorf("%w: fecha", ErrMissingField)
	}
	return nil
}

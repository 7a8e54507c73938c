// Package services orchestrates record operations across the sqlite
// repository and the optional AMQP event publisher, and computes the
// income/expense summary.
package services

import (
	"context"
	"fmt"
	"log/slog"

	"contabilidad/internal/amqp"
	"contabilidad/internal/core"
	"contabilidad/internal/storage"

	"github.com/shopspring/decimal"
)

// RecordService wires the repository with event publishing. A nil AMQP
// client disables events without changing any insert behavior.
type RecordService struct {
	storage    *storage.SQLiteRepository
	amqpClient *amqp.Client
}

func NewRecordService(storage *storage.SQLiteRepository, amqpClient *amqp.Client) *RecordService {
	return &RecordService{
		storage:    storage,
		amqpClient: amqpClient,
	}
}

func (s *RecordService) CreateIncome(ctx context.Context, e core.IncomeEntry) (int64, error) {
	id, err := s.storage.InsertIncome(ctx, e)
	if err != nil {
		return 0, fmt.Errorf("save income: %w", err)
	}
	s.publishCreated(ctx, amqp.KindIncome, id)
	return id, nil
}

// CreateExpense inserts the expense row. The attachment, when present,
// was already written by the file store: callers save the file first so a
// failure between the two steps leaves at most an orphan file, never a
// row referencing a file that was not saved.
func (s *RecordService) CreateExpense(ctx context.Context, e core.ExpenseEntry) (int64, error) {
	id, err := s.storage.InsertExpense(ctx, e)
	if err != nil {
		return 0, fmt.Errorf("save expense: %w", err)
	}
	s.publishCreated(ctx, amqp.KindExpense, id)
	return id, nil
}

func (s *RecordService) CreateMaintenance(ctx context.Context, e core.MaintenanceEvent) (int64, error) {
	id, err := s.storage.InsertMaintenance(ctx, e)
	if err != nil {
		return 0, fmt.Errorf("save maintenance: %w", err)
	}
	s.publishCreated(ctx, amqp.KindMaintenance, id)
	return id, nil
}

// ListMaintenance returns all maintenance events, date descending.
func (s *RecordService) ListMaintenance(ctx context.Context) ([]core.MaintenanceEvent, error) {
	return s.storage.ListMaintenance(ctx)
}

// Summary rescans both amount tables and sums them. There is no caching:
// the result is a pure function of the store at call time.
func (s *RecordService) Summary(ctx context.Context) (core.Summary, error) {
	income, err := s.storage.ListIncome(ctx)
	if err != nil {
		return core.Summary{}, fmt.Errorf("list income: %w", err)
	}
	expenses, err := s.storage.ListExpenses(ctx)
	if err != nil {
		return core.Summary{}, fmt.Errorf("list expenses: %w", err)
	}

	totalIncome := decimal.Zero
	for _, e := range income {
		totalIncome = totalIncome.Add(e.Amount.Decimal)
	}
	totalExpense := decimal.Zero
	for _, e := range expenses {
		totalExpense = totalExpense.Add(e.Amount.Decimal)
	}

	return core.Summary{
		TotalIncome:  core.NewAmount(totalIncome),
		TotalExpense: core.NewAmount(totalExpense),
		Balance:      core.NewAmount(totalIncome.Sub(totalExpense)),
		Expenses:     expenses,
	}, nil
}

// publishCreated emits a record-created event. Publishing is best effort:
// the row is already committed, so failures are logged and swallowed.
func (s *RecordService) publishCreated(ctx context.Context, kind amqp.RecordKind, id int64) {
	if s.amqpClient == nil {
		return
	}
	if err := s.amqpClient.PublishRecordCreated(ctx, kind, id); err != nil {
		slog.ErrorContext(ctx, "Failed to publish record created event",
			"kind", kind, "id", id, "error", err)
	}
}

// Ping reports whether the underlying store is reachable.
func (s *RecordService) Ping(ctx context.Context) error {
	return s.storage.Ping(ctx)
}

// Close closes the storage and AMQP connections.
func (s *RecordService) Close() error {
	var errs []error

	if s.storage != nil {
		if err := s.storage.Close(); err != nil {
			errs = append(errs, fmt.Errorf("storage: %w", err))
		}
	}
	if s.amqpClient != nil {
		if err := s.amqpClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("amqp: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close record service: %v", errs)
	}
	return nil
}

package storage

import (
	"database/sql"
	"fmt"

	"contabilidad/internal/core"

	"github.com/shopspring/decimal"
)

// Scan helpers isolate column access from the rest of the core: the
// repository methods see entities, never raw rows.

func scanIncome(rows *sql.Rows) (core.IncomeEntry, error) {
	var (
		e      core.IncomeEntry
		amount string
	)
	if err := rows.Scan(&e.ID, &e.Date, &amount, &e.Description); err != nil {
		return core.IncomeEntry{}, fmt.Errorf("scan income row: %w", err)
	}
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return core.IncomeEntry{}, fmt.Errorf("decode income amount %q: %w", amount, err)
	}
	e.Amount = core.NewAmount(d)
	return e, nil
}

func scanExpense(rows *sql.Rows) (core.ExpenseEntry, error) {
	var (
		e          core.ExpenseEntry
		amount     string
		attachment sql.NullString
	)
	if err := rows.Scan(&e.ID, &e.Date, &amount, &e.Description, &attachment); err != nil {
		return core.ExpenseEntry{}, fmt.Errorf("scan expense row: %w", err)
	}
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return core.ExpenseEntry{}, fmt.Errorf("decode expense amount %q: %w", amount, err)
	}
	e.Amount = core.NewAmount(d)
	e.Attachment = fromNullString(attachment)
	return e, nil
}

func scanMaintenance(rows *sql.Rows) (core.MaintenanceEvent, error) {
	var (
		ev           core.MaintenanceEvent
		cost         string
		nextOdometer sql.NullInt64
		nextDate     sql.NullString
		attachment   sql.NullString
	)
	if err := rows.Scan(&ev.ID, &ev.Type, &ev.Date, &ev.Odometer, &ev.Description,
		&ev.Component, &nextOdometer, &nextDate, &cost, &attachment); err != nil {
		return core.MaintenanceEvent{}, fmt.Errorf("scan maintenance row: %w", err)
	}
	d, err := decimal.NewFromString(cost)
	if err != nil {
		return core.MaintenanceEvent{}, fmt.Errorf("decode maintenance cost %q: %w", cost, err)
	}
	ev.Cost = core.NewAmount(d)
	ev.NextOdometer = fromNullInt64(nextOdometer)
	ev.NextDate = fromNullString(nextDate)
	ev.Attachment = fromNullString(attachment)
	return ev, nil
}

func fromNullString(v sql.NullString) *string {
	if !v.Valid {
		return nil
	}
	return &v.String
}

func fromNullInt64(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	return &v.Int64
}

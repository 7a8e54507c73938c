// Package storage owns every SQL-level interaction with the embedded
// sqlite store: inserts and full-table reads over the three record
// tables, plus the schema migrations that create them.
package storage

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"contabilidad/internal/core"

	_ "modernc.org/sqlite"
)

const (
	insertIncomeQuery = `INSERT INTO ingresos (fecha, monto, descripcion) VALUES (?, ?, ?)`

	insertExpenseQuery = `INSERT INTO gastos (fecha, monto, descripcion, archivo) VALUES (?, ?, ?, ?)`

	insertMaintenanceQuery = `INSERT INTO mantenimientos
		(tipo, fecha, kilometraje, descripcion, componente, proximo_kilometraje, proxima_fecha, costo, archivo)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	listIncomeQuery = `SELECT id, fecha, monto, descripcion FROM ingresos`

	listExpensesQuery = `SELECT id, fecha, monto, descripcion, archivo FROM gastos`

	// Date descending; equal dates fall back to insertion order.
	listMaintenanceQuery = `SELECT id, tipo, fecha, kilometraje, descripcion, componente,
		proximo_kilometraje, proxima_fecha, costo, archivo
		FROM mantenimientos ORDER BY fecha DESC, id ASC`
)

type SQLiteRepository struct {
	db *sql.DB
}

func NewSQLiteRepository(dbPath string) (*SQLiteRepository, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create db directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	if err := RunMigrations(dbPath); err != nil {
		db.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteRepository{db: db}, nil
}

func (r *SQLiteRepository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}

// Ping verifies the database is reachable; used by the readiness probe.
func (r *SQLiteRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}

func (r *SQLiteRepository) InsertIncome(ctx context.Context, e core.IncomeEntry) (int64, error) {
	res, err := r.db.ExecContext(ctx, insertIncomeQuery, e.Date, e.Amount.String(), e.Description)
	if err != nil {
		return 0, fmt.Errorf("insert income: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("income last insert id: %w", err)
	}

	slog.InfoContext(ctx, "Income saved",
		"id", id,
		"fecha", e.Date,
		"monto", e.Amount.String())
	return id, nil
}

func (r *SQLiteRepository) InsertExpense(ctx context.Context, e core.ExpenseEntry) (int64, error) {
	res, err := r.db.ExecContext(ctx, insertExpenseQuery,
		e.Date, e.Amount.String(), e.Description, nullString(e.Attachment))
	if err != nil {
		return 0, fmt.Errorf("insert expense: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("expense last insert id: %w", err)
	}

	slog.InfoContext(ctx, "Expense saved",
		"id", id,
		"fecha", e.Date,
		"monto", e.Amount.String(),
		"archivo", e.Attachment != nil)
	return id, nil
}

func (r *SQLiteRepository) InsertMaintenance(ctx context.Context, e core.MaintenanceEvent) (int64, error) {
	res, err := r.db.ExecContext(ctx, insertMaintenanceQuery,
		e.Type, e.Date, e.Odometer, e.Description, e.Component,
		nullInt64(e.NextOdometer), nullString(e.NextDate),
		e.Cost.String(), nullString(e.Attachment))
	if err != nil {
		return 0, fmt.Errorf("insert maintenance: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("maintenance last insert id: %w", err)
	}

	slog.InfoContext(ctx, "Maintenance saved",
		"id", id,
		"tipo", e.Type,
		"fecha", e.Date,
		"kilometraje", e.Odometer)
	return id, nil
}

func (r *SQLiteRepository) ListIncome(ctx context.Context) ([]core.IncomeEntry, error) {
	rows, err := r.db.QueryContext(ctx, listIncomeQuery)
	if err != nil {
		return nil, fmt.Errorf("list income: %w", err)
	}
	defer rows.Close()

	entries := make([]core.IncomeEntry, 0)
	for rows.Next() {
		e, err := scanIncome(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate income rows: %w", err)
	}
	return entries, nil
}

func (r *SQLiteRepository) ListExpenses(ctx context.Context) ([]core.ExpenseEntry, error) {
	rows, err := r.db.QueryContext(ctx, listExpensesQuery)
	if err != nil {
		return nil, fmt.Errorf("list expenses: %w", err)
	}
	defer rows.Close()

	entries := make([]core.ExpenseEntry, 0)
	for rows.Next() {
		e, err := scanExpense(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate expense rows: %w", err)
	}
	return entries, nil
}

func (r *SQLiteRepository) ListMaintenance(ctx context.Context) ([]core.MaintenanceEvent, error) {
	rows, err := r.db.QueryContext(ctx, listMaintenanceQuery)
	if err != nil {
		return nil, fmt.Errorf("list maintenance: %w", err)
	}
	defer rows.Close()

	events := make([]core.MaintenanceEvent, 0)
	for rows.Next() {
		ev, err := scanMaintenance(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, ev)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate maintenance rows: %w", err)
	}
	return events, nil
}

func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

func nullInt64(v *int64) sql.NullInt64 {
	if v == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: *v, Valid: true}
}

package services

import (
	"context"
	"path/filepath"
	"testing"

	"contabilidad/internal/core"
	"contabilidad/internal/storage"

	"github.com/shopspring/decimal"
)

func newTestService(t *testing.T) *RecordService {
	t.Helper()
	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "contabilidad.db"))
	if err != nil {
		t.Fatalf("create repository: %v", err)
	}
	svc := NewRecordService(repo, nil)
	t.Cleanup(func() { svc.Close() })
	return svc
}

func amount(t *testing.T, s string) core.Amount {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return core.NewAmount(d)
}

func TestSummaryOnEmptyStore(t *testing.T) {
	svc := newTestService(t)

	sum, err := svc.Summary(context.Background())
	if err != nil {
		t.Fatalf("summary: %v", err)
	}

	if !sum.TotalIncome.IsZero() {
		t.Errorf("total income = %s, want 0", sum.TotalIncome)
	}
	if !sum.TotalExpense.IsZero() {
		t.Errorf("total expense = %s, want 0", sum.TotalExpense)
	}
	if !sum.Balance.IsZero() {
		t.Errorf("balance = %s, want 0", sum.Balance)
	}
	if sum.Expenses == nil || len(sum.Expenses) != 0 {
		t.Errorf("expenses = %v, want empty slice", sum.Expenses)
	}
}

func TestSummaryBalance(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	for _, monto := range []string{"300.00", "200.00"} {
		if _, err := svc.CreateIncome(ctx, core.IncomeEntry{
			Date:   "2024-01-15",
			Amount: amount(t, monto),
		}); err != nil {
			t.Fatalf("create income: %v", err)
		}
	}
	for _, monto := range []string{"100.00", "20.50"} {
		if _, err := svc.CreateExpense(ctx, core.ExpenseEntry{
			Date:   "2024-01-16",
			Amount: amount(t, monto),
		}); err != nil {
			t.Fatalf("create expense: %v", err)
		}
	}

	sum, err := svc.Summary(ctx)
	if err != nil {
		t.Fatalf("summary: %v", err)
	}

	if !sum.TotalIncome.Equal(amount(t, "500.00").Decimal) {
		t.Errorf("total income = %s, want 500.00", sum.TotalIncome)
	}
	if !sum.TotalExpense.Equal(amount(t, "120.50").Decimal) {
		t.Errorf("total expense = %s, want 120.50", sum.TotalExpense)
	}
	if !sum.Balance.Equal(amount(t, "379.50").Decimal) {
		t.Errorf("balance = %s, want 379.50", sum.Balance)
	}
	if len(sum.Expenses) != 2 {
		t.Errorf("expenses = %d rows, want 2", len(sum.Expenses))
	}
}

func TestCreateIncomeIncreasesTotal(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	before, err := svc.Summary(ctx)
	if err != nil {
		t.Fatalf("summary before: %v", err)
	}

	if _, err := svc.CreateIncome(ctx, core.IncomeEntry{
		Date:        "2024-07-01",
		Amount:      amount(t, "75.25"),
		Description: "Reembolso",
	}); err != nil {
		t.Fatalf("create income: %v", err)
	}

	after, err := svc.Summary(ctx)
	if err != nil {
		t.Fatalf("summary after: %v", err)
	}
	delta := after.TotalIncome.Sub(before.TotalIncome.Decimal)
	if !delta.Equal(amount(t, "75.25").Decimal) {
		t.Errorf("total income delta = %s, want 75.25", delta)
	}
}

func TestCreateMaintenanceAndList(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	id, err := svc.CreateMaintenance(ctx, core.MaintenanceEvent{
		Type:     "Cambio de aceite",
		Date:     "2024-02-20",
		Odometer: 48000,
		Cost:     amount(t, "60"),
	})
	if err != nil {
		t.Fatalf("create maintenance: %v", err)
	}

	events, err := svc.ListMaintenance(ctx)
	if err != nil {
		t.Fatalf("list maintenance: %v", err)
	}
	if len(events) != 1 || events[0].ID != id {
		t.Errorf("expected single event with id %d, got %+v", id, events)
	}
}

func TestCloseWithNilComponents(t *testing.T) {
	svc := &RecordService{}
	if err := svc.Close(); err != nil {
		t.Fatalf("close with nil components: %v", err)
	}
}

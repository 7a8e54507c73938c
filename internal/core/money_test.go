package core

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
)

func TestAmountMarshalsAsNumber(t *testing.T) {
	a, err := ParseAmount("120.50")
	if err != nil {
		t.Fatalf("parse: %v", err)
	}

	body, err := json.Marshal(struct {
		Monto Amount `json:"monto"`
	}{Monto: a})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(body) != `{"monto":120.5}` {
		t.Errorf("marshal = %s, want unquoted number", body)
	}
}

func TestAmountUnmarshalsNumbersAndStrings(t *testing.T) {
	for _, raw := range []string{`42.5`, `"42.5"`} {
		var a Amount
		if err := json.Unmarshal([]byte(raw), &a); err != nil {
			t.Fatalf("unmarshal %s: %v", raw, err)
		}
		if want, _ := decimal.NewFromString("42.5"); !a.Equal(want) {
			t.Errorf("unmarshal %s = %s, want 42.5", raw, a)
		}
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "plain integer", input: "500", want: "500"},
		{name: "two decimals", input: "120.50", want: "120.5"},
		{name: "comma separator", input: "120,50", want: "120.5"},
		{name: "leading whitespace", input: " 12.34", want: "12.34"},
		{name: "negative accepted", input: "-5", want: "-5"},
		{name: "empty", input: "", wantErr: true},
		{name: "whitespace only", input: "   ", wantErr: true},
		{name: "non numeric", input: "abc", wantErr: true},
		{name: "double separator", input: "1.2.3", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseAmount(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("ParseAmount(%q) expected error, got %s", tt.input, got)
				}
				if !errors.Is(err, ErrInvalidAmount) {
					t.Errorf("ParseAmount(%q) error = %v, want ErrInvalidAmount", tt.input, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseAmount(%q) unexpected error: %v", tt.input, err)
			}
			want, _ := decimal.NewFromString(tt.want)
			if !got.Equal(want) {
				t.Errorf("ParseAmount(%q) = %s, want %s", tt.input, got, want)
			}
		})
	}
}

func TestParseOptionalOdometer(t *testing.T) {
	t.Run("empty value stays null", func(t *testing.T) {
		got, err := ParseOptionalOdometer("")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got != nil {
			t.Errorf("expected nil for empty value, got %d", *got)
		}
	})

	t.Run("valid value", func(t *testing.T) {
		got, err := ParseOptionalOdometer("15000")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got == nil || *got != 15000 {
			t.Errorf("expected 15000, got %v", got)
		}
	})

	t.Run("invalid value", func(t *testing.T) {
		_, err := ParseOptionalOdometer("soon")
		if !errors.Is(err, ErrInvalidOdometer) {
			t.Errorf("expected ErrInvalidOdometer, got %v", err)
		}
	})
}

func TestIsValidationError(t *testing.T) {
	if !IsValidationError(ErrInvalidAmount) {
		t.Error("ErrInvalidAmount should be a validation error")
	}
	if IsValidationError(errors.New("disk full")) {
		t.Error("arbitrary errors are not validation errors")
	}
}

func TestMaintenanceEventValidate(t *testing.T) {
	ev := MaintenanceEvent{Type: "Cambio de aceite", Date: "2024-03-01"}
	if err := ev.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ev.Date = ""
	if err := ev.Validate(); !errors.Is(err, ErrMissingField) {
		t.Errorf("expected ErrMissingField for empty fecha, got %v", err)
	}
}

package scoring

import (
	"testing"
	"time"

	"github.com/sbilibin2017/accounting-marathon/internal/questions"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluateMultipleChoice(t *testing.T) {
	q := questions.MultipleChoice{
		ID:      "mcq-3",
		Answer:  "Equity / Draw",
		Options: []string{"Expense", "Equity / Draw", "Liability", "Income"},
	}

	tests := []struct {
		name      string
		submitted string
		want      int
	}{
		{name: "exact match", submitted: "Equity / Draw", want: 1},
		{name: "other option", submitted: "Expense", want: 0},
		{name: "case differs", submitted: "equity / draw", want: 0},
		{name: "surrounding whitespace", submitted: " Equity / Draw", want: 0},
		{name: "empty", submitted: "", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EvaluateMultipleChoice(q, tt.submitted))
		})
	}
}

func TestEvaluateFreeTextVendor(t *testing.T) {
	tests := []struct {
		name      string
		submitted string
		want      int
	}{
		{name: "exact", submitted: "amazon", want: 1},
		{name: "capitalized", submitted: "Amazon", want: 1},
		{name: "upper case", submitted: "AMAZON", want: 1},
		{name: "padded", submitted: "  Amazon\t\n", want: 1},
		{name: "inner space", submitted: "Ama zon", want: 0},
		{name: "punctuation", submitted: "Amazon.", want: 0},
		{name: "longer name", submitted: "Amazon Mktp", want: 0},
		{name: "empty", submitted: "", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EvaluateFreeTextVendor("amazon", tt.submitted))
		})
	}
}

func TestEvaluateCategory(t *testing.T) {
	tests := []struct {
		name      string
		submitted string
		want      int
	}{
		{name: "exact", submitted: "Travel Expense", want: 2},
		{name: "lower case", submitted: "travel expense", want: 0},
		{name: "trailing space", submitted: "Travel Expense ", want: 0},
		{name: "leading space", submitted: " Travel Expense", want: 0},
		{name: "other label", submitted: "Rent Expense", want: 0},
		{name: "empty", submitted: "", want: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EvaluateCategory("Travel Expense", tt.submitted))
		})
	}
}

func perfectAnswers(bank *questions.Bank) map[string]string {
	answers := make(map[string]string)
	for _, q := range bank.MultipleChoice {
		answers[q.ID] = q.Answer
	}
	for _, task := range bank.BankTasks {
		answers[questions.VendorKey(task.ID)] = task.Vendor
		answers[questions.CategoryKey(task.ID)] = task.GL
	}
	return answers
}

func TestTotalScore(t *testing.T) {
	bank, err := questions.Default()
	require.NoError(t, err)

	t.Run("perfect attempt", func(t *testing.T) {
		got := TotalScore(bank, perfectAnswers(bank))
		assert.Equal(t, len(bank.MultipleChoice)+3*len(bank.BankTasks), got)
		assert.Equal(t, MaxScore(bank), got)
	})

	t.Run("no answers", func(t *testing.T) {
		assert.Equal(t, 0, TotalScore(bank, nil))
	})

	t.Run("partial attempt", func(t *testing.T) {
		answers := map[string]string{
			"mcq-1":                         "Liability",
			"mcq-2":                         "Asset",
			questions.VendorKey("bank-1"):   " AMAZON ",
			questions.CategoryKey("bank-1"): "Rent Expense",
			questions.CategoryKey("bank-2"): "Travel Expense",
			"unknown-question":              "Liability",
		}
		// mcq-1 (1) + bank-1 vendor (1) + bank-2 gl (2)
		assert.Equal(t, 4, TotalScore(bank, answers))
	})

	t.Run("recomputing does not accumulate", func(t *testing.T) {
		answers := perfectAnswers(bank)
		first := TotalScore(bank, answers)
		second := TotalScore(bank, answers)
		assert.Equal(t, first, second)
	})
}

func TestElapsedTime(t *testing.T) {
	start := time.Date(2026, 1, 1, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name        string
		end         time.Time
		wantSeconds float64
		wantClamped bool
	}{
		{name: "whole seconds", end: start.Add(90 * time.Second), wantSeconds: 90},
		{name: "rounds down", end: start.Add(1234 * time.Millisecond), wantSeconds: 1.23},
		{name: "rounds up", end: start.Add(1236 * time.Millisecond), wantSeconds: 1.24},
		{name: "zero", end: start, wantSeconds: 0},
		{name: "clock skew", end: start.Add(-5 * time.Second), wantSeconds: 0, wantClamped: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seconds, clamped := ElapsedTime(start, tt.end)
			assert.InDelta(t, tt.wantSeconds, seconds, 1e-9)
			assert.Equal(t, tt.wantClamped, clamped)
		})
	}
}

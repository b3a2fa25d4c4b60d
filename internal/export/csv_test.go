package export

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"fundboard/internal/models"
)

func TestRows(t *testing.T) {
	catID := uint(5)
	date := time.Date(2026, 3, 14, 10, 0, 0, 0, time.UTC)
	expenses := []models.Expense{
		{
			Base:     models.Base{ID: 1},
			BudgetID: 2, CategoryID: &catID,
			Category:   &models.BudgetCategory{Name: "Travel"},
			Title:      "Flights",
			Amount:     123456,
			Currency:   "EUR",
			Date:       date,
			Status:     models.ExpenseStatusApproved,
			ReceiptURL: "https://receipts.example/1.pdf",
		},
		{
			Base:     models.Base{ID: 2},
			BudgetID: 2,
			Title:    "Stamps",
			Amount:   250,
			Currency: "EUR",
			Date:     date,
			Status:   models.ExpenseStatusPending,
		},
	}

	rows := Rows(expenses)
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Amount != "1234.56" {
		t.Errorf("expected decimal amount 1234.56, got %s", rows[0].Amount)
	}
	if rows[0].Category != "Travel" {
		t.Errorf("expected category Travel, got %s", rows[0].Category)
	}
	if rows[0].Date != "2026-03-14" {
		t.Errorf("expected date 2026-03-14, got %s", rows[0].Date)
	}
	if rows[1].Category != "Uncategorized" {
		t.Errorf("expected Uncategorized for nil category, got %s", rows[1].Category)
	}
}

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	err := WriteCSV(&buf, []models.Expense{
		{Base: models.Base{ID: 9}, BudgetID: 1, Title: "Hosting", Amount: 9900, Currency: "USD", Date: time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC), Status: models.ExpenseStatusReimbursed},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header + 1 row, got %d lines", len(lines))
	}
	if !strings.HasPrefix(lines[0], "id,title,description,budget_id,category,amount,currency,date,status") {
		t.Errorf("unexpected header ordering: %s", lines[0])
	}
	if !strings.Contains(lines[1], "99.00") || !strings.Contains(lines[1], "reimbursed") {
		t.Errorf("unexpected row: %s", lines[1])
	}
}

func TestWriteCSV_EmptySet(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, nil); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Header only.
	if !strings.Contains(buf.String(), "id,title") {
		t.Errorf("expected header for empty export, got %q", buf.String())
	}
}

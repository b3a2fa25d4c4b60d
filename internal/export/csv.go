// Package export renders already-filtered expense rows as CSV. The caller
// decides which expenses to include (via the filter engine); this package only
// owns the column ordering and cell formatting.
package export

import (
	"io"

	"github.com/gocarina/gocsv"

	"fundboard/internal/models"
	"fundboard/internal/money"
)

// ExpenseRow is one CSV line of the expense export. Field order defines the
// column order.
type ExpenseRow struct {
	ID          uint   `csv:"id"`
	Title       string `csv:"title"`
	Description string `csv:"description"`
	BudgetID    uint   `csv:"budget_id"`
	Category    string `csv:"category"`
	Amount      string `csv:"amount"`
	Currency    string `csv:"currency"`
	Date        string `csv:"date"`
	Status      string `csv:"status"`
	ReceiptURL  string `csv:"receipt_url"`
}

// Rows converts expenses into export rows. Amounts are formatted as decimals
// and an absent category is rendered as "Uncategorized".
func Rows(expenses []models.Expense) []ExpenseRow {
	rows := make([]ExpenseRow, 0, len(expenses))
	for _, e := range expenses {
		category := "Uncategorized"
		if e.Category != nil {
			category = e.Category.Name
		}
		rows = append(rows, ExpenseRow{
			ID:          e.ID,
			Title:       e.Title,
			Description: e.Description,
			BudgetID:    e.BudgetID,
			Category:    category,
			Amount:      money.FormatCents(e.Amount),
			Currency:    e.Currency,
			Date:        e.Date.Format("2006-01-02"),
			Status:      string(e.Status),
			ReceiptURL:  e.ReceiptURL,
		})
	}
	return rows
}

// WriteCSV writes the expenses as CSV, header included.
func WriteCSV(w io.Writer, expenses []models.Expense) error {
	rows := Rows(expenses)
	return gocsv.Marshal(&rows, w)
}

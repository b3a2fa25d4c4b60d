// Package expensefilter implements client-style filtering over an in-memory
// expense collection: budget, category, and status equality combined with a
// case-insensitive free-text search, plus a running total.
//
// The engine assumes bounded-size collections fetched wholesale from the
// database; there is no pagination or virtualization.
package expensefilter

import (
	"strings"

	"fundboard/internal/models"
)

// StatusAll is the unconstrained status filter value.
const StatusAll = "all"

// Criteria holds one value per filter dimension. Nil pointers, StatusAll (or
// an empty status), and an empty search string leave the corresponding
// dimension unconstrained, so the zero value matches every expense.
type Criteria struct {
	BudgetID   *uint
	CategoryID *uint
	Status     string
	Search     string
}

// Reset returns every dimension to its unconstrained default in one operation.
func (c *Criteria) Reset() {
	c.BudgetID = nil
	c.CategoryID = nil
	c.Status = StatusAll
	c.Search = ""
}

// Matches reports whether the expense satisfies every active predicate.
func (c Criteria) Matches(e models.Expense) bool {
	if c.BudgetID != nil && e.BudgetID != *c.BudgetID {
		return false
	}
	if c.CategoryID != nil && (e.CategoryID == nil || *e.CategoryID != *c.CategoryID) {
		return false
	}
	if c.Status != "" && c.Status != StatusAll && string(e.Status) != c.Status {
		return false
	}
	if c.Search != "" {
		needle := strings.ToLower(c.Search)
		title := strings.ToLower(e.Title)
		desc := strings.ToLower(e.Description)
		if !strings.Contains(title, needle) && !strings.Contains(desc, needle) {
			return false
		}
	}
	return true
}

// Apply returns the subset of expenses matching the criteria, preserving the
// input order.
func Apply(expenses []models.Expense, criteria Criteria) []models.Expense {
	filtered := make([]models.Expense, 0, len(expenses))
	for _, e := range expenses {
		if criteria.Matches(e) {
			filtered = append(filtered, e)
		}
	}
	return filtered
}

// Total sums expense amounts, optionally scoped to a single budget when
// budgetID is non-nil.
func Total(expenses []models.Expense, budgetID *uint) int64 {
	var total int64
	for _, e := range expenses {
		if budgetID != nil && e.BudgetID != *budgetID {
			continue
		}
		total += e.Amount
	}
	return total
}

package expensefilter

import (
	"testing"

	"fundboard/internal/models"
)

func uintPtr(v uint) *uint { return &v }

// seven expenses across two budgets, mixed statuses, per the approval flow.
func sampleExpenses() []models.Expense {
	return []models.Expense{
		{Base: models.Base{ID: 1}, BudgetID: 1, CategoryID: uintPtr(10), Title: "Office chairs", Description: "Ergonomic seating", Amount: 45000, Status: models.ExpenseStatusApproved},
		{Base: models.Base{ID: 2}, BudgetID: 1, CategoryID: uintPtr(10), Title: "Laptops", Description: "Developer hardware", Amount: 320000, Status: models.ExpenseStatusPending},
		{Base: models.Base{ID: 3}, BudgetID: 1, CategoryID: uintPtr(11), Title: "Conference travel", Description: "", Amount: 87500, Status: models.ExpenseStatusApproved},
		{Base: models.Base{ID: 4}, BudgetID: 1, CategoryID: nil, Title: "Misc supplies", Description: "Uncategorized purchase", Amount: 1200, Status: models.ExpenseStatusRejected},
		{Base: models.Base{ID: 5}, BudgetID: 2, CategoryID: uintPtr(20), Title: "Catering", Description: "Launch event food", Amount: 60000, Status: models.ExpenseStatusApproved},
		{Base: models.Base{ID: 6}, BudgetID: 2, CategoryID: uintPtr(20), Title: "Venue deposit", Description: "", Amount: 150000, Status: models.ExpenseStatusReimbursed},
		{Base: models.Base{ID: 7}, BudgetID: 2, CategoryID: uintPtr(21), Title: "Print ads", Description: "Flyers and posters", Amount: 22000, Status: models.ExpenseStatusPending},
	}
}

func TestApply_DefaultCriteriaReturnsAll(t *testing.T) {
	expenses := sampleExpenses()
	got := Apply(expenses, Criteria{})
	if len(got) != len(expenses) {
		t.Fatalf("expected all %d expenses, got %d", len(expenses), len(got))
	}
	for i := range got {
		if got[i].ID != expenses[i].ID {
			t.Errorf("expected order preserved at index %d", i)
		}
	}
}

func TestApply_StatusFilter(t *testing.T) {
	// statusFilter="approved", categoryFilter=all, search="" over 7 items
	got := Apply(sampleExpenses(), Criteria{Status: "approved"})
	if len(got) != 3 {
		t.Fatalf("expected 3 approved expenses, got %d", len(got))
	}
	for _, e := range got {
		if e.Status != models.ExpenseStatusApproved {
			t.Errorf("expected only approved expenses, got %s", e.Status)
		}
	}
}

func TestApply_StatusAllIsUnconstrained(t *testing.T) {
	if got := Apply(sampleExpenses(), Criteria{Status: StatusAll}); len(got) != 7 {
		t.Errorf("expected status %q to match everything, got %d items", StatusAll, len(got))
	}
}

func TestApply_BudgetAndCategory(t *testing.T) {
	got := Apply(sampleExpenses(), Criteria{BudgetID: uintPtr(1), CategoryID: uintPtr(10)})
	if len(got) != 2 {
		t.Fatalf("expected 2 expenses, got %d", len(got))
	}

	// A category constraint never matches uncategorized expenses.
	got = Apply(sampleExpenses(), Criteria{CategoryID: uintPtr(10)})
	for _, e := range got {
		if e.CategoryID == nil {
			t.Error("uncategorized expense matched a category filter")
		}
	}
}

func TestApply_SearchIsCaseInsensitive(t *testing.T) {
	got := Apply(sampleExpenses(), Criteria{Search: "LAPTOP"})
	if len(got) != 1 || got[0].ID != 2 {
		t.Fatalf("expected the laptops expense, got %v", got)
	}

	// Search also covers descriptions.
	got = Apply(sampleExpenses(), Criteria{Search: "event food"})
	if len(got) != 1 || got[0].ID != 5 {
		t.Fatalf("expected the catering expense, got %v", got)
	}
}

func TestApply_PredicatesCombineWithAnd(t *testing.T) {
	got := Apply(sampleExpenses(), Criteria{
		BudgetID: uintPtr(2),
		Status:   "pending",
		Search:   "ads",
	})
	if len(got) != 1 || got[0].ID != 7 {
		t.Fatalf("expected only the print ads expense, got %v", got)
	}
}

func TestApply_ResultIsSubset(t *testing.T) {
	expenses := sampleExpenses()
	ids := make(map[uint]bool, len(expenses))
	for _, e := range expenses {
		ids[e.ID] = true
	}
	got := Apply(expenses, Criteria{Status: "pending", Search: "l"})
	for _, e := range got {
		if !ids[e.ID] {
			t.Errorf("filtered result contains unknown expense %d", e.ID)
		}
	}
}

func TestReset(t *testing.T) {
	c := Criteria{BudgetID: uintPtr(1), CategoryID: uintPtr(2), Status: "approved", Search: "x"}
	c.Reset()
	if c.BudgetID != nil || c.CategoryID != nil || c.Status != StatusAll || c.Search != "" {
		t.Errorf("expected unconstrained criteria after reset, got %+v", c)
	}
	if got := Apply(sampleExpenses(), c); len(got) != 7 {
		t.Errorf("expected reset criteria to match everything, got %d items", len(got))
	}
}

func TestTotal(t *testing.T) {
	expenses := sampleExpenses()

	var all int64
	for _, e := range expenses {
		all += e.Amount
	}
	if got := Total(expenses, nil); got != all {
		t.Errorf("expected unscoped total %d, got %d", all, got)
	}

	if got := Total(expenses, uintPtr(2)); got != 232000 {
		t.Errorf("expected budget 2 total 232000, got %d", got)
	}

	if got := Total(nil, nil); got != 0 {
		t.Errorf("expected empty total 0, got %d", got)
	}
}

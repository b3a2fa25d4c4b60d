// Package allocation implements the budget allocation calculator: pure
// functions deriving summary figures from a budget's total amount and its
// category allocations, plus two one-shot rebalancing operations.
//
// All amounts are integer cents. The functions never return errors; invalid
// states are represented as a negative remaining amount and surfaced to
// clients as warnings rather than blocking persistence at the data layer.
package allocation

import (
	"math"

	"fundboard/internal/models"
)

// Summary holds the derived figures for a budget's allocation state.
type Summary struct {
	TotalAmount    int64   `json:"total_amount"`
	TotalAllocated int64   `json:"total_allocated"`
	Remaining      int64   `json:"remaining"`
	Valid          bool    `json:"valid"`
	PercentUsed    float64 `json:"percent_used"`
}

// TotalAllocated sums AllocatedAmount across all categories. Negative
// allocations are coerced to 0, so the result is always non-negative.
func TotalAllocated(categories []models.BudgetCategory) int64 {
	var total int64
	for _, c := range categories {
		if c.AllocatedAmount > 0 {
			total += c.AllocatedAmount
		}
	}
	return total
}

// Remaining returns totalAmount - totalAllocated. A negative result means the
// budget is over-allocated.
func Remaining(totalAmount, totalAllocated int64) int64 {
	return totalAmount - totalAllocated
}

// IsValid reports whether the allocations fit within the budget total.
func IsValid(totalAllocated, totalAmount int64) bool {
	return totalAllocated <= totalAmount
}

// Summarize derives the full allocation summary for a budget.
func Summarize(totalAmount int64, categories []models.BudgetCategory) Summary {
	allocated := TotalAllocated(categories)
	var pct float64
	if totalAmount > 0 {
		pct = float64(allocated) / float64(totalAmount) * 100
	}
	return Summary{
		TotalAmount:    totalAmount,
		TotalAllocated: allocated,
		Remaining:      Remaining(totalAmount, allocated),
		Valid:          IsValid(allocated, totalAmount),
		PercentUsed:    pct,
	}
}

// DistributeRemaining adds an even share of the remaining amount to every
// category. Each share is remaining/count rounded half-up to the cent, so the
// post-distribution total may differ from the budget total by at most one cent
// per category. No-op when remaining <= 0 or there are no categories.
//
// The slice is mutated in place; nothing is persisted.
func DistributeRemaining(categories []models.BudgetCategory, remaining int64) {
	if remaining <= 0 || len(categories) == 0 {
		return
	}
	share := divRound(remaining, int64(len(categories)))
	for i := range categories {
		categories[i].AllocatedAmount += share
	}
}

// AdjustToTotal proportionally scales every category's allocation down by the
// factor totalAmount/totalAllocated, rounding each to the cent. No-op unless
// the budget is over-allocated. Rounding may leave the post-adjustment sum a
// few cents off the total; that drift is accepted rather than corrected.
//
// The slice is mutated in place; nothing is persisted.
func AdjustToTotal(categories []models.BudgetCategory, totalAllocated, totalAmount int64) {
	if totalAllocated <= totalAmount || totalAllocated == 0 {
		return
	}
	factor := float64(totalAmount) / float64(totalAllocated)
	for i := range categories {
		scaled := float64(categories[i].AllocatedAmount) * factor
		categories[i].AllocatedAmount = int64(math.Round(scaled))
	}
}

// Weight is a named percentage slice of a budget total, as supplied by a
// budget template.
type Weight struct {
	Name    string
	Percent float64
}

// FromTemplate maps percentage weights onto a total amount, producing one
// category per weight with AllocatedAmount = round(percent/100 * totalAmount).
func FromTemplate(weights []Weight, totalAmount int64) []models.BudgetCategory {
	categories := make([]models.BudgetCategory, 0, len(weights))
	for _, w := range weights {
		amount := int64(math.Round(w.Percent / 100 * float64(totalAmount)))
		categories = append(categories, models.BudgetCategory{
			Name:            w.Name,
			AllocatedAmount: amount,
		})
	}
	return categories
}

// divRound divides a by b with half-up rounding. b must be positive.
func divRound(a, b int64) int64 {
	return (a + b/2) / b
}

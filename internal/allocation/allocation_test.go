package allocation

import (
	"testing"

	"fundboard/internal/models"
)

func cats(amounts ...int64) []models.BudgetCategory {
	out := make([]models.BudgetCategory, len(amounts))
	for i, a := range amounts {
		out[i] = models.BudgetCategory{Name: string(rune('A' + i)), AllocatedAmount: a}
	}
	return out
}

func TestTotalAllocated(t *testing.T) {
	t.Run("sums_all_categories", func(t *testing.T) {
		if got := TotalAllocated(cats(600000, 300000)); got != 900000 {
			t.Errorf("expected 900000, got %d", got)
		}
	})

	t.Run("coerces_negative_to_zero", func(t *testing.T) {
		if got := TotalAllocated(cats(500, -200)); got != 500 {
			t.Errorf("expected 500, got %d", got)
		}
	})

	t.Run("empty_is_zero", func(t *testing.T) {
		if got := TotalAllocated(nil); got != 0 {
			t.Errorf("expected 0, got %d", got)
		}
	})
}

func TestRemainingAndIsValid(t *testing.T) {
	// Scenario: total=10000.00, categories A=6000.00 B=3000.00
	c := cats(600000, 300000)
	allocated := TotalAllocated(c)

	if got := Remaining(1000000, allocated); got != 100000 {
		t.Errorf("expected remaining 100000, got %d", got)
	}
	if !IsValid(allocated, 1000000) {
		t.Error("expected allocation to be valid")
	}

	// Over-allocated: A=8000.00 B=4000.00 against 10000.00
	over := TotalAllocated(cats(800000, 400000))
	if got := Remaining(1000000, over); got != -200000 {
		t.Errorf("expected remaining -200000, got %d", got)
	}
	if IsValid(over, 1000000) {
		t.Error("expected allocation to be invalid")
	}
}

func TestDistributeRemaining(t *testing.T) {
	t.Run("even_split", func(t *testing.T) {
		// total=10000.00, A=6000.00, B=3000.00 -> remaining 1000.00 -> +500.00 each
		c := cats(600000, 300000)
		DistributeRemaining(c, 100000)

		if c[0].AllocatedAmount != 650000 {
			t.Errorf("expected A=650000, got %d", c[0].AllocatedAmount)
		}
		if c[1].AllocatedAmount != 350000 {
			t.Errorf("expected B=350000, got %d", c[1].AllocatedAmount)
		}
		if got := Remaining(1000000, TotalAllocated(c)); got != 0 {
			t.Errorf("expected remaining 0 after distribution, got %d", got)
		}
	})

	t.Run("rounding_epsilon_bounded", func(t *testing.T) {
		// 100.01 across 3 categories cannot split evenly; the post-distribution
		// total must land within one cent per category of the target.
		c := cats(100, 100, 100)
		remaining := int64(10001)
		target := TotalAllocated(c) + remaining
		DistributeRemaining(c, remaining)

		diff := target - TotalAllocated(c)
		if diff < 0 {
			diff = -diff
		}
		if diff > int64(len(c)) {
			t.Errorf("post-distribution total off by %d cents, want <= %d", diff, len(c))
		}
	})

	t.Run("noop_when_nothing_remaining", func(t *testing.T) {
		c := cats(500, 500)
		DistributeRemaining(c, 0)
		DistributeRemaining(c, -100)
		if c[0].AllocatedAmount != 500 || c[1].AllocatedAmount != 500 {
			t.Error("expected no change for zero or negative remaining")
		}
	})

	t.Run("noop_without_categories", func(t *testing.T) {
		DistributeRemaining(nil, 1000) // must not panic
	})
}

func TestAdjustToTotal(t *testing.T) {
	t.Run("proportional_downscale", func(t *testing.T) {
		// total=10000.00, A=8000.00, B=4000.00 (sum 12000.00, factor 0.8333...)
		c := cats(800000, 400000)
		AdjustToTotal(c, TotalAllocated(c), 1000000)

		if c[0].AllocatedAmount != 666667 {
			t.Errorf("expected A=666667 (6666.67), got %d", c[0].AllocatedAmount)
		}
		if c[1].AllocatedAmount != 333333 {
			t.Errorf("expected B=333333 (3333.33), got %d", c[1].AllocatedAmount)
		}
	})

	t.Run("preserves_proportions_and_fits_total", func(t *testing.T) {
		c := cats(300000, 600000, 150000)
		total := int64(700000)
		AdjustToTotal(c, TotalAllocated(c), total)

		// B started at double A's allocation and should stay close to double.
		ratio := float64(c[1].AllocatedAmount) / float64(c[0].AllocatedAmount)
		if ratio < 1.99 || ratio > 2.01 {
			t.Errorf("expected B/A ratio near 2, got %f", ratio)
		}

		diff := TotalAllocated(c) - total
		if diff < 0 {
			diff = -diff
		}
		if diff > int64(len(c)) {
			t.Errorf("post-adjustment total off by %d cents, want <= %d", diff, len(c))
		}
	})

	t.Run("noop_when_not_over_allocated", func(t *testing.T) {
		c := cats(400000, 300000)
		AdjustToTotal(c, TotalAllocated(c), 1000000)
		if c[0].AllocatedAmount != 400000 || c[1].AllocatedAmount != 300000 {
			t.Error("expected no change when allocations fit the total")
		}
	})

	t.Run("noop_when_nothing_allocated", func(t *testing.T) {
		AdjustToTotal(nil, 0, 0) // must not divide by zero
	})
}

func TestSummarize(t *testing.T) {
	s := Summarize(1000000, cats(600000, 300000))
	if s.TotalAllocated != 900000 {
		t.Errorf("expected total allocated 900000, got %d", s.TotalAllocated)
	}
	if s.Remaining != 100000 {
		t.Errorf("expected remaining 100000, got %d", s.Remaining)
	}
	if !s.Valid {
		t.Error("expected valid summary")
	}
	if s.PercentUsed != 90 {
		t.Errorf("expected 90%% used, got %f", s.PercentUsed)
	}

	zero := Summarize(0, nil)
	if zero.PercentUsed != 0 {
		t.Errorf("expected 0%% used for empty budget, got %f", zero.PercentUsed)
	}
	if !zero.Valid {
		t.Error("expected empty budget to be valid")
	}
}

func TestFromTemplate(t *testing.T) {
	weights := []Weight{
		{Name: "Personnel", Percent: 50},
		{Name: "Equipment", Percent: 30},
		{Name: "Marketing", Percent: 20},
	}
	c := FromTemplate(weights, 1000000)

	if len(c) != 3 {
		t.Fatalf("expected 3 categories, got %d", len(c))
	}
	if c[0].Name != "Personnel" || c[0].AllocatedAmount != 500000 {
		t.Errorf("unexpected first category: %+v", c[0])
	}
	if c[1].AllocatedAmount != 300000 {
		t.Errorf("expected 300000, got %d", c[1].AllocatedAmount)
	}
	if c[2].AllocatedAmount != 200000 {
		t.Errorf("expected 200000, got %d", c[2].AllocatedAmount)
	}

	// Fractional percentages round to the nearest cent.
	odd := FromTemplate([]Weight{{Name: "X", Percent: 33.33}}, 10000)
	if odd[0].AllocatedAmount != 3333 {
		t.Errorf("expected 3333, got %d", odd[0].AllocatedAmount)
	}
}

package integration

import (
	"fmt"
	"net/http"
	"testing"

	"fundboard/internal/models"
)

func budgetPayload(callID uint) string {
	return fmt.Sprintf(`{
		"startup_call_id": %d,
		"title": "Seed Budget",
		"total_amount": "10000.00",
		"currency": "USD",
		"fiscal_year": "2026",
		"status": "active",
		"categories": [
			{"name": "Personnel", "allocated_amount": "6000.00"},
			{"name": "Equipment", "allocated_amount": "3000.00"}
		]
	}`, callID)
}

func TestBudgetLifecycle(t *testing.T) {
	app := setupApp(t)
	token, userID := app.registerUser(t, "admin@example.com", "password123", models.RoleAdmin)
	call := app.createCall(t, uint(userID))

	// Create
	rec := app.request("POST", "/api/v1/budgets", budgetPayload(call.ID), token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create budget failed: %d %s", rec.Code, rec.Body.String())
	}
	budget := parseJSON(t, rec)["budget"].(map[string]interface{})
	budgetID := budget["id"].(float64)
	if budget["version"].(float64) != 1 {
		t.Errorf("expected version 1, got %v", budget["version"])
	}

	// Summary reflects the allocation
	rec = app.request("GET", fmt.Sprintf("/api/v1/budgets/%.0f/summary", budgetID), "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("summary failed: %d %s", rec.Code, rec.Body.String())
	}
	summary := parseJSON(t, rec)["summary"].(map[string]interface{})
	if summary["remaining"].(float64) != 100000 {
		t.Errorf("expected remaining 100000 cents, got %v", summary["remaining"])
	}

	// Distribute remaining across the two categories
	rec = app.request("POST", fmt.Sprintf("/api/v1/budgets/%.0f/distribute-remaining", budgetID), "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("distribute failed: %d %s", rec.Code, rec.Body.String())
	}

	rec = app.request("GET", fmt.Sprintf("/api/v1/budgets/%.0f/summary", budgetID), "", token)
	summary = parseJSON(t, rec)["summary"].(map[string]interface{})
	if summary["remaining"].(float64) != 0 {
		t.Errorf("expected remaining 0 after distribution, got %v", summary["remaining"])
	}

	// Close, then verify the budget is immutable
	rec = app.request("POST", fmt.Sprintf("/api/v1/budgets/%.0f/close", budgetID), "", token)
	if rec.Code != http.StatusOK {
		t.Fatalf("close failed: %d %s", rec.Code, rec.Body.String())
	}

	update := `{
		"version": 2,
		"title": "Should fail",
		"total_amount": "10000.00",
		"currency": "USD",
		"fiscal_year": "2026",
		"status": "active",
		"categories": [{"name": "Personnel", "allocated_amount": "10000.00"}]
	}`
	rec = app.request("PUT", fmt.Sprintf("/api/v1/budgets/%.0f", budgetID), update, token)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409 on closed budget, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestBudgetVersionConflict(t *testing.T) {
	app := setupApp(t)
	token, userID := app.registerUser(t, "admin@example.com", "password123", models.RoleAdmin)
	call := app.createCall(t, uint(userID))

	rec := app.request("POST", "/api/v1/budgets", budgetPayload(call.ID), token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create budget failed: %d %s", rec.Code, rec.Body.String())
	}
	budgetID := parseJSON(t, rec)["budget"].(map[string]interface{})["id"].(float64)

	update := func(version int, title string) string {
		return fmt.Sprintf(`{
			"version": %d,
			"title": %q,
			"total_amount": "10000.00",
			"currency": "USD",
			"fiscal_year": "2026",
			"status": "active",
			"categories": [
				{"name": "Personnel", "allocated_amount": "6000.00"},
				{"name": "Equipment", "allocated_amount": "3000.00"}
			]
		}`, version, title)
	}

	// First editor succeeds.
	rec = app.request("PUT", fmt.Sprintf("/api/v1/budgets/%.0f", budgetID), update(1, "First edit"), token)
	if rec.Code != http.StatusOK {
		t.Fatalf("first update failed: %d %s", rec.Code, rec.Body.String())
	}

	// Second editor with the stale version conflicts.
	rec = app.request("PUT", fmt.Sprintf("/api/v1/budgets/%.0f", budgetID), update(1, "Second edit"), token)
	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestBudgetOverAllocationRejected(t *testing.T) {
	app := setupApp(t)
	token, userID := app.registerUser(t, "admin@example.com", "password123", models.RoleAdmin)
	call := app.createCall(t, uint(userID))

	payload := fmt.Sprintf(`{
		"startup_call_id": %d,
		"title": "Over",
		"total_amount": "10000.00",
		"currency": "USD",
		"fiscal_year": "2026",
		"status": "active",
		"categories": [
			{"name": "A", "allocated_amount": "8000.00"},
			{"name": "B", "allocated_amount": "4000.00"}
		]
	}`, call.ID)

	rec := app.request("POST", "/api/v1/budgets", payload, token)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestBudgetFromTemplate(t *testing.T) {
	app := setupApp(t)
	token, userID := app.registerUser(t, "admin@example.com", "password123", models.RoleAdmin)
	call := app.createCall(t, uint(userID))

	rec := app.request("POST", "/api/v1/templates",
		`{"name":"Standard","weights":[{"name":"Personnel","percent":50},{"name":"Equipment","percent":30},{"name":"Marketing","percent":20}]}`, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create template failed: %d %s", rec.Code, rec.Body.String())
	}
	templateID := parseJSON(t, rec)["template"].(map[string]interface{})["id"].(float64)

	payload := fmt.Sprintf(`{
		"startup_call_id": %d,
		"title": "Templated",
		"total_amount": "10000.00",
		"currency": "USD",
		"fiscal_year": "2026",
		"status": "active",
		"template_id": %.0f
	}`, call.ID, templateID)

	rec = app.request("POST", "/api/v1/budgets", payload, token)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create from template failed: %d %s", rec.Code, rec.Body.String())
	}
	budget := parseJSON(t, rec)["budget"].(map[string]interface{})
	categories := budget["categories"].([]interface{})
	if len(categories) != 3 {
		t.Fatalf("expected 3 categories from template, got %d", len(categories))
	}
	first := categories[0].(map[string]interface{})
	if first["allocated_amount"].(float64) != 500000 {
		t.Errorf("expected 500000 cents for the 50%% slice, got %v", first["allocated_amount"])
	}
}

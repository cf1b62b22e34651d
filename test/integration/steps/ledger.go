package steps

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/cucumber/godog"
)

// registerLedgerSteps registers the steps that build up ledger state
// through the public API.
func registerLedgerSteps(ctx *godog.ScenarioContext) {
	ctx.Step(`^today is "([^"]*)"$`, todayIs)
	ctx.Step(`^the monthly salary is "([^"]*)"$`, theMonthlySalaryIs)
	ctx.Step(`^a category "([^"]*)" of type "([^"]*)" exists$`, aCategoryOfTypeExists)
	ctx.Step(`^an? "(income|expense|transfer)" transaction "([^"]*)" of "([^"]*)" on "([^"]*)" in category "([^"]*)"$`, aTransactionExists)
	ctx.Step(`^a budget of "([^"]*)" for category "([^"]*)" in "([^"]*)"$`, aBudgetExists)
	ctx.Step(`^a goal "([^"]*)" with target "([^"]*)" exists$`, aGoalExists)
	ctx.Step(`^a goal "([^"]*)" with target "([^"]*)" due "([^"]*)" exists$`, aGoalWithDeadlineExists)
	ctx.Step(`^the goal "([^"]*)" is funded with "([^"]*)" on "([^"]*)"$`, theGoalIsFunded)
	ctx.Step(`^the import rate limit is (\d+) requests? per minute$`, theImportRateLimitIs)
	ctx.Step(`^the ledger is emptied$`, theLedgerIsEmptied)
	ctx.Step(`^the import rate limiter should have counted (\d+) requests?$`, theImportRateLimiterShouldHaveCounted)
}

func todayIs(ctx context.Context, date string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	day, err := time.Parse("2006-01-02", date)
	if err != nil {
		return err
	}
	// Midday keeps the date stable regardless of how long the scenario runs.
	tc.clock.SetCurrentTime(day.Add(12 * time.Hour))
	return nil
}

func theMonthlySalaryIs(ctx context.Context, amount string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	_, err := tc.doJSON(http.MethodPost, "/api/v1/settings", map[string]any{"salary": amount}, http.StatusOK)
	return err
}

func aCategoryOfTypeExists(ctx context.Context, name, categoryType string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	data, err := tc.doJSON(http.MethodPost, "/api/v1/categories", map[string]any{
		"name": name,
		"type": categoryType,
	}, http.StatusCreated)
	if err != nil {
		return err
	}
	tc.categories[name] = fmt.Sprint(data["id"])
	return nil
}

func aTransactionExists(ctx context.Context, txType, description, amount, date, category string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	categoryID, ok := tc.categories[category]
	if !ok {
		return fmt.Errorf("no category named %q was created", category)
	}
	data, err := tc.doJSON(http.MethodPost, "/api/v1/transactions", map[string]any{
		"date":        date,
		"amount":      amount,
		"type":        txType,
		"category_id": categoryID,
		"description": description,
	}, http.StatusCreated)
	if err != nil {
		return err
	}
	tc.transactions[description] = fmt.Sprint(data["id"])
	return nil
}

func aBudgetExists(ctx context.Context, amount, category, month string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	categoryID, ok := tc.categories[category]
	if !ok {
		return fmt.Errorf("no category named %q was created", category)
	}
	_, err := tc.doJSON(http.MethodPost, "/api/v1/budgets", map[string]any{
		"category_id": categoryID,
		"month":       month,
		"amount":      amount,
	}, http.StatusOK)
	return err
}

func aGoalExists(ctx context.Context, name, target string) error {
	return createGoal(ctx, map[string]any{"name": name, "target_amount": target})
}

func aGoalWithDeadlineExists(ctx context.Context, name, target, deadline string) error {
	return createGoal(ctx, map[string]any{"name": name, "target_amount": target, "deadline": deadline})
}

func createGoal(ctx context.Context, body map[string]any) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	data, err := tc.doJSON(http.MethodPost, "/api/v1/goals", body, http.StatusCreated)
	if err != nil {
		return err
	}
	tc.goals[fmt.Sprint(body["name"])] = fmt.Sprint(data["id"])
	return nil
}

func theGoalIsFunded(ctx context.Context, name, amount, date string) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	goalID, ok := tc.goals[name]
	if !ok {
		return fmt.Errorf("no goal named %q was created", name)
	}
	_, err := tc.doJSON(http.MethodPost, "/api/v1/goals/"+goalID+"/fund", map[string]any{
		"amount": amount,
		"date":   date,
	}, http.StatusCreated)
	return err
}

func theImportRateLimitIs(ctx context.Context, limit int) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	tc.cfg.RateLimit.ImportRequests = limit
	tc.cfg.RateLimit.ImportWindow = time.Minute
	// Rewire so the new limit takes effect; ledger state lives in the database.
	if tc.server != nil {
		tc.server.Close()
		tc.server = nil
	}
	return nil
}

func theLedgerIsEmptied(ctx context.Context) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	return tc.db.ClearDB()
}

// importLimiterKeys is where the import limiter keeps its per-client counters.
const importLimiterKeys = "ledger:ratelimit:import:"

func theImportRateLimiterShouldHaveCounted(ctx context.Context, expected int) error {
	tc := GetTestContext(ctx)
	if tc == nil {
		return fmt.Errorf("test context not found")
	}
	keys := tc.redis.Keys(importLimiterKeys)
	if len(keys) == 0 {
		return fmt.Errorf("no import limiter counters in redis")
	}
	total := 0
	for _, key := range keys {
		n, err := tc.redis.Counter(key)
		if err != nil {
			return fmt.Errorf("reading %s: %w", key, err)
		}
		total += n
	}
	if total != expected {
		return fmt.Errorf("expected %d counted import requests, got %d (keys %v)", expected, total, keys)
	}
	return nil
}

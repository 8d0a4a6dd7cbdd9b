//go:build integration

package testutil

import (
	"context"
	"time"
)

// CleanAll wipes every user-owned table in FK order. The seeded catalogs
// (effects, achievements, gear, skills) are left in place.
func (env *TestEnv) CleanAll() {
	env.t.Helper()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	tables := []string{
		"event_outbox",
		"journal_entries",
		"user_skills",
		"inventory_items",
		"energy_log",
		"user_achievements",
		"habits",
		"tasks",
		"projects",
		"zones",
		"users",
	}
	for _, table := range tables {
		if _, err := env.Pool.Exec(ctx, "DELETE FROM "+table); err != nil {
			env.t.Fatalf("clean %s: %v", table, err)
		}
	}
}

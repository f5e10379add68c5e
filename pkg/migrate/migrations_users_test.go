package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/knightmeat/taste-backend/pkg/migrate"
)

func TestUsersMigrationContainsConstraints(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_users.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no users migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS users",
		"CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email",
		"CHECK (user_type IN (1, 2, 3))",
		"is_verified BOOLEAN NOT NULL DEFAULT FALSE",
		"DROP TABLE IF EXISTS users",
	}
	for _, check := range checks {
		if !strings.Contains(content, check) {
			t.Fatalf("users migration missing %q", check)
		}
	}
}

func TestDishesMigrationContainsConstraints(t *testing.T) {
	matches, err := filepath.Glob(filepath.Join("migrations", "*_create_dishes.sql"))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no dishes migration file found")
	}

	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	content := string(data)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS dishes",
		"CHECK (price >= 0)",
		"DROP TABLE IF EXISTS dishes",
	}
	for _, check := range checks {
		if !strings.Contains(content, check) {
			t.Fatalf("dishes migration missing %q", check)
		}
	}
}

func TestMigrationDirIsValid(t *testing.T) {
	if err := migrate.ValidateDir("migrations"); err != nil {
		t.Fatalf("validate migrations dir: %v", err)
	}
}

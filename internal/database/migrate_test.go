package database

import (
	"strings"
	"testing"
)

func TestMigrationPairsEmbedded(t *testing.T) {
	entries, err := migrationFiles.ReadDir("migrations")
	if err != nil {
		t.Fatalf("read embedded migrations: %v", err)
	}

	ups := make(map[string]bool)
	downs := make(map[string]bool)
	for _, entry := range entries {
		name := entry.Name()
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			ups[strings.TrimSuffix(name, ".up.sql")] = true
		case strings.HasSuffix(name, ".down.sql"):
			downs[strings.TrimSuffix(name, ".down.sql")] = true
		default:
			t.Errorf("unexpected migration file %q", name)
		}
	}

	if len(ups) == 0 {
		t.Fatal("no up migrations embedded")
	}
	for version := range ups {
		if !downs[version] {
			t.Errorf("migration %s has no down counterpart", version)
		}
	}
}

// Generated columns only accept IMMUTABLE expressions; array_to_string is
// STABLE, so the schema must reach it through the tags_to_text wrapper.
func TestInitMigrationKeepsGeneratedColumnsImmutable(t *testing.T) {
	up, err := migrationFiles.ReadFile("migrations/0001_init.up.sql")
	if err != nil {
		t.Fatalf("read up migration: %v", err)
	}
	ddl := string(up)

	wrapperDef := strings.Index(ddl, "CREATE FUNCTION tags_to_text")
	if wrapperDef < 0 {
		t.Fatal("tags_to_text wrapper is not defined")
	}
	firstTable := strings.Index(ddl, "CREATE TABLE")
	if firstTable >= 0 && firstTable < wrapperDef {
		t.Error("tags_to_text must be defined before the tables that use it")
	}

	for _, stmt := range strings.Split(ddl, "GENERATED ALWAYS AS") {
		expr, _, ok := strings.Cut(stmt, "STORED")
		if !ok {
			continue
		}
		if strings.Contains(expr, "array_to_string(") {
			t.Errorf("generated column calls array_to_string directly:\n%s", expr)
		}
	}

	down, err := migrationFiles.ReadFile("migrations/0001_init.down.sql")
	if err != nil {
		t.Fatalf("read down migration: %v", err)
	}
	if !strings.Contains(string(down), "DROP FUNCTION IF EXISTS tags_to_text") {
		t.Error("down migration does not drop the tags_to_text wrapper")
	}
}

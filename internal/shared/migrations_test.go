package shared

import (
	"testing"
)

func TestMigrationRunner(t *testing.T) {
	t.Run("loadMigrations", func(t *testing.T) {
		migrations, err := loadMigrations()
		if err != nil {
			t.Fatalf("failed to load migrations: %v", err)
		}

		if len(migrations) == 0 {
			t.Fatal("expected at least one migration")
		}

		for i := 1; i < len(migrations); i++ {
			if migrations[i].Version <= migrations[i-1].Version {
				t.Errorf("migrations not sorted: version %d comes after %d", migrations[i].Version, migrations[i-1].Version)
			}
		}

		for _, m := range migrations {
			if m.Up == "" {
				t.Errorf("migration version %d missing up SQL", m.Version)
			}
			if m.Down == "" {
				t.Errorf("migration version %d missing down SQL", m.Version)
			}
		}
	})

	t.Run("RunMigrations And Rollback", func(t *testing.T) {
		db, err := NewDatabase(":memory:")
		if err != nil {
			t.Fatalf("failed to create database: %v", err)
		}
		defer db.Close()

		if err := RunMigrations(db); err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}

		var count int
		if err := db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count); err != nil {
			t.Fatalf("failed to query schema_migrations: %v", err)
		}
		if count == 0 {
			t.Fatal("expected applied migrations to be recorded")
		}

		var name string
		err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='search_cache'").Scan(&name)
		if err != nil {
			t.Fatalf("search_cache table should exist: %v", err)
		}

		// Running again is a no-op.
		if err := RunMigrations(db); err != nil {
			t.Fatalf("rerunning migrations should succeed: %v", err)
		}
		var after int
		if err := db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&after); err != nil {
			t.Fatalf("failed to query schema_migrations: %v", err)
		}
		if after != count {
			t.Errorf("expected %d applied migrations, got %d", count, after)
		}

		if err := RollbackMigration(db); err != nil {
			t.Fatalf("failed to rollback: %v", err)
		}
		err = db.QueryRow("SELECT name FROM sqlite_master WHERE type='table' AND name='search_cache'").Scan(&name)
		if err == nil {
			t.Error("search_cache table should be dropped after rollback")
		}
	})

	t.Run("Rollback without migrations", func(t *testing.T) {
		db, err := NewDatabase(":memory:")
		if err != nil {
			t.Fatalf("failed to create database: %v", err)
		}
		defer db.Close()

		if err := RunMigrations(db); err != nil {
			t.Fatalf("failed to run migrations: %v", err)
		}
		if err := RollbackMigration(db); err != nil {
			t.Fatalf("failed to rollback: %v", err)
		}
		if err := RollbackMigration(db); err == nil {
			t.Error("rolling back past the first migration should fail")
		}
	})
}

func TestStripComments(t *testing.T) {
	script := `-- leading comment
CREATE TABLE t (id INTEGER); -- trailing comment

-- another comment`

	got := stripComments(script)
	want := "CREATE TABLE t (id INTEGER);"
	if got != want {
		t.Errorf("stripComments() = %q, want %q", got, want)
	}
}

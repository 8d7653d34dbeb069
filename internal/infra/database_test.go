package infra

import (
	"errors"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"

	"guidelk/internal/config"
	"guidelk/internal/models/db_models"
	"guidelk/internal/spatial"
)

func TestSQLiteDSN(t *testing.T) {
	tests := map[string]string{
		"file::memory:":                "file::memory:?_pragma=foreign_keys(1)",
		"file:trips.db?cache=shared":   "file:trips.db?cache=shared&_pragma=foreign_keys(1)",
		"x.db?_pragma=foreign_keys(1)": "x.db?_pragma=foreign_keys(1)",
	}
	for in, want := range tests {
		if got := sqliteDSN(in); got != want {
			t.Errorf("sqliteDSN(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestOpenSQLiteMigrates(t *testing.T) {
	db, err := Open(config.DatabaseConfig{Driver: config.DriverSQLite, SQLitePath: "file::memory:"}, zap.NewNop())
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer Close(db, zap.NewNop())

	if BackendOf(db) != spatial.TextBackend {
		t.Errorf("sqlite should use the text backend")
	}
	for _, table := range []string{"users", "pois", "properties", "trips", "trip_stops", "bookings"} {
		if !db.Migrator().HasTable(table) {
			t.Errorf("table %s missing", table)
		}
	}

	var fk int
	if err := db.Raw("PRAGMA foreign_keys").Scan(&fk).Error; err != nil {
		t.Fatalf("pragma: %v", err)
	}
	if fk != 1 {
		t.Errorf("foreign keys disabled")
	}
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	if _, err := Open(config.DatabaseConfig{Driver: "mysql"}, zap.NewNop()); err == nil {
		t.Fatal("expected error")
	}
}

func TestGormLogsThroughZap(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := zap.New(core)
	db, err := Open(config.DatabaseConfig{Driver: config.DriverSQLite, SQLitePath: "file::memory:"}, log)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer Close(db, zap.NewNop())

	var user db_models.User
	if err := db.First(&user, "id = ?", uuid.New()).Error; !errors.Is(err, gorm.ErrRecordNotFound) {
		t.Fatalf("First: %v", err)
	}
	if n := logs.FilterMessageSnippet("record not found").Len(); n != 0 {
		t.Errorf("missing row logged %d times", n)
	}

	if err := db.Exec("SELECT * FROM no_such_table").Error; err == nil {
		t.Fatal("expected error from unknown table")
	}
	failed := logs.FilterMessageSnippet("no_such_table").All()
	if len(failed) == 0 {
		t.Fatal("failed query was not logged to zap")
	}
	if failed[0].Level != zapcore.WarnLevel || failed[0].LoggerName != "gorm" {
		t.Errorf("failed query logged at %v by %q", failed[0].Level, failed[0].LoggerName)
	}
}

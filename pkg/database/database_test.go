package database

import (
	"skillswap_backend/internal/config"
	"skillswap_backend/internal/model"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestSkillTableOptions(t *testing.T) {
	cases := map[string]string{
		config.DriverMySQL:    "CHARSET=utf8mb4 COLLATE=utf8mb4_bin",
		config.DriverPostgres: "",
		config.DriverSQLite:   "",
	}
	for dialect, want := range cases {
		if got := skillTableOptions(dialect); got != want {
			t.Errorf("skillTableOptions(%q) = %q, want %q", dialect, got, want)
		}
	}
}

func TestMigrateSeedsCatalogOnce(t *testing.T) {
	db, err := OpenMemory(uuid.NewString())
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close()
		}
	})

	for i := 0; i < 2; i++ {
		if err := Migrate(db); err != nil {
			t.Fatalf("migrate #%d: %v", i+1, err)
		}
	}

	var count int64
	db.Model(&model.Skill{}).Count(&count)
	if count != 12 {
		t.Fatalf("seeded %d skills, want 12", count)
	}

	if err := db.Create(&model.Skill{Name: "go"}).Error; err != nil {
		t.Fatalf("go must not collide with the seeded Go: %v", err)
	}
	var found model.Skill
	if err := db.Where("name = ?", "go").First(&found).Error; err != nil || found.Name != "go" {
		t.Fatalf("lookup go = %+v, %v", found, err)
	}
}

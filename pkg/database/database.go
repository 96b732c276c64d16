package database

import (
	"fmt"
	"skillswap_backend/internal/config"
	"skillswap_backend/internal/model"
	"skillswap_backend/pkg/logger"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Models lists every table the service owns, in dependency order.
func Models() []interface{} {
	return []interface{}{
		&model.User{},
		&model.Skill{},
		&model.Profile{},
		&model.UserSkill{},
		&model.SwapRequest{},
		&model.Review{},
	}
}

func dialector(cfg *config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case config.DriverMySQL, "":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=%t&loc=Local",
			cfg.User,
			cfg.Password,
			cfg.Host,
			cfg.Port,
			cfg.DBName,
			cfg.Charset,
			cfg.ParseTime,
		)
		return mysql.Open(dsn), nil
	case config.DriverPostgres:
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%d sslmode=%s",
			cfg.Host, cfg.User, cfg.Password, cfg.DBName, cfg.Port, cfg.SSLMode)
		return postgres.Open(dsn), nil
	case config.DriverSQLite:
		return sqlite.Open(cfg.Path + "?_pragma=foreign_keys(1)"), nil
	}
	return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
}

func InitDB(cfg *config.DatabaseConfig, migrate bool) (*gorm.DB, error) {
	d, err := dialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(d, &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	logger.Log.Info("Database connection established", zap.String("driver", cfg.Driver))

	if migrate {
		if err := Migrate(db); err != nil {
			return nil, err
		}
		logger.Log.Info("Database migration completed")
	}

	return db, nil
}

// Migrate creates or updates the schema and seeds the skill catalog.
func Migrate(db *gorm.DB) error {
	if err := migrateSkills(db); err != nil {
		return err
	}
	if err := db.AutoMigrate(Models()...); err != nil {
		return err
	}
	return seedSkills(db)
}

const mysqlBinaryCollation = "utf8mb4_bin"

// skillTableOptions returns the table options the skills table needs on the
// given dialect. Skill names are compared case-sensitively, which MySQL's
// default collations do not do.
func skillTableOptions(dialect string) string {
	if dialect == config.DriverMySQL {
		return "CHARSET=utf8mb4 COLLATE=" + mysqlBinaryCollation
	}
	return ""
}

func migrateSkills(db *gorm.DB) error {
	opts := skillTableOptions(db.Dialector.Name())
	if opts == "" {
		return nil
	}
	if err := db.Set("gorm:table_options", opts).AutoMigrate(&model.Skill{}); err != nil {
		return err
	}
	// Tables created before the collation was set keep their old one.
	return db.Exec("ALTER TABLE skills CONVERT TO CHARACTER SET utf8mb4 COLLATE " + mysqlBinaryCollation).Error
}

func seedSkills(db *gorm.DB) error {
	var count int64
	if err := db.Model(&model.Skill{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	defaults := []string{
		"Python", "Go", "JavaScript", "Data Analysis", "Graphic Design",
		"Photography", "Guitar", "Piano", "Spanish", "Public Speaking",
		"Cooking", "Yoga",
	}
	for _, name := range defaults {
		if err := db.Create(&model.Skill{Name: name}).Error; err != nil {
			return err
		}
	}
	return nil
}

// OpenMemory opens a private in-memory SQLite database with the full schema.
// Each distinct name gets its own database.
func OpenMemory(name string) (*gorm.DB, error) {
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}
	// One connection keeps the shared in-memory database alive and serializes writers.
	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(Models()...); err != nil {
		return nil, err
	}
	return db, nil
}

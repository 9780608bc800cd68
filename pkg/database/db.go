package database

import (
	"log"
	"os"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Employee represents the employees table. Employees double as portal
// logins; admins carry the is_admin flag.
type Employee struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Name         string `gorm:"not null" json:"name"`
	Email        string `gorm:"index" json:"email"`
	Phone        string `json:"phone"`
	Active       bool   `gorm:"default:true" json:"active"`
	PasswordHash string `json:"-"`
	IsAdmin      bool   `gorm:"default:false" json:"is_admin"`
}

// EmployeeConstraint represents the employee_constraints table. ValueJSON
// holds the raw value document; records are append-only.
type EmployeeConstraint struct {
	ID         uint   `gorm:"primaryKey" json:"id"`
	EmployeeID uint   `gorm:"index;not null" json:"employee_id"`
	Kind       string `gorm:"not null" json:"kind"`
	Scope      string `gorm:"not null" json:"scope"`
	ValueJSON  string `gorm:"column:value_json;not null" json:"value"`
	Priority   string `json:"priority"`
	ValidFrom  string `json:"valid_from"`
	ValidTo    string `json:"valid_to"`
}

// Project represents the projects table with its per-kind staffing
// requirements and payroll rate.
type Project struct {
	ID                uint    `gorm:"primaryKey" json:"id"`
	Name              string  `gorm:"not null" json:"name"`
	HourlyRate        float64 `gorm:"default:0" json:"hourly_rate"`
	Active            bool    `gorm:"default:true" json:"active"`
	MorningRequired   int     `gorm:"default:0" json:"morning_required"`
	AfternoonRequired int     `gorm:"default:0" json:"afternoon_required"`
	NightRequired     int     `gorm:"default:0" json:"night_required"`
}

// Shift represents the shifts table. At most one row may exist per
// (project, date, start, end, location) tuple.
type Shift struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	ProjectID uint   `gorm:"uniqueIndex:idx_shift_slot;not null" json:"project_id"`
	Date      string `gorm:"uniqueIndex:idx_shift_slot;not null" json:"date"`
	StartTime string `gorm:"uniqueIndex:idx_shift_slot;not null" json:"start_time"`
	EndTime   string `gorm:"uniqueIndex:idx_shift_slot;not null" json:"end_time"`
	Location  string `gorm:"uniqueIndex:idx_shift_slot" json:"location"`
}

// ShiftAssignment represents the shift_assignments table. The composite
// primary key makes inserts duplicate-safe with an on-conflict clause.
type ShiftAssignment struct {
	ShiftID    uint `gorm:"primaryKey;autoIncrement:false" json:"shift_id"`
	EmployeeID uint `gorm:"primaryKey;autoIncrement:false" json:"employee_id"`
}

// InitDB initializes the database connection and migrates the schema.
// DATABASE_URL selects postgres; otherwise a sqlite file under DATA_PATH
// is used.
func InitDB() *gorm.DB {
	var db *gorm.DB
	var err error

	dsn := os.Getenv("DATABASE_URL")
	if dsn != "" {
		db, err = gorm.Open(postgres.New(postgres.Config{
			DSN:                  dsn,
			PreferSimpleProtocol: true,
		}), &gorm.Config{
			PrepareStmt: false,
		})
	} else {
		dbPath := os.Getenv("DATA_PATH")
		if dbPath == "" {
			dbPath = "staffing.db"
		}
		db, err = gorm.Open(sqlite.Open(dbPath), &gorm.Config{})
	}

	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}

	if err := Migrate(db); err != nil {
		log.Fatalf("failed to migrate schema: %v", err)
	}

	return db
}

// Migrate creates or updates all tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Employee{},
		&EmployeeConstraint{},
		&Project{},
		&Shift{},
		&ShiftAssignment{},
	)
}

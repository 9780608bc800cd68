package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/liorhadad/staffing-api-go/pkg/database"
	"github.com/liorhadad/staffing-api-go/pkg/models"
	"github.com/liorhadad/staffing-api-go/pkg/scheduler"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	// Every pooled connection would otherwise see its own empty
	// in-memory database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))
	return New(db)
}

func TestFindOrCreateShiftIsIdempotent(t *testing.T) {
	s := testStore(t)

	id1, created, err := s.FindOrCreateShift(1, "2025-11-04", "06:00", "14:00", "main gate")
	require.NoError(t, err)
	assert.True(t, created)

	id2, created, err := s.FindOrCreateShift(1, "2025-11-04", "06:00", "14:00", "main gate")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, id1, id2)

	// A different location is a different shift row.
	id3, created, err := s.FindOrCreateShift(1, "2025-11-04", "06:00", "14:00", "back gate")
	require.NoError(t, err)
	assert.True(t, created)
	assert.NotEqual(t, id1, id3)
}

func TestCreateAssignmentDuplicateSafe(t *testing.T) {
	s := testStore(t)

	shiftID, _, err := s.FindOrCreateShift(1, "2025-11-04", "06:00", "14:00", "")
	require.NoError(t, err)

	inserted, err := s.CreateAssignment(shiftID, 7)
	require.NoError(t, err)
	assert.True(t, inserted)

	inserted, err = s.CreateAssignment(shiftID, 7)
	require.NoError(t, err)
	assert.False(t, inserted)

	var count int64
	require.NoError(t, s.DB.Model(&database.ShiftAssignment{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestLoadActiveEmployeesOrderedByName(t *testing.T) {
	s := testStore(t)

	require.NoError(t, s.DB.Create(&database.Employee{Name: "Noa", Active: true}).Error)
	require.NoError(t, s.DB.Create(&database.Employee{Name: "Eli", Active: true}).Error)
	require.NoError(t, s.DB.Create(&database.Employee{Name: "Avi", Active: false}).Error)

	refs, err := s.LoadActiveEmployees()
	require.NoError(t, err)
	require.Len(t, refs, 2)
	assert.Equal(t, "Eli", refs[0].Name)
	assert.Equal(t, "Noa", refs[1].Name)
}

func TestLoadConstraintsGroupedInReadOrder(t *testing.T) {
	s := testStore(t)

	require.NoError(t, s.DB.Create(&database.EmployeeConstraint{
		EmployeeID: 1, Kind: "shift", Scope: "shift", ValueJSON: `["night"]`, ValidFrom: "2025-12-01",
	}).Error)
	require.NoError(t, s.DB.Create(&database.EmployeeConstraint{
		EmployeeID: 1, Kind: "shift", Scope: "shift", ValueJSON: `["morning"]`,
	}).Error)
	require.NoError(t, s.DB.Create(&database.EmployeeConstraint{
		EmployeeID: 2, Kind: "date", Scope: "date", ValueJSON: `["2025-11-04"]`,
	}).Error)

	grouped, err := s.LoadConstraints([]uint{1, 2})
	require.NoError(t, err)
	require.Len(t, grouped[1], 2)
	require.Len(t, grouped[2], 1)
	// Unbounded records read before date-bounded ones.
	assert.Equal(t, `["morning"]`, grouped[1][0].Value)
	assert.Equal(t, `["night"]`, grouped[1][1].Value)
}

func TestLoadExistingAssignmentsWithinRange(t *testing.T) {
	s := testStore(t)

	inRange, _, err := s.FindOrCreateShift(1, "2025-11-04", "06:00", "14:00", "")
	require.NoError(t, err)
	outOfRange, _, err := s.FindOrCreateShift(1, "2025-12-01", "06:00", "14:00", "")
	require.NoError(t, err)
	_, err = s.CreateAssignment(inRange, 1)
	require.NoError(t, err)
	_, err = s.CreateAssignment(outOfRange, 1)
	require.NoError(t, err)

	rows, err := s.LoadExistingAssignments([]uint{1}, "2025-11-01", "2025-11-30")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, models.ExistingAssignment{EmployeeID: 1, Date: "2025-11-04"}, rows[0])
}

// End-to-end generation through the real store, matching the scenario
// tests of the previous system.
func TestGenerateThroughStore(t *testing.T) {
	s := testStore(t)

	require.NoError(t, s.DB.Create(&database.Employee{Name: "Eli", Active: true}).Error)
	require.NoError(t, s.DB.Create(&database.Employee{Name: "Noa", Active: true}).Error)
	require.NoError(t, s.DB.Create(&database.Project{Name: "Test Site", HourlyRate: 50, Active: true, MorningRequired: 1}).Error)

	employees, err := s.LoadActiveEmployees()
	require.NoError(t, err)

	require.NoError(t, s.DB.Create(&database.EmployeeConstraint{
		EmployeeID: employees[0].ID, Kind: "shift", Scope: "shift",
		ValueJSON: `{"type":"shift","values":["morning"],"priority":"preferred"}`,
	}).Error)
	require.NoError(t, s.DB.Create(&database.EmployeeConstraint{
		EmployeeID: employees[1].ID, Kind: "shift", Scope: "shift",
		ValueJSON: `{"type":"shift","values":["morning"],"priority":"avoid"}`,
	}).Error)

	constraints, err := s.LoadConstraints([]uint{employees[0].ID, employees[1].ID})
	require.NoError(t, err)

	var result *models.ScheduleResult
	err = s.WithTx(func(tx *Store) error {
		sched := scheduler.New(scheduler.DefaultRules(), tx)
		var genErr error
		result, genErr = sched.Generate(scheduler.Input{
			ProjectID:    1,
			Employees:    employees,
			Constraints:  constraints,
			StartDate:    "2025-11-04",
			EndDate:      "2025-11-04",
			Requirements: map[string]int{"morning": 1},
			Location:     "Test Site",
		})
		return genErr
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.TotalAssignments)
	assert.Equal(t, 1, result.ShiftsCreated)
	require.Len(t, result.AssignmentsCreated, 1)
	assert.Equal(t, "Eli", result.AssignmentsCreated[0].Employee)

	var shiftCount, assignmentCount int64
	require.NoError(t, s.DB.Model(&database.Shift{}).Count(&shiftCount).Error)
	require.NoError(t, s.DB.Model(&database.ShiftAssignment{}).Count(&assignmentCount).Error)
	assert.EqualValues(t, 1, shiftCount)
	assert.EqualValues(t, 1, assignmentCount)
}

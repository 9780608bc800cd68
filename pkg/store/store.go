// Package store implements the scheduler's Store interface on top of
// gorm, with batch reads up front and duplicate-safe writes.
package store

import (
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/liorhadad/staffing-api-go/pkg/database"
	"github.com/liorhadad/staffing-api-go/pkg/models"
)

// Store is the gorm-backed persistence collaborator.
type Store struct {
	DB *gorm.DB
}

// New wraps a gorm handle.
func New(db *gorm.DB) *Store {
	return &Store{DB: db}
}

// WithTx runs fn against a Store bound to one transaction, so a whole
// generation call commits or rolls back as a unit.
func (s *Store) WithTx(fn func(*Store) error) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		return fn(&Store{DB: tx})
	})
}

// LoadActiveEmployees returns the active roster in ascending name order,
// the order the scheduler's final tie-break expects.
func (s *Store) LoadActiveEmployees() ([]models.EmployeeRef, error) {
	var rows []database.Employee
	if err := s.DB.Where("active = ?", true).Order("name asc").Find(&rows).Error; err != nil {
		return nil, err
	}
	refs := make([]models.EmployeeRef, 0, len(rows))
	for _, row := range rows {
		refs = append(refs, models.EmployeeRef{ID: row.ID, Name: row.Name})
	}
	return refs, nil
}

// LoadConstraints batch-reads every constraint record for the given
// employees, grouped per employee in read order: ascending valid-from
// with empty bounds first, then insertion id.
func (s *Store) LoadConstraints(employeeIDs []uint) (map[uint][]models.RawConstraint, error) {
	grouped := make(map[uint][]models.RawConstraint, len(employeeIDs))
	if len(employeeIDs) == 0 {
		return grouped, nil
	}

	var rows []database.EmployeeConstraint
	err := s.DB.
		Where("employee_id IN ?", employeeIDs).
		Order("employee_id asc, valid_from asc, id asc").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	for _, row := range rows {
		grouped[row.EmployeeID] = append(grouped[row.EmployeeID], models.RawConstraint{
			Kind:      row.Kind,
			Scope:     row.Scope,
			Value:     row.ValueJSON,
			Priority:  row.Priority,
			ValidFrom: row.ValidFrom,
			ValidTo:   row.ValidTo,
		})
	}
	return grouped, nil
}

// LoadExistingAssignments returns the (employee, date) pairs already
// assigned inside the range, used to seed workload and occupancy.
func (s *Store) LoadExistingAssignments(employeeIDs []uint, startDate, endDate string) ([]models.ExistingAssignment, error) {
	if len(employeeIDs) == 0 {
		return nil, nil
	}

	var rows []models.ExistingAssignment
	err := s.DB.
		Table("shift_assignments").
		Select("shift_assignments.employee_id, shifts.date").
		Joins("INNER JOIN shifts ON shifts.id = shift_assignments.shift_id").
		Where("shift_assignments.employee_id IN ?", employeeIDs).
		Where("shifts.date BETWEEN ? AND ?", startDate, endDate).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// FindOrCreateShift looks up the shift row for the identity tuple and
// inserts it when absent. The created flag reports an actual insert.
func (s *Store) FindOrCreateShift(projectID uint, date, startTime, endTime, location string) (uint, bool, error) {
	var existing database.Shift
	err := s.DB.
		Where("project_id = ? AND date = ? AND start_time = ? AND end_time = ? AND location = ?",
			projectID, date, startTime, endTime, location).
		First(&existing).Error
	if err == nil {
		return existing.ID, false, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, false, err
	}

	shift := database.Shift{
		ProjectID: projectID,
		Date:      date,
		StartTime: startTime,
		EndTime:   endTime,
		Location:  location,
	}
	if err := s.DB.Create(&shift).Error; err != nil {
		return 0, false, err
	}
	return shift.ID, true, nil
}

// CreateAssignment inserts the (shift, employee) pair, as a no-op when
// the pair already exists. The inserted flag reports an actual insert.
func (s *Store) CreateAssignment(shiftID, employeeID uint) (bool, error) {
	assignment := database.ShiftAssignment{ShiftID: shiftID, EmployeeID: employeeID}
	result := s.DB.Clauses(clause.OnConflict{DoNothing: true}).Create(&assignment)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

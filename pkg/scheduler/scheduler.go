package scheduler

import (
	"fmt"
	"sort"
	"time"

	"github.com/liorhadad/staffing-api-go/pkg/models"
)

// Store supplies roster data and persists the rows the generator
// creates. FindOrCreateShift must be idempotent on the full identity
// tuple and CreateAssignment must be a no-op for an existing pair.
// Implementations should run a whole generation call inside one
// transaction.
type Store interface {
	LoadActiveEmployees() ([]models.EmployeeRef, error)
	LoadConstraints(employeeIDs []uint) (map[uint][]models.RawConstraint, error)
	LoadExistingAssignments(employeeIDs []uint, startDate, endDate string) ([]models.ExistingAssignment, error)
	FindOrCreateShift(projectID uint, date, startTime, endTime, location string) (shiftID uint, created bool, err error)
	CreateAssignment(shiftID, employeeID uint) (inserted bool, err error)
}

// Scheduler fills a project's staffing requirements over a date range
// with a deterministic greedy pass: no backtracking, no randomness, ties
// among candidates fully broken by name.
type Scheduler struct {
	Rules  *Rules
	Store  Store
	Policy Policy
}

// New creates a scheduler with the legacy policy defaults.
func New(rules *Rules, store Store) *Scheduler {
	return &Scheduler{Rules: rules, Store: store}
}

// Input carries one generation request. Employees must be the active
// roster in ascending name order and the date range must be valid and
// non-empty; the caller checks both before invoking Generate.
type Input struct {
	ProjectID    uint
	Employees    []models.EmployeeRef
	Constraints  map[uint][]models.RawConstraint
	StartDate    string
	EndDate      string
	Requirements map[string]int
	Location     string
}

// Generate runs one scheduling pass. Degraded conditions (invalid shift
// durations, unfillable slots) surface as warnings on the result; only
// store failures and an unusable date range return an error.
func (s *Scheduler) Generate(in Input) (*models.ScheduleResult, error) {
	dates, err := dateRange(in.StartDate, in.EndDate)
	if err != nil {
		return nil, err
	}

	ids := make([]uint, 0, len(in.Employees))
	names := make(map[uint]string, len(in.Employees))
	for _, emp := range in.Employees {
		ids = append(ids, emp.ID)
		names[emp.ID] = emp.Name
	}

	builder := NewBuilder(s.Rules)
	profiles := make(map[uint]*Profile, len(ids))
	for _, id := range ids {
		profiles[id] = builder.Build(in.Constraints[id])
	}

	load := make(map[uint]int, len(ids))
	booked := make(map[uint]map[string]bool, len(ids))
	for _, id := range ids {
		booked[id] = make(map[string]bool)
	}
	existing, err := s.Store.LoadExistingAssignments(ids, in.StartDate, in.EndDate)
	if err != nil {
		return nil, fmt.Errorf("load existing assignments: %w", err)
	}
	for _, a := range existing {
		if days, ok := booked[a.EmployeeID]; ok {
			days[a.Date] = true
			load[a.EmployeeID]++
		}
	}

	result := &models.ScheduleResult{
		AssignmentsCreated: []models.CreatedAssignment{},
		Warnings:           []string{},
	}

	for _, date := range dates {
		for _, tpl := range s.Rules.Templates {
			if in.Requirements[tpl.Key] <= 0 {
				continue
			}
			if err := s.fillShift(in, tpl, date, ids, names, profiles, load, booked, result); err != nil {
				return nil, err
			}
		}
	}

	result.TotalAssignments = len(result.AssignmentsCreated)
	return result, nil
}

// fillShift fills the required slots for one (date, shift kind) pair.
func (s *Scheduler) fillShift(
	in Input,
	tpl ShiftTemplate,
	date string,
	ids []uint,
	names map[uint]string,
	profiles map[uint]*Profile,
	load map[uint]int,
	booked map[uint]map[string]bool,
	result *models.ScheduleResult,
) error {
	hours := ShiftHours(date, tpl.Start, tpl.End)
	if hours <= 0 || hours > 16 {
		result.Warnings = append(result.Warnings,
			fmt.Sprintf("%s shift on %s is invalid (duration %.2f hours)", tpl.Label, date, hours))
		return nil
	}

	key := s.Rules.Normalize(tpl.Key)
	required := in.Requirements[tpl.Key]

	var shiftID uint
	haveShift := false
	var burned map[uint]bool

	for slot := 0; slot < required; slot++ {
		chosen, ok := s.pickCandidate(ids, names, profiles, load, booked, burned, date, key)
		if !ok {
			result.Warnings = append(result.Warnings,
				fmt.Sprintf("no employee available for the %s shift on %s", tpl.Label, date))
			if s.Policy.FillRemainingSlots {
				continue
			}
			return nil
		}

		if !haveShift {
			id, created, err := s.Store.FindOrCreateShift(in.ProjectID, date, tpl.Start, tpl.End, in.Location)
			if err != nil {
				return fmt.Errorf("ensure shift %s %s: %w", date, tpl.Key, err)
			}
			shiftID = id
			haveShift = true
			if created {
				result.ShiftsCreated++
			}
		}

		inserted, err := s.Store.CreateAssignment(shiftID, chosen)
		if err != nil {
			return fmt.Errorf("create assignment: %w", err)
		}
		if !inserted {
			if s.Policy.RetrySlotOnDuplicate {
				if burned == nil {
					burned = make(map[uint]bool)
				}
				burned[chosen] = true
				slot--
			}
			continue
		}

		booked[chosen][date] = true
		load[chosen]++
		result.AssignmentsCreated = append(result.AssignmentsCreated, models.CreatedAssignment{
			Date:     date,
			Shift:    tpl.Label,
			Employee: names[chosen],
			Hours:    hours,
		})
	}
	return nil
}

// pickCandidate ranks the roster by (load ascending, preferred first,
// disliked last, name ascending) and returns the first candidate that is
// not already booked on the date, does not dislike the shift without also
// preferring it, and whose profile allows it.
func (s *Scheduler) pickCandidate(
	ids []uint,
	names map[uint]string,
	profiles map[uint]*Profile,
	load map[uint]int,
	booked map[uint]map[string]bool,
	burned map[uint]bool,
	date, key string,
) (uint, bool) {
	ranked := make([]uint, len(ids))
	copy(ranked, ids)
	sort.SliceStable(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if load[a] != load[b] {
			return load[a] < load[b]
		}
		if pa, pb := prefRank(profiles[a], key), prefRank(profiles[b], key); pa != pb {
			return pa < pb
		}
		if da, db := dislikeRank(profiles[a], key), dislikeRank(profiles[b], key); da != db {
			return da < db
		}
		return names[a] < names[b]
	})

	for _, id := range ranked {
		if burned[id] || booked[id][date] {
			continue
		}
		profile := profiles[id]
		if profile.DislikedShifts[key] && !profile.PreferredShifts[key] {
			continue
		}
		if !profile.Allows(date, key) {
			continue
		}
		return id, true
	}
	return 0, false
}

func prefRank(p *Profile, key string) int {
	if p.PreferredShifts[key] {
		return 0
	}
	return 1
}

func dislikeRank(p *Profile, key string) int {
	if p.DislikedShifts[key] {
		return 1
	}
	return 0
}

// dateRange expands an inclusive date range into ascending day strings.
func dateRange(start, end string) ([]string, error) {
	startAt, err := time.Parse(dateLayout, start)
	if err != nil {
		return nil, fmt.Errorf("invalid start date %q: %w", start, err)
	}
	endAt, err := time.Parse(dateLayout, end)
	if err != nil {
		return nil, fmt.Errorf("invalid end date %q: %w", end, err)
	}
	if endAt.Before(startAt) {
		return nil, fmt.Errorf("end date %s precedes start date %s", end, start)
	}
	var dates []string
	for d := startAt; !d.After(endAt); d = d.AddDate(0, 0, 1) {
		dates = append(dates, d.Format(dateLayout))
	}
	return dates, nil
}

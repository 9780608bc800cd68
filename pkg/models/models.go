package models

// EmployeeRef identifies one roster member inside a generation run.
type EmployeeRef struct {
	ID   uint   `json:"id"`
	Name string `json:"name"`
}

// RawConstraint is one stored availability record. Value holds the raw
// JSON document exactly as submitted: an object, an array or a bare
// string. Records are append-only; read order is ascending valid-from,
// then insertion id.
type RawConstraint struct {
	Kind      string `json:"kind"`
	Scope     string `json:"scope"`
	Value     string `json:"value"`
	Priority  string `json:"priority,omitempty"`
	ValidFrom string `json:"valid_from,omitempty"`
	ValidTo   string `json:"valid_to,omitempty"`
}

// ExistingAssignment seeds per-run workload and same-day occupancy.
type ExistingAssignment struct {
	EmployeeID uint   `json:"employee_id"`
	Date       string `json:"date"`
}

// CreatedAssignment is one assignment produced by a generation run.
type CreatedAssignment struct {
	Date     string  `json:"date"`
	Shift    string  `json:"shift"`
	Employee string  `json:"employee"`
	Hours    float64 `json:"hours"`
}

// ScheduleResult is the outcome of one generation run.
type ScheduleResult struct {
	AssignmentsCreated []CreatedAssignment `json:"assignments_created"`
	TotalAssignments   int                 `json:"total_assignments"`
	ShiftsCreated      int                 `json:"shifts_created"`
	Warnings           []string            `json:"warnings"`
}

// GenerateRequest is the payload for the schedule generation endpoint.
type GenerateRequest struct {
	StartDate    string         `json:"start_date" binding:"required"`
	EndDate      string         `json:"end_date" binding:"required"`
	Requirements map[string]int `json:"requirements,omitempty"`
	Location     string         `json:"location,omitempty"`
}

// ConstraintRequest is the payload for submitting an availability record.
type ConstraintRequest struct {
	Kind      string `json:"kind" binding:"required"`
	Scope     string `json:"scope" binding:"required"`
	Value     string `json:"value" binding:"required"`
	Priority  string `json:"priority,omitempty"`
	ValidFrom string `json:"valid_from,omitempty"`
	ValidTo   string `json:"valid_to,omitempty"`
}

package handlers

import (
	"math"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"github.com/liorhadad/staffing-api-go/pkg/scheduler"
)

type overviewRow struct {
	ShiftID      uint
	Date         string
	StartTime    string
	EndTime      string
	ProjectID    uint
	ProjectName  string
	HourlyRate   float64
	EmployeeID   uint
	EmployeeName string
}

type projectSummary struct {
	ProjectID   uint    `json:"project_id"`
	ProjectName string  `json:"project_name"`
	Hours       float64 `json:"hours"`
	Amount      float64 `json:"amount"`
	Assignments int     `json:"assignments"`
}

type employeeSummary struct {
	EmployeeID   uint    `json:"employee_id"`
	EmployeeName string  `json:"employee_name"`
	Hours        float64 `json:"hours"`
	Amount       float64 `json:"amount"`
	Assignments  int     `json:"assignments"`
}

// Overview aggregates hours and payout per project and per employee over
// an optional date range.
func (h *Handler) Overview(c *gin.Context) {
	startDate := c.Query("start_date")
	endDate := c.Query("end_date")

	query := h.DB.
		Table("shifts").
		Select(`shifts.id AS shift_id, shifts.date, shifts.start_time, shifts.end_time,
			projects.id AS project_id, projects.name AS project_name, projects.hourly_rate,
			shift_assignments.employee_id, employees.name AS employee_name`).
		Joins("LEFT JOIN projects ON projects.id = shifts.project_id").
		Joins("LEFT JOIN shift_assignments ON shift_assignments.shift_id = shifts.id").
		Joins("LEFT JOIN employees ON employees.id = shift_assignments.employee_id")
	if startDate != "" {
		query = query.Where("shifts.date >= ?", startDate)
	}
	if endDate != "" {
		query = query.Where("shifts.date <= ?", endDate)
	}

	var rows []overviewRow
	if err := query.Order("shifts.date ASC, shifts.start_time ASC").Scan(&rows).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not build overview"})
		return
	}

	shiftHours := make(map[uint]float64)
	projects := make(map[uint]*projectSummary)
	employees := make(map[uint]*employeeSummary)
	var totalHours, totalPayout float64

	for _, row := range rows {
		if _, ok := shiftHours[row.ShiftID]; !ok {
			shiftHours[row.ShiftID] = scheduler.ShiftHours(row.Date, row.StartTime, row.EndTime)
		}
		if row.EmployeeID == 0 {
			continue
		}
		hours := shiftHours[row.ShiftID]
		amount := hours * row.HourlyRate

		project, ok := projects[row.ProjectID]
		if !ok {
			project = &projectSummary{ProjectID: row.ProjectID, ProjectName: row.ProjectName}
			projects[row.ProjectID] = project
		}
		project.Hours += hours
		project.Amount += amount
		project.Assignments++

		employee, ok := employees[row.EmployeeID]
		if !ok {
			employee = &employeeSummary{EmployeeID: row.EmployeeID, EmployeeName: row.EmployeeName}
			employees[row.EmployeeID] = employee
		}
		employee.Hours += hours
		employee.Amount += amount
		employee.Assignments++

		totalHours += hours
		totalPayout += amount
	}

	projectTotals := make([]projectSummary, 0, len(projects))
	for _, p := range projects {
		p.Hours = round2(p.Hours)
		p.Amount = round2(p.Amount)
		projectTotals = append(projectTotals, *p)
	}
	sort.Slice(projectTotals, func(i, j int) bool {
		if projectTotals[i].Hours != projectTotals[j].Hours {
			return projectTotals[i].Hours > projectTotals[j].Hours
		}
		return projectTotals[i].ProjectName < projectTotals[j].ProjectName
	})

	employeeTotals := make([]employeeSummary, 0, len(employees))
	for _, e := range employees {
		e.Hours = round2(e.Hours)
		e.Amount = round2(e.Amount)
		employeeTotals = append(employeeTotals, *e)
	}
	sort.Slice(employeeTotals, func(i, j int) bool {
		if employeeTotals[i].Hours != employeeTotals[j].Hours {
			return employeeTotals[i].Hours > employeeTotals[j].Hours
		}
		return employeeTotals[i].EmployeeName < employeeTotals[j].EmployeeName
	})

	c.JSON(http.StatusOK, gin.H{
		"start_date":      startDate,
		"end_date":        endDate,
		"total_shifts":    len(shiftHours),
		"total_hours":     round2(totalHours),
		"total_payout":    round2(totalPayout),
		"project_totals":  projectTotals,
		"employee_totals": employeeTotals,
	})
}

func round2(f float64) float64 {
	return math.Round(f*100) / 100
}

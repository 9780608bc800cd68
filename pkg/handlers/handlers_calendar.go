package handlers

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/liorhadad/staffing-api-go/pkg/database"
)

type calendarRow struct {
	Date         string
	StartTime    string
	EndTime      string
	Location     string
	EmployeeName string
	ProjectName  string
}

// ScheduleCalendar exports a project's stored schedule for a date range
// as an iCalendar file, one event per assignment.
func (h *Handler) ScheduleCalendar(c *gin.Context) {
	projectID, ok := h.paramID(c)
	if !ok {
		return
	}

	startDate := c.Query("start_date")
	endDate := c.Query("end_date")
	if !validDateRange(startDate, endDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date range"})
		return
	}

	var project database.Project
	if err := h.DB.First(&project, projectID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return
	}

	var rows []calendarRow
	err := h.DB.
		Table("shifts").
		Select(`shifts.date, shifts.start_time, shifts.end_time, shifts.location,
			employees.name AS employee_name, projects.name AS project_name`).
		Joins("INNER JOIN projects ON projects.id = shifts.project_id").
		Joins("LEFT JOIN shift_assignments ON shift_assignments.shift_id = shifts.id").
		Joins("LEFT JOIN employees ON employees.id = shift_assignments.employee_id").
		Where("shifts.project_id = ?", projectID).
		Where("shifts.date BETWEEN ? AND ?", startDate, endDate).
		Order("shifts.date ASC, shifts.start_time ASC, employees.name ASC").
		Scan(&rows).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load schedule"})
		return
	}

	timestamp := time.Now().UTC().Format("20060102T150405Z")
	lines := []string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//Staffing Scheduler//EN",
	}

	for idx, row := range rows {
		startAt, err := time.Parse("2006-01-02 15:04", row.Date+" "+row.StartTime)
		if err != nil {
			continue
		}
		endAt, err := time.Parse("2006-01-02 15:04", row.Date+" "+row.EndTime)
		if err != nil {
			continue
		}
		if !endAt.After(startAt) {
			endAt = endAt.Add(24 * time.Hour)
		}

		employee := row.EmployeeName
		if employee == "" {
			employee = "unassigned"
		}
		location := row.Location
		if location == "" {
			location = row.ProjectName
		}

		lines = append(lines,
			"BEGIN:VEVENT",
			fmt.Sprintf("UID:sched-%d-%d-%d@staffing", projectID, idx, startAt.Unix()),
			"DTSTAMP:"+timestamp,
			"DTSTART:"+startAt.Format("20060102T150405"),
			"DTEND:"+endAt.Format("20060102T150405"),
			fmt.Sprintf("SUMMARY:%s - %s", row.ProjectName, employee),
			"LOCATION:"+location,
			"END:VEVENT",
		)
	}

	lines = append(lines, "END:VCALENDAR")
	content := strings.Join(lines, "\r\n")

	filename := fmt.Sprintf("project_%d_%s_%s.ics", projectID, startDate, endDate)
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(content))
}

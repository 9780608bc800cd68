package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/liorhadad/staffing-api-go/pkg/auth"
	"github.com/liorhadad/staffing-api-go/pkg/database"
	"github.com/liorhadad/staffing-api-go/pkg/models"
	"github.com/liorhadad/staffing-api-go/pkg/scheduler"
)

// PortalLogin authenticates a roster member by email and password.
func (h *Handler) PortalLogin(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var employee database.Employee
	if err := h.DB.Where("email = ? AND active = ?", req.Email, true).First(&employee).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}
	if employee.PasswordHash == "" || !auth.CheckPasswordHash(req.Password, employee.PasswordHash) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	token, err := auth.CreateToken(&employee)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create token"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"access_token": token, "token_type": "bearer"})
}

// PortalShifts returns the authenticated employee's own assignments,
// newest date first.
func (h *Handler) PortalShifts(c *gin.Context) {
	claims := c.MustGet("claims").(*auth.Claims)

	type shiftRow struct {
		Date        string  `json:"date"`
		StartTime   string  `json:"start_time"`
		EndTime     string  `json:"end_time"`
		Location    string  `json:"location"`
		ProjectName string  `json:"project_name"`
		Hours       float64 `json:"hours"`
	}

	var rows []shiftRow
	err := h.DB.
		Table("shifts").
		Select("shifts.date, shifts.start_time, shifts.end_time, shifts.location, projects.name AS project_name").
		Joins("INNER JOIN shift_assignments ON shift_assignments.shift_id = shifts.id").
		Joins("LEFT JOIN projects ON projects.id = shifts.project_id").
		Where("shift_assignments.employee_id = ?", claims.EmployeeID).
		Order("shifts.date DESC, shifts.start_time ASC").
		Scan(&rows).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not load shifts"})
		return
	}

	for i := range rows {
		rows[i].Hours = scheduler.ShiftHours(rows[i].Date, rows[i].StartTime, rows[i].EndTime)
	}

	c.JSON(http.StatusOK, gin.H{"shifts": rows})
}

// PortalAddConstraint lets an employee submit an availability record for
// themselves.
func (h *Handler) PortalAddConstraint(c *gin.Context) {
	claims := c.MustGet("claims").(*auth.Claims)

	var req models.ConstraintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record := database.EmployeeConstraint{
		EmployeeID: claims.EmployeeID,
		Kind:       req.Kind,
		Scope:      req.Scope,
		ValueJSON:  req.Value,
		Priority:   req.Priority,
		ValidFrom:  req.ValidFrom,
		ValidTo:    req.ValidTo,
	}
	if err := h.DB.Create(&record).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not add constraint"})
		return
	}
	c.JSON(http.StatusOK, record)
}

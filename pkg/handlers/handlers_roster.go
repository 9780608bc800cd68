package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/liorhadad/staffing-api-go/pkg/auth"
	"github.com/liorhadad/staffing-api-go/pkg/database"
	"github.com/liorhadad/staffing-api-go/pkg/models"
)

// ListEmployees returns the roster with per-employee assignment counts,
// active employees first.
func (h *Handler) ListEmployees(c *gin.Context) {
	type employeeRow struct {
		database.Employee
		AssignedShifts int64 `json:"assigned_shifts"`
	}

	var rows []employeeRow
	err := h.DB.
		Table("employees").
		Select("employees.*, COUNT(shift_assignments.shift_id) AS assigned_shifts").
		Joins("LEFT JOIN shift_assignments ON shift_assignments.employee_id = employees.id").
		Group("employees.id").
		Order("employees.active DESC, employees.name ASC").
		Scan(&rows).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not list employees"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"employees": rows})
}

// CreateEmployee adds a roster member. A password is optional; without
// one the employee cannot use the portal.
func (h *Handler) CreateEmployee(c *gin.Context) {
	var req struct {
		Name     string `json:"name" binding:"required"`
		Email    string `json:"email"`
		Phone    string `json:"phone"`
		Password string `json:"password"`
		IsAdmin  bool   `json:"is_admin"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	employee := database.Employee{
		Name:    req.Name,
		Email:   req.Email,
		Phone:   req.Phone,
		Active:  true,
		IsAdmin: req.IsAdmin,
	}
	if req.Password != "" {
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not hash password"})
			return
		}
		employee.PasswordHash = hash
	}

	if err := h.DB.Create(&employee).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create employee"})
		return
	}
	c.JSON(http.StatusOK, employee)
}

// UpdateEmployee updates contact details and the activity flag.
func (h *Handler) UpdateEmployee(c *gin.Context) {
	id, ok := h.paramID(c)
	if !ok {
		return
	}

	var employee database.Employee
	if err := h.DB.First(&employee, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Employee not found"})
		return
	}

	var req struct {
		Name   *string `json:"name"`
		Email  *string `json:"email"`
		Phone  *string `json:"phone"`
		Active *bool   `json:"active"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Name != nil {
		employee.Name = *req.Name
	}
	if req.Email != nil {
		employee.Email = *req.Email
	}
	if req.Phone != nil {
		employee.Phone = *req.Phone
	}
	if req.Active != nil {
		employee.Active = *req.Active
	}

	if err := h.DB.Save(&employee).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update employee"})
		return
	}
	c.JSON(http.StatusOK, employee)
}

// ListConstraints returns one employee's availability records in read
// order.
func (h *Handler) ListConstraints(c *gin.Context) {
	id, ok := h.paramID(c)
	if !ok {
		return
	}

	var rows []database.EmployeeConstraint
	err := h.DB.
		Where("employee_id = ?", id).
		Order("valid_from asc, id asc").
		Find(&rows).Error
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not list constraints"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"constraints": rows})
}

// AddConstraint appends one availability record for an employee.
func (h *Handler) AddConstraint(c *gin.Context) {
	id, ok := h.paramID(c)
	if !ok {
		return
	}

	var employee database.Employee
	if err := h.DB.First(&employee, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Employee not found"})
		return
	}

	var req models.ConstraintRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	record := database.EmployeeConstraint{
		EmployeeID: employee.ID,
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

// DeleteConstraint removes one availability record.
func (h *Handler) DeleteConstraint(c *gin.Context) {
	id, ok := h.paramID(c)
	if !ok {
		return
	}
	if err := h.DB.Delete(&database.EmployeeConstraint{}, id).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not delete constraint"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Constraint deleted"})
}

// ListProjects returns all projects.
func (h *Handler) ListProjects(c *gin.Context) {
	var projects []database.Project
	if err := h.DB.Order("active DESC, name ASC").Find(&projects).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not list projects"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"projects": projects})
}

// CreateProject adds a staffing project.
func (h *Handler) CreateProject(c *gin.Context) {
	var req struct {
		Name              string  `json:"name" binding:"required"`
		HourlyRate        float64 `json:"hourly_rate"`
		MorningRequired   int     `json:"morning_required"`
		AfternoonRequired int     `json:"afternoon_required"`
		NightRequired     int     `json:"night_required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	project := database.Project{
		Name:              req.Name,
		HourlyRate:        req.HourlyRate,
		Active:            true,
		MorningRequired:   clampRequirement(req.MorningRequired),
		AfternoonRequired: clampRequirement(req.AfternoonRequired),
		NightRequired:     clampRequirement(req.NightRequired),
	}
	if err := h.DB.Create(&project).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not create project"})
		return
	}
	c.JSON(http.StatusOK, project)
}

// UpdateProject updates a project's rate, requirements and activity.
func (h *Handler) UpdateProject(c *gin.Context) {
	id, ok := h.paramID(c)
	if !ok {
		return
	}

	var project database.Project
	if err := h.DB.First(&project, id).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return
	}

	var req struct {
		Name              *string  `json:"name"`
		HourlyRate        *float64 `json:"hourly_rate"`
		Active            *bool    `json:"active"`
		MorningRequired   *int     `json:"morning_required"`
		AfternoonRequired *int     `json:"afternoon_required"`
		NightRequired     *int     `json:"night_required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.Name != nil {
		project.Name = *req.Name
	}
	if req.HourlyRate != nil {
		project.HourlyRate = *req.HourlyRate
	}
	if req.Active != nil {
		project.Active = *req.Active
	}
	if req.MorningRequired != nil {
		project.MorningRequired = clampRequirement(*req.MorningRequired)
	}
	if req.AfternoonRequired != nil {
		project.AfternoonRequired = clampRequirement(*req.AfternoonRequired)
	}
	if req.NightRequired != nil {
		project.NightRequired = clampRequirement(*req.NightRequired)
	}

	if err := h.DB.Save(&project).Error; err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Could not update project"})
		return
	}
	c.JSON(http.StatusOK, project)
}

// clampRequirement floors slot counts at zero.
func clampRequirement(n int) int {
	if n < 0 {
		return 0
	}
	return n
}

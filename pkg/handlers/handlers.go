package handlers

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/liorhadad/staffing-api-go/pkg/auth"
	"github.com/liorhadad/staffing-api-go/pkg/database"
	"github.com/liorhadad/staffing-api-go/pkg/models"
	"github.com/liorhadad/staffing-api-go/pkg/scheduler"
	"github.com/liorhadad/staffing-api-go/pkg/store"
)

var errEmptyRoster = errors.New("no active employees")

// Handler contains dependencies for the route handlers.
type Handler struct {
	DB     *gorm.DB
	Store  *store.Store
	Rules  *scheduler.Rules
	Policy scheduler.Policy
	Log    *zap.Logger
}

// New wires a handler set over the shared dependencies.
func New(db *gorm.DB, rules *scheduler.Rules, log *zap.Logger) *Handler {
	return &Handler{
		DB:    db,
		Store: store.New(db),
		Rules: rules,
		Log:   log,
	}
}

// AuthMiddleware verifies the JWT token and requires the admin flag.
func (h *Handler) AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := h.verifyRequest(c)
		if !ok {
			return
		}
		if !claims.IsAdmin {
			c.JSON(http.StatusForbidden, gin.H{"error": "Admin access required"})
			c.Abort()
			return
		}
		c.Set("claims", claims)
		c.Next()
	}
}

// PortalMiddleware verifies the JWT token for employee portal routes.
func (h *Handler) PortalMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, ok := h.verifyRequest(c)
		if !ok {
			return
		}
		c.Set("claims", claims)
		c.Next()
	}
}

func (h *Handler) verifyRequest(c *gin.Context) (*auth.Claims, bool) {
	token := c.GetHeader("Authorization")
	if token == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Authorization header required"})
		c.Abort()
		return nil, false
	}

	// Strip "Bearer " if present
	if len(token) > 7 && token[:7] == "Bearer " {
		token = token[7:]
	}

	claims, err := auth.VerifyToken(token)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid token"})
		c.Abort()
		return nil, false
	}
	return claims, true
}

// Login handles admin login.
func (h *Handler) Login(c *gin.Context) {
	var req struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var employee database.Employee
	if err := h.DB.Where("email = ? AND is_admin = ?", req.Email, true).First(&employee).Error; err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
		return
	}

	if !auth.CheckPasswordHash(req.Password, employee.PasswordHash) {
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

// GenerateSchedule runs one scheduling pass for a project over a date
// range, inside a single transaction.
func (h *Handler) GenerateSchedule(c *gin.Context) {
	projectID, ok := h.paramID(c)
	if !ok {
		return
	}

	var req models.GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !validDateRange(req.StartDate, req.EndDate) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date range"})
		return
	}

	var project database.Project
	if err := h.DB.First(&project, projectID).Error; err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Project not found"})
		return
	}

	requirements := map[string]int{
		"morning":   project.MorningRequired,
		"afternoon": project.AfternoonRequired,
		"night":     project.NightRequired,
	}
	for key, count := range req.Requirements {
		requirements[h.Rules.Normalize(key)] = count
	}

	location := req.Location
	if location == "" {
		location = project.Name
	}

	var result *models.ScheduleResult
	err := h.Store.WithTx(func(tx *store.Store) error {
		employees, err := tx.LoadActiveEmployees()
		if err != nil {
			return err
		}
		if len(employees) == 0 {
			return errEmptyRoster
		}

		ids := make([]uint, 0, len(employees))
		for _, emp := range employees {
			ids = append(ids, emp.ID)
		}
		constraints, err := tx.LoadConstraints(ids)
		if err != nil {
			return err
		}

		sched := scheduler.New(h.Rules, tx)
		sched.Policy = h.Policy
		result, err = sched.Generate(scheduler.Input{
			ProjectID:    project.ID,
			Employees:    employees,
			Constraints:  constraints,
			StartDate:    req.StartDate,
			EndDate:      req.EndDate,
			Requirements: requirements,
			Location:     location,
		})
		return err
	})
	if err != nil {
		if errors.Is(err, errEmptyRoster) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "No active employees to schedule"})
			return
		}
		h.Log.Error("schedule generation failed",
			zap.Uint("project_id", project.ID),
			zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Schedule generation failed"})
		return
	}

	h.Log.Info("schedule generated",
		zap.Uint("project_id", project.ID),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
		zap.Int("assignments", result.TotalAssignments),
		zap.Int("shifts_created", result.ShiftsCreated),
		zap.Int("warnings", len(result.Warnings)))

	c.JSON(http.StatusOK, result)
}

func (h *Handler) paramID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid id"})
		return 0, false
	}
	return uint(id), true
}

func validDateRange(start, end string) bool {
	startAt, err := time.Parse("2006-01-02", start)
	if err != nil {
		return false
	}
	endAt, err := time.Parse("2006-01-02", end)
	if err != nil {
		return false
	}
	return !endAt.Before(startAt)
}

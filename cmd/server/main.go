package main

import (
	"net/http"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/liorhadad/staffing-api-go/pkg/auth"
	"github.com/liorhadad/staffing-api-go/pkg/database"
	"github.com/liorhadad/staffing-api-go/pkg/handlers"
	"github.com/liorhadad/staffing-api-go/pkg/scheduler"
)

func main() {
	// Load .env if it exists
	// Try root and parent directories for flexibility
	envPaths := []string{".env", "../.env", "../../.env"}
	for _, p := range envPaths {
		if _, err := os.Stat(p); err == nil {
			_ = godotenv.Load(p)
			break
		}
	}

	log, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	if os.Getenv("GIN_MODE") == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	rules := scheduler.DefaultRules()
	if path := os.Getenv("RULES_PATH"); path != "" {
		rules, err = scheduler.LoadRules(path)
		if err != nil {
			log.Fatal("could not load scheduling rules", zap.String("path", path), zap.Error(err))
		}
		log.Info("scheduling rules loaded", zap.String("path", path))
	}

	db := database.InitDB()
	_ = auth.EnsureAdminExists(db)

	h := handlers.New(db, rules, log)
	h.Policy = scheduler.Policy{
		RetrySlotOnDuplicate: os.Getenv("SCHEDULER_RETRY_DUPLICATE_SLOT") == "true",
		FillRemainingSlots:   os.Getenv("SCHEDULER_FILL_REMAINING_SLOTS") == "true",
	}

	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"message": "Staffing Scheduler API",
			"version": "1.2.0",
		})
	})

	r.POST("/admin/login", h.Login)

	// Admin Endpoints
	admin := r.Group("/admin")
	admin.Use(h.AuthMiddleware())
	{
		admin.GET("/employees", h.ListEmployees)
		admin.POST("/employees", h.CreateEmployee)
		admin.PUT("/employees/:id", h.UpdateEmployee)
		admin.GET("/employees/:id/constraints", h.ListConstraints)
		admin.POST("/employees/:id/constraints", h.AddConstraint)
		admin.DELETE("/constraints/:id", h.DeleteConstraint)

		admin.GET("/projects", h.ListProjects)
		admin.POST("/projects", h.CreateProject)
		admin.PUT("/projects/:id", h.UpdateProject)
		admin.POST("/projects/:id/generate", h.GenerateSchedule)
		admin.GET("/projects/:id/schedule.ics", h.ScheduleCalendar)

		admin.GET("/overview", h.Overview)
	}

	// Employee Portal Endpoints
	r.POST("/portal/login", h.PortalLogin)
	portal := r.Group("/portal")
	portal.Use(h.PortalMiddleware())
	{
		portal.GET("/shifts", h.PortalShifts)
		portal.POST("/constraints", h.PortalAddConstraint)
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = "8000"
	}

	log.Info("server starting", zap.String("port", port))
	if err := r.Run(":" + port); err != nil {
		log.Fatal("could not run server", zap.Error(err))
	}
}

package main

import (
	"context"
	"log"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"dayflow.app/dayflow/attendance"
	"dayflow.app/dayflow/core"
	"dayflow.app/dayflow/core/models"
	"dayflow.app/dayflow/directory"
	"dayflow.app/dayflow/infrastructure/devops"
	"dayflow.app/dayflow/infrastructure/filesystem"
	"dayflow.app/dayflow/leave"
	"dayflow.app/dayflow/metrics"
	"dayflow.app/dayflow/payroll"
	"dayflow.app/dayflow/web/handlers"
	"dayflow.app/dayflow/web/middlewares"
)

func main() {
	ctx := context.Background()

	cfg, err := devops.Load(ctx)
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		log.Fatalf("invalid reporting timezone %q: %v", cfg.Timezone, err)
	}

	formula, err := payroll.ParseFormula(cfg.PayrollFormula)
	if err != nil {
		log.Fatalf("invalid payroll configuration: %v", err)
	}

	db, err := core.ConnectDB(cfg.DSN, cfg.MaxConnections, core.LogLevelWarn)
	if err != nil {
		log.Fatalf("failed to connect database: %v", err)
	}
	if err := core.Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	var docs *filesystem.Store
	if cfg.DocumentBucket != "" {
		docs, err = filesystem.NewStore(ctx, cfg.DocumentBucket)
		if err != nil {
			log.Fatalf("failed to init document store: %v", err)
		}
	} else {
		log.Println("DAYFLOW_DOCUMENT_BUCKET not set, uploads go to local disk")
	}

	registry := prometheus.NewRegistry()
	m := metrics.NewMetrics(registry)

	h := handlers.New(
		directory.NewService(db),
		attendance.NewTracker(db, loc),
		leave.NewWorkflow(db),
		payroll.NewEngine(db, formula, cfg.PayrollSinglePayPerPeriod),
		docs,
		m,
	)

	r := gin.Default()
	r.Use(requestDurations(m))

	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"message": "pong",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	api := r.Group("/api")
	api.Use(middlewares.Authentication(cfg.JWTSecret))
	{
		api.POST("/auth/register", h.Register)

		api.POST("/attendance/check-in", h.CheckIn)
		api.POST("/attendance/check-out", h.CheckOut)
		api.GET("/attendance/today", h.TodayAttendance)
		api.GET("/attendance/history", h.AttendanceHistory)

		api.POST("/leave", h.SubmitLeave)
		api.GET("/leave/mine", h.MyLeave)

		api.GET("/payroll/mine", h.MyPayroll)

		api.GET("/profile", h.GetProfile)
		api.PATCH("/profile", h.UpdateProfile)
		api.POST("/profile/documents", h.UploadDocument)
		api.GET("/profile/documents/url", h.DocumentURL)
	}

	hr := api.Group("")
	hr.Use(middlewares.RequireRole(models.RoleHR))
	{
		hr.GET("/leave", h.AllLeave)
		hr.POST("/leave/:id/decision", h.DecideLeave)

		hr.GET("/payroll", h.AllPayroll)
		hr.GET("/payroll/export", h.ExportPayroll)
		hr.POST("/payroll/:userId/process", h.ProcessPayroll)

		hr.GET("/employees", h.ListEmployees)
		hr.PATCH("/employees/:id", h.UpdateEmployee)
	}

	log.Println("listening on port", cfg.HTTPPort)
	if err := r.Run(":" + cfg.HTTPPort); err != nil {
		log.Fatal(err)
	}
}

func requestDurations(m *metrics.Metrics) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.RequestDurations.
			WithLabelValues(route, c.Request.Method, strconv.Itoa(c.Writer.Status())).
			Observe(time.Since(start).Seconds())
	}
}

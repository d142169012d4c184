package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/michaelgigihub/dental-clinic-api/internal/audit"
	"github.com/michaelgigihub/dental-clinic-api/internal/clinictime"
	"github.com/michaelgigihub/dental-clinic-api/internal/config"
	dbpkg "github.com/michaelgigihub/dental-clinic-api/internal/db"
	"github.com/michaelgigihub/dental-clinic-api/internal/jobs"
	"github.com/michaelgigihub/dental-clinic-api/internal/middleware"
	"github.com/michaelgigihub/dental-clinic-api/internal/routes"
)

func main() {

	_ = godotenv.Load()

	log := logrus.New()
	log.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg := config.Load()
	clinictime.Init(cfg.ClinicTimezone)

	db := dbpkg.NewDB(cfg, log)

	var cache *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("invalid REDIS_URL: %v", err)
		}
		cache = redis.NewClient(opts)
	}

	r := gin.Default()

	r.Use(middleware.CORSMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	routes.RegisterRoutes(r, db, cache, cfg, log)

	auditDispatcher := audit.NewDispatcher(audit.New(db), log)
	reminderJob := jobs.NewReminderJob(db, auditDispatcher, log)
	reminderJob.Start()

	log.Printf("Server running on %s", cfg.Addr())
	if err := r.Run(cfg.Addr()); err != nil {
		log.Fatalf("failed to start server: %v", err)
	}
}

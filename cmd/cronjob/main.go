package main

import (
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	_ "github.com/lib/pq"

	"sisdisfraz-backend/internal/config"
	"sisdisfraz-backend/internal/jobs"
	"sisdisfraz-backend/internal/logger"
	"sisdisfraz-backend/internal/queue"
	"sisdisfraz-backend/internal/repository/postgres"
	"sisdisfraz-backend/internal/scheduler"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	runOnce := flag.String("run-once", "", "Run a specific job once and exit (e.g., 'mark-overdue-rentals', 'all-nightly')")
	flag.Parse()

	// Load .env if present, then configuration
	_ = godotenv.Load()
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting SisDisfraz Cronjob Runner...", "log_level", cfg.Log.Level)

	// Initialize Database
	logger.Info("Connecting to database...", "host", cfg.Database.Host, "port", cfg.Database.Port)
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize outbound message publisher
	var publisher *queue.Publisher
	if cfg.AMQP.Enabled {
		publisher, err = queue.NewPublisher(cfg.AMQP.URL)
		if err != nil {
			logger.Warn("RabbitMQ unavailable, notifications will stay queued", "error", err)
			publisher = nil
		} else {
			defer publisher.Close()
			logger.Info("Connected to RabbitMQ")
		}
	}

	// Initialize Job Runner
	jobRunner := jobs.NewJobRunner(store, publisher, cfg)

	// Check if running a single job
	if *runOnce != "" {
		logger.Info("Running job once", "job", *runOnce)
		runJobOnce(jobRunner, *runOnce)
		logger.Info("Job execution completed", "job", *runOnce)
		return
	}

	location, err := time.LoadLocation(cfg.Scheduler.Timezone)
	if err != nil {
		logger.Error("Invalid scheduler timezone", "timezone", cfg.Scheduler.Timezone, "error", err)
		log.Fatalf("Invalid scheduler timezone: %v", err)
	}

	// Initialize Scheduler
	cronScheduler := scheduler.NewScheduler(jobRunner, location)

	// Start scheduler
	cronScheduler.Start()
	logger.Info("Cronjob scheduler is running. Press Ctrl+C to stop.")

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down cronjob scheduler...")
	cronScheduler.Stop()
	logger.Info("Cronjob scheduler stopped. Goodbye!")
}

// runJobOnce runs a specific job once and exits
func runJobOnce(jobRunner *jobs.JobRunner, jobName string) {
	switch jobName {
	case "mark-overdue-rentals":
		jobRunner.MarkOverdueRentals()
	case "enqueue-reminders":
		jobRunner.EnqueueReminders()
	case "dispatch-notifications":
		jobRunner.DispatchNotifications()
	case "all-nightly":
		jobRunner.RunAllNightlyJobs()
	default:
		logger.Error("Unknown job name", "job", jobName)
		fmt.Printf("Available jobs:\n")
		fmt.Printf("  - mark-overdue-rentals\n")
		fmt.Printf("  - enqueue-reminders\n")
		fmt.Printf("  - dispatch-notifications\n")
		fmt.Printf("  - all-nightly\n")
		os.Exit(1)
	}
}

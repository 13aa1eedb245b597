package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/campusops/registry-service/internal/academics"
	"github.com/campusops/registry-service/internal/cache"
	"github.com/campusops/registry-service/internal/config"
	"github.com/campusops/registry-service/internal/handlers"
	"github.com/campusops/registry-service/internal/portal"
	"github.com/campusops/registry-service/internal/repositories"
	"github.com/campusops/registry-service/internal/repositories/postgres"
	"github.com/campusops/registry-service/internal/services"
	"github.com/campusops/registry-service/internal/utils"
	"github.com/campusops/registry-service/internal/validator"
	"github.com/campusops/registry-service/pkg"
	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"
)

const usage = `usage: registry <command> [args]

commands:
  serve                     run the HTTP API (with scheduled sync if configured)
  sync <student_no>...      mirror the given students from the portal
  structure <code>          mirror one program structure from the portal
  clearance <student_no>    evaluate graduation clearance for one student
  transcript <student_no>   print the academic summary for one student
  export <file.xlsx>        write the clearance roster workbook to a file
`

type app struct {
	cfg      *config.Config
	logger   *slog.Logger
	repo     repositories.Repository
	services struct {
		transcripts services.TranscriptService
		clearances  services.ClearanceService
		syncs       services.SyncService
		reports     services.ReportService
	}
	closers []func() error
}

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger := utils.NewLogger(cfg.Environment)

	a, err := newApp(cfg, logger)
	if err != nil {
		logger.Error("Failed to initialize", "error", err)
		os.Exit(1)
	}
	defer a.close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	switch cmd := os.Args[1]; cmd {
	case "serve":
		err = a.serve(ctx)
	case "sync":
		err = a.runSync(ctx, os.Args[2:])
	case "structure":
		err = a.runStructure(ctx, os.Args[2:])
	case "clearance":
		err = a.runClearance(ctx, os.Args[2:])
	case "transcript":
		err = a.runTranscript(ctx, os.Args[2:])
	case "export":
		err = a.runExport(ctx, os.Args[2:])
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if err != nil {
		logger.Error("Command failed", "command", os.Args[1], "error", err)
		os.Exit(1)
	}
}

func newApp(cfg *config.Config, logger *slog.Logger) (*app, error) {
	a := &app{cfg: cfg, logger: logger}

	db, err := pkg.InitDatabase(cfg)
	if err != nil {
		return nil, err
	}
	a.repo = postgres.NewRepository(db)

	cacheService := cache.NewNoop()
	if redisClient, err := pkg.NewRedisClient(cfg); err != nil {
		logger.Warn("Redis unavailable, caching disabled", "error", err)
	} else {
		cacheService = cache.NewRedisCache(redisClient, logger)
		a.closers = append(a.closers, redisClient.Close)
	}

	publisher, err := cfg.Events.CreateEventPublisher(logger)
	if err != nil {
		return nil, fmt.Errorf("create event publisher: %w", err)
	}
	a.closers = append(a.closers, publisher.Close)

	notifier := services.NewNoopNotifier(logger)
	if cfg.SMTP.Host != "" {
		notifier = services.NewSMTPNotifier(services.SMTPConfig{
			Host:     cfg.SMTP.Host,
			Port:     cfg.SMTP.Port,
			Sender:   cfg.SMTP.Sender,
			Password: cfg.SMTP.Password,
		}, logger)
	}

	catalog := academics.DefaultCatalog()
	portalClient := portal.NewClient(cfg.Portal.BaseURL, logger)

	a.services.transcripts = services.NewTranscriptService(a.repo, catalog, cacheService, logger)
	a.services.clearances = services.NewClearanceService(a.repo, catalog, publisher, notifier, logger)
	a.services.syncs = services.NewSyncService(
		a.repo,
		portalClient,
		services.PortalCredentials{Username: cfg.Portal.Username, Password: cfg.Portal.Password},
		validator.New(),
		cacheService,
		logger,
		cfg.Sync.Workers,
	)
	a.services.reports = services.NewReportService(a.repo, a.services.transcripts, a.services.clearances, logger)

	return a, nil
}

func (a *app) close() {
	for _, closeFn := range a.closers {
		if err := closeFn(); err != nil {
			a.logger.Warn("Shutdown cleanup failed", "error", err)
		}
	}
}

func (a *app) serve(ctx context.Context) error {
	if a.cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(utils.LoggerMiddleware(a.logger), gin.Recovery())

	hm := handlers.NewHandlerManager(
		a.repo,
		a.services.transcripts,
		a.services.clearances,
		a.services.syncs,
		a.services.reports,
		a.logger,
	)
	hm.SetupRoutes(router)

	var scheduler *cron.Cron
	if a.cfg.Sync.Cron != "" {
		scheduler = cron.New()
		_, err := scheduler.AddFunc(a.cfg.Sync.Cron, func() {
			a.scheduledSync(context.Background())
		})
		if err != nil {
			return fmt.Errorf("invalid sync cron spec %q: %w", a.cfg.Sync.Cron, err)
		}
		scheduler.Start()
		a.logger.Info("Scheduled sync enabled", "cron", a.cfg.Sync.Cron)
	}

	server := &http.Server{
		Addr:    ":" + a.cfg.Port,
		Handler: router,
	}

	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("Registry service listening", "port", a.cfg.Port)
		errCh <- server.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	a.logger.Info("Shutting down")
	if scheduler != nil {
		<-scheduler.Stop().Done()
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}

// scheduledSync refreshes every mirrored student on the cron schedule.
func (a *app) scheduledSync(ctx context.Context) {
	students, _, err := a.repo.Students().List(ctx, repositories.StudentFilters{})
	if err != nil {
		a.logger.Error("Scheduled sync: failed to list students", "error", err)
		return
	}

	nos := make([]string, 0, len(students))
	for _, s := range students {
		nos = append(nos, s.StudentNo)
	}
	if len(nos) == 0 {
		return
	}

	if _, err := a.services.syncs.SyncStudents(ctx, nos); err != nil {
		a.logger.Error("Scheduled sync failed", "error", err)
	}
}

func (a *app) runSync(ctx context.Context, studentNos []string) error {
	if len(studentNos) == 0 {
		return fmt.Errorf("sync requires at least one student number")
	}
	job, err := a.services.syncs.SyncStudents(ctx, studentNos)
	if err != nil {
		return err
	}
	fmt.Printf("sync job %d: %s (%d synced, %d failed)\n",
		job.ID, job.Status, job.SyncedStudents, job.FailedStudents)
	return nil
}

func (a *app) runStructure(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("structure requires exactly one structure code")
	}
	return a.services.syncs.SyncStructure(ctx, args[0])
}

func (a *app) runClearance(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("clearance requires exactly one student number")
	}
	decision, err := a.services.clearances.Evaluate(ctx, args[0])
	if err != nil {
		return err
	}
	return printJSON(decision)
}

func (a *app) runTranscript(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("transcript requires exactly one student number")
	}
	summary, err := a.services.transcripts.AcademicSummary(ctx, args[0])
	if err != nil {
		return err
	}
	return printJSON(summary)
}

func (a *app) runExport(ctx context.Context, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("export requires a destination file")
	}
	data, err := a.services.reports.ClearanceRoster(ctx, repositories.ClearanceFilters{})
	if err != nil {
		return err
	}
	if err := os.WriteFile(args[0], data, 0o644); err != nil {
		return err
	}
	fmt.Printf("wrote %s (%d bytes)\n", args[0], len(data))
	return nil
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

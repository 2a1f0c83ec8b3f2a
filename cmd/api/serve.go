package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	appointmentHandler "github.com/jwalitptl/hospital-api/internal/handler/appointment"
	authHandler "github.com/jwalitptl/hospital-api/internal/handler/auth"
	doctorHandler "github.com/jwalitptl/hospital-api/internal/handler/doctor"
	"github.com/jwalitptl/hospital-api/internal/handler/health"
	medicalHandler "github.com/jwalitptl/hospital-api/internal/handler/medical"
	patientHandler "github.com/jwalitptl/hospital-api/internal/handler/patient"
	reviewHandler "github.com/jwalitptl/hospital-api/internal/handler/review"
	specialtyHandler "github.com/jwalitptl/hospital-api/internal/handler/specialty"
	timeslotHandler "github.com/jwalitptl/hospital-api/internal/handler/timeslot"
	userHandler "github.com/jwalitptl/hospital-api/internal/handler/user"
	"github.com/jwalitptl/hospital-api/internal/middleware"
	"github.com/jwalitptl/hospital-api/internal/repository/postgres"
	"github.com/jwalitptl/hospital-api/internal/router"
	"github.com/jwalitptl/hospital-api/internal/service/appointment"
	authService "github.com/jwalitptl/hospital-api/internal/service/auth"
	"github.com/jwalitptl/hospital-api/internal/service/doctor"
	"github.com/jwalitptl/hospital-api/internal/service/medical"
	"github.com/jwalitptl/hospital-api/internal/service/patient"
	"github.com/jwalitptl/hospital-api/internal/service/rbac"
	"github.com/jwalitptl/hospital-api/internal/service/review"
	"github.com/jwalitptl/hospital-api/internal/service/specialty"
	"github.com/jwalitptl/hospital-api/internal/service/timeslot"
	"github.com/jwalitptl/hospital-api/internal/service/user"
	"github.com/jwalitptl/hospital-api/pkg/auth"
	"github.com/jwalitptl/hospital-api/pkg/messaging/redis"
	"github.com/jwalitptl/hospital-api/pkg/metrics"
	"github.com/jwalitptl/hospital-api/pkg/security"
	"github.com/jwalitptl/hospital-api/pkg/storage"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context())
		},
	}
}

func runServer(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer a.Close()
	cfg := a.cfg

	base := postgres.NewBaseRepository(a.db)
	users := postgres.NewUserRepository(base)
	specialties := postgres.NewSpecialtyRepository(base)
	doctors := postgres.NewDoctorRepository(base)
	patients := postgres.NewPatientRepository(base)
	appointments := postgres.NewAppointmentRepository(base)
	reviews := postgres.NewReviewRepository(base)
	slots := postgres.NewTimeSlotRepository(base)
	records := postgres.NewMedicalRecordRepository(base)

	revoked := auth.NewMemoryRevocationStore()
	if cfg.Redis.URL != "" {
		client, err := redis.NewClient(ctx, cfg.Redis.ToBrokerConfig())
		if err != nil {
			return err
		}
		defer client.Close()
		revoked = auth.NewRedisRevocationStore(client)
	} else {
		log.Warn().Msg("Redis not configured, revoked tokens are kept in memory")
	}

	media, err := storage.NewLocalStore(cfg.Storage.MediaDir, cfg.Storage.MediaURL, cfg.Storage.MaxFileBytes)
	if err != nil {
		return err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	apiMetrics := metrics.NewAPIMetrics("hospital", reg)

	jwt := auth.NewJWTService(cfg.JWT.ToAuthConfig())
	hasher := security.NewBcryptHasher(cfg.Security.BcryptCost)
	access := rbac.NewService(doctors, patients, a.logger)

	specialtySvc := specialty.NewService(specialties, access, a.logger)
	authSvc := authService.NewService(users, jwt, revoked, hasher, media, specialtySvc, a.logger)
	userSvc := user.NewService(users, access, hasher, media, a.logger)
	doctorSvc := doctor.NewService(doctors, slots, reviews, appointments, access, a.logger)
	patientSvc := patient.NewService(patients, appointments, records, access, a.logger)
	appointmentSvc := appointment.NewService(appointments, doctors, patients, access,
		appointment.Config{PublicFeed: cfg.Features.PublicAppointmentFeed}, a.logger)
	reviewSvc := review.NewService(reviews, appointments, access, apiMetrics, a.logger)
	timeslotSvc := timeslot.NewService(slots, doctors, access, a.logger)
	medicalSvc := medical.NewService(records, patients, appointments, access, a.logger)

	r := router.NewRouter(router.Config{
		Mode:             cfg.Server.Mode,
		RequestTimeout:   cfg.Server.RequestTimeout,
		MaxBodyBytes:     cfg.Server.MaxBodyBytes,
		MaxUploadBytes:   cfg.Storage.MaxFileBytes,
		RateLimitEnabled: cfg.RateLimit.Enabled,
		RateLimit:        rate.Limit(cfg.RateLimit.RequestsPerSecond),
		RateBurst:        cfg.RateLimit.Burst,
		CORS: middleware.CORSConfig{
			AllowOrigins:  cfg.CORS.AllowedOrigins,
			AllowMethods:  cfg.CORS.AllowedMethods,
			AllowHeaders:  cfg.CORS.AllowedHeaders,
			ExposeHeaders: []string{middleware.HeaderXRequestID},
			MaxAge:        cfg.CORS.MaxAge,
		},
		MediaDir: cfg.Storage.MediaDir,
		MediaURL: cfg.Storage.MediaURL,
	},
		middleware.NewAuthMiddleware(authSvc),
		health.NewHandler(a.db),
		apiMetrics,
		reg,
		authHandler.NewHandler(authSvc),
		userHandler.NewHandler(userSvc),
		specialtyHandler.NewHandler(specialtySvc),
		doctorHandler.NewHandler(doctorSvc),
		patientHandler.NewHandler(patientSvc),
		appointmentHandler.NewHandler(appointmentSvc),
		reviewHandler.NewHandler(reviewSvc),
		timeslotHandler.NewHandler(timeslotSvc),
		medicalHandler.NewHandler(medicalSvc),
	)
	r.Setup()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      r,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Int("port", cfg.Server.Port).Msg("Starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}
	log.Info().Msg("Server exited")
	return nil
}

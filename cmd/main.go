package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gorilla/mux"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	assignInstructorHandler "github.com/m04kA/GMS-ScheduleService/internal/api/handlers/assign_instructor"
	bookClassHandler "github.com/m04kA/GMS-ScheduleService/internal/api/handlers/book_class"
	bookEvaluationHandler "github.com/m04kA/GMS-ScheduleService/internal/api/handlers/book_evaluation"
	cancelEvaluationHandler "github.com/m04kA/GMS-ScheduleService/internal/api/handlers/cancel_evaluation"
	cancelReservationHandler "github.com/m04kA/GMS-ScheduleService/internal/api/handlers/cancel_reservation"
	createSessionHandler "github.com/m04kA/GMS-ScheduleService/internal/api/handlers/create_session"
	createTemplateHandler "github.com/m04kA/GMS-ScheduleService/internal/api/handlers/create_template"
	deactivateSessionHandler "github.com/m04kA/GMS-ScheduleService/internal/api/handlers/deactivate_session"
	deactivateTemplateHandler "github.com/m04kA/GMS-ScheduleService/internal/api/handlers/deactivate_template"
	getActiveEvaluationHandler "github.com/m04kA/GMS-ScheduleService/internal/api/handlers/get_active_evaluation"
	getAvailableSessionsHandler "github.com/m04kA/GMS-ScheduleService/internal/api/handlers/get_available_sessions"
	getMemberReservationsHandler "github.com/m04kA/GMS-ScheduleService/internal/api/handlers/get_member_reservations"
	getTemplatesHandler "github.com/m04kA/GMS-ScheduleService/internal/api/handlers/get_templates"
	markAttendanceHandler "github.com/m04kA/GMS-ScheduleService/internal/api/handlers/mark_attendance"
	markEvaluationAttendanceHandler "github.com/m04kA/GMS-ScheduleService/internal/api/handlers/mark_evaluation_attendance"
	swapTemplatesHandler "github.com/m04kA/GMS-ScheduleService/internal/api/handlers/swap_templates"
	updateTemplateHandler "github.com/m04kA/GMS-ScheduleService/internal/api/handlers/update_template"
	"github.com/m04kA/GMS-ScheduleService/internal/api/middleware"
	"github.com/m04kA/GMS-ScheduleService/internal/config"
	evaluationRepo "github.com/m04kA/GMS-ScheduleService/internal/infra/storage/evaluation"
	reservationRepo "github.com/m04kA/GMS-ScheduleService/internal/infra/storage/reservation"
	sessionRepo "github.com/m04kA/GMS-ScheduleService/internal/infra/storage/session"
	templateRepo "github.com/m04kA/GMS-ScheduleService/internal/infra/storage/template"
	memberServiceClient "github.com/m04kA/GMS-ScheduleService/internal/integrations/memberservice"
	staffServiceClient "github.com/m04kA/GMS-ScheduleService/internal/integrations/staffservice"
	attendanceService "github.com/m04kA/GMS-ScheduleService/internal/service/attendance"
	evaluationsService "github.com/m04kA/GMS-ScheduleService/internal/service/evaluations"
	reservationsService "github.com/m04kA/GMS-ScheduleService/internal/service/reservations"
	sessionsService "github.com/m04kA/GMS-ScheduleService/internal/service/sessions"
	templatesService "github.com/m04kA/GMS-ScheduleService/internal/service/templates"
	bookClassUC "github.com/m04kA/GMS-ScheduleService/internal/usecase/book_class"
	bookEvaluationUC "github.com/m04kA/GMS-ScheduleService/internal/usecase/book_evaluation"
	swapTemplatesUC "github.com/m04kA/GMS-ScheduleService/internal/usecase/swap_templates"
	"github.com/m04kA/GMS-ScheduleService/pkg/dbmetrics"
	"github.com/m04kA/GMS-ScheduleService/pkg/logger"
	"github.com/m04kA/GMS-ScheduleService/pkg/metrics"
	"github.com/m04kA/GMS-ScheduleService/pkg/simpletxmanager"
	"github.com/m04kA/GMS-ScheduleService/pkg/txmanager"
)

// realClock источник текущего времени для production-окружения
type realClock struct{}

func (realClock) Now() time.Time {
	return time.Now()
}

func main() {
	// Загружаем конфигурацию
	cfg, err := config.Load("config.toml")
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Инициализируем логгер
	log, err := logger.New(cfg.Logs.File, cfg.Logs.Level)
	if err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Close()

	log.Info("Starting GMS-ScheduleService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
	var wrappedDB *dbmetrics.DB
	stopMetricsCh := make(chan struct{})

	if cfg.Metrics.Enabled {
		metricsCollector = metrics.New(cfg.Metrics.ServiceName)
		log.Info("Metrics enabled at %s", cfg.Metrics.Path)
	}

	// Подключаемся к базе данных
	db, err := sql.Open("postgres", cfg.Database.DSN())
	if err != nil {
		log.Fatal("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Настраиваем connection pool
	db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdleConns)
	db.SetConnMaxLifetime(time.Duration(cfg.Database.ConnMaxLifetime) * time.Second)

	// Проверяем соединение
	if err := db.Ping(); err != nil {
		log.Fatal("Failed to ping database: %v", err)
	}
	log.Info("Successfully connected to database (host=%s, port=%d, db=%s)",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.DBName)

	// Инициализируем интеграционных клиентов
	memberClient := memberServiceClient.NewClient(
		cfg.MemberService.URL,
		time.Duration(cfg.MemberService.Timeout)*time.Second,
		log,
	)
	staffClient := staffServiceClient.NewClient(
		cfg.StaffService.URL,
		time.Duration(cfg.StaffService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration clients initialized (MemberService=%s timeout=%ds, StaffService=%s timeout=%ds)",
		cfg.MemberService.URL, cfg.MemberService.Timeout, cfg.StaffService.URL, cfg.StaffService.Timeout)

	// Инициализируем репозитории (с метриками или без)
	var (
		templateRepository    *templateRepo.Repository
		sessionRepository     *sessionRepo.Repository
		reservationRepository *reservationRepo.Repository
		evaluationRepository  *evaluationRepo.Repository
	)

	// Интерфейс для transaction manager (используется в сервисах и usecases)
	// TODO: Точно нужно переделать эту шл
	type TxManager interface {
		Do(ctx context.Context, fn func(ctx context.Context) error) error
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		// Инициализируем репозитории с обёрткой метрик
		templateRepository = templateRepo.NewRepository(wrappedDB)
		sessionRepository = sessionRepo.NewRepository(wrappedDB)
		reservationRepository = reservationRepo.NewRepository(wrappedDB)
		evaluationRepository = evaluationRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		// Инициализируем репозитории без метрик
		templateRepository = templateRepo.NewRepository(db)
		sessionRepository = sessionRepo.NewRepository(db)
		reservationRepository = reservationRepo.NewRepository(db)
		evaluationRepository = evaluationRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	clock := realClock{}

	// Инициализируем сервисы
	templateSvc := templatesService.NewService(
		templateRepository,
		staffClient,
		log,
	)
	sessionSvc := sessionsService.NewService(
		sessionRepository,
		templateRepository,
		cfg.Booking,
		clock,
		log,
	)
	reservationSvc := reservationsService.NewService(
		reservationRepository,
		log,
	)
	attendanceSvc := attendanceService.NewService(
		sessionRepository,
		reservationRepository,
		txMgr,
		cfg.Booking,
		clock,
		log,
	)
	evaluationSvc := evaluationsService.NewService(
		evaluationRepository,
		txMgr,
		clock,
		log,
	)

	// Инициализируем use cases
	bookClassUseCase := bookClassUC.NewUseCase(
		sessionRepository,
		reservationRepository,
		memberClient,
		txMgr,
		log,
	)
	bookEvaluationUseCase := bookEvaluationUC.NewUseCase(
		evaluationRepository,
		memberClient,
		txMgr,
		log,
	)
	swapTemplatesUseCase := swapTemplatesUC.NewUseCase(
		templateRepository,
		sessionRepository,
		txMgr,
		log,
	)

	// Инициализируем handlers
	createTemplate := createTemplateHandler.NewHandler(templateSvc, log)
	updateTemplate := updateTemplateHandler.NewHandler(templateSvc, log)
	deactivateTemplate := deactivateTemplateHandler.NewHandler(templateSvc, log)
	assignInstructor := assignInstructorHandler.NewHandler(templateSvc, log)
	getTemplates := getTemplatesHandler.NewHandler(templateSvc, log)
	swapTemplates := swapTemplatesHandler.NewHandler(swapTemplatesUseCase, log)
	createSession := createSessionHandler.NewHandler(sessionSvc, log)
	deactivateSession := deactivateSessionHandler.NewHandler(sessionSvc, log)
	getAvailableSessions := getAvailableSessionsHandler.NewHandler(sessionSvc, log)
	bookClass := bookClassHandler.NewHandler(bookClassUseCase, log)
	cancelReservation := cancelReservationHandler.NewHandler(reservationSvc, log)
	getMemberReservations := getMemberReservationsHandler.NewHandler(reservationSvc, log)
	markAttendance := markAttendanceHandler.NewHandler(attendanceSvc, log)
	bookEvaluation := bookEvaluationHandler.NewHandler(bookEvaluationUseCase, log)
	cancelEvaluation := cancelEvaluationHandler.NewHandler(evaluationSvc, log)
	getActiveEvaluation := getActiveEvaluationHandler.NewHandler(evaluationSvc, log)
	markEvaluationAttendance := markEvaluationAttendanceHandler.NewHandler(evaluationSvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector, cfg.Metrics.ServiceName))
		log.Info("HTTP metrics middleware enabled")
	}

	// Metrics endpoint (публичный, без аутентификации)
	if cfg.Metrics.Enabled {
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (без аутентификации)
	// ============================================================

	// Доступные сессии со свободными местами
	api.HandleFunc("/sessions/available", getAvailableSessions.Handle).Methods(http.MethodGet)

	// ============================================================
	// PROTECTED ROUTES (требуют X-User-ID header)
	// ============================================================

	protected := api.PathPrefix("").Subrouter()
	protected.Use(middleware.Auth)

	// --- Шаблоны расписания (для администраторов) ---
	// Создание шаблона
	protected.HandleFunc("/templates", createTemplate.Handle).Methods(http.MethodPost)

	// Список шаблонов
	protected.HandleFunc("/templates", getTemplates.Handle).Methods(http.MethodGet)

	// Обмен расписаний двух шаблонов
	protected.HandleFunc("/templates/swap", swapTemplates.Handle).Methods(http.MethodPost)

	// Обновление шаблона
	protected.HandleFunc("/templates/{templateId}", updateTemplate.Handle).Methods(http.MethodPut)

	// Деактивация шаблона
	protected.HandleFunc("/templates/{templateId}/deactivate", deactivateTemplate.Handle).Methods(http.MethodPatch)

	// Назначение инструктора
	protected.HandleFunc("/templates/{templateId}/instructor", assignInstructor.Handle).Methods(http.MethodPatch)

	// --- Сессии занятий ---
	// Создание сессии по шаблону
	protected.HandleFunc("/sessions", createSession.Handle).Methods(http.MethodPost)

	// Деактивация сессии
	protected.HandleFunc("/sessions/{sessionId}/deactivate", deactivateSession.Handle).Methods(http.MethodPatch)

	// Отметка посещаемости сессии
	protected.HandleFunc("/sessions/{sessionId}/attendance", markAttendance.Handle).Methods(http.MethodPost)

	// --- Бронирования ---
	// Бронирование места на сессии
	protected.HandleFunc("/reservations", bookClass.Handle).Methods(http.MethodPost)

	// Отмена бронирования
	protected.HandleFunc("/reservations/cancel", cancelReservation.Handle).Methods(http.MethodPatch)

	// История бронирований участника
	protected.HandleFunc("/members/{memberId}/reservations", getMemberReservations.Handle).Methods(http.MethodGet)

	// --- Записи на физическую оценку ---
	// Запись на оценку
	protected.HandleFunc("/evaluations", bookEvaluation.Handle).Methods(http.MethodPost)

	// Отмена записи на оценку
	protected.HandleFunc("/evaluations/cancel", cancelEvaluation.Handle).Methods(http.MethodPatch)

	// Закрытие записи на оценку (Presente/Faltou)
	protected.HandleFunc("/evaluations/{evaluationId}/attendance", markEvaluationAttendance.Handle).Methods(http.MethodPost)

	// Активная запись участника на оценку
	protected.HandleFunc("/members/{memberId}/evaluations/active", getActiveEvaluation.Handle).Methods(http.MethodGet)

	// Создаем HTTP сервер
	addr := fmt.Sprintf(":%d", cfg.Server.HTTPPort)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	// Graceful shutdown
	go func() {
		log.Info("Starting server on %s", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal("Server failed to start: %v", err)
		}
	}()

	// Ожидаем сигнал завершения
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	// Останавливаем сбор метрик connection pool
	if cfg.Metrics.Enabled {
		close(stopMetricsCh)
		log.Info("Metrics collection stopped")
	}

	shutdownCtx, cancel := context.WithTimeout(
		context.Background(),
		time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
	)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown: %v", err)
	}

	log.Info("Server stopped gracefully")
}

package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/aidar/circles/internal/config"
	"github.com/aidar/circles/internal/handler"
	"github.com/aidar/circles/internal/metrics"
	"github.com/aidar/circles/internal/middleware"
	"github.com/aidar/circles/internal/repository/postgres"
	"github.com/aidar/circles/internal/service"
)

// App представляет приложение со всеми зависимостями
type App struct {
	config  *config.Config
	db      *pgxpool.Pool
	server  *http.Server
	metrics *metrics.Metrics
	logger  *slog.Logger
}

// New создает новый экземпляр приложения
func New(cfg *config.Config) (*App, error) {
	// Инициализируем структурированный логгер (JSON формат)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	app := &App{
		config:  cfg,
		metrics: metrics.New(),
		logger:  logger,
	}

	return app, nil
}

// Initialize инициализирует все компоненты приложения
func (a *App) Initialize(ctx context.Context) error {
	// Подключаемся к базе данных
	if err := a.connectDB(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	// Настраиваем HTTP сервер и роутинг
	a.setupServer()

	a.logger.Info("Application initialized successfully")
	return nil
}

// connectDB устанавливает подключение к PostgreSQL с connection pool
func (a *App) connectDB(ctx context.Context) error {
	poolConfig, err := pgxpool.ParseConfig(a.config.Database.DSN())
	if err != nil {
		return fmt.Errorf("failed to parse database config: %w", err)
	}

	// Настраиваем размеры connection pool
	poolConfig.MaxConns = a.config.Database.MaxConns
	poolConfig.MinConns = a.config.Database.MinConns

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return fmt.Errorf("failed to create connection pool: %w", err)
	}

	// Проверяем подключение к БД
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return fmt.Errorf("failed to ping database: %w", err)
	}

	a.db = pool
	a.logger.Info("Connected to database")
	return nil
}

// setupServer инициализирует HTTP роутер и обработчики
func (a *App) setupServer() {
	// Слой репозиториев
	userRepo := postgres.NewUserRepository(a.db)
	circleRepo := postgres.NewCircleRepository(a.db)
	regRepo := postgres.NewRegistrationRepository(a.db)
	tagRepo := postgres.NewTagRepository(a.db)
	flagRepo := postgres.NewFlagRepository(a.db)

	// Слой сервисов
	authService := service.NewAuthService(
		userRepo,
		a.config.JWT.Secret,
		a.config.JWT.GetExpiration(),
	)
	circleService := service.NewCircleService(circleRepo)
	regService := service.NewRegistrationService(regRepo, a.metrics)
	tagService := service.NewTagService(tagRepo, circleRepo)
	flagService := service.NewFlagService(flagRepo)

	// HTTP обработчики
	authHandler := handler.NewAuthHandler(authService)
	circleHandler := handler.NewCircleHandler(circleService)
	regHandler := handler.NewRegistrationHandler(regService)
	tagHandler := handler.NewTagHandler(tagService)
	flagHandler := handler.NewFlagHandler(flagService)

	authMiddleware := middleware.AuthMiddleware(authService)

	r := chi.NewRouter()

	// Глобальные middleware (применяются ко всем запросам)
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Logger)
	r.Use(chimiddleware.Recoverer)
	r.Use(middleware.MetricsMiddleware(a.metrics))
	r.Use(chimiddleware.Timeout(a.config.Server.RequestTimeout))

	// Публичные эндпоинты
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", authHandler.SignUp)
		r.Post("/login", authHandler.Login)
	})

	// Health check для мониторинга
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte(`{"status":"ok"}`)); err != nil {
			a.logger.Error("Failed to write health check response", "error", err)
		}
	})
	r.Method(http.MethodGet, "/metrics", a.metrics.Handler())

	// Защищенные эндпоинты (требуют JWT токен в заголовке Authorization)
	r.Route("/circles", func(r chi.Router) {
		r.Use(authMiddleware)

		// Круги
		r.Get("/all", circleHandler.GetAll)
		r.Post("/get", circleHandler.Get)
		r.Get("/following", circleHandler.GetFollowing)
		r.Post("/user", circleHandler.GetByHost)
		r.Put("/add", circleHandler.Add)
		r.Patch("/edit", circleHandler.Edit)
		r.Delete("/delete", circleHandler.Delete)

		// Запись на круги
		r.Put("/register", regHandler.Register)
		r.Delete("/register", regHandler.Unregister)
		r.Post("/registrations", regHandler.GetRegistrations)
		r.Get("/registered", regHandler.GetRegistered)

		// Теги
		r.Post("/tags", tagHandler.GetByCircle)
		r.Get("/tags/all", tagHandler.GetAll)
		r.Put("/tags", tagHandler.Add)
		r.Delete("/tags", tagHandler.Remove)

		// Жалобы
		r.Put("/flags", flagHandler.Add)
		r.Post("/flags", flagHandler.GetByCircle)
		r.Delete("/flag", flagHandler.Withdraw)
		r.Get("/flags", flagHandler.GetFlagged)
		r.Delete("/flags", flagHandler.Clear)
	})

	// Создаем HTTP сервер с настройками таймаутов
	addr := fmt.Sprintf("%s:%s", a.config.Server.Host, a.config.Server.Port)
	a.server = &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	a.logger.Info("HTTP server configured", "addr", addr)
}

// Handler возвращает корневой HTTP обработчик (доступен после Initialize)
func (a *App) Handler() http.Handler {
	return a.server.Handler
}

// Run запускает HTTP сервер
func (a *App) Run() error {
	a.logger.Info("Starting HTTP server", "addr", a.server.Addr)
	return a.server.ListenAndServe()
}

// Shutdown корректно останавливает приложение
func (a *App) Shutdown(ctx context.Context) error {
	a.logger.Info("Shutting down application")

	// Останавливаем HTTP сервер (ждем завершения текущих запросов)
	if a.server != nil {
		if err := a.server.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}
	}

	// Закрываем подключения к базе данных
	if a.db != nil {
		a.db.Close()
	}

	a.logger.Info("Application stopped gracefully")
	return nil
}

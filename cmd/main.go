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
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	createOrderHandler "github.com/labiga/LaBiga-OrderService/internal/api/handlers/create_order"
	deleteCustomerHandler "github.com/labiga/LaBiga-OrderService/internal/api/handlers/delete_customer"
	deleteOrderHandler "github.com/labiga/LaBiga-OrderService/internal/api/handlers/delete_order"
	getAvailabilityHandler "github.com/labiga/LaBiga-OrderService/internal/api/handlers/get_availability"
	getCustomersHandler "github.com/labiga/LaBiga-OrderService/internal/api/handlers/get_customers"
	getInventoryHandler "github.com/labiga/LaBiga-OrderService/internal/api/handlers/get_inventory"
	getMenuHandler "github.com/labiga/LaBiga-OrderService/internal/api/handlers/get_menu"
	getOrderHandler "github.com/labiga/LaBiga-OrderService/internal/api/handlers/get_order"
	getOrdersHandler "github.com/labiga/LaBiga-OrderService/internal/api/handlers/get_orders"
	streamAvailabilityHandler "github.com/labiga/LaBiga-OrderService/internal/api/handlers/stream_availability"
	updateCustomerHandler "github.com/labiga/LaBiga-OrderService/internal/api/handlers/update_customer"
	updateOrderHandler "github.com/labiga/LaBiga-OrderService/internal/api/handlers/update_order"
	upsertInventoryHandler "github.com/labiga/LaBiga-OrderService/internal/api/handlers/upsert_inventory"
	"github.com/labiga/LaBiga-OrderService/internal/api/middleware"
	"github.com/labiga/LaBiga-OrderService/internal/config"
	"github.com/labiga/LaBiga-OrderService/internal/infra/notify"
	customerRepo "github.com/labiga/LaBiga-OrderService/internal/infra/storage/customer"
	inventoryRepo "github.com/labiga/LaBiga-OrderService/internal/infra/storage/inventory"
	orderRepo "github.com/labiga/LaBiga-OrderService/internal/infra/storage/order"
	availabilityService "github.com/labiga/LaBiga-OrderService/internal/service/availability"
	customersService "github.com/labiga/LaBiga-OrderService/internal/service/customers"
	inventoryService "github.com/labiga/LaBiga-OrderService/internal/service/inventory"
	ordersService "github.com/labiga/LaBiga-OrderService/internal/service/orders"
	"github.com/labiga/LaBiga-OrderService/internal/service/stockledger"
	createOrderUC "github.com/labiga/LaBiga-OrderService/internal/usecase/create_order"
	"github.com/labiga/LaBiga-OrderService/pkg/dbmetrics"
	"github.com/labiga/LaBiga-OrderService/pkg/logger"
	"github.com/labiga/LaBiga-OrderService/pkg/metrics"
	"github.com/labiga/LaBiga-OrderService/pkg/simpletxmanager"
	"github.com/labiga/LaBiga-OrderService/pkg/txmanager"
)

func main() {
	// Загружаем .env (секреты), отсутствие файла - не ошибка
	_ = godotenv.Load()

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

	log.Info("Starting LaBiga-OrderService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены)
	var metricsCollector *metrics.Metrics
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

	// Подключаемся к Redis (только для rate limiter'а)
	var redisClient *redis.Client
	if cfg.RateLimit.Enabled {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		defer redisClient.Close()

		if err := redisClient.Ping(context.Background()).Err(); err != nil {
			// Недоступный Redis не блокирует старт: лимитер пропускает запросы
			log.Warn("Failed to ping Redis, rate limiter will pass requests through: %v", err)
		} else {
			log.Info("Successfully connected to Redis (%s)", cfg.Redis.Addr)
		}
	}

	// Инициализируем репозитории (с метриками или без)
	var (
		orderRepository     *orderRepo.Repository
		inventoryRepository *inventoryRepo.Repository
		customerRepository  *customerRepo.Repository
	)

	type TxManager interface {
		DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	}
	var txMgr TxManager

	if cfg.Metrics.Enabled {
		wrappedDB := dbmetrics.WrapWithDefault(db, metricsCollector, cfg.Metrics.ServiceName, stopMetricsCh)
		log.Info("Database metrics collection started")

		orderRepository = orderRepo.NewRepository(wrappedDB, cfg.Realtime.Channel)
		inventoryRepository = inventoryRepo.NewRepository(wrappedDB)
		customerRepository = customerRepo.NewRepository(wrappedDB)
		txMgr = txmanager.NewTransactionManager(wrappedDB)
	} else {
		orderRepository = orderRepo.NewRepository(db, cfg.Realtime.Channel)
		inventoryRepository = inventoryRepo.NewRepository(db)
		customerRepository = customerRepo.NewRepository(db)
		txMgr = simpletxmanager.NewTransactionManager(db)
	}

	// Контекст фоновых компонентов, отменяется при shutdown
	bgCtx, bgCancel := context.WithCancel(context.Background())
	defer bgCancel()

	// Подписываемся на realtime-ленту новых заказов (LISTEN/NOTIFY)
	orderFeed, err := notify.NewOrderFeed(
		cfg.Database.DSN(),
		cfg.Realtime.Channel,
		time.Duration(cfg.Realtime.MinReconnectInterval)*time.Second,
		time.Duration(cfg.Realtime.MaxReconnectInterval)*time.Second,
		log,
	)
	if err != nil {
		log.Fatal("Failed to subscribe to order feed: %v", err)
	}
	defer orderFeed.Close()
	log.Info("Subscribed to realtime order feed (channel=%s)", cfg.Realtime.Channel)

	// nil-интерфейсы вместо типизированного nil указателя
	var ledgerMetrics stockledger.MetricsRecorder
	var engineMetrics availabilityService.MetricsRecorder
	if cfg.Metrics.Enabled {
		ledgerMetrics = metricsCollector
		engineMetrics = metricsCollector
	}

	// Stock Ledger: baseline из БД + инкременты по событиям
	ledger := stockledger.NewLedger(
		orderRepository,
		inventoryRepository,
		orderFeed,
		&stockledger.RealTimeProvider{},
		ledgerMetrics,
		log,
	)
	ledger.Initialize(bgCtx)
	go ledger.Run(bgCtx)

	// Движок доступности: таймер + реактивный пересчет
	engine := availabilityService.NewEngine(
		ledger,
		&availabilityService.RealTimeProvider{},
		time.Duration(cfg.Realtime.RefreshInterval)*time.Second,
		engineMetrics,
		log,
	)
	go engine.Run(bgCtx)
	log.Info("Availability engine started (refresh every %ds)", cfg.Realtime.RefreshInterval)

	// Инициализируем сервисы
	ordersSvc := ordersService.NewService(orderRepository, log)
	customersSvc := customersService.NewService(customerRepository, orderRepository, log)
	inventorySvc := inventoryService.NewService(inventoryRepository, log)

	// Инициализируем use cases
	createOrderUseCase := createOrderUC.NewUseCase(
		orderRepository,
		customerRepository,
		txMgr,
		log,
	)

	// Инициализируем handlers
	getAvailability := getAvailabilityHandler.NewHandler(engine, log)
	streamAvailability := streamAvailabilityHandler.NewHandler(engine, log)
	getMenu := getMenuHandler.NewHandler()
	createOrder := createOrderHandler.NewHandler(createOrderUseCase, log)
	getOrders := getOrdersHandler.NewHandler(ordersSvc, log)
	getOrder := getOrderHandler.NewHandler(ordersSvc, log)
	updateOrder := updateOrderHandler.NewHandler(ordersSvc, log)
	deleteOrder := deleteOrderHandler.NewHandler(ordersSvc, log)
	getCustomers := getCustomersHandler.NewHandler(customersSvc, log)
	updateCustomer := updateCustomerHandler.NewHandler(customersSvc, log)
	deleteCustomer := deleteCustomerHandler.NewHandler(customersSvc, log)
	getInventory := getInventoryHandler.NewHandler(inventorySvc, log)
	upsertInventory := upsertInventoryHandler.NewHandler(inventorySvc, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Добавляем metrics middleware (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.Metrics(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1").Subrouter()

	// ============================================================
	// PUBLIC ROUTES (витрина, с rate limit'ом)
	// ============================================================

	public := api.PathPrefix("").Subrouter()
	public.Use(middleware.RateLimit(cfg.RateLimit, redisClient, log))

	// Текущее состояние магазина
	public.HandleFunc("/availability", getAvailability.Handle).Methods(http.MethodGet)

	// SSE поток смен состояния
	public.HandleFunc("/availability/stream", streamAvailability.Handle).Methods(http.MethodGet)

	// Меню
	public.HandleFunc("/menu", getMenu.Handle).Methods(http.MethodGet)

	// Оформление заказа
	public.HandleFunc("/orders", createOrder.Handle).Methods(http.MethodPost)

	// ============================================================
	// ADMIN ROUTES (требуют X-Admin-Pin header)
	// ============================================================

	admin := api.PathPrefix("/admin").Subrouter()
	// Лимитер стоит перед проверкой PIN: перебор PIN тоже троттлится
	admin.Use(middleware.RateLimit(cfg.RateLimit, redisClient, log))
	admin.Use(middleware.AdminAuth(cfg.Admin.Pin, log))

	// --- Заказы ---
	admin.HandleFunc("/orders", getOrders.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/orders/{orderId}", getOrder.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/orders/{orderId}", updateOrder.Handle).Methods(http.MethodPatch)
	admin.HandleFunc("/orders/{orderId}", deleteOrder.Handle).Methods(http.MethodDelete)

	// --- Клиенты (CRM) ---
	admin.HandleFunc("/customers", getCustomers.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/customers/{customerId}", updateCustomer.Handle).Methods(http.MethodPut)
	admin.HandleFunc("/customers/{customerId}", deleteCustomer.Handle).Methods(http.MethodDelete)

	// --- Дневные лимиты теста ---
	admin.HandleFunc("/inventory/{date}", getInventory.Handle).Methods(http.MethodGet)
	admin.HandleFunc("/inventory/{date}", upsertInventory.Handle).Methods(http.MethodPut)

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

	// Останавливаем фоновые компоненты (ledger, engine)
	bgCancel()

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

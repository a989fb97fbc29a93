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

	createReservationHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/create_reservation"
	getProductHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/get_product"
	getReservationHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/get_reservation"
	getStoreReservationsHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/get_store_reservations"
	quoteReservationHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/quote_reservation"
	updateProductInventoryHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/update_product_inventory"
	updateReservationStatusHandler "github.com/m04kA/SMC-RentalService/internal/api/handlers/update_reservation_status"
	"github.com/m04kA/SMC-RentalService/internal/api/middleware"
	"github.com/m04kA/SMC-RentalService/internal/config"
	productCache "github.com/m04kA/SMC-RentalService/internal/infra/cache/product"
	"github.com/m04kA/SMC-RentalService/internal/infra/events"
	productRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/product"
	reservationRepo "github.com/m04kA/SMC-RentalService/internal/infra/storage/reservation"
	storeServiceClient "github.com/m04kA/SMC-RentalService/internal/integrations/storeservice"
	productsService "github.com/m04kA/SMC-RentalService/internal/service/products"
	reservationsService "github.com/m04kA/SMC-RentalService/internal/service/reservations"
	createReservationUC "github.com/m04kA/SMC-RentalService/internal/usecase/create_reservation"
	quoteReservationUC "github.com/m04kA/SMC-RentalService/internal/usecase/quote_reservation"
	updateProductUC "github.com/m04kA/SMC-RentalService/internal/usecase/update_product"
	"github.com/m04kA/SMC-RentalService/pkg/dbmetrics"
	"github.com/m04kA/SMC-RentalService/pkg/logger"
	"github.com/m04kA/SMC-RentalService/pkg/metrics"
	"github.com/m04kA/SMC-RentalService/pkg/txmanager"
)

// eventPublisher общий интерфейс Kafka и no-op публикаторов
type eventPublisher interface {
	Publish(ctx context.Context, eventType, key string, payload interface{}) error
}

// productCacheStore общий интерфейс Redis и no-op кеша товаров
type productCacheStore interface {
	productsService.ProductCache
	updateProductUC.ProductCache
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

	log.Info("Starting SMC-RentalService...")
	log.Info("Configuration loaded from config.toml")

	// Инициализируем метрики (если включены); все методы nil-safe
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

	var wrappedDB *dbmetrics.DB
	if cfg.Metrics.Enabled {
		wrappedDB = dbmetrics.WrapWithDefault(db, metricsCollector, stopMetricsCh)
		log.Info("Database metrics collection started")
	} else {
		wrappedDB = dbmetrics.Wrap(db, nil)
	}

	txMgr := txmanager.NewTransactionManager(wrappedDB, txmanager.WithMaxAttempts(cfg.Engine.TxMaxAttempts))

	// Репозитории
	productRepository := productRepo.NewRepository(wrappedDB)
	reservationRepository := reservationRepo.NewRepository(wrappedDB)

	// Кеш товаров
	var cache productCacheStore = productCache.Nop{}
	if cfg.Redis.Enabled {
		rdb := productCache.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		defer rdb.Close()

		pingCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		if err := rdb.Ping(pingCtx).Err(); err != nil {
			// Сервис работает и без кеша, чтение идет напрямую в БД
			log.Warn("Redis is unavailable at %s, product cache disabled: %v", cfg.Redis.Addr, err)
		} else {
			cache = productCache.NewCache(rdb, time.Duration(cfg.Redis.ProductTTL)*time.Second)
			log.Info("Product cache enabled (redis=%s, ttl=%ds)", cfg.Redis.Addr, cfg.Redis.ProductTTL)
		}
		cancel()
	}

	// Публикация событий
	var publisher eventPublisher = events.Nop{}
	if cfg.Kafka.Enabled {
		kafkaPublisher := events.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.Topic, cfg.Kafka.ClientID)
		defer func() {
			if err := kafkaPublisher.Close(); err != nil {
				log.Error("Failed to close kafka publisher: %v", err)
			}
		}()
		publisher = kafkaPublisher
		log.Info("Kafka publisher enabled (brokers=%v, topic=%s)", cfg.Kafka.Brokers, cfg.Kafka.Topic)
	}

	// Интеграционный клиент
	storeClient := storeServiceClient.NewClient(
		cfg.StoreService.URL,
		time.Duration(cfg.StoreService.Timeout)*time.Second,
		log,
	)
	log.Info("Integration client initialized (StoreService=%s timeout=%ds)",
		cfg.StoreService.URL, cfg.StoreService.Timeout)

	// Инициализируем сервисы
	productSvc := productsService.NewService(
		productRepository,
		cache,
		metricsCollector,
		log,
	)
	reservationSvc := reservationsService.NewService(
		reservationRepository,
		txMgr,
		log,
	)

	// Инициализируем use cases
	quoteReservationUseCase := quoteReservationUC.NewUseCase(
		storeClient,
		productSvc,
		reservationRepository,
		txMgr,
		metricsCollector,
		log,
	)

	createReservationUseCase := createReservationUC.NewUseCase(
		reservationRepository,
		productRepository,
		storeClient,
		publisher,
		txMgr,
		metricsCollector,
		cfg.Engine.ReservationNumberPrefix,
		log,
	)

	updateProductUseCase := updateProductUC.NewUseCase(
		productRepository,
		reservationRepository,
		cache,
		publisher,
		txMgr,
		metricsCollector,
		log,
	)

	// Инициализируем handlers
	quoteReservation := quoteReservationHandler.NewHandler(quoteReservationUseCase, log)
	createReservation := createReservationHandler.NewHandler(createReservationUseCase, log)
	getStoreReservations := getStoreReservationsHandler.NewHandler(reservationSvc, log)
	getReservation := getReservationHandler.NewHandler(reservationSvc, log)
	updateReservationStatus := updateReservationStatusHandler.NewHandler(reservationSvc, log)
	getProduct := getProductHandler.NewHandler(productSvc, log)
	updateProductInventory := updateProductInventoryHandler.NewHandler(updateProductUseCase, log)

	// Настраиваем роутер
	r := mux.NewRouter()

	// Metrics middleware и endpoint (если метрики включены)
	if cfg.Metrics.Enabled {
		r.Use(middleware.MetricsMiddleware(metricsCollector))
		r.Handle(cfg.Metrics.Path, promhttp.Handler()).Methods(http.MethodGet)
		log.Info("Prometheus metrics endpoint exposed at %s", cfg.Metrics.Path)
	}

	// API prefix
	api := r.PathPrefix("/api/v1/stores/{storeId}").Subrouter()

	// --- Бронирования ---
	// Расчет черновика без сохранения
	api.HandleFunc("/reservations/quote", quoteReservation.Handle).Methods(http.MethodPost)

	// Создание бронирования
	api.HandleFunc("/reservations", createReservation.Handle).Methods(http.MethodPost)

	// Список бронирований магазина
	api.HandleFunc("/reservations", getStoreReservations.Handle).Methods(http.MethodGet)

	// Получение бронирования по ID
	api.HandleFunc("/reservations/{reservationId}", getReservation.Handle).Methods(http.MethodGet)

	// Смена статуса
	api.HandleFunc("/reservations/{reservationId}/status", updateReservationStatus.Handle).Methods(http.MethodPatch)

	// --- Товары ---
	api.HandleFunc("/products/{productId}", getProduct.Handle).Methods(http.MethodGet)
	api.HandleFunc("/products/{productId}/inventory", updateProductInventory.Handle).Methods(http.MethodPut)

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
	close(stopMetricsCh)

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

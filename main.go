package main

import (
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"strconv"
	"time"

	"nestly_server/routes"
	"nestly_server/services"
	"nestly_server/socket"

	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/rs/cors"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Scores at or above this total trigger a top-match notification.
const defaultTopMatchThreshold = 90

func newLogger(levelStr, format string) *zap.Logger {
	level := zapcore.InfoLevel
	switch levelStr {
	case "debug":
		level = zapcore.DebugLevel
	case "warn":
		level = zapcore.WarnLevel
	case "error":
		level = zapcore.ErrorLevel
	}

	var cfg zap.Config
	if format == "json" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(level)
	logger, _ := cfg.Build()
	return logger
}

func main() {
	_ = godotenv.Load()

	logger := newLogger(os.Getenv("LOG_LEVEL"), os.Getenv("LOG_FORMAT"))
	defer logger.Sync()

	// Initialize DynamoDB client and service
	dynamoClient := services.InitializeDynamoDBClient()
	dynamoService := &services.DynamoService{Client: dynamoClient, Log: logger}
	logger.Info("DynamoDB client initialized")

	weights, err := services.LoadScoreWeights(os.Getenv("MATCH_WEIGHTS_FILE"))
	if err != nil {
		logger.Warn("using default score weights", zap.Error(err))
	}

	storeTimeout := services.DefaultStoreTimeout
	if raw := os.Getenv("STORE_TIMEOUT_SECONDS"); raw != "" {
		if seconds, err := strconv.Atoi(raw); err == nil && seconds > 0 {
			storeTimeout = time.Duration(seconds) * time.Second
		}
	}
	store := &services.MatchScoreStore{Dynamo: dynamoService, Timeout: storeTimeout}

	// The score cache is optional; without Redis, lookups hit the store.
	var cache *services.ScoreCache
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		cache = &services.ScoreCache{
			Client: services.NewRedisClient(addr, os.Getenv("REDIS_PASSWORD"), 0),
			TTL:    services.DefaultCacheTTL,
		}
		logger.Info("score cache enabled", zap.String("addr", addr))
	}

	// Initialize Services
	hub := socket.NewHub(logger)
	preferenceService := &services.PreferenceService{Dynamo: dynamoService, Log: logger}
	propertyService := &services.PropertyService{Dynamo: dynamoService, Log: logger}
	notificationService := &services.NotificationService{Dynamo: dynamoService, Hub: hub, Log: logger}
	scoreService := &services.MatchScoreService{
		Preferences: preferenceService,
		Properties:  propertyService,
		Store:       store,
		Cache:       cache,
		Weights:     weights,
		Log:         logger,
	}

	// Set up the server port
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Initialize the router
	r := mux.NewRouter()

	// Register a welcome route
	r.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintln(w, "Welcome to Nestly")
	}).Methods("GET")

	// Register a health check endpoint
	r.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		response := map[string]string{"status": "healthy"}
		json.NewEncoder(w).Encode(response)
	}).Methods("GET")

	// Register routes
	routes.RegisterMatchScoreRoutes(r, scoreService, notificationService, defaultTopMatchThreshold)
	routes.RegisterPreferenceRoutes(r, preferenceService, scoreService)
	routes.RegisterPropertyRoutes(r, propertyService)
	routes.RegisterNotificationRoutes(r, notificationService)

	// Realtime notifications
	r.Handle("/socket.io/", hub.Server)
	go func() {
		if err := hub.Server.Serve(); err != nil {
			logger.Error("socket server stopped", zap.Error(err))
		}
	}()
	defer hub.Server.Close()

	// Add CORS middleware
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"}, // Adjust for specific domains if needed
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		AllowCredentials: true,
	}).Handler(r)

	// Start the HTTP server
	logger.Info("starting server", zap.String("port", port))
	if err := http.ListenAndServe(":"+port, corsHandler); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}

package main

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/housing-pricer/app/config"
	"github.com/housing-pricer/app/controllers"
	"github.com/housing-pricer/app/services"
	"github.com/housing-pricer/internal/features"
	"github.com/housing-pricer/internal/textparse"
	"github.com/housing-pricer/routes"
	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

func main() {
	// 1. Load configuration
	loadConfig()

	// 2. Khởi tạo logger
	logger := initLogger()
	defer logger.Sync()

	logger.Info("Starting Housing Pricer Service")

	// 3. Load cấu hình pipeline (config.C)
	pricerPath := viper.GetString("pricer.config_path")
	if err := config.Load(pricerPath); err != nil {
		logger.Warn("Không đọc được pricer config, dùng default",
			zap.String("path", pricerPath), zap.Error(err))
		config.C = config.Default()
	}

	// 4. Load bảng tĩnh và khởi tạo pipeline
	tables, err := features.LoadTablesWithThreshold(config.C.FuzzyThreshold)
	if err != nil {
		logger.Fatal("Không load được feature tables", zap.Error(err))
	}
	pipeline := features.NewPipeline(tables, logger)

	// 5. Khởi tạo cache (LRU L1 + Redis L2 nếu cấu hình)
	l1Size := viper.GetInt("cache.l1_size")
	l1, err := services.NewMemoryCacheService(l1Size, logger)
	if err != nil {
		logger.Fatal("Không tạo được L1 cache", zap.Error(err))
	}

	var l2 services.ICacheService
	if redisURL := viper.GetString("redis.url"); redisURL != "" {
		redisCache, err := services.NewRedisCacheService(redisURL, logger)
		if err != nil {
			logger.Warn("Không kết nối được Redis, chạy không có L2 cache", zap.Error(err))
		} else {
			l2 = redisCache
			logger.Info("Redis L2 cache sẵn sàng")
		}
	}
	cacheService := services.NewHybridCacheService(l1, l2, logger)

	// 6. Khởi tạo history store (MongoDB nếu cấu hình)
	historyService := services.NewNopHistoryService(logger)
	if mongoURL := viper.GetString("mongo.url"); mongoURL != "" {
		if db := connectMongo(mongoURL, logger); db != nil {
			historyService = services.NewHistoryService(db, logger)
			defer func() {
				if err := db.Client().Disconnect(context.Background()); err != nil {
					logger.Error("Lỗi disconnect MongoDB", zap.Error(err))
				}
			}()
			logger.Info("Prediction history sẵn sàng")
		}
	}

	// 7. Khởi tạo model registry
	modelService, err := services.NewModelService(config.C.Models, config.C.Confidence, logger)
	if err != nil {
		logger.Fatal("Không tạo được model registry", zap.Error(err))
	}

	// 8. Khởi tạo parse service (LLM optional + regex fallback)
	llmClient := services.NewLLMClient(config.C.LLM, os.Getenv("LLM_API_KEY"), logger)
	if llmClient == nil {
		logger.Info("LLM chưa cấu hình, /parse chỉ chạy regex")
	}
	districtNames := make([]string, 0, len(tables.Districts))
	for _, d := range tables.Districts {
		districtNames = append(districtNames, d.Name)
	}
	extractor := textparse.NewExtractor(districtNames, tables.Cities.Aliases())
	parseService := services.NewParseService(llmClient, extractor, logger)

	// 9. Khởi tạo predict service + controllers
	predictService := services.NewPredictService(pipeline, modelService, cacheService, historyService, logger)
	predictController := controllers.NewPredictController(predictService, parseService, modelService, config.C.DefaultModel, logger)
	adminController := controllers.NewAdminController(cacheService, historyService, logger)

	// 10. Khởi tạo Gin router và routes
	router := gin.New()
	routes.SetupAllRoutes(router, predictController, adminController)

	// 11. Khởi động server
	port := getEnv("APP_PORT", viper.GetString("app.port"))
	logger.Info("Housing Pricer Service starting", zap.String("port", port))

	if err := router.Run(":" + port); err != nil {
		logger.Fatal("Failed to start server", zap.Error(err))
	}
}

// loadConfig load configuration từ file và env vars
func loadConfig() {
	viper.SetConfigName("app")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")

	// Set defaults
	viper.SetDefault("app.port", "8080")
	viper.SetDefault("app.env", "development")
	viper.SetDefault("redis.url", "")
	viper.SetDefault("mongo.url", "")
	viper.SetDefault("cache.l1_size", 10000)
	viper.SetDefault("pricer.config_path", "./config/pricer.yaml")

	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		log.Printf("Warning: Cannot read config file: %v", err)
	}
}

// initLogger khởi tạo structured logger
func initLogger() *zap.Logger {
	env := getEnv("APP_ENV", "development")

	var cfg zap.Config
	if env == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
	}

	logger, err := cfg.Build()
	if err != nil {
		log.Fatal("Cannot initialize logger:", err)
	}
	return logger
}

// connectMongo kết nối MongoDB; lỗi thì log warn và trả nil (history
// là optional, không chặn startup).
func connectMongo(mongoURL string, logger *zap.Logger) *mongo.Database {
	client, err := mongo.Connect(context.Background(), options.Client().ApplyURI(mongoURL))
	if err != nil {
		logger.Warn("Không kết nối được MongoDB", zap.Error(err))
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := client.Ping(ctx, nil); err != nil {
		logger.Warn("Không ping được MongoDB", zap.Error(err))
		return nil
	}

	dbName := "housing_pricer"
	logger.Info("Connected to MongoDB", zap.String("database", dbName))
	return client.Database(dbName)
}

// getEnv lấy environment variable với default value
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

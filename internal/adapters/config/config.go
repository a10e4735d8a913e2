package config

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
	"gopkg.in/gomail.v2"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"

	postgresStorage "github.com/Badsnus/qr-studio/internal/adapters/database/postgres"
	"github.com/Badsnus/qr-studio/internal/domain/entity"
	"github.com/Badsnus/qr-studio/internal/domain/utils/debounce"
	"github.com/Badsnus/qr-studio/pkg/logger"
)

// Config holds the connections the studio was configured with. Optional
// backends are nil when disabled.
type Config struct {
	Database   *gorm.DB
	Redis      *redis.Client
	SMTPDialer *gomail.Dialer
}

func init() {
	viper.SetDefault("service.http.addr", ":8080")
	viper.SetDefault("render.preview-size", entity.DefaultPreviewSize)
	viper.SetDefault("render.debounce", debounce.DefaultWindow)
	viper.SetDefault("export.output-dir", "exports")
	viper.SetDefault("export.cache-ttl", 24*time.Hour)
	viper.SetDefault("settings.timezone", "UTC")
}

func initConfig() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		panic(err)
	}
}

func Get() *Config {
	initConfig()

	location, err := time.LoadLocation(viper.GetString("settings.timezone"))
	if err != nil {
		panic(err)
	}
	err = logger.Init(logger.Config{
		Debug:        viper.GetBool("settings.debug"),
		TimeLocation: location,
		LogToFile:    viper.GetBool("settings.log-to-file"),
		LogsDir:      viper.GetString("settings.logs-dir"),
		Prefix:       viper.GetString("settings.log-prefix"),
	})
	if err != nil {
		panic(err)
	}

	cfg := &Config{}

	if viper.GetBool("service.database.enabled") {
		cfg.Database = openDatabase(location)
	}

	if viper.GetBool("service.redis.enabled") {
		redisDB := redis.NewClient(&redis.Options{
			Addr:     fmt.Sprintf("%s:%d", viper.GetString("service.redis.host"), viper.GetInt("service.redis.port")),
			Password: viper.GetString("service.redis.password"),
			DB:       viper.GetInt("service.redis.db"),
		})
		if err = redisDB.Ping(context.Background()).Err(); err != nil {
			logger.Log.Panicf("Failed to connect to redis: %v", err)
		} else {
			logger.Log.Info("Successfully connected to redis")
		}
		cfg.Redis = redisDB
	}

	if viper.GetBool("service.smtp.enabled") {
		cfg.SMTPDialer = gomail.NewDialer(
			viper.GetString("service.smtp.host"),
			viper.GetInt("service.smtp.port"),
			viper.GetString("service.smtp.email"),
			viper.GetString("service.smtp.password"),
		)
	}

	return cfg
}

func openDatabase(location *time.Location) *gorm.DB {
	var gormConfig *gorm.Config
	if viper.GetBool("settings.debug") {
		newLogger := gormLogger.New(
			log.New(os.Stdout, "\r\n", log.LstdFlags),
			gormLogger.Config{
				SlowThreshold: time.Second,
				LogLevel:      gormLogger.Info,
				Colorful:      true,
			},
		)
		gormConfig = &gorm.Config{
			Logger: newLogger,
		}
	} else {
		gormConfig = &gorm.Config{}
	}

	dsn := fmt.Sprintf("user=%s password=%s dbname=%s host=%s port=%d sslmode=disable TimeZone=%s",
		viper.GetString("service.database.user"),
		viper.GetString("service.database.password"),
		viper.GetString("service.database.name"),
		viper.GetString("service.database.host"),
		viper.GetInt("service.database.port"),
		location.String(),
	)

	database, err := gorm.Open(postgres.Open(dsn), gormConfig)
	if err != nil {
		logger.Log.Panicf("Failed to connect to the database: %v", err)
	} else {
		logger.Log.Info("Successfully connected to the database")
	}

	if err = database.AutoMigrate(postgresStorage.Migrations...); err != nil {
		logger.Log.Panicf("Failed to migrate database: %v", err)
	}
	return database
}

// Watch re-reads config.yaml on every write and calls onChange afterwards.
func Watch(onChange func()) {
	viper.OnConfigChange(func(e fsnotify.Event) {
		if e.Op&(fsnotify.Write|fsnotify.Create) == 0 {
			return
		}
		logger.Log.Infof("Config file changed: %s", e.Name)
		onChange()
	})
	viper.WatchConfig()
}

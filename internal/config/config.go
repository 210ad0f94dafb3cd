package config

import (
	"log"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server struct {
		Port        string `mapstructure:"port"`
		MetricsPort string `mapstructure:"metrics_port"`
		LogLevel    string `mapstructure:"log_level"`
	} `mapstructure:"server"`
	Database struct {
		Host     string `mapstructure:"host"`
		Port     string `mapstructure:"port"`
		User     string `mapstructure:"user"`
		Password string `mapstructure:"password"`
		Name     string `mapstructure:"name"`
	} `mapstructure:"database"`
	Auth struct {
		JWTSecret     string `mapstructure:"jwt_secret"`
		TokenTTLHours int    `mapstructure:"token_ttl_hours"`
		AdminPassword string `mapstructure:"admin_password"`
	} `mapstructure:"auth"`
	Storage struct {
		KeyID         string `mapstructure:"key_id"`
		AppKey        string `mapstructure:"app_key"`
		Endpoint      string `mapstructure:"endpoint"`
		Region        string `mapstructure:"region"`
		BucketAudio   string `mapstructure:"bucket_audio"`
		PresignTTLMin int    `mapstructure:"presign_ttl_minutes"`
	} `mapstructure:"storage"`
	Seed struct {
		CatalogFile string `mapstructure:"catalog_file"`
	} `mapstructure:"seed"`
}

func Load() *Config {
	viper.SetEnvPrefix("SPOTIFY")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Register keys
	viper.BindEnv("server.port")
	viper.BindEnv("server.metrics_port")
	viper.BindEnv("server.log_level")

	viper.BindEnv("database.host")
	viper.BindEnv("database.port")
	viper.BindEnv("database.user")
	viper.BindEnv("database.password")
	viper.BindEnv("database.name")

	viper.BindEnv("auth.jwt_secret")
	viper.BindEnv("auth.token_ttl_hours")
	viper.BindEnv("auth.admin_password")

	viper.BindEnv("storage.key_id")
	viper.BindEnv("storage.app_key")
	viper.BindEnv("storage.endpoint")
	viper.BindEnv("storage.region")
	viper.BindEnv("storage.bucket_audio")
	viper.BindEnv("storage.presign_ttl_minutes")

	viper.BindEnv("seed.catalog_file")

	// Defaults
	viper.SetDefault("server.port", ":8080")
	viper.SetDefault("server.metrics_port", ":9091")
	viper.SetDefault("server.log_level", "info")

	viper.SetDefault("database.host", "localhost")
	viper.SetDefault("database.port", "5432")
	viper.SetDefault("database.user", "spotify")
	viper.SetDefault("database.name", "spotify")

	viper.SetDefault("auth.token_ttl_hours", 72)

	viper.SetDefault("storage.region", "us-east-1")
	viper.SetDefault("storage.bucket_audio", "audio")
	viper.SetDefault("storage.presign_ttl_minutes", 60)

	viper.SetDefault("seed.catalog_file", "./catalog.yaml")

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("../")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			log.Printf("Warning: Config error: %s", err)
		} else {
			log.Println("Info: config.yaml not found, using Environment Variables only.")
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		log.Fatalf("Unable to decode config: %v", err)
	}

	if cfg.Database.Password == "" {
		log.Fatal("Critical: Database password is missing (SPOTIFY_DATABASE_PASSWORD)")
	}
	if cfg.Auth.JWTSecret == "" {
		log.Fatal("Critical: JWT secret is missing (SPOTIFY_AUTH_JWT_SECRET)")
	}

	return &cfg
}

package config

import (
	"log"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"

	"github.com/talentstack/cvintake/internal/logger"
	"github.com/talentstack/cvintake/internal/tracing"
)

type Config struct {
	AppConfig       *AppConfig
	Logger          *logger.Config
	Tracing         *tracing.JaegerConfig
	DatabaseConfig  *DatabaseConfig
	GmailConfig     *GmailConfig
	StorageConfig   *StorageConfig
	ConverterConfig *ConverterConfig
	IngestionConfig *IngestionConfig
}

func InitConfig() (*Config, error) {
	config := &Config{
		AppConfig:       &AppConfig{},
		Logger:          &logger.Config{},
		Tracing:         &tracing.JaegerConfig{},
		DatabaseConfig:  &DatabaseConfig{},
		GmailConfig:     &GmailConfig{},
		StorageConfig:   &StorageConfig{},
		ConverterConfig: &ConverterConfig{},
		IngestionConfig: &IngestionConfig{},
	}

	err := godotenv.Load()
	if err != nil {
		log.Print("Unable to load .env file")
	}

	err = env.Parse(config)
	if err != nil {
		log.Fatalf("Error loading cvintake config: %v", err)
	}

	return config, nil
}

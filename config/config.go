package config

import (
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Port              string        `envconfig:"STOREFRONT_PORT" default:":8080"`
	LogLevel          string        `envconfig:"LOG_LEVEL" default:"info"`
	CatalogGatewayURL string        `envconfig:"CATALOG_GATEWAY_URL" default:"https://dummyjson.com"`
	CartGatewayURL    string        `envconfig:"CART_GATEWAY_URL" default:"https://dummyjson.com"`
	GatewayTimeout    time.Duration `envconfig:"GATEWAY_TIMEOUT" default:"5s"`

	CartID int `envconfig:"CART_ID" default:"1"`
	UserID int `envconfig:"CART_USER_ID" default:"1"`

	PageSize     int `envconfig:"CATALOG_PAGE_SIZE" default:"30"`
	RowSize      int `envconfig:"CATALOG_ROW_SIZE" default:"4"`
	RowHeight    int `envconfig:"CATALOG_ROW_HEIGHT" default:"400"`
	ViewportSize int `envconfig:"CATALOG_VIEWPORT_HEIGHT" default:"800"`
	Overscan     int `envconfig:"CATALOG_OVERSCAN" default:"5"`

	AvailabilityInterval time.Duration `envconfig:"AVAILABILITY_POLL_INTERVAL" default:"30s"`

	ThemeFile string `envconfig:"THEME_FILE" default:"theme.json"`
}

func LoadConfig() *Config {
	err := godotenv.Load()
	if err != nil {
		if os.IsNotExist(err) {
			log.Println("Warning: .env file not found, using environment variables or defaults.")
		} else {
			log.Printf("Warning: Error loading .env file: %v", err)
		}
	}

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		log.Fatalf("FATAL: Failed to process configuration: %v", err)
	}
	return &cfg
}

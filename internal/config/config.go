package config

import (
	"fmt"

	"github.com/caarlos0/env/v10"
)

type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	FrontendURL string `env:"FRONTEND_URL" envDefault:"http://localhost:5173"`
	CreatedBy   string `env:"CREATED_BY" envDefault:"coursehaven"`

	Mongo  Mongo  `envPrefix:"MONGO_"`
	JWT    JWT    `envPrefix:"JWT_"`
	Stripe Stripe `envPrefix:"STRIPE_"`
	Minio  Minio  `envPrefix:"MINIO_"`
}

type Mongo struct {
	URI      string `env:"URI" envDefault:"mongodb://localhost:27017"`
	Database string `env:"DATABASE" envDefault:"coursehaven"`
}

type JWT struct {
	AdminSecret string `env:"ADMIN_SECRET,required,notEmpty"`
	UserSecret  string `env:"USER_SECRET,required,notEmpty"`
}

type Stripe struct {
	SecretKey string `env:"SECRET_KEY,required,notEmpty"`
	BaseURL   string `env:"BASE_URL" envDefault:"https://api.stripe.com"`
}

type Minio struct {
	Endpoint  string `env:"ENDPOINT" envDefault:"localhost:9000"`
	AccessKey string `env:"ACCESS_KEY" envDefault:"minioadmin"`
	SecretKey string `env:"SECRET_KEY" envDefault:"minioadmin"`
	Bucket    string `env:"BUCKET" envDefault:"course-images"`
	UseSSL    bool   `env:"USE_SSL" envDefault:"false"`
}

// Load parses the configuration from the environment.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return &cfg, nil
}

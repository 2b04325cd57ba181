package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/asd-screening/backend/internal/classifier"
)

type Config struct {
	ServerAddress   string
	ShutdownTimeout time.Duration

	// Record store
	DatabasePath string

	// Recommendation model
	ModelPath string
	Training  classifier.TrainConfig
}

// Load reads .env (if present) and the process environment. Malformed values
// stop the process.
func Load() *Config {
	_ = godotenv.Load()
	cfg, err := FromEnv()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	return cfg
}

// FromEnv builds a Config from the current environment, applying defaults
// for unset variables.
func FromEnv() (*Config, error) {
	training := classifier.DefaultTrainConfig()

	shutdown, err1 := getDuration("SHUTDOWN_TIMEOUT", 10*time.Second)
	seed, err2 := getInt64("MODEL_SEED", training.Seed)
	trees, err3 := getPositiveInt("MODEL_TREES", training.Trees)
	samples, err4 := getPositiveInt("MODEL_SAMPLES", training.Samples)
	workers, err5 := getPositiveInt("TRAIN_WORKERS", training.Workers)
	if err := errors.Join(err1, err2, err3, err4, err5); err != nil {
		return nil, err
	}

	training.Seed = seed
	training.Trees = trees
	training.Samples = samples
	training.Workers = workers

	return &Config{
		ServerAddress:   getenvDefault("SERVER_ADDRESS", ":8080"),
		ShutdownTimeout: shutdown,
		DatabasePath:    getenvDefault("DATABASE_PATH", "screening.db"),
		ModelPath:       getenvDefault("MODEL_PATH", "models/random_forest.json"),
		Training:        training,
	}, nil
}

func getDuration(k string, fallback time.Duration) (time.Duration, error) {
	v := os.Getenv(k)
	if v == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s=%q is not a valid duration", k, v)
	}
	return d, nil
}

func getInt64(k string, fallback int64) (int64, error) {
	v := os.Getenv(k)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%s=%q is not an integer", k, v)
	}
	return n, nil
}

func getPositiveInt(k string, fallback int) (int, error) {
	v := os.Getenv(k)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("%s=%q is not a positive integer", k, v)
	}
	return n, nil
}

func getenvDefault(k, fallback string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return fallback
}

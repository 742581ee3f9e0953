package config

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	env_utils "trailiva-backend/internal/util/env"
	"trailiva-backend/internal/util/logger"

	"github.com/ilyakaznacheev/cleanenv"
	"github.com/joho/godotenv"
)

var log = logger.GetLogger()

type EnvVariables struct {
	IsTesting   bool
	DatabaseDsn string            `env:"DATABASE_DSN" env-required:"true"`
	EnvMode     env_utils.EnvMode `env:"ENV_MODE"     env-required:"true"`
	HTTPPort    string            `env:"HTTP_PORT"    env-default:"4005"`
	AppBaseURL  string            `env:"APP_BASE_URL" env-default:"http://localhost:4005"`

	JWTSecret string `env:"JWT_SECRET" env-required:"true"`

	// request tokens
	TokenTTL           time.Duration `env:"TOKEN_TTL"            env-default:"24h"`
	TokenSweepSchedule string        `env:"TOKEN_SWEEP_SCHEDULE" env-default:"@every 1h"`

	// mail; an empty host makes the mailer log messages instead of sending
	SMTPHost     string `env:"SMTP_HOST"`
	SMTPPort     int    `env:"SMTP_PORT"     env-default:"587"`
	SMTPUser     string `env:"SMTP_USER"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
	SMTPFrom     string `env:"SMTP_FROM"     env-default:"no-reply@trailiva.app"`

	MigrationsDir string
}

var (
	env  EnvVariables
	once sync.Once
)

func GetEnv() EnvVariables {
	once.Do(loadEnvVariables)
	return env
}

func loadEnvVariables() {
	cwd, err := os.Getwd()
	if err != nil {
		log.Warn("could not get current working directory", "error", err)
		cwd = "."
	}

	moduleRoot := cwd
	for {
		if _, err := os.Stat(filepath.Join(moduleRoot, "go.mod")); err == nil {
			break
		}

		parent := filepath.Dir(moduleRoot)
		if parent == moduleRoot {
			break
		}

		moduleRoot = parent
	}

	envPaths := []string{
		filepath.Join(cwd, ".env"),
		filepath.Join(moduleRoot, ".env"),
	}

	for _, path := range envPaths {
		if err := godotenv.Load(path); err == nil {
			log.Info("Successfully loaded .env", "path", path)
			break
		}
	}

	// process environment wins when no .env file exists (containers)
	err = cleanenv.ReadEnv(&env)
	if err != nil {
		log.Error("Configuration could not be loaded", "error", err)
		os.Exit(1)
	}

	for _, arg := range os.Args {
		if strings.Contains(arg, "test") {
			env.IsTesting = true
			break
		}
	}

	if !env.EnvMode.IsValid() {
		log.Error("ENV_MODE is invalid", "mode", env.EnvMode)
		os.Exit(1)
	}
	log.Info("ENV_MODE loaded", "mode", env.EnvMode)

	if env.TokenTTL <= 0 {
		log.Error("TOKEN_TTL must be positive", "ttl", env.TokenTTL)
		os.Exit(1)
	}

	env.MigrationsDir = filepath.Join(moduleRoot, "migrations")

	log.Info("Environment variables loaded successfully!")
}

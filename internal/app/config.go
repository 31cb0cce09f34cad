package app

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/beyzakarasahann/AcuRate-sub001/internal/modules/achievement/steps"
	"github.com/beyzakarasahann/AcuRate-sub001/internal/pkg/logger"
	"github.com/beyzakarasahann/AcuRate-sub001/internal/utils"
)

type Config struct {
	Port        string
	Environment string
	Version     string
	CacheTTL    time.Duration
	Engine      steps.Options
}

func LoadConfig(log *logger.Logger) Config {
	cfg := Config{
		Port:        utils.GetEnv("PORT", "8080", log),
		Environment: utils.GetEnv("ENVIRONMENT", "development", log),
		Version:     utils.GetEnv("SERVICE_VERSION", "dev", log),
		CacheTTL:    utils.GetEnvAsDuration("CACHE_TTL", 5*time.Minute, log),
		Engine:      steps.DefaultOptions(),
	}
	if path := utils.GetEnv("ENGINE_OPTIONS_PATH", "", log); path != "" {
		if err := loadEngineOptions(path, &cfg.Engine); err != nil {
			log.Warn("engine options file ignored", "path", path, "error", err)
		}
	}
	return cfg
}

// loadEngineOptions overlays tuning values (target factor, ranking size,
// hues) from a yaml file onto the defaults.
func loadEngineOptions(path string, opts *steps.Options) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read engine options: %w", err)
	}
	if err := yaml.Unmarshal(raw, opts); err != nil {
		return fmt.Errorf("parse engine options: %w", err)
	}
	return nil
}

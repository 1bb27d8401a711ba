package config

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config es la configuración completa del simulador.
type Config struct {
	Engine  EngineConfig  `yaml:"engine"`
	Oracle  OracleConfig  `yaml:"oracle"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
}

// EngineConfig controla el reloj del mercado y el estado inicial.
type EngineConfig struct {
	TickIntervalSeconds int     `yaml:"tick_interval_seconds"`
	HistoryCapacity     int     `yaml:"history_capacity"`
	SeedBalance         float64 `yaml:"seed_balance"`
}

// OracleConfig contiene el acceso al modelo generativo que ancla precios,
// genera noticias y encarna al gurú.
type OracleConfig struct {
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
	APIKey  string `yaml:"api_key"` // normalmente vía ORACLE_API_KEY
}

// StorageConfig controla dónde se persisten los datos.
type StorageConfig struct {
	DSN string `yaml:"dsn"` // ruta al archivo SQLite, o ":memory:"
}

// LogConfig controla el formato y nivel de logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// Load carga la configuración desde el archivo YAML y el archivo .env si existe.
// Los valores del .env sobreescriben los del YAML para las keys que correspondan.
func Load(path string) (*Config, error) {
	// Cargar .env si existe (silencia error si no hay archivo)
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config.Load: read %q: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("config.Load: parse YAML: %w", err)
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	return &cfg, nil
}

// TickInterval devuelve el intervalo del reloj como time.Duration.
func (c *Config) TickInterval() time.Duration {
	return time.Duration(c.Engine.TickIntervalSeconds) * time.Second
}

// applyEnvOverrides sobreescribe valores con variables de entorno si están presentes.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("ORACLE_API_KEY"); v != "" {
		cfg.Oracle.APIKey = v
	}
}

// setDefaults asegura que los valores requeridos tengan valores sensatos.
func setDefaults(cfg *Config) {
	if cfg.Engine.TickIntervalSeconds <= 0 {
		cfg.Engine.TickIntervalSeconds = 15
	}
	if cfg.Engine.HistoryCapacity <= 0 {
		cfg.Engine.HistoryCapacity = 50
	}
	if cfg.Engine.SeedBalance <= 0 {
		cfg.Engine.SeedBalance = 15000
	}
	// Sin sufijo de versión: el cliente añade /v1beta/models/... él mismo.
	if cfg.Oracle.BaseURL == "" {
		cfg.Oracle.BaseURL = "https://generativelanguage.googleapis.com"
	}
	if cfg.Oracle.Model == "" {
		cfg.Oracle.Model = "gemini-3-flash-preview"
	}
	if cfg.Storage.DSN == "" {
		cfg.Storage.DSN = "kebabd.db"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}

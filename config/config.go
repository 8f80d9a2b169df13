package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config es la configuración completa del bot.
type Config struct {
	Trading   TradingConfig   `yaml:"trading"`
	Scanner   ScannerConfig   `yaml:"scanner"`
	API       APIConfig       `yaml:"api"`
	Storage   StorageConfig   `yaml:"storage"`
	Report    ReportConfig    `yaml:"report"`
	Dashboard DashboardConfig `yaml:"dashboard"`
	Log       LogConfig       `yaml:"log"`
}

// TradingConfig controla la simulación de trades y los umbrales del filtro.
type TradingConfig struct {
	StartingBalance  float64 `yaml:"starting_balance"`
	MaxTradesPerRun  int     `yaml:"max_trades_per_run"`
	SharesPerTrade   float64 `yaml:"shares_per_trade"`
	TradeAmount      float64 `yaml:"trade_amount"` // umbral en dólares para seguir operando en el ciclo
	MinProbability   float64 `yaml:"min_probability"`
	MaxProbability   float64 `yaml:"max_probability"`
	MaxHoursUntilEnd float64 `yaml:"max_hours_until_end"`
	MinVolume        float64 `yaml:"min_volume"`
	MaxFee           float64 `yaml:"max_fee"`
}

// ScannerConfig controla el loop de escaneo.
type ScannerConfig struct {
	IntervalSeconds int      `yaml:"interval_seconds"`
	FetchLimit      int      `yaml:"fetch_limit"`
	ExcludeKeywords []string `yaml:"exclude_keywords"` // mercados cripto de corto plazo, demasiado volátiles
}

// APIConfig contiene el base URL y timeout de la API Gamma.
type APIConfig struct {
	GammaBase      string `yaml:"gamma_base"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// StorageConfig controla dónde se persisten los datos.
type StorageConfig struct {
	TradesFile string `yaml:"trades_file"` // ledger JSON, la fuente de verdad
	HistoryDSN string `yaml:"history_dsn"` // ruta al archivo SQLite, o ":memory:"
}

// ReportConfig controla el job periódico de resumen.
type ReportConfig struct {
	Cron string `yaml:"cron"` // schedule estilo cron con segundos, vacío = deshabilitado
}

// DashboardConfig controla el servidor HTTP del dashboard.
type DashboardConfig struct {
	Addr string `yaml:"addr"`
}

// LogConfig controla el formato y nivel de logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// Load carga la configuración desde el archivo YAML y el archivo .env si existe.
// Un archivo YAML inexistente no es error: se usan los defaults.
// Los valores del .env sobreescriben los del YAML para las keys que correspondan.
func Load(path string) (*Config, error) {
	// Cargar .env si existe (silencia error si no hay archivo)
	_ = godotenv.Load()

	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// sin archivo: defaults + env
	case err != nil:
		return nil, fmt.Errorf("config.Load: read %q: %w", path, err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("config.Load: parse YAML: %w", err)
		}
	}

	applyEnvOverrides(&cfg)
	setDefaults(&cfg)

	return &cfg, nil
}

// ScanInterval devuelve el intervalo de escaneo como time.Duration.
func (c *Config) ScanInterval() time.Duration {
	return time.Duration(c.Scanner.IntervalSeconds) * time.Second
}

// HTTPTimeout devuelve el timeout por request como time.Duration.
func (c *Config) HTTPTimeout() time.Duration {
	return time.Duration(c.API.TimeoutSeconds) * time.Second
}

// applyEnvOverrides sobreescribe valores con variables de entorno si están presentes.
func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("GAMMA_BASE_URL"); v != "" {
		cfg.API.GammaBase = v
	}
	if v := os.Getenv("TRADES_FILE"); v != "" {
		cfg.Storage.TradesFile = v
	}
	if v := os.Getenv("DASHBOARD_ADDR"); v != "" {
		cfg.Dashboard.Addr = v
	}
	if v := os.Getenv("STARTING_BALANCE"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			cfg.Trading.StartingBalance = f
		}
	}
	if v := os.Getenv("SCAN_INTERVAL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Scanner.IntervalSeconds = n
		}
	}
}

// setDefaults asegura que los valores requeridos tengan valores sensatos.
func setDefaults(cfg *Config) {
	if cfg.Trading.StartingBalance <= 0 {
		cfg.Trading.StartingBalance = 1000
	}
	if cfg.Trading.MaxTradesPerRun <= 0 {
		cfg.Trading.MaxTradesPerRun = 5
	}
	if cfg.Trading.SharesPerTrade <= 0 {
		cfg.Trading.SharesPerTrade = 5
	}
	if cfg.Trading.TradeAmount <= 0 {
		cfg.Trading.TradeAmount = 5
	}
	if cfg.Trading.MinProbability <= 0 {
		cfg.Trading.MinProbability = 0.90
	}
	if cfg.Trading.MaxProbability <= 0 {
		cfg.Trading.MaxProbability = 0.98
	}
	if cfg.Trading.MaxHoursUntilEnd <= 0 {
		cfg.Trading.MaxHoursUntilEnd = 4
	}
	if cfg.Trading.MinVolume <= 0 {
		cfg.Trading.MinVolume = 1000
	}
	// MaxFee: el default es 0 (solo mercados sin fee), no hay nada que defaultear
	if cfg.Scanner.IntervalSeconds <= 0 {
		cfg.Scanner.IntervalSeconds = 3600
	}
	if cfg.Scanner.FetchLimit <= 0 {
		cfg.Scanner.FetchLimit = 500
	}
	if len(cfg.Scanner.ExcludeKeywords) == 0 {
		cfg.Scanner.ExcludeKeywords = []string{
			"bitcoin", "btc", "ethereum", "eth", "solana", "xrp", "up or down",
		}
	}
	if cfg.API.GammaBase == "" {
		cfg.API.GammaBase = "https://gamma-api.polymarket.com"
	}
	if cfg.API.TimeoutSeconds <= 0 {
		cfg.API.TimeoutSeconds = 30
	}
	if cfg.Storage.TradesFile == "" {
		cfg.Storage.TradesFile = "data/trades.json"
	}
	if cfg.Storage.HistoryDSN == "" {
		cfg.Storage.HistoryDSN = "data/history.db"
	}
	if cfg.Dashboard.Addr == "" {
		cfg.Dashboard.Addr = ":8080"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}

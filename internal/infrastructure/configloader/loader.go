package configloader

import (
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// ServerConfig holds server-specific configurations.
type ServerConfig struct {
	Port         string `yaml:"port"`
	ReadTimeout  int    `yaml:"readTimeout"`
	WriteTimeout int    `yaml:"writeTimeout"`
	IdleTimeout  int    `yaml:"idleTimeout"`
}

// LoggingConfig holds logging-specific configurations.
type LoggingConfig struct {
	Level string `yaml:"level"` // "debug", "info", "warn", "error"
	File  string `yaml:"file"`
}

// CMCConfig holds the quotes API configuration.
type CMCConfig struct {
	BaseURL              string  `yaml:"baseURL"`
	APIKey               string  `yaml:"apiKey"`
	RequestTimeoutMillis int64   `yaml:"requestTimeoutMillis"`
	RequestsPerSecond    float64 `yaml:"requestsPerSecond"`
	MaxIDsPerRequest     int     `yaml:"maxIdsPerRequest"`
}

// RateAPIConfig holds the fiat exchange-rate API configuration.
type RateAPIConfig struct {
	BaseURL              string  `yaml:"baseURL"`
	RequestTimeoutMillis int64   `yaml:"requestTimeoutMillis"`
	RequestsPerSecond    float64 `yaml:"requestsPerSecond"`
}

// NodeConfig holds one nano-family node RPC endpoint.
type NodeConfig struct {
	Endpoint                string `yaml:"endpoint"`
	RequestTimeoutMillis    int64  `yaml:"requestTimeoutMillis"`
	MaxAccountsPerBatchCall int    `yaml:"maxAccountsPerBatchCall"`
}

// GasConfig holds EVM RPC timeouts for the gas tracker.
type GasConfig struct {
	ConnectTimeoutSeconds int `yaml:"connectTimeoutSeconds"`
	CallTimeoutSeconds    int `yaml:"callTimeoutSeconds"`
}

// ProvidersConfig holds shared provider tuning.
type ProvidersConfig struct {
	CacheTTLMinutes int `yaml:"cacheTTLMinutes"`
}

// SeedConfig points at the startup seed file.
type SeedConfig struct {
	Path string `yaml:"path"`
}

// Config is the top-level configuration structure.
type Config struct {
	Server     ServerConfig    `yaml:"server"`
	Logging    LoggingConfig   `yaml:"logging"`
	CMC        CMCConfig       `yaml:"cmc"`
	RateAPI    RateAPIConfig   `yaml:"rateApi"`
	NanoNode   NodeConfig      `yaml:"nanoNode"`
	BananoNode NodeConfig      `yaml:"bananoNode"`
	Gas        GasConfig       `yaml:"gas"`
	Providers  ProvidersConfig `yaml:"providers"`
	Seed       SeedConfig      `yaml:"seed"`
}

// Load reads the YAML configuration file and applies defaults for unset
// tuning values.
func Load(path string) (*Config, error) {
	logrus.Infof("Loading configuration from path: %s", path)
	data, err := os.ReadFile(path)
	if err != nil {
		logrus.Errorf("Failed to read config file %s: %v", path, err)
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		logrus.Errorf("Failed to unmarshal config data from %s: %v", path, err)
		return nil, fmt.Errorf("failed to unmarshal config data from %s: %w", path, err)
	}

	applyDefaults(&cfg)

	if cfg.CMC.APIKey == "" {
		logrus.Warn("CMC API key is not set; quote fetches will likely be rejected upstream.")
	}
	if cfg.NanoNode.Endpoint == "" || cfg.BananoNode.Endpoint == "" {
		logrus.Warn("A node RPC endpoint is not set; chain balance cards for that chain will stay pending.")
	}

	logrus.Info("Configuration loaded successfully.")
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Port == "" {
		cfg.Server.Port = ":8080"
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 10
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 15
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = 60
	}

	if cfg.CMC.BaseURL == "" {
		cfg.CMC.BaseURL = "https://pro-api.coinmarketcap.com"
	}
	if cfg.CMC.RequestTimeoutMillis == 0 {
		cfg.CMC.RequestTimeoutMillis = 10000
	}
	if cfg.CMC.RequestsPerSecond == 0 {
		cfg.CMC.RequestsPerSecond = 5
	}
	if cfg.CMC.MaxIDsPerRequest == 0 {
		cfg.CMC.MaxIDsPerRequest = 100
		logrus.Infof("MaxIDsPerRequest for CMC not set, defaulting to %d", cfg.CMC.MaxIDsPerRequest)
	}

	if cfg.RateAPI.BaseURL == "" {
		cfg.RateAPI.BaseURL = "https://api.frankfurter.dev/v1"
	}
	if cfg.RateAPI.RequestTimeoutMillis == 0 {
		cfg.RateAPI.RequestTimeoutMillis = 10000
	}
	if cfg.RateAPI.RequestsPerSecond == 0 {
		cfg.RateAPI.RequestsPerSecond = 5
	}

	for _, node := range []*NodeConfig{&cfg.NanoNode, &cfg.BananoNode} {
		if node.RequestTimeoutMillis == 0 {
			node.RequestTimeoutMillis = 10000
		}
		if node.MaxAccountsPerBatchCall == 0 {
			node.MaxAccountsPerBatchCall = 50
		}
	}

	if cfg.Gas.ConnectTimeoutSeconds == 0 {
		cfg.Gas.ConnectTimeoutSeconds = 10
	}
	if cfg.Gas.CallTimeoutSeconds == 0 {
		cfg.Gas.CallTimeoutSeconds = 5
	}

	if cfg.Providers.CacheTTLMinutes == 0 {
		cfg.Providers.CacheTTLMinutes = 1
		logrus.Infof("Provider CacheTTLMinutes not set, defaulting to %d minute", cfg.Providers.CacheTTLMinutes)
	}
}

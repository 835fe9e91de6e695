package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/Astemirdum/library-view/pkg/kafka"
	"github.com/Astemirdum/library-view/pkg/logger"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
)

type HTTPServer struct {
	Host         string        `yaml:"host" envconfig:"VIEW_HTTP_HOST" default:"127.0.0.1"`
	Port         string        `yaml:"port" envconfig:"VIEW_HTTP_PORT" default:"8892"`
	ReadTimeout  time.Duration `yaml:"readTimeout" envconfig:"HTTP_READ" default:"15s"`
	WriteTimeout time.Duration `yaml:"writeTimeout" envconfig:"HTTP_WRITE" default:"15s"`
}

type API struct {
	BaseURL string `yaml:"baseURL" envconfig:"API_BASE_URL" default:"http://localhost:8891/api"`
	// CircuitBreaker makes the client fail fast while the backend is down.
	CircuitBreaker bool `yaml:"circuitBreaker" envconfig:"CB_ENABLE"`
}

type Config struct {
	Server           HTTPServer    `yaml:"server"`
	API              API           `yaml:"api"`
	ProfileCacheTTL  time.Duration `yaml:"profileCacheTTL" envconfig:"PROFILE_CACHE_TTL" default:"5s"`
	ItemsPerPage     int           `yaml:"itemsPerPage" envconfig:"ITEMS_PER_PAGE" default:"10"`
	GreetingDebounce time.Duration `yaml:"greetingDebounce" envconfig:"GREETING_DEBOUNCE" default:"300ms"`
	SessionFile      string        `yaml:"sessionFile" envconfig:"SESSION_FILE"`
	Kafka            kafka.Config  `yaml:"kafka"`
	Log              logger.Log    `yaml:"log"`
}

var (
	once sync.Once
	cfg  Config
	err  error
)

// NewConfig reads config from environment once per process.
func NewConfig(ops ...Option) (Config, error) {
	once.Do(func() {
		cfg, err = Load(ops...)
	})
	return cfg, err
}

// Load reads config from environment and applies ops on top of it.
func Load(ops ...Option) (Config, error) {
	var config Config
	if err := envconfig.Process("", &config); err != nil {
		return Config{}, errors.Wrap(err, "envconfig")
	}
	for _, op := range ops {
		op(&config)
	}
	if config.SessionFile == "" {
		config.SessionFile = defaultSessionFile()
	}
	if config.ItemsPerPage <= 0 {
		return Config{}, errors.Errorf("ITEMS_PER_PAGE must be positive, got %d", config.ItemsPerPage)
	}
	return config, nil
}

func defaultSessionFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "library-view", "session.json")
}

func PrintConfig(cfg Config) {
	jscfg, _ := json.MarshalIndent(cfg, "", "	") //nolint:errcheck
	fmt.Println(string(jscfg))
}

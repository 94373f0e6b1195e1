package config

import (
	"os"
	"regexp"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config represents the application configuration
type Config struct {
	Server struct {
		Port         int           `yaml:"port" default:"8080"`
		Host         string        `yaml:"host" default:"0.0.0.0"`
		ReadTimeout  time.Duration `yaml:"read_timeout" default:"30s"`
		WriteTimeout time.Duration `yaml:"write_timeout" default:"30s"`
		IdleTimeout  time.Duration `yaml:"idle_timeout" default:"60s"`
	} `yaml:"server"`

	Providers struct {
		Timeout time.Duration `yaml:"timeout" default:"10s"`

		Adzuna struct {
			AppID          string `yaml:"app_id"`
			AppKey         string `yaml:"app_key"`
			BaseURL        string `yaml:"base_url" default:"https://api.adzuna.com/v1/api/jobs"`
			ResultsPerPage int    `yaml:"results_per_page" default:"20"`
			Country        string `yaml:"country" default:"in"`
		} `yaml:"adzuna"`

		Remotive struct {
			BaseURL string `yaml:"base_url" default:"https://remotive.com/api/remote-jobs"`
		} `yaml:"remotive"`
	} `yaml:"providers"`

	Quota struct {
		Window      time.Duration `yaml:"window" default:"60s"`
		MaxRequests int           `yaml:"max_requests" default:"30"`
	} `yaml:"quota"`

	Cache struct {
		TTL                time.Duration `yaml:"ttl" default:"60s"`
		KeyIncludesFilters bool          `yaml:"key_includes_filters" default:"false"`
	} `yaml:"cache"`

	Matcher struct {
		BaseURL string        `yaml:"base_url" default:"http://localhost:8000"`
		Timeout time.Duration `yaml:"timeout" default:"10s"`
	} `yaml:"matcher"`

	Parser struct {
		BaseURL  string        `yaml:"base_url" default:"http://localhost:8000"`
		Timeout  time.Duration `yaml:"timeout" default:"10s"`
		CacheTTL time.Duration `yaml:"cache_ttl" default:"24h"`
	} `yaml:"parser"`

	Session struct {
		Debounce time.Duration `yaml:"debounce" default:"400ms"`
	} `yaml:"session"`

	Database struct {
		URL string `yaml:"url"`
	} `yaml:"database"`

	Redis struct {
		URL      string        `yaml:"url" default:"redis://localhost:6379"`
		Password string        `yaml:"password"`
		DB       int           `yaml:"db" default:"0"`
		Timeout  time.Duration `yaml:"timeout" default:"5s"`
	} `yaml:"redis"`

	Logging struct {
		Level  string `yaml:"level" default:"info"`
		Format string `yaml:"format" default:"json"`
		Output string `yaml:"output" default:"stdout"`

		Adapters []struct {
			Name    string                 `yaml:"name"`
			Type    string                 `yaml:"type"`
			Enabled bool                   `yaml:"enabled"`
			Options map[string]interface{} `yaml:"options"`
		} `yaml:"adapters"`
	} `yaml:"logging"`
}

// AdzunaConfigured reports whether the primary provider credentials are
// present. The provider choice is made once per process from this.
func (c *Config) AdzunaConfigured() bool {
	return c.Providers.Adzuna.AppID != "" && c.Providers.Adzuna.AppKey != ""
}

// expandEnvVars expands environment variables in a string using ${VAR} or $VAR syntax
func expandEnvVars(s string) string {
	re := regexp.MustCompile(`\$\{([^}]+)\}`)
	s = re.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[2 : len(match)-1]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match
	})

	re2 := regexp.MustCompile(`\$([A-Za-z_][A-Za-z0-9_]*)`)
	s = re2.ReplaceAllStringFunc(s, func(match string) string {
		varName := match[1:]
		if val := os.Getenv(varName); val != "" {
			return val
		}
		return match
	})

	return s
}

// LoadConfig loads configuration from file and environment variables
func LoadConfig(configPath string) (*Config, error) {
	// Load .env file if it exists (ignore errors if file doesn't exist)
	_ = godotenv.Load()

	config := &Config{}

	// Set defaults
	config.Server.Port = 8080
	config.Server.Host = "0.0.0.0"
	config.Server.ReadTimeout = 30 * time.Second
	config.Server.WriteTimeout = 30 * time.Second
	config.Server.IdleTimeout = 60 * time.Second

	config.Providers.Timeout = 10 * time.Second
	config.Providers.Adzuna.BaseURL = "https://api.adzuna.com/v1/api/jobs"
	config.Providers.Adzuna.ResultsPerPage = 20
	config.Providers.Adzuna.Country = "in"
	config.Providers.Remotive.BaseURL = "https://remotive.com/api/remote-jobs"

	config.Quota.Window = 60 * time.Second
	config.Quota.MaxRequests = 30

	config.Cache.TTL = 60 * time.Second

	config.Matcher.BaseURL = "http://localhost:8000"
	config.Matcher.Timeout = 10 * time.Second

	config.Parser.BaseURL = "http://localhost:8000"
	config.Parser.Timeout = 10 * time.Second
	config.Parser.CacheTTL = 24 * time.Hour

	config.Session.Debounce = 400 * time.Millisecond

	config.Redis.URL = "redis://localhost:6379"
	config.Redis.DB = 0
	config.Redis.Timeout = 5 * time.Second

	config.Logging.Level = "info"
	config.Logging.Format = "json"
	config.Logging.Output = "stdout"

	// Load from YAML file if it exists
	if configPath != "" {
		if data, err := os.ReadFile(configPath); err == nil {
			// Expand environment variables in the YAML content
			yamlContent := expandEnvVars(string(data))

			if err := yaml.Unmarshal([]byte(yamlContent), config); err != nil {
				return nil, err
			}
		}
	}

	// Override with environment variables
	config.loadFromEnv()

	return config, nil
}

// loadFromEnv loads configuration from environment variables
func (c *Config) loadFromEnv() {
	if port := os.Getenv("PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			c.Server.Port = p
		}
	}

	if host := os.Getenv("HOST"); host != "" {
		c.Server.Host = host
	}

	if appID := os.Getenv("ADZUNA_APP_ID"); appID != "" {
		c.Providers.Adzuna.AppID = appID
	}

	if appKey := os.Getenv("ADZUNA_API_KEY"); appKey != "" {
		c.Providers.Adzuna.AppKey = appKey
	}

	if country := os.Getenv("ADZUNA_COUNTRY"); country != "" {
		c.Providers.Adzuna.Country = country
	}

	if baseURL := os.Getenv("REMOTIVE_BASE_URL"); baseURL != "" {
		c.Providers.Remotive.BaseURL = baseURL
	}

	if timeout := os.Getenv("PROVIDER_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Providers.Timeout = d
		}
	}

	if window := os.Getenv("QUOTA_WINDOW"); window != "" {
		if d, err := time.ParseDuration(window); err == nil {
			c.Quota.Window = d
		}
	}

	if maxRequests := os.Getenv("QUOTA_MAX_REQUESTS"); maxRequests != "" {
		if n, err := strconv.Atoi(maxRequests); err == nil {
			c.Quota.MaxRequests = n
		}
	}

	if ttl := os.Getenv("CACHE_TTL"); ttl != "" {
		if d, err := time.ParseDuration(ttl); err == nil {
			c.Cache.TTL = d
		}
	}

	if matcherURL := os.Getenv("MATCHER_BASE_URL"); matcherURL != "" {
		c.Matcher.BaseURL = matcherURL
	}

	if parserURL := os.Getenv("PARSER_BASE_URL"); parserURL != "" {
		c.Parser.BaseURL = parserURL
	}

	if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
		c.Database.URL = databaseURL
	}

	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		c.Redis.URL = redisURL
	}

	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		c.Redis.Password = redisPassword
	}

	if redisDB := os.Getenv("REDIS_DB"); redisDB != "" {
		if db, err := strconv.Atoi(redisDB); err == nil {
			c.Redis.DB = db
		}
	}

	if redisTimeout := os.Getenv("REDIS_TIMEOUT"); redisTimeout != "" {
		if timeout, err := time.ParseDuration(redisTimeout); err == nil {
			c.Redis.Timeout = timeout
		}
	}

	if logLevel := os.Getenv("LOG_LEVEL"); logLevel != "" {
		c.Logging.Level = logLevel
	}

	if logFormat := os.Getenv("LOG_FORMAT"); logFormat != "" {
		c.Logging.Format = logFormat
	}
}

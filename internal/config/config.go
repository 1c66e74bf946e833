package config

import (
	"encoding/xml"
	"io"
	"os"
	"sync"
)

var (
	cfg  *APIConfig
	once sync.Once
)

// APIConfig represents the root element.
type APIConfig struct {
	XMLName        xml.Name             `xml:"API"`
	RequestDump    bool                 `xml:"REQUEST_DUMP,attr"`
	Context        ContextConfig        `xml:"CONTEXT"`
	Authentication AuthenticationConfig `xml:"AUTHENTICATION"`
	Pagination     PaginationConfig     `xml:"PAGINATION"`
	Quiz           QuizConfig           `xml:"QUIZ"`
	RateLimit      RateLimitConfig      `xml:"RATE_LIMIT"`
	DB             DBConfig             `xml:"DB"`
}

// ContextConfig holds basic server settings.
type ContextConfig struct {
	Port     int    `xml:"PORT"`
	Host     string `xml:"HOST"`
	Path     string `xml:"PATH"`
	TimeZone string `xml:"TIME_ZONE"`
}

// AuthenticationConfig holds authentication settings.
type AuthenticationConfig struct {
	EnableTokenAuth bool `xml:"ENABLE_TOKEN_AUTH"`
	SessionTimeout  int  `xml:"SESSION_TIMEOUT"`
}

// PaginationConfig holds pagination settings.
type PaginationConfig struct {
	PageSize int `xml:"PAGE_SIZE"`
}

// QuizConfig holds quiz-lifecycle settings.
type QuizConfig struct {
	DailyAttemptLimit  int     `xml:"DAILY_ATTEMPT_LIMIT"`
	DefaultQuestionSet int     `xml:"DEFAULT_QUESTION_SET"`
	CertificatePassPct float64 `xml:"CERTIFICATE_PASS_PCT"`
	SessionTTLMinutes  int     `xml:"SESSION_TTL_MINUTES"`
}

// RateLimitConfig holds transport-level request throttling settings.
type RateLimitConfig struct {
	Enabled           bool    `xml:"ENABLED,attr"`
	RequestsPerSecond float64 `xml:"REQUESTS_PER_SECOND"`
	Burst             int     `xml:"BURST"`
}

// DBConfig holds database connection settings.
type DBConfig struct {
	Initialize bool         `xml:"INITIALIZE"`
	Host       string       `xml:"HOST"`
	Port       int          `xml:"PORT"`
	Driver     string       `xml:"DRIVER"`
	SSLMode    string       `xml:"SSL_MODE"`
	Names      DBNames      `xml:"NAMES"`
	Username   string       `xml:"USERNAME"`
	Password   DBPassword   `xml:"PASSWORD"`
	Pool       DBPoolConfig `xml:"POOL"`
}

// DBNames holds the names defined in the DB section.
type DBNames struct {
	QuizPortal string `xml:"QUIZPORTAL,attr"`
}

// DBPassword holds password details. TYPE="ENV" resolves the value as an
// environment variable name instead of a literal password.
type DBPassword struct {
	Type  string `xml:"TYPE,attr"`
	Value string `xml:",chardata"`
}

// Resolve returns the effective password.
func (p DBPassword) Resolve() string {
	if p.Type == "ENV" {
		return os.Getenv(p.Value)
	}
	return p.Value
}

// DBPoolConfig holds database connection pooling settings.
type DBPoolConfig struct {
	MaxOpenConns    int `xml:"MAX_OPEN_CONNS"`
	MaxIdleConns    int `xml:"MAX_IDLE_CONNS"`
	ConnMaxLifetime int `xml:"CONN_MAX_LIFETIME"`
}

// LoadConfig loads and parses the XML configuration from the given file.
func LoadConfig(xmlPath string) (*APIConfig, error) {
	var loadErr error
	once.Do(func() {
		f, err := os.Open(xmlPath)
		if err != nil {
			loadErr = err
			return
		}
		defer f.Close()

		data, err := io.ReadAll(f)
		if err != nil {
			loadErr = err
			return
		}

		var newCfg APIConfig
		if err := xml.Unmarshal(data, &newCfg); err != nil {
			loadErr = err
			return
		}

		newCfg.applyDefaults()
		cfg = &newCfg
	})

	if cfg == nil {
		if loadErr != nil {
			return nil, loadErr
		}
		return nil, os.ErrInvalid
	}
	return cfg, nil
}

// GetConfig returns the loaded configuration.
func GetConfig() *APIConfig {
	return cfg
}

func (c *APIConfig) applyDefaults() {
	if c.Pagination.PageSize <= 0 {
		c.Pagination.PageSize = 10
	}
	if c.Quiz.DailyAttemptLimit <= 0 {
		c.Quiz.DailyAttemptLimit = 3
	}
	if c.Quiz.DefaultQuestionSet <= 0 {
		c.Quiz.DefaultQuestionSet = 10
	}
	if c.Quiz.CertificatePassPct <= 0 {
		c.Quiz.CertificatePassPct = 50
	}
	if c.Quiz.SessionTTLMinutes <= 0 {
		c.Quiz.SessionTTLMinutes = 120
	}
	if c.RateLimit.RequestsPerSecond <= 0 {
		c.RateLimit.RequestsPerSecond = 10
	}
	if c.RateLimit.Burst <= 0 {
		c.RateLimit.Burst = 20
	}
}

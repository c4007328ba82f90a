// Package config provides configuration related utilities.
package config

import (
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Default values for config.
const (
	defaultHost                   = "0.0.0.0"
	defaultPort                   = "8080"
	defaultFileStoragePath        = "db.json"
	defaultLogPath                = "logs/app.log"
	defaultLogLevel               = "info"
	defaultMaxLogSizeMB           = 5
	defaultMaxLogBackups          = 10
	defaultMaxLogFileLifetimeDays = 14
	defaultReadHeaderTimeout      = 5 * time.Second
	defaultIdleTimeout            = 60 * time.Second
	defaultShutdownTimeout        = 30 * time.Second
	defaultDNSTimeout             = 5 * time.Second
)

// DefaultAddress is the address to start the server on.
var DefaultAddress = fmt.Sprintf("%s:%s", defaultHost, defaultPort)

// Config represents an application configuration.
type (
	Config struct {
		// The data source name (DSN) for connecting to the database.
		// When set, entries are kept in Postgres instead of the file.
		DSN string `yaml:"dsn" json:"dsn" env:"DATABASE_DSN"`
		// Subconfigs.
		Server    Server    `yaml:"http_server" json:"http_server"`
		Logger    Logger    `yaml:"logger" json:"logger"`
		Storage   Storage   `yaml:"storage" json:"storage"`
		Validator Validator `yaml:"validator" json:"validator"`
		// TLSEnable determines whether the server will be started in the TLS mode.
		TLSEnabled Enabled `yaml:"enable_https" json:"enable_https" env:"ENABLE_HTTPS"`
	}
	// Config for server.
	Server struct {
		// Address to run the server.
		RunAddress *NetAddress `yaml:"server_address" json:"server_address" env:"SERVER_ADDRESS"`
		// Read header timeout.
		Timeout time.Duration `yaml:"timeout" json:"timeout" env:"READ_HEADER_TIMEOUT"`
		// Idle timeout.
		IdleTimeout time.Duration `yaml:"idle_timeout" json:"idle_timeout" env:"IDLE_TIMEOUT"`
		// Shutdown timeout.
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" json:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT"`
	}
	// Config for application's logger.
	Logger struct {
		// Path to store log files. Empty path disables the file output.
		Path string `yaml:"log_path" json:"log_path" env:"LOG_PATH"`
		// Application logging level.
		Level string `yaml:"level" json:"level" env:"LOG_LEVEL"`
		// Log files details.
		MaxSizeMB  int `yaml:"max_size_mb" json:"max_size_mb"`
		MaxBackups int `yaml:"max_backups" json:"max_backups"`
		MaxAgeDays int `yaml:"max_age_days" json:"max_age_days"`
	}
	// Config for the entry storage.
	Storage struct {
		// Path to the file storage. Empty path keeps entries in memory.
		FileStoragePath string `yaml:"file_storage_path" json:"file_storage_path" env:"FILE_STORAGE_PATH"`
		// SerializeWrites guards load-append-persist with a mutex.
		// Off by default: concurrent shortens are last writer wins.
		SerializeWrites Enabled `yaml:"serialize_writes" json:"serialize_writes" env:"SERIALIZE_WRITES"`
	}
	// Config for URL validation.
	Validator struct {
		// Policy used to accept submitted URLs.
		Policy Policy `yaml:"policy" json:"policy" env:"VALIDATION_POLICY"`
		// DNSTimeout bounds hostname resolution of the semantic policy.
		// Zero means no timeout.
		DNSTimeout time.Duration `yaml:"dns_timeout" json:"dns_timeout" env:"DNS_TIMEOUT"`
	}
)

// Interface implementation guards.
var (
	_ flag.Value      = (*NetAddress)(nil)
	_ cleanenv.Setter = (*NetAddress)(nil)
	_ flag.Value      = (*Enabled)(nil)
	_ cleanenv.Setter = (*Enabled)(nil)
	_ flag.Value      = (*Policy)(nil)
	_ cleanenv.Setter = (*Policy)(nil)
)

// NetAddress represents a network address with a host and a port.
type NetAddress string

// NewNetAddress returns a pointer to a new NetAddress with default Host and Port.
func NewNetAddress() *NetAddress {
	a := NetAddress(DefaultAddress)
	return &a
}

// String returns a string representation of the NetAddress in the form "host:port".
func (a *NetAddress) String() string {
	return string(*a)
}

// Set sets the host and port of the NetAddress from a string
// in the form "host:port".
func (a *NetAddress) Set(s string) error {
	s = strings.TrimPrefix(s, "http://")
	s = strings.TrimPrefix(s, "https://")

	hp := strings.Split(s, ":")

	if len(hp) != 2 {
		return errors.New("need address in a form host:port")
	}

	if _, err := strconv.Atoi(hp[1]); err != nil {
		return fmt.Errorf("invalid port: %w", err)
	}

	if hp[0] != "" {
		*a = NetAddress(fmt.Sprintf("%s:%s", hp[0], hp[1]))
		return nil
	}

	*a = NetAddress(fmt.Sprintf("%s:%s", defaultHost, hp[1]))
	return nil
}

// SetValue implements cleanenv value setter.
func (a *NetAddress) SetValue(s string) error {
	return a.Set(s)
}

// UnmarshalText lets config files carry the address as a plain string.
func (a *NetAddress) UnmarshalText(text []byte) error {
	return a.Set(string(text))
}

// Enabled implements general setter for boolean values.
// Implements cleanenv value setter.
type Enabled bool

// Set sets Enabled value from string.
func (e *Enabled) Set(s string) error {
	trueValues := []string{
		"true", "1", "t", "T", "TRUE", "True",
	}
	falseValues := []string{
		"false", "0", "f", "F", "FALSE", "False",
	}
	switch {
	case slices.Contains(trueValues, s):
		*e = true
	case slices.Contains(falseValues, s):
		*e = false
	default:
		return fmt.Errorf(
			"invalid value: %q; need boolean value in form: true: %q false: %q",
			s,
			strings.Join(trueValues, "\", \""),
			strings.Join(falseValues, "\", \""),
		)
	}
	return nil
}

// SetValue implements cleanenv value setter.
func (e *Enabled) SetValue(s string) error {
	return e.Set(s)
}

// String returns a string representation of the Enabled value.
func (e *Enabled) String() string {
	return fmt.Sprintf("%v", *e)
}

// IsBoolFlag allows the flag to be passed without a value.
func (e *Enabled) IsBoolFlag() bool {
	return true
}

// Policy names a URL acceptance policy.
type Policy string

// Supported URL acceptance policies.
const (
	// PolicySemantic parses the URL and resolves its hostname.
	PolicySemantic Policy = "semantic"
	// PolicySyntactic matches the URL against a fixed pattern.
	PolicySyntactic Policy = "syntactic"
)

// Set sets the policy from its name.
func (p *Policy) Set(s string) error {
	switch Policy(strings.ToLower(strings.TrimSpace(s))) {
	case PolicySemantic:
		*p = PolicySemantic
	case PolicySyntactic:
		*p = PolicySyntactic
	default:
		return fmt.Errorf("unsupported validation policy: %q; need %q or %q",
			s, PolicySemantic, PolicySyntactic)
	}
	return nil
}

// SetValue implements cleanenv value setter.
func (p *Policy) SetValue(s string) error {
	return p.Set(s)
}

// String returns the policy name.
func (p *Policy) String() string {
	return string(*p)
}

// UnmarshalText lets config files carry the policy as a plain string.
func (p *Policy) UnmarshalText(text []byte) error {
	return p.Set(string(text))
}

// defaults returns a configuration populated with default values.
func defaults() *Config {
	return &Config{
		Server: Server{
			RunAddress:      NewNetAddress(),
			Timeout:         defaultReadHeaderTimeout,
			IdleTimeout:     defaultIdleTimeout,
			ShutdownTimeout: defaultShutdownTimeout,
		},
		Logger: Logger{
			Path:       defaultLogPath,
			Level:      defaultLogLevel,
			MaxSizeMB:  defaultMaxLogSizeMB,
			MaxBackups: defaultMaxLogBackups,
			MaxAgeDays: defaultMaxLogFileLifetimeDays,
		},
		Storage: Storage{
			FileStoragePath: defaultFileStoragePath,
		},
		Validator: Validator{
			Policy:     PolicySemantic,
			DNSTimeout: defaultDNSTimeout,
		},
	}
}

// Order of loading configuration:
// 1. Config file (YAML, JSON supported)
// 2. Flags
// 3. Environment variables

// Load returns an application configuration which is populated
// from the configuration file named by CONFIG, the given flags
// and environment variables.
func Load(args []string) (*Config, error) {
	cfg := defaults()

	// Configuration file path.
	if configPath, set := os.LookupEnv("CONFIG"); set {
		if err := readFile(configPath, cfg); err != nil {
			return nil, err
		}
	}

	// Read given flags. If not provided use file values.
	fs := flag.NewFlagSet("shortener", flag.ContinueOnError)
	fs.Var(cfg.Server.RunAddress, "a", "server start address in form host:port")
	fs.Var(&cfg.TLSEnabled, "s", "run the server in TLS mode")
	fs.Var(&cfg.Validator.Policy, "p", "url validation policy: semantic or syntactic")
	fs.StringVar(&cfg.Storage.FileStoragePath, "f", cfg.Storage.FileStoragePath, "file storage path")
	fs.StringVar(&cfg.DSN, "d", cfg.DSN, "server data source name")
	fs.StringVar(&cfg.Logger.Level, "l", cfg.Logger.Level, "logging level")
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	// Read environment variables.
	if err := cleanenv.ReadEnv(cfg); err != nil {
		return nil, fmt.Errorf("read environment variables: %w", err)
	}

	return cfg, nil
}

// MustLoad is like Load over the process arguments
// but stops the program on failure.
func MustLoad() *Config {
	cfg, err := Load(os.Args[1:])
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	return cfg
}

// readFile populates cfg from a YAML or JSON file.
func readFile(path string, cfg *Config) error {
	// Check if file exists.
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return fmt.Errorf("config file does not exist: %w", err)
	}

	file, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open config file: %w", err)
	}
	defer file.Close()

	// Support different file extensions.
	switch ext := filepath.Ext(path); ext {
	case ".yaml", ".yml":
		err = cleanenv.ParseYAML(file, cfg)
	case ".json":
		err = cleanenv.ParseJSON(file, cfg)
	default:
		return fmt.Errorf("unsupported configuration file extension: %q", ext)
	}
	if err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

// NewForTest returns application configuration for testing.
// Entries are kept in memory and URLs are checked syntactically,
// so tests never touch the disk or the network.
func NewForTest() *Config {
	cfg := defaults()
	cfg.Logger.Path = ""
	cfg.Storage.FileStoragePath = ""
	cfg.Validator.Policy = PolicySyntactic
	return cfg
}

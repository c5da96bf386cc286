package config

import (
	"flag"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all application configuration. It is constructed once in main
// and passed by reference into each component.
type Config struct {
	DataDir        string
	ModelStatePath string
	AuditLogPath   string
	CatalogPath    string
	Targets        []string
	UseNmap        bool
	Model          string
	Addr           string
	APIKeyHash     string
	CycleInterval  time.Duration
	Debug          bool

	// catalogSet records an explicit CatalogPath, including the empty string
	// that disables the catalog. Only an unset path receives the default.
	catalogSet bool
}

// fileConfig mirrors Config for the optional YAML config file.
type fileConfig struct {
	DataDir        string   `yaml:"data_dir"`
	ModelStatePath string   `yaml:"model_state_path"`
	AuditLogPath   string   `yaml:"audit_log_path"`
	CatalogPath    *string  `yaml:"catalog_path"`
	Targets        []string `yaml:"targets"`
	UseNmap        bool     `yaml:"use_nmap"`
	Model          string   `yaml:"model"`
	Addr           string   `yaml:"addr"`
	APIKeyHash     string   `yaml:"api_key_hash"`
	CycleInterval  string   `yaml:"cycle_interval"`
}

// Default returns the built-in configuration without consulting flags or the
// environment. Tests construct their Config from here.
func Default() *Config {
	return &Config{
		DataDir: "data",
		Targets: []string{"127.0.0.1"},
		Model:   "statistical",
		Addr:    ":8080",
	}
}

// Load populates Config from the optional YAML file, environment variables
// and command line flags, in increasing precedence.
func Load() *Config {
	cfg := Default()

	// A -config flag has to be known before flag.Parse, so peek at the args.
	if path := configFileArg(); path != "" {
		if err := cfg.applyFile(path); err != nil {
			log.Printf("Warning: could not load config file %s: %v", path, err)
		}
	}

	cfg.DataDir = getEnv("SENTINEL_DATA_DIR", cfg.DataDir)
	cfg.ModelStatePath = getEnv("SENTINEL_MODEL_STATE", cfg.ModelStatePath)
	cfg.AuditLogPath = getEnv("SENTINEL_AUDIT_LOG", cfg.AuditLogPath)
	if v, ok := os.LookupEnv("SENTINEL_CATALOG"); ok {
		cfg.CatalogPath = v
		cfg.catalogSet = true
	}
	cfg.Model = getEnv("SENTINEL_MODEL", cfg.Model)
	cfg.Addr = getEnv("SENTINEL_ADDR", cfg.Addr)
	cfg.APIKeyHash = getEnv("SENTINEL_API_KEY_HASH", cfg.APIKeyHash)
	cfg.UseNmap = getEnvBool("SENTINEL_NMAP", cfg.UseNmap)
	if v, ok := os.LookupEnv("SENTINEL_TARGETS"); ok {
		cfg.Targets = parseTargets(v)
	}
	if v, ok := os.LookupEnv("SENTINEL_CYCLE_INTERVAL"); ok {
		if d, err := time.ParseDuration(v); err == nil {
			cfg.CycleInterval = d
		}
	}

	targetStr := strings.Join(cfg.Targets, ",")
	var configFile string
	flag.StringVar(&configFile, "config", "", "Path to YAML config file")
	flag.StringVar(&cfg.DataDir, "data", cfg.DataDir, "Directory used to persist JSON artifacts")
	flag.StringVar(&cfg.ModelStatePath, "model-state", cfg.ModelStatePath, "Path of the model state file")
	flag.StringVar(&cfg.AuditLogPath, "audit-log", cfg.AuditLogPath, "Path of the structured audit log")
	flag.StringVar(&cfg.CatalogPath, "catalog", cfg.CatalogPath, "Path to the SQLite alert catalog (empty to disable)")
	flag.StringVar(&targetStr, "targets", targetStr, "Scan targets (comma separated)")
	flag.BoolVar(&cfg.UseNmap, "nmap", cfg.UseNmap, "Attempt a real nmap probe before falling back to simulation")
	flag.StringVar(&cfg.Model, "model", cfg.Model, "Anomaly model variant")
	flag.StringVar(&cfg.Addr, "addr", cfg.Addr, "Dashboard HTTP server address")
	flag.DurationVar(&cfg.CycleInterval, "interval", cfg.CycleInterval, "Pipeline cycle interval in serve mode (0 disables)")
	flag.BoolVar(&cfg.Debug, "debug", false, "Enable verbose debug logging")
	flag.Parse()

	flag.Visit(func(f *flag.Flag) {
		if f.Name == "catalog" {
			cfg.catalogSet = true
		}
	})

	cfg.Targets = parseTargets(targetStr)
	cfg.ApplyDefaults()
	return cfg
}

// ApplyDefaults fills the derived paths left empty by the caller.
func (c *Config) ApplyDefaults() {
	if c.ModelStatePath == "" {
		c.ModelStatePath = filepath.Join(c.DataDir, "model_state.json")
	}
	if c.AuditLogPath == "" {
		c.AuditLogPath = filepath.Join(c.DataDir, "audit_log.jsonl")
	}
	// An explicitly empty catalog path disables the catalog; only an unset
	// one gets the derived default.
	if c.CatalogPath == "" && !c.catalogSet {
		c.CatalogPath = filepath.Join(c.DataDir, "catalog.db")
	}
}

// ScansDir is where scan observation snapshots are written.
func (c *Config) ScansDir() string { return filepath.Join(c.DataDir, "scans") }

// AlertsDir is where alert records are persisted.
func (c *Config) AlertsDir() string { return filepath.Join(c.DataDir, "alerts") }

// ResponsesDir is where response action snapshots are written.
func (c *Config) ResponsesDir() string { return filepath.Join(c.DataDir, "responses") }

func (c *Config) applyFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	var fc fileConfig
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return err
	}
	if fc.DataDir != "" {
		c.DataDir = fc.DataDir
	}
	if fc.ModelStatePath != "" {
		c.ModelStatePath = fc.ModelStatePath
	}
	if fc.AuditLogPath != "" {
		c.AuditLogPath = fc.AuditLogPath
	}
	if fc.CatalogPath != nil {
		c.CatalogPath = *fc.CatalogPath
		c.catalogSet = true
	}
	if len(fc.Targets) > 0 {
		c.Targets = fc.Targets
	}
	if fc.Model != "" {
		c.Model = fc.Model
	}
	if fc.Addr != "" {
		c.Addr = fc.Addr
	}
	if fc.APIKeyHash != "" {
		c.APIKeyHash = fc.APIKeyHash
	}
	if fc.UseNmap {
		c.UseNmap = true
	}
	if fc.CycleInterval != "" {
		d, err := time.ParseDuration(fc.CycleInterval)
		if err != nil {
			return err
		}
		c.CycleInterval = d
	}
	return nil
}

// configFileArg finds a -config/--config argument before flag.Parse runs.
func configFileArg() string {
	args := os.Args[1:]
	for i, arg := range args {
		switch {
		case arg == "-config" || arg == "--config":
			if i+1 < len(args) {
				return args[i+1]
			}
		case strings.HasPrefix(arg, "-config="):
			return strings.TrimPrefix(arg, "-config=")
		case strings.HasPrefix(arg, "--config="):
			return strings.TrimPrefix(arg, "--config=")
		}
	}
	return ""
}

func parseTargets(s string) []string {
	var targets []string
	for _, p := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			targets = append(targets, trimmed)
		}
	}
	return targets
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	if value, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return fallback
}

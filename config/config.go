package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"

	"github.com/mezonai/syncstate/jsonx"
	"github.com/mezonai/syncstate/logx"
	"github.com/mezonai/syncstate/store"
)

const (
	DefaultStorageType    = "leveldb"
	DefaultDataDir        = "./data/syncstate"
	DefaultRedisAddr      = "localhost:6379"
	DefaultLogLevel       = "info"
	DefaultMetricsAddress = ":9100"
)

// Default returns a config with every field set to its default.
// Log settings come from LOGFILE, LOGFILE_MAX_SIZE_MB, LOGFILE_MAX_AGE_DAYS and LOG_LEVEL when set.
func Default() *NodeConfig {
	cfg := &NodeConfig{}
	cfg.applyDefaults()
	return cfg
}

func (c *NodeConfig) applyDefaults() {
	if c.Storage.Type == "" {
		c.Storage.Type = DefaultStorageType
	}
	if c.Storage.Directory == "" {
		c.Storage.Directory = DefaultDataDir
	}
	if c.Storage.RedisAddr == "" {
		c.Storage.RedisAddr = DefaultRedisAddr
	}

	env := logx.ConfigFromEnv()
	if c.Log.File == "" {
		c.Log.File = env.Filename
	}
	if c.Log.MaxSizeMB == 0 {
		c.Log.MaxSizeMB = env.MaxSizeMB
	}
	if c.Log.MaxAgeDays == 0 {
		c.Log.MaxAgeDays = env.MaxAgeDays
	}
	if c.Log.Level == "" {
		c.Log.Level = env.Level
	}
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Metrics.ListenAddr == "" {
		c.Metrics.ListenAddr = DefaultMetricsAddress
	}
}

// Load reads a config file, YAML for .yml/.yaml, JSON for .json and INI for .ini, and applies defaults
func Load(path string) (*NodeConfig, error) {
	var (
		cfg *NodeConfig
		err error
	)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yml", ".yaml":
		cfg, err = loadYAML(path)
	case ".json":
		cfg, err = loadJSON(path)
	case ".ini":
		cfg, err = loadINI(path)
	default:
		return nil, errors.Errorf("unsupported config file extension: %s", path)
	}
	if err != nil {
		return nil, err
	}

	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrapf(err, "invalid config %s", path)
	}
	logx.Info("CONFIG", "Loaded config from ", path, ": storage=", cfg.Storage.Type, " directory=", cfg.Storage.Directory)
	return cfg, nil
}

func loadYAML(path string) (*NodeConfig, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to open config")
	}
	defer file.Close()

	var cfgFile ConfigFile
	if err := yaml.NewDecoder(file).Decode(&cfgFile); err != nil {
		return nil, errors.Wrap(err, "failed to decode YAML config")
	}
	return &cfgFile.Config, nil
}

func loadJSON(path string) (*NodeConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to read config")
	}

	var cfgFile ConfigFile
	if err := jsonx.Unmarshal(data, &cfgFile); err != nil {
		return nil, errors.Wrap(err, "failed to decode JSON config")
	}
	return &cfgFile.Config, nil
}

func loadINI(path string) (*NodeConfig, error) {
	file, err := ini.Load(path)
	if err != nil {
		return nil, errors.Wrap(err, "failed to load INI config")
	}

	cfg := &NodeConfig{}
	sections := map[string]interface{}{
		"storage": &cfg.Storage,
		"log":     &cfg.Log,
		"metrics": &cfg.Metrics,
	}
	for name, target := range sections {
		if err := file.Section(name).MapTo(target); err != nil {
			return nil, errors.Wrapf(err, "failed to map [%s] section", name)
		}
	}
	return cfg, nil
}

// Validate checks the storage section against the available backends
func (c *NodeConfig) Validate() error {
	storeCfg := c.StoreConfig()
	return storeCfg.Validate()
}

// StoreConfig converts the storage section for store.OpenDatabase
func (c *NodeConfig) StoreConfig() *store.StoreConfig {
	return &store.StoreConfig{
		Type:      store.StoreType(strings.ToLower(c.Storage.Type)),
		Directory: c.Storage.Directory,
		RedisAddr: c.Storage.RedisAddr,
		RedisDB:   c.Storage.RedisDB,
	}
}

// LogConfig converts the log section for logx.Init
func (c *NodeConfig) LogConfig() logx.LogConfig {
	return logx.LogConfig{
		Filename:   c.Log.File,
		MaxSizeMB:  c.Log.MaxSizeMB,
		MaxAgeDays: c.Log.MaxAgeDays,
		Level:      c.Log.Level,
	}
}

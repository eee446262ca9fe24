package config

// StorageSection selects and locates the database backend
type StorageSection struct {
	Type      string `yaml:"type" json:"type" ini:"type"`
	Directory string `yaml:"directory" json:"directory" ini:"directory"`
	RedisAddr string `yaml:"redis_addr" json:"redis_addr" ini:"redis_addr"`
	RedisDB   int    `yaml:"redis_db" json:"redis_db" ini:"redis_db"`
}

// LogSection configures the rotating file logger
type LogSection struct {
	File       string `yaml:"file" json:"file" ini:"file"`
	MaxSizeMB  int    `yaml:"max_size_mb" json:"max_size_mb" ini:"max_size_mb"`
	MaxAgeDays int    `yaml:"max_age_days" json:"max_age_days" ini:"max_age_days"`
	Level      string `yaml:"level" json:"level" ini:"level"`
}

// MetricsSection configures the Prometheus endpoint
type MetricsSection struct {
	Enabled    bool   `yaml:"enabled" json:"enabled" ini:"enabled"`
	ListenAddr string `yaml:"listen_addr" json:"listen_addr" ini:"listen_addr"`
}

// NodeConfig holds everything the sync state tooling reads from disk
type NodeConfig struct {
	Storage StorageSection `yaml:"storage" json:"storage"`
	Log     LogSection     `yaml:"log" json:"log"`
	Metrics MetricsSection `yaml:"metrics" json:"metrics"`
}

// ConfigFile is the top-level structure of a YAML or JSON config file
type ConfigFile struct {
	Config NodeConfig `yaml:"config" json:"config"`
}

package cmd

import (
	"fmt"
	"os"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/mezonai/syncstate/config"
	"github.com/mezonai/syncstate/db"
	"github.com/mezonai/syncstate/jsonx"
	"github.com/mezonai/syncstate/logx"
	"github.com/mezonai/syncstate/store"
)

var (
	configPath string
	database   string
	dataDir    string
	logFile    string
)

var rootCmd = &cobra.Command{
	Use:           "syncstate",
	Short:         "Inspect and edit the persisted sync state of a chain node",
	Long:          "Command line interface for reading and writing the syncing tips, sync block height and latest block stored in the meta column of a node database.",
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to config file (.yml, .yaml or .ini)")
	rootCmd.PersistentFlags().StringVar(&database, "database", "", "Database backend (leveldb, rocksdb, bbolt, redis or memory)")
	rootCmd.PersistentFlags().StringVarP(&dataDir, "data-dir", "d", "", "Database directory")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Log file, - for stderr")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logx.Error("CMD", "Command execution failed: ", err)
		rootCmd.PrintErrln("Error:", err)
		os.Exit(1)
	}
}

// loadConfiguration reads --config (or defaults) and applies flag overrides
func loadConfiguration(cmd *cobra.Command) (*config.NodeConfig, error) {
	cfg := config.Default()
	if configPath != "" {
		loaded, err := config.Load(configPath)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("database") {
		cfg.Storage.Type = database
	}
	if flags.Changed("data-dir") {
		cfg.Storage.Directory = dataDir
	}
	if flags.Changed("log-file") {
		cfg.Log.File = logFile
	}

	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return cfg, nil
}

func initializeLogger(cfg *config.NodeConfig) {
	if cfg.Log.File == "-" {
		logx.SetOutput(os.Stderr)
		logx.SetLevel(logx.ParseLevel(cfg.Log.Level))
		return
	}
	logx.Init(cfg.LogConfig())
}

// openMetaStore loads the configuration and opens the shared database.
// The returned handle must be closed by the caller.
func openMetaStore(cmd *cobra.Command) (db.ColumnFamilyDB, store.MetaStore, *config.NodeConfig, error) {
	cfg, err := loadConfiguration(cmd)
	if err != nil {
		return nil, nil, nil, err
	}
	initializeLogger(cfg)

	handle, metaStore, err := store.OpenMetaStore(cfg.StoreConfig())
	if err != nil {
		return nil, nil, nil, errors.Wrapf(err, "failed to open %s database", cfg.Storage.Type)
	}
	logx.Info("CMD", "Opened ", cfg.Storage.Type, " database at ", cfg.Storage.Directory)
	return handle, metaStore, cfg, nil
}

// withMetaStore opens the store, runs fn and closes the database
func withMetaStore(cmd *cobra.Command, fn func(ms store.MetaStore) error) error {
	handle, ms, _, err := openMetaStore(cmd)
	if err != nil {
		return err
	}
	defer func() {
		if err := handle.Close(); err != nil {
			logx.Error("CMD", "Failed to close database: ", err)
		}
	}()
	return fn(ms)
}

// withMetaColumn opens the database and runs fn on the raw meta column
func withMetaColumn(cmd *cobra.Command, fn func(col db.IterableProvider) error) error {
	handle, _, _, err := openMetaStore(cmd)
	if err != nil {
		return err
	}
	defer func() {
		if err := handle.Close(); err != nil {
			logx.Error("CMD", "Failed to close database: ", err)
		}
	}()

	col, err := handle.Column(db.ColumnMeta)
	if err != nil {
		return err
	}
	return fn(col)
}

func printJSON(cmd *cobra.Command, v interface{}) error {
	data, err := jsonx.MarshalIndent(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), string(data))
	return err
}

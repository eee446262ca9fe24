package cmd

import (
	"encoding/hex"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/mezonai/syncstate/db"
	"github.com/mezonai/syncstate/logx"
)

type rawEntry struct {
	Key   string `json:"key"`
	Value string `json:"value"`
	Size  int    `json:"size"`
}

func newRawEntry(key string, value []byte) rawEntry {
	return rawEntry{Key: key, Value: "0x" + hex.EncodeToString(value), Size: len(value)}
}

var rawCmd = &cobra.Command{
	Use:   "raw",
	Short: "Inspect or repair the undecoded values of the meta column",
	Long: `Work on the bytes stored in the meta column without decoding them.
Use "raw delete" to drop a corrupt value so the field falls back to its default.`,
}

var rawListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print every key of the meta column with its value as hex",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMetaColumn(cmd, func(col db.IterableProvider) error {
			entries := []rawEntry{}
			err := col.IteratePrefix(nil, func(key, value []byte) bool {
				entries = append(entries, newRawEntry(string(key), value))
				return true
			})
			if err != nil {
				return errors.Wrap(err, "failed to iterate meta column")
			}
			return printJSON(cmd, entries)
		})
	},
}

var rawGetCmd = &cobra.Command{
	Use:   "get <key>...",
	Short: "Print the raw values of the given meta keys, missing keys are omitted",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMetaColumn(cmd, func(col db.IterableProvider) error {
			keys := make([][]byte, len(args))
			for i, arg := range args {
				keys[i] = []byte(arg)
			}

			values, err := col.GetBatch(keys)
			if err != nil {
				return errors.Wrap(err, "failed to read meta keys")
			}

			entries := []rawEntry{}
			for _, arg := range args {
				if value, ok := values[arg]; ok {
					entries = append(entries, newRawEntry(arg, value))
				}
			}
			return printJSON(cmd, entries)
		})
	},
}

var rawDeleteCmd = &cobra.Command{
	Use:   "delete <key>...",
	Short: "Delete meta keys in one batch, unknown keys are reported and skipped",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMetaColumn(cmd, func(col db.IterableProvider) error {
			batch := col.Batch()
			defer batch.Close()

			deleted := []string{}
			for _, key := range args {
				has, err := col.Has([]byte(key))
				if err != nil {
					return errors.Wrapf(err, "failed to check key %s", key)
				}
				if !has {
					logx.Warn("CMD", "Meta key not found: ", key)
					continue
				}
				batch.Delete([]byte(key))
				deleted = append(deleted, key)
			}

			if len(deleted) > 0 {
				if err := batch.Write(); err != nil {
					return errors.Wrap(err, "failed to delete meta keys")
				}
				logx.Info("CMD", "Deleted meta keys: ", deleted)
			}
			return printJSON(cmd, deleted)
		})
	},
}

func init() {
	rawCmd.AddCommand(rawListCmd, rawGetCmd, rawDeleteCmd)
	rootCmd.AddCommand(rawCmd)
}

package cmd

import (
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/mezonai/syncstate/logx"
	"github.com/mezonai/syncstate/store"
	"github.com/mezonai/syncstate/types"
)

type latestBlockOutput struct {
	Hash   types.Felt `json:"hash"`
	Number uint64     `json:"number"`
}

type syncStateOutput struct {
	SyncingTips      []types.Hash       `json:"syncing_tips"`
	CurrentSyncBlock uint64             `json:"current_sync_block"`
	LatestBlock      *latestBlockOutput `json:"latest_block"`
}

var tipsCmd = &cobra.Command{
	Use:   "tips",
	Short: "Read or overwrite the syncing tips",
}

var tipsGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the syncing tips",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMetaStore(cmd, func(ms store.MetaStore) error {
			tips, err := ms.CurrentSyncingTips()
			if err != nil {
				return err
			}
			return printJSON(cmd, tips)
		})
	},
}

var tipsSetCmd = &cobra.Command{
	Use:   "set [hash...]",
	Short: "Overwrite the syncing tips, no hash clears them",
	Long: `Overwrite the syncing tips with the given hashes, in the given order.
Hashes are 0x-prefixed hex or base58. Without arguments the tips are cleared.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		tips := make([]types.Hash, 0, len(args))
		for _, arg := range args {
			h, err := types.HashFromString(arg)
			if err != nil {
				return errors.Wrapf(err, "invalid tip %q", arg)
			}
			tips = append(tips, h)
		}

		return withMetaStore(cmd, func(ms store.MetaStore) error {
			if err := ms.WriteCurrentSyncingTips(tips); err != nil {
				return err
			}
			logx.Info("CMD", "Wrote ", len(tips), " syncing tips")
			return nil
		})
	},
}

var syncBlockCmd = &cobra.Command{
	Use:   "sync-block",
	Short: "Read or overwrite the current sync block height",
}

var syncBlockGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the current sync block height",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMetaStore(cmd, func(ms store.MetaStore) error {
			height, err := ms.CurrentSyncBlock()
			if err != nil {
				return err
			}
			return printJSON(cmd, height)
		})
	},
}

var syncBlockSetCmd = &cobra.Command{
	Use:   "set <height>",
	Short: "Overwrite the current sync block height",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		height, err := strconv.ParseUint(args[0], 10, 64)
		if err != nil {
			return errors.Wrapf(err, "invalid height %q", args[0])
		}

		return withMetaStore(cmd, func(ms store.MetaStore) error {
			return ms.SetCurrentSyncBlock(height)
		})
	},
}

var latestCmd = &cobra.Command{
	Use:   "latest",
	Short: "Read or overwrite the latest block hash and number",
}

var latestGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the latest block hash and number",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMetaStore(cmd, func(ms store.MetaStore) error {
			hash, number, err := ms.LatestBlockHashAndNumber()
			if err != nil {
				return err
			}
			return printJSON(cmd, latestBlockOutput{Hash: hash, Number: number})
		})
	},
}

var latestSetCmd = &cobra.Command{
	Use:   "set <hash> <number>",
	Short: "Overwrite the latest block hash and number",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		hash, err := types.FeltFromHex(args[0])
		if err != nil {
			return errors.Wrapf(err, "invalid block hash %q", args[0])
		}
		number, err := strconv.ParseUint(args[1], 10, 64)
		if err != nil {
			return errors.Wrapf(err, "invalid block number %q", args[1])
		}

		return withMetaStore(cmd, func(ms store.MetaStore) error {
			return ms.SetLatestBlockHashAndNumber(hash, number)
		})
	},
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Print the whole sync state",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withMetaStore(cmd, func(ms store.MetaStore) error {
			state, err := readSyncState(ms)
			if err != nil {
				return err
			}
			return printJSON(cmd, state)
		})
	},
}

// readSyncState reads all three fields. An uninitialized latest block is reported as nil.
func readSyncState(ms store.MetaStore) (*syncStateOutput, error) {
	tips, err := ms.CurrentSyncingTips()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read syncing tips")
	}
	height, err := ms.CurrentSyncBlock()
	if err != nil {
		return nil, errors.Wrap(err, "failed to read sync block")
	}

	state := &syncStateOutput{
		SyncingTips:      tips,
		CurrentSyncBlock: height,
	}

	hash, number, err := ms.LatestBlockHashAndNumber()
	switch {
	case err == nil:
		state.LatestBlock = &latestBlockOutput{Hash: hash, Number: number}
	case errors.Is(err, store.ErrValueNotInitialized):
	default:
		return nil, errors.Wrap(err, "failed to read latest block")
	}

	return state, nil
}

func init() {
	tipsCmd.AddCommand(tipsGetCmd, tipsSetCmd)
	syncBlockCmd.AddCommand(syncBlockGetCmd, syncBlockSetCmd)
	latestCmd.AddCommand(latestGetCmd, latestSetCmd)
	rootCmd.AddCommand(tipsCmd, syncBlockCmd, latestCmd, showCmd)
}

package store

// Keys of entries in the meta column
const (
	KeyCurrentSyncingTips       = "CURRENT_SYNCING_TIPS"
	KeyCurrentSyncBlock         = "CURRENT_SYNC_BLOCK"
	KeyLatestBlockHashAndNumber = "LATEST_BLOCK_HASH_AND_NUMBER"
)

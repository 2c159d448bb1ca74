package bot

import "dropmail/core/telegram/state"

// Conversation states. One value per user; everything else is idle.
const (
	// StateAwaitingName waits for the local part of a named address.
	StateAwaitingName state.State = "awaiting_name"
	// StateAwaitingBlockTarget waits for the admin to name a user to block.
	StateAwaitingBlockTarget state.State = "awaiting_block_target"
	// StateAwaitingUnblockTarget waits for the admin to name a user to unblock.
	StateAwaitingUnblockTarget state.State = "awaiting_unblock_target"
)

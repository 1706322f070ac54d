// Package lifecycle holds shared timing constants for process start and stop hooks.
package lifecycle

import "time"

// DefaultTimeout bounds start hooks (database ping) and graceful shutdown of servers.
const DefaultTimeout = 15 * time.Second

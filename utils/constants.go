// File: utils/constants.go
package utils

import "time"

// SessionCachePrefix is the prefix used for Redis wizard session keys.
const SessionCachePrefix = "wizard:"

// SessionCacheTTL is the time-to-live for an in-progress booking session.
const SessionCacheTTL = 30 * time.Minute

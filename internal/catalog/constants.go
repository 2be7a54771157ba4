package catalog

// CacheSize bounds the per-rarity ID list cache. There are only six
// rarities; the headroom covers design-specific sub-catalogs if they ever
// get their own entries.
const CacheSize = 32

// Error message string constants
const (
	ErrMsgListCardsFailed  = "failed to list cards for rarity %s: %w"
	ErrMsgCountCardsFailed = "failed to count cards: %w"
)

// Log message constants
const (
	LogMsgCatalogValidated = "Card catalog validated"
	LogMsgCacheRefreshed   = "Card ID cache refreshed"
)

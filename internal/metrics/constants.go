package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Engine metric names
const (
	MetricNamePacksOpened          = "packs_opened_total"
	MetricNameRarityRolls          = "rarity_rolls_total"
	MetricNameHoloRolls            = "holo_rolls_total"
	MetricNamePityTriggers         = "pity_triggers_total"
	MetricNameRateLimitBlocks      = "rate_limit_blocks_total"
	MetricNameRateLimitBurstUses   = "rate_limit_burst_uses_total"
	MetricNameViolationsRecorded   = "violations_recorded_total"
	MetricNameStandingTransitions  = "standing_transitions_total"
	MetricNamePackVerifications    = "pack_verifications_total"
	MetricNameLedgerWriteFailures  = "ledger_write_failures_total"
	MetricNameSeedRotations        = "seed_rotations_total"
	MetricNamePackAssemblyDuration = "pack_assembly_duration_seconds"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Engine metric help text
const (
	HelpTextPacksOpened          = "Total number of packs opened"
	HelpTextRarityRolls          = "Total number of rarity rolls by outcome"
	HelpTextHoloRolls            = "Total number of holo rolls by variant"
	HelpTextPityTriggers         = "Total number of soft/hard pity activations"
	HelpTextRateLimitBlocks      = "Total number of requests blocked by the rate limiter"
	HelpTextRateLimitBurstUses   = "Total number of requests admitted on burst allowance"
	HelpTextViolationsRecorded   = "Total number of security violations recorded"
	HelpTextStandingTransitions  = "Total number of account standing transitions"
	HelpTextPackVerifications    = "Total number of audit verifications by result"
	HelpTextLedgerWriteFailures  = "Total number of violation ledger write failures"
	HelpTextSeedRotations        = "Total number of server seed rotations"
	HelpTextPackAssemblyDuration = "Pack assembly latency in seconds"
)

// ============================================================================
// Label Names
// ============================================================================

const (
	LabelMethod   = "method"
	LabelPath     = "path"
	LabelStatus   = "status"
	LabelType     = "type"
	LabelPackType = "pack_type"
	LabelRarity   = "rarity"
	LabelVariant  = "variant"
	LabelTier     = "tier"
	LabelKind     = "kind"
	LabelAction   = "action"
	LabelSeverity = "severity"
	LabelState    = "state"
	LabelResult   = "result"
)

// ============================================================================
// Buckets
// ============================================================================

// HTTPLatencyBuckets covers the expected HTTP latency range
var HTTPLatencyBuckets = []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5}

// AssemblyLatencyBuckets covers the expected pack assembly range (no I/O but
// catalog lookups and pity persistence sit on the path)
var AssemblyLatencyBuckets = []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25}

package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Engine Metrics
var (
	PacksOpened = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePacksOpened,
			Help: HelpTextPacksOpened,
		},
		[]string{LabelPackType, LabelRarity},
	)

	RarityRolls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRarityRolls,
			Help: HelpTextRarityRolls,
		},
		[]string{LabelRarity},
	)

	HoloRolls = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHoloRolls,
			Help: HelpTextHoloRolls,
		},
		[]string{LabelVariant},
	)

	// PityTriggers labels: tier = protected rarity, kind = soft|hard
	PityTriggers = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePityTriggers,
			Help: HelpTextPityTriggers,
		},
		[]string{LabelTier, LabelKind},
	)

	RateLimitBlocks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRateLimitBlocks,
			Help: HelpTextRateLimitBlocks,
		},
		[]string{LabelAction},
	)

	RateLimitBurstUses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameRateLimitBurstUses,
			Help: HelpTextRateLimitBurstUses,
		},
		[]string{LabelAction},
	)

	ViolationsRecorded = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameViolationsRecorded,
			Help: HelpTextViolationsRecorded,
		},
		[]string{LabelType, LabelSeverity},
	)

	StandingTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameStandingTransitions,
			Help: HelpTextStandingTransitions,
		},
		[]string{LabelState},
	)

	PackVerifications = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePackVerifications,
			Help: HelpTextPackVerifications,
		},
		[]string{LabelResult},
	)

	LedgerWriteFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameLedgerWriteFailures,
			Help: HelpTextLedgerWriteFailures,
		},
	)

	SeedRotations = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameSeedRotations,
			Help: HelpTextSeedRotations,
		},
	)

	PackAssemblyDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNamePackAssemblyDuration,
			Help:    HelpTextPackAssemblyDuration,
			Buckets: AssemblyLatencyBuckets,
		},
		[]string{LabelPackType},
	)
)

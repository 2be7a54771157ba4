package worker

// ============================================================================
// Log Messages - Worker Pool
// ============================================================================

// LogMsgWorkerJobFailed is logged when a worker fails to process a job
const LogMsgWorkerJobFailed = "Worker job failed"

// ============================================================================
// Log Messages - Retention Job
// ============================================================================

// Log messages for ledger and feed retention cleanup
const (
	LogMsgRetentionStarting  = "Retention cleanup starting"
	LogMsgRetentionCompleted = "Retention cleanup completed"
	LogMsgViolationCleanupFailed = "Violation ledger cleanup failed"
	LogMsgEventCleanupFailed     = "Security event feed cleanup failed"
)

package database

import "time"

// Database Connection Pool Constants
const (
	// DefaultMinConnections keeps a couple of warm connections so the first
	// draw after an idle stretch does not pay the connect handshake
	DefaultMinConnections = 2

	// DefaultPingTimeout bounds the startup reachability check
	DefaultPingTimeout = 5 * time.Second
)

// Error Messages - Database Operations
const (
	ErrMsgFailedToParseConnString  = "failed to parse connection string"
	ErrMsgFailedToCreatePool       = "failed to create connection pool"
	ErrMsgFailedToPingDatabase     = "failed to ping database"
	ErrMsgFailedToOpenForMigration = "failed to open database for migration"
	ErrMsgFailedToSetDialect       = "failed to set migration dialect"
	ErrMsgFailedToMigrate          = "failed to apply migrations"
)

// Log Messages
const (
	LogMsgSuccessfullyConnectedToDatabase = "Successfully connected to the database"
)

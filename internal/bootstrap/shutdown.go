package bootstrap

import (
	"context"
	"log/slog"

	"github.com/dadddeck/pack-engine/internal/server"
)

// GracefulShutdown stops the HTTP server, letting in-flight draws finish.
// Pity writes happen inside the request lifecycle, so once the server has
// drained there is nothing else to flush.
func GracefulShutdown(ctx context.Context, srv *server.Server) {
	slog.Info(LogMsgShuttingDownServer)

	if err := srv.Stop(ctx); err != nil {
		slog.Error(LogMsgServerForcedShutdown, "error", err)
	}

	slog.Info(LogMsgServerStopped)
}

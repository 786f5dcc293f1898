package db

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// scoresChannel is the NOTIFY channel fired by the scores table trigger, so
// standings pushed to dashboards stay live even when rows are changed by
// something other than this process (a migration, a manual fix in psql).
const scoresChannel = "scores_changed"

const (
	listenerMinReconnect = 10 * time.Second
	listenerMaxReconnect = time.Minute
	listenerPingInterval = 90 * time.Second
)

type scoresChangedPayload struct {
	TournamentID uuid.UUID `json:"tournament_id"`
}

// ScoresListener subscribes to the scores change feed and invokes the handler
// with the affected tournament id.
type ScoresListener struct {
	listener *pq.Listener
	handler  func(tournamentID uuid.UUID)
	logger   *slog.Logger
}

func NewScoresListener(dsn string, handler func(tournamentID uuid.UUID), logger *slog.Logger) (*ScoresListener, error) {
	listener := pq.NewListener(dsn, listenerMinReconnect, listenerMaxReconnect,
		func(event pq.ListenerEventType, err error) {
			if err != nil {
				logger.Error("scores listener connection event",
					slog.Int("event", int(event)), slog.Any("error", err))
			}
		})
	if err := listener.Listen(scoresChannel); err != nil {
		listener.Close()
		return nil, fmt.Errorf("failed to listen on %s: %w", scoresChannel, err)
	}
	return &ScoresListener{
		listener: listener,
		handler:  handler,
		logger:   logger,
	}, nil
}

// Run blocks until the context is cancelled, dispatching notifications as
// they arrive. Periodic pings keep the connection from going stale behind
// quiet load balancers.
func (l *ScoresListener) Run(ctx context.Context) {
	defer l.listener.Close()

	ping := time.NewTicker(listenerPingInterval)
	defer ping.Stop()

	for {
		select {
		case <-ctx.Done():
			return

		case notification := <-l.listener.Notify:
			if notification == nil {
				// Reconnect; pq re-establishes the LISTEN itself.
				continue
			}
			var payload scoresChangedPayload
			if err := json.Unmarshal([]byte(notification.Extra), &payload); err != nil {
				l.logger.Warn("ignoring malformed scores notification",
					slog.String("payload", notification.Extra), slog.Any("error", err))
				continue
			}
			l.handler(payload.TournamentID)

		case <-ping.C:
			if err := l.listener.Ping(); err != nil {
				l.logger.Error("scores listener ping failed", slog.Any("error", err))
			}
		}
	}
}

package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/sourcegraph/conc"
	"go.uber.org/zap"

	"github.com/lennoxmeldrum/mongol-atlas/internal/domain"
	"github.com/lennoxmeldrum/mongol-atlas/internal/history"
	"github.com/lennoxmeldrum/mongol-atlas/internal/metrics"
	"github.com/lennoxmeldrum/mongol-atlas/internal/timeline"
)

const wsWriteWait = 10 * time.Second

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// timelineCommand is a client-issued timeline transition.
type timelineCommand struct {
	Type string `json:"type"` // set_year, toggle_play, jump_event, clear_selection
	Year int    `json:"year,omitempty"`
}

// timelineUpdate is the state snapshot pushed after every transition
// and tick.
type timelineUpdate struct {
	Type          string                   `json:"type"`
	Year          int                      `json:"year"`
	Playing       bool                     `json:"playing"`
	SelectedEvent *domain.HistoricalEvent  `json:"selected_event,omitempty"`
	ActiveEvents  []domain.HistoricalEvent `json:"active_events"`
}

func newTimelineUpdate(st timeline.State) timelineUpdate {
	return timelineUpdate{
		Type:          "state",
		Year:          st.Year,
		Playing:       st.Playing,
		SelectedEvent: st.SelectedEvent,
		ActiveEvents:  history.ActiveEvents(st.Year),
	}
}

// TimelineWS gives each connection its own timeline: a controller
// driven by a tick runner whose schedule is torn down with the
// connection. Commands come in over the socket; snapshots go out after
// every transition.
func TimelineWS(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.Warn("timeline upgrade failed", zap.Error(err))
			return
		}

		defer conn.Close()

		metrics.TimelineConnections.Inc()
		defer metrics.TimelineConnections.Dec()

		runner := timeline.NewRunner(timeline.NewController(), timeline.TickInterval)
		var wg conc.WaitGroup
		// Teardown order: stop the tick schedule, then wait for the
		// writer to drain.
		defer wg.Wait()
		defer runner.Close()

		wg.Go(func() {
			for st := range runner.Updates() {
				data, err := json.Marshal(newTimelineUpdate(st))
				if err != nil {
					logger.Warn("failed to marshal timeline state", zap.Error(err))
					continue
				}
				conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
				if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
					conn.Close()
					return
				}
			}
		})

		// Initial snapshot so the client paints before interacting.
		runner.Do(func(ctrl *timeline.Controller) timeline.State { return ctrl.State() })

		for {
			_, payload, err := conn.ReadMessage()
			if err != nil {
				return
			}

			var cmd timelineCommand
			if err := json.Unmarshal(payload, &cmd); err != nil {
				logger.Debug("discarding malformed timeline command", zap.Error(err))
				continue
			}

			switch cmd.Type {
			case "set_year":
				runner.SetYear(cmd.Year)
			case "toggle_play":
				runner.TogglePlay()
			case "jump_event":
				if ev, ok := history.EventByYear(cmd.Year); ok {
					runner.Do(func(ctrl *timeline.Controller) timeline.State {
						return ctrl.JumpToEvent(ev)
					})
				} else {
					runner.SetYear(cmd.Year)
				}
			case "clear_selection":
				runner.Do(func(ctrl *timeline.Controller) timeline.State {
					return ctrl.ClearSelection()
				})
			default:
				logger.Debug("unknown timeline command", zap.String("type", cmd.Type))
			}
		}
	}
}

package chi

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/later-app/laterd/internal/metrics"
	"github.com/later-app/laterd/internal/usecase/livesearch"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 4096,
	// Cross-origin policy is enforced by the gateway in front of this
	// service, not here.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// liveFrame is one client-to-server message on a live search session.
type liveFrame struct {
	Type   string    `json:"type"` // input, filters, filters_reset, clear
	Phrase string    `json:"phrase,omitempty"`
	Kinds  *[]string `json:"kinds,omitempty"`
	Tags   []string  `json:"tags,omitempty"`
}

// stateFrame is one server-to-client state snapshot.
type stateFrame struct {
	Type    string             `json:"type"` // state
	Status  string             `json:"status"`
	Results []searchResultItem `json:"results"`
	Error   string             `json:"error,omitempty"`
}

// LiveSearch handles GET /api/v1/search/live: a WebSocket session that
// debounces the client's keystrokes server-side and streams state
// snapshots back. One controller per connection.
func (s *Server) LiveSearch(w http.ResponseWriter, r *http.Request) {
	ownerID, ok := OwnerFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, codeUnauthorized, "missing user identity")
		return
	}
	spaceID := strings.TrimSpace(r.URL.Query().Get("space_id"))
	if spaceID == "" {
		writeError(w, http.StatusBadRequest, codeValidationFailed, "space_id query parameter is required")
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	sessionID := uuid.NewString()
	log := s.logger.With(
		zap.String("session_id", sessionID),
		zap.String("space_id", spaceID),
	)
	log.Info("live search session opened")
	metrics.LiveSessionsActive.Inc()

	controller := livesearch.NewController(s.search, ownerID, spaceID).
		WithDebounce(s.debounce)
	states := controller.Subscribe()

	// The connection supports one concurrent writer, so every outbound
	// frame — state snapshots and input rejections alike — funnels
	// through this channel into a single write goroutine.
	frames := make(chan stateFrame, 16)
	writeDone := make(chan struct{})
	go func() {
		defer close(writeDone)
		for frame := range frames {
			if err := conn.WriteJSON(frame); err != nil {
				log.Debug("live session write failed", zap.Error(err))
				for range frames {
					// keep producers unblocked until the channel closes
				}
				return
			}
		}
	}()

	pumpDone := make(chan struct{})
	go func() {
		defer close(pumpDone)
		for state := range states {
			frames <- stateToFrame(state)
		}
	}()

	s.readLoop(conn, controller, frames, log)

	controller.Close()
	<-pumpDone
	close(frames)
	<-writeDone
	_ = conn.Close()
	metrics.LiveSessionsActive.Dec()
	log.Info("live search session closed")
}

// readLoop consumes client frames until the connection drops or a frame
// is malformed beyond recovery.
func (s *Server) readLoop(conn *websocket.Conn, controller *livesearch.Controller, frames chan<- stateFrame, log *zap.Logger) {
	for {
		var frame liveFrame
		if err := conn.ReadJSON(&frame); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				log.Debug("live session read failed", zap.Error(err))
			}
			return
		}

		var err error
		switch frame.Type {
		case "input":
			err = controller.SetPhrase(frame.Phrase)
		case "filters":
			err = s.applyFilters(controller, frame)
		case "filters_reset":
			err = controller.ResetFilters()
		case "clear":
			err = controller.Clear()
		default:
			log.Debug("ignoring unknown frame type", zap.String("type", frame.Type))
			continue
		}
		if err != nil {
			// Invalid input keeps the session alive; the client sees
			// the rejection as an error frame through the writer.
			frames <- stateFrame{
				Type:    "state",
				Status:  string(livesearch.StatusFailed),
				Results: []searchResultItem{},
				Error:   err.Error(),
			}
		}
	}
}

func (s *Server) applyFilters(controller *livesearch.Controller, frame liveFrame) error {
	if frame.Kinds != nil {
		kinds, err := kindsFromStrings(*frame.Kinds)
		if err != nil {
			return err
		}
		if err := controller.SetKinds(kinds); err != nil {
			return err
		}
	}
	if frame.Tags != nil {
		return controller.SetTags(frame.Tags)
	}
	return nil
}

func stateToFrame(state livesearch.State) stateFrame {
	frame := stateFrame{
		Type:    "state",
		Status:  string(state.Status),
		Results: resultsToItems(state.Results),
	}
	if state.Err != nil {
		frame.Error = safeDomainMessage(state.Err)
	}
	return frame
}

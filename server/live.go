package server

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/kaitj/nmind-proceedings/search"
)

const liveWriteTimeout = 10 * time.Second

// LiveResult is the reply to each query frame on the live search socket.
type LiveResult struct {
	Libraries []search.Listing `json:"libraries"`
	Error     string           `json:"error,omitempty"`
}

// handleLiveSearch answers every search.Query frame with a LiveResult, so a
// client can search on each keystroke over one connection.
func (s *Server) handleLiveSearch(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the error response.
		s.logger.Debug("websocket upgrade failed", map[string]any{"error": err})
		return
	}
	s.trackConn(conn, true)
	defer func() {
		s.trackConn(conn, false)
		_ = conn.Close()
	}()

	for {
		var q search.Query
		if err := conn.ReadJSON(&q); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.logger.Debug("live search read ended", map[string]any{"error": err})
			}
			return
		}

		res := LiveResult{Libraries: []search.Listing{}}
		libs, err := s.runQuery(q)
		if err != nil {
			res.Error = err.Error()
		} else {
			res.Libraries = search.NewListings(libs)
		}

		_ = conn.SetWriteDeadline(time.Now().Add(liveWriteTimeout))
		if err := conn.WriteJSON(res); err != nil {
			s.logger.Debug("live search write failed", map[string]any{"error": err})
			return
		}
	}
}

func (s *Server) trackConn(conn *websocket.Conn, add bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if add {
		s.conns[conn] = struct{}{}
	} else {
		delete(s.conns, conn)
	}
}

// closeLiveConns closes hijacked websocket connections, which Shutdown does not track.
func (s *Server) closeLiveConns() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.conns {
		_ = conn.Close()
	}
}

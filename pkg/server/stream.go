package server

import (
	"context"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/matzehuels/chaosgame/pkg/errors"
	"github.com/matzehuels/chaosgame/pkg/observability"
	"github.com/matzehuels/chaosgame/pkg/pipeline"
	"github.com/matzehuels/chaosgame/pkg/render"
)

const (
	writeWait = 10 * time.Second
	readWait  = 30 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 64 * 1024,
}

// StreamRequest is the first message a stream client sends.
type StreamRequest struct {
	pipeline.Options

	// Batch is the number of points per message.
	Batch int `json:"batch,omitempty"`
}

// StreamMessage is one server message on a stream.
type StreamMessage struct {
	Session string         `json:"session,omitempty"`
	Points  []render.Point `json:"points,omitempty"`
	Done    bool           `json:"done,omitempty"`
	Stuck   bool           `json:"stuck,omitempty"`
	Error   string         `json:"error,omitempty"`
}

func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.cfg.Logger.Debug("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	session := uuid.NewString()
	logger := s.cfg.Logger.With("session", session)

	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	start := time.Now()
	sent, err := s.stream(ctx, cancel, conn, session)
	observability.Emit(ctx, observability.Event{Op: observability.OpStream, Count: sent, Duration: time.Since(start), Err: err})
	if err != nil {
		logger.Debug("stream ended", "points", sent, "error", err)
		return
	}
	logger.Debug("stream finished", "points", sent, "duration", time.Since(start))
}

// stream runs one streaming session and returns the number of points sent.
func (s *Server) stream(ctx context.Context, cancel context.CancelFunc, conn *websocket.Conn, session string) (int, error) {
	_ = conn.SetReadDeadline(time.Now().Add(readWait))
	var req StreamRequest
	if err := conn.ReadJSON(&req); err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidInput, err, "read stream request")
	}
	_ = conn.SetReadDeadline(time.Time{})

	batch := req.Batch
	if batch <= 0 {
		batch = s.cfg.StreamBatch
	}
	batch = min(batch, MaxStreamBatch)

	opts := req.Options
	opts.Logger = s.cfg.Logger
	if err := opts.ValidateForGenerate(); err != nil {
		_ = s.send(conn, StreamMessage{Session: session, Done: true, Error: errors.UserMessage(err)})
		return 0, err
	}
	a, _, err := pipeline.NewAttractor(opts)
	if err != nil {
		_ = s.send(conn, StreamMessage{Session: session, Done: true, Error: errors.UserMessage(err)})
		return 0, err
	}

	// The client sends nothing after the request; a read error means it went away.
	go func() {
		defer cancel()
		for {
			if _, _, err := conn.NextReader(); err != nil {
				return
			}
		}
	}()

	sent := 0
	buf := make([]render.Point, 0, batch)
	for sent < opts.Points {
		if err := ctx.Err(); err != nil {
			return sent, errors.FromContext(err, "stream stopped")
		}

		buf = buf[:0]
		want := min(batch, opts.Points-sent)
		stuck := false
		for len(buf) < want {
			sample, ok := a.Step()
			if !ok {
				if a.Stuck() {
					stuck = true
					break
				}
				continue
			}
			buf = append(buf, render.FromSample(sample))
		}

		if len(buf) > 0 {
			if err := s.send(conn, StreamMessage{Session: session, Points: buf}); err != nil {
				return sent, err
			}
			sent += len(buf)
		}
		if stuck {
			return sent, s.send(conn, StreamMessage{Session: session, Done: true, Stuck: true})
		}
	}
	return sent, s.send(conn, StreamMessage{Session: session, Done: true})
}

func (s *Server) send(conn *websocket.Conn, msg StreamMessage) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(msg)
}

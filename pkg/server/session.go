package server

import (
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	ierr "github.com/alder-ui/alder/internal/errors"
	"github.com/alder-ui/alder/pkg/dom"
	"github.com/alder-ui/alder/pkg/engine"
	"github.com/alder-ui/alder/pkg/protocol"
	"github.com/alder-ui/alder/pkg/vdom"
)

var timeNow = time.Now

// Session is one live connection: an app instance whose commits stream
// to the client as patch frames and whose client events feed back into
// the live tree.
type Session struct {
	ID   string
	conn *websocket.Conn
	srv  *Server
	log  *slog.Logger

	handle *engine.Handle

	writeMu sync.Mutex
	seq     atomic.Uint64

	closeOnce sync.Once
	done      chan struct{}
}

func newSession(id string, conn *websocket.Conn, srv *Server) *Session {
	sess := &Session{
		ID:   id,
		conn: conn,
		srv:  srv,
		log:  srv.log.With("session_id", id),
		done: make(chan struct{}),
	}
	sess.handle = srv.app(
		engine.WithFramer(&engine.TickFramer{Interval: srv.config.FrameInterval}),
		engine.WithMetrics(srv.metrics),
		engine.WithLogger(sess.log),
		engine.WithPatchObserver(sess.sendPatches),
	)
	return sess
}

// run reads frames until the connection drops or the client asks to
// close. It blocks; the caller owns session registration around it.
func (sess *Session) run() {
	defer sess.Close()
	go sess.pingLoop()

	for {
		sess.conn.SetReadDeadline(timeNow().Add(sess.srv.config.IdleTimeout))
		_, msg, err := sess.conn.ReadMessage()
		if err != nil {
			return
		}

		frame, err := protocol.DecodeFrame(msg)
		if err != nil {
			sess.sendError(protocol.ErrBadFrame, "malformed frame")
			continue
		}

		switch frame.Type {
		case protocol.FrameEvent:
			sess.handleEvent(frame.Payload)
		case protocol.FrameControl:
			ctrl, err := protocol.DecodeControl(frame.Payload)
			if err != nil {
				sess.sendError(protocol.ErrBadFrame, "malformed control")
				continue
			}
			switch ctrl.Type {
			case protocol.ControlPing:
				sess.writeFrame(protocol.NewFrame(protocol.FrameControl,
					protocol.EncodeControl(&protocol.Control{Type: protocol.ControlPong, Seq: ctrl.Seq})))
			case protocol.ControlClose:
				return
			}
		default:
			// Clients only send events and control messages.
		}
	}
}

// handleEvent resolves the target path and fires the event into the
// live tree. Handlers dispatch into the app's update loop, and the
// resulting commit streams back through sendPatches.
func (sess *Session) handleEvent(payload []byte) {
	ev, err := protocol.DecodeEvent(payload)
	if err != nil {
		sess.log.Warn("event decode failed",
			"error", ierr.New("A100", ierr.CategoryProtocol, "decoding event").Wrap(err))
		sess.sendError(protocol.ErrBadEvent, "malformed event")
		return
	}

	if !sess.handle.Dispatch(ev.Path, dom.NewEvent(ev.Name, ev.Data)) {
		// Stale path: the client raced a commit. Harmless; it will
		// catch up with the next patch set.
		sess.log.Debug("event target gone", "event", ev.Name, "path", ev.Path)
		sess.sendError(protocol.ErrStalePath, "no node at path")
	}
}

// sendPatches converts one commit's patches to wire operations and
// streams them, splitting commits too large for one frame across
// several consecutive patch sets. Runs on the session's frame
// goroutine.
func (sess *Session) sendPatches(patches []vdom.Patch) {
	ops := wireOps(patches)
	if len(ops) == 0 {
		return
	}
	sets := protocol.SplitPatchSet(
		&protocol.PatchSet{Seq: sess.seq.Load() + 1, Ops: ops},
		protocol.MaxPayloadSize,
	)
	for _, set := range sets {
		sess.seq.Store(set.Seq)
		frame := protocol.NewFrame(protocol.FramePatches, protocol.EncodePatchSet(set))
		if err := sess.writeFrame(frame); err != nil {
			sess.log.Warn("patch write failed", "error", err)
			sess.Close()
			return
		}
	}
}

func (sess *Session) sendError(code protocol.ErrorCode, msg string) {
	frame := protocol.NewFrame(protocol.FrameError,
		protocol.EncodeError(&protocol.ErrorMessage{Code: code, Message: msg}))
	sess.writeFrame(frame)
}

// writeFrame serializes one frame onto the connection, refusing
// payloads the 2-byte length header cannot represent. Safe for
// concurrent use; gorilla connections allow one writer at a time.
func (sess *Session) writeFrame(frame *protocol.Frame) error {
	if len(frame.Payload) > protocol.MaxPayloadSize {
		return protocol.ErrFrameTooLarge
	}
	sess.writeMu.Lock()
	defer sess.writeMu.Unlock()
	sess.conn.SetWriteDeadline(timeNow().Add(sess.srv.config.WriteTimeout))
	w, err := sess.conn.NextWriter(websocket.BinaryMessage)
	if err != nil {
		return err
	}
	if err := protocol.WriteFrame(w, frame); err != nil {
		w.Close()
		return err
	}
	return w.Close()
}

func (sess *Session) pingLoop() {
	ticker := time.NewTicker(sess.srv.config.PingInterval)
	defer ticker.Stop()
	var seq uint64
	for {
		select {
		case <-sess.done:
			return
		case <-ticker.C:
			seq++
			err := sess.writeFrame(protocol.NewFrame(protocol.FrameControl,
				protocol.EncodeControl(&protocol.Control{Type: protocol.ControlPing, Seq: seq})))
			if err != nil {
				sess.Close()
				return
			}
		}
	}
}

// Close tears the session down. Idempotent.
func (sess *Session) Close() {
	sess.closeOnce.Do(func() {
		sess.writeFrame(protocol.NewFrame(protocol.FrameControl,
			protocol.EncodeControl(&protocol.Control{Type: protocol.ControlClose})))
		close(sess.done)
		sess.conn.Close()
	})
}

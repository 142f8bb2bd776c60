// ABOUTME: WebSocket server accepting note control messages
// ABOUTME: Decodes requests and dispatches them to a Conductor
package remote

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/Sendspin/notewave/internal/version"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// Path is the websocket endpoint
const Path = "/notewave"

const (
	writeDeadline = 10 * time.Second
	pingInterval  = 30 * time.Second
)

// Conductor carries out remote requests
type Conductor interface {
	Instruments() []string
	Trigger(instrument string) error
	// Start returns the selected slot, or ok false when nothing can sound
	Start(instrument string, pitch int, duration time.Duration) (slot int, ok bool, err error)
	Stop(instrument string) error
	Reset(instrument string) error
	Click()
	Signal(v int)
}

// Config holds server settings
type Config struct {
	Port   int
	Name   string
	Logger zerolog.Logger
}

// Server serves the note endpoint
type Server struct {
	config    Config
	conductor Conductor
	log       zerolog.Logger
	upgrader  websocket.Upgrader

	mu         sync.Mutex
	httpServer *http.Server
	listener   net.Listener
	conns      map[*websocket.Conn]struct{}
	wg         sync.WaitGroup
}

// NewServer creates a server dispatching to conductor
func NewServer(config Config, conductor Conductor) *Server {
	if config.Name == "" {
		config.Name = version.Product
	}
	return &Server{
		config:    config,
		conductor: conductor,
		log:       config.Logger.With().Str("component", "remote").Logger(),
		upgrader: websocket.Upgrader{
			// local network control surface
			CheckOrigin: func(r *http.Request) bool { return true },
		},
		conns: make(map[*websocket.Conn]struct{}),
	}
}

// Handler returns an http.Handler serving Path
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc(Path, s.handleWebSocket)
	return mux
}

// Start binds the port and serves in the background
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", s.config.Port))
	if err != nil {
		return fmt.Errorf("failed to listen: %w", err)
	}

	s.mu.Lock()
	s.listener = ln
	s.httpServer = &http.Server{Handler: s.Handler(), ReadHeaderTimeout: 5 * time.Second}
	srv := s.httpServer
	s.mu.Unlock()

	s.log.Info().Str("addr", ln.Addr().String()).Str("path", Path).Msg("remote server listening")

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.log.Error().Err(err).Msg("remote server failed")
		}
	}()
	return nil
}

// Addr returns the bound address, nil before Start
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.listener == nil {
		return nil
	}
	return s.listener.Addr()
}

// Shutdown stops accepting, closes open connections and waits for handlers
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	srv := s.httpServer
	for conn := range s.conns {
		conn.Close()
	}
	s.mu.Unlock()

	var err error
	if srv != nil {
		err = srv.Shutdown(ctx)
	}
	s.wg.Wait()
	return err
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	s.mu.Lock()
	s.conns[conn] = struct{}{}
	s.wg.Add(1)
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.conns, conn)
		s.mu.Unlock()
		conn.Close()
		s.wg.Done()
	}()

	s.log.Info().Str("remote", r.RemoteAddr).Msg("controller connected")
	s.handleConnection(conn)
	s.log.Info().Str("remote", r.RemoteAddr).Msg("controller disconnected")
}

func (s *Server) handleConnection(conn *websocket.Conn) {
	hello := Hello{
		Name:        s.config.Name,
		Version:     version.Version,
		Instruments: s.conductor.Instruments(),
	}
	if err := s.send(conn, TypeHello, hello); err != nil {
		s.log.Warn().Err(err).Msg("failed to send hello")
		return
	}

	done := make(chan struct{})
	defer close(done)
	go s.pinger(conn, done)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.log.Warn().Err(err).Msg("websocket read error")
			}
			return
		}

		ack := s.dispatch(data)
		if err := s.send(conn, TypeAck, ack); err != nil {
			s.log.Warn().Err(err).Msg("failed to send ack")
			return
		}
	}
}

func (s *Server) pinger(conn *websocket.Conn, done <-chan struct{}) {
	ticker := time.NewTicker(pingInterval)
	defer ticker.Stop()
	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeDeadline)); err != nil {
				return
			}
		}
	}
}

// dispatch decodes one request and runs it
func (s *Server) dispatch(data []byte) Ack {
	var msg Message
	if err := json.Unmarshal(data, &msg); err != nil {
		return Ack{Error: fmt.Sprintf("invalid message: %v", err)}
	}

	ack := Ack{Request: msg.Type}
	err := s.run(msg, &ack)
	if err != nil {
		ack.OK = false
		ack.Error = err.Error()
		s.log.Debug().Err(err).Str("type", msg.Type).Msg("request failed")
	}
	return ack
}

func (s *Server) run(msg Message, ack *Ack) error {
	switch msg.Type {
	case TypeNoteTrigger, TypeNoteStop, TypeNoteReset:
		var t Target
		if err := msg.Decode(&t); err != nil {
			return err
		}
		var err error
		switch msg.Type {
		case TypeNoteTrigger:
			err = s.conductor.Trigger(t.Instrument)
		case TypeNoteStop:
			err = s.conductor.Stop(t.Instrument)
		default:
			err = s.conductor.Reset(t.Instrument)
		}
		ack.OK = err == nil
		return err

	case TypeNoteStart:
		var n NoteStart
		if err := msg.Decode(&n); err != nil {
			return err
		}
		slot, ok, err := s.conductor.Start(n.Instrument, n.Pitch, time.Duration(n.DurationMs)*time.Millisecond)
		if err != nil {
			return err
		}
		ack.OK = ok
		if ok {
			ack.Slot = &slot
		}
		return nil

	case TypeHotspotClick:
		s.conductor.Click()
		ack.OK = true
		return nil

	case TypeHotspotSignal:
		var sig HotspotSignal
		if err := msg.Decode(&sig); err != nil {
			return err
		}
		s.conductor.Signal(sig.Value)
		ack.OK = true
		return nil
	}
	return fmt.Errorf("unknown message type %q", msg.Type)
}

func (s *Server) send(conn *websocket.Conn, msgType string, payload interface{}) error {
	msg, err := NewMessage(msgType, payload)
	if err != nil {
		return err
	}
	conn.SetWriteDeadline(time.Now().Add(writeDeadline))
	return conn.WriteJSON(msg)
}

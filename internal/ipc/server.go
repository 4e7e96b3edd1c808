package ipc

import (
	"bufio"
	"fmt"
	"io"
	"net"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/1broseidon/tdawm/internal/wm"
)

// Server answers status queries over a unix socket. It never touches the
// window manager state directly: the controller publishes snapshots and
// the server reads the latest one.
type Server struct {
	socketPath   string
	listener     net.Listener
	log          *zerolog.Logger
	snapshot     atomic.Pointer[wm.Snapshot]
	startTime    time.Time
	shuttingDown bool
	shutdownMu   sync.Mutex
	wg           sync.WaitGroup
}

// NewServer creates a server bound to socketPath once Start is called.
func NewServer(socketPath string, log *zerolog.Logger) *Server {
	return &Server{
		socketPath: socketPath,
		log:        log,
		startTime:  time.Now(),
	}
}

// Publish stores snap as the state reported to clients.
func (s *Server) Publish(snap wm.Snapshot) {
	s.snapshot.Store(&snap)
}

// Start begins listening for IPC connections
func (s *Server) Start() error {
	// Remove a stale socket left by a previous run.
	os.Remove(s.socketPath)

	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create IPC socket: %w", err)
	}
	s.listener = listener

	if err := os.Chmod(s.socketPath, 0600); err != nil {
		listener.Close()
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	s.log.Info().Str("socket", s.socketPath).Msg("IPC server listening")

	s.wg.Add(1)
	go s.acceptLoop()

	return nil
}

// SocketPath returns the path the server listens on.
func (s *Server) SocketPath() string {
	return s.socketPath
}

func (s *Server) acceptLoop() {
	defer s.wg.Done()
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.shutdownMu.Lock()
			done := s.shuttingDown
			s.shutdownMu.Unlock()
			if done {
				return
			}
			s.log.Warn().Err(err).Msg("IPC accept error")
			continue
		}

		go s.handleConnection(conn)
	}
}

// handleConnection serves one newline-terminated JSON request.
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()
	conn.SetDeadline(time.Now().Add(5 * time.Second))

	reader := bufio.NewReader(conn)
	data, err := reader.ReadBytes('\n')
	if err != nil && err != io.EOF {
		s.log.Debug().Err(err).Msg("IPC read error")
		return
	}

	var resp *Response
	req, err := ParseRequest(data)
	if err != nil {
		resp = NewErrorResponse(fmt.Sprintf("Invalid request: %v", err))
	} else {
		resp = s.handleCommand(req)
	}

	respData, err := resp.Marshal()
	if err != nil {
		s.log.Error().Err(err).Msg("failed to marshal IPC response")
		return
	}
	respData = append(respData, '\n')
	if _, err := conn.Write(respData); err != nil {
		s.log.Debug().Err(err).Msg("failed to send IPC response")
	}
}

func (s *Server) handleCommand(req *Request) *Response {
	s.log.Debug().Str("command", string(req.Command)).Msg("IPC request")
	switch req.Command {
	case CommandPing:
		resp, _ := NewOKResponse(nil)
		return resp
	case CommandGetStatus:
		return s.handleGetStatus()
	case CommandGetScreens:
		return s.handleGetScreens()
	default:
		return NewErrorResponse(fmt.Sprintf("Unknown command: %s", req.Command))
	}
}

func (s *Server) handleGetStatus() *Response {
	status := StatusData{
		UptimeSeconds: int64(time.Since(s.startTime).Seconds()),
		Running:       true,
	}
	if snap := s.snapshot.Load(); snap != nil {
		status.ActiveLayout = snap.Layout
		status.WindowCount = snap.Windows
		status.ScreenCount = len(snap.Screens)
	}

	resp, err := NewOKResponse(status)
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return resp
}

func (s *Server) handleGetScreens() *Response {
	snap := s.snapshot.Load()
	if snap == nil {
		return NewErrorResponse("window manager is not initialized")
	}

	resp, err := NewOKResponse(ScreensData{Screens: screensFromSnapshot(snap)})
	if err != nil {
		return NewErrorResponse(err.Error())
	}
	return resp
}

// Stop closes the listener, waits for the accept loop and removes the
// socket file.
func (s *Server) Stop() {
	s.shutdownMu.Lock()
	s.shuttingDown = true
	s.shutdownMu.Unlock()

	if s.listener != nil {
		s.listener.Close()
		s.wg.Wait()
	}
	os.Remove(s.socketPath)
}

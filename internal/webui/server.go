package webui

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gofrs/flock"

	"gifify/internal/config"
	"gifify/internal/convert"
	"gifify/internal/gifbuild"
	"gifify/internal/history"
	"gifify/internal/logging"
)

// Converter runs one conversion request; satisfied by convert.Converter.
type Converter interface {
	Convert(ctx context.Context, req gifbuild.Request) (convert.Result, error)
}

// Server hosts the local drag-and-drop interface.
type Server struct {
	cfg       *config.Config
	logger    *slog.Logger
	converter Converter
	store     *history.Store

	lock     *flock.Flock
	listener net.Listener
	server   *http.Server
}

// New constructs the web UI server. The history store may be nil.
func New(cfg *config.Config, logger *slog.Logger, converter Converter, store *history.Store) (*Server, error) {
	if cfg == nil {
		return nil, errors.New("config required")
	}
	if converter == nil {
		return nil, errors.New("converter required")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	srv := &Server{
		cfg:       cfg,
		logger:    logger,
		converter: converter,
		store:     store,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/", srv.handleIndex)
	mux.HandleFunc("/healthz", srv.handleHealthz)
	mux.HandleFunc("/api/deps", srv.handleDeps)
	mux.HandleFunc("/api/history", srv.handleHistory)
	mux.HandleFunc("/convert", srv.handleConvert)

	srv.server = &http.Server{
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
		// Conversions run inline with the request, so the write window has
		// to cover a full ffmpeg pass on a large upload.
		WriteTimeout: 10 * time.Minute,
		IdleTimeout:  60 * time.Second,
	}
	return srv, nil
}

// Start binds the listener and serves until ctx is cancelled. A file lock in
// the work directory keeps two servers from sharing scratch space.
func (s *Server) Start(ctx context.Context) error {
	lock := flock.New(filepath.Join(s.cfg.Paths.WorkDir, "webui.lock"))
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire ui lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("another gifify serve instance is already using %s", s.cfg.Paths.WorkDir)
	}
	s.lock = lock

	listener, err := net.Listen("tcp", s.cfg.Paths.UIBind)
	if err != nil {
		_ = lock.Unlock()
		return fmt.Errorf("ui listen: %w", err)
	}
	s.listener = listener

	go func() {
		if err := s.server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("ui server error", logging.Error(err))
		}
	}()

	go func() {
		<-ctx.Done()
		s.Stop()
	}()

	s.logger.Info("web ui listening", logging.String("address", listener.Addr().String()))
	return nil
}

// Stop shuts the server down and releases the work directory lock.
func (s *Server) Stop() {
	if s.server != nil {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = s.server.Shutdown(shutdownCtx)
	}
	if s.listener != nil {
		_ = s.listener.Close()
		s.listener = nil
	}
	if s.lock != nil {
		_ = s.lock.Unlock()
		s.lock = nil
	}
}

// Addr returns the bound listener address, or the configured bind before
// Start.
func (s *Server) Addr() string {
	if s.listener != nil {
		return s.listener.Addr().String()
	}
	return s.cfg.Paths.UIBind
}

// Handler exposes the HTTP handler for tests.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

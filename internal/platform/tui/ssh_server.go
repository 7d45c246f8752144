package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/highscore"
	"github.com/vovakirdan/tui-snake/internal/session"
	"github.com/vovakirdan/tui-snake/internal/storage"
)

// noticeBuffer bounds the undelivered notices of one connection.
const noticeBuffer = 16

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.snake/host_key.
	HostKeyPath string

	// DBPath is the session history database. ScoresPath is the shared
	// high-score file.
	DBPath     string
	ScoresPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// MaxSessions caps concurrent players. Zero means no limit.
	MaxSessions int

	// Settings are the defaults every player starts with. Edits made
	// in the Options screen last for the connection only.
	Settings config.Settings

	FPS int
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      storage.DefaultPath,
		ScoresPath:  highscore.DefaultPath(),
		IdleTimeout: 30 * time.Minute,
		MaxSessions: 32,
		Settings:    config.Default(),
	}
}

// SSHServer serves the game over SSH with Wish. All players share one
// high-score file, one history database and one session registry.
type SSHServer struct {
	config   SSHServerConfig
	server   *ssh.Server
	scores   *highscore.FileStore
	history  *storage.Store
	sessions *session.Registry
	logger   *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
// A nil logger logs to stderr.
func NewSSHServer(cfg SSHServerConfig, logger *log.Logger) (*SSHServer, error) {
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "snake-ssh",
		})
	}

	history, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open history database", "error", err)
		// Continue without history
	}

	srv := &SSHServer{
		config:   cfg,
		scores:   highscore.NewFileStore(cfg.ScoresPath),
		history:  history,
		sessions: session.NewRegistry(cfg.MaxSessions),
		logger:   logger,
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("ssh: cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".snake", "host_key")
	}
	if mkdirErr := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("ssh: cannot create host key directory: %w", mkdirErr)
	}

	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		if history != nil {
			history.Close()
		}
		return nil, fmt.Errorf("ssh: cannot create server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates an App for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		wish.Fatalln(sshSession, "snake needs an interactive terminal (ssh -t)")
		return nil, nil
	}

	handle := session.NewHandle(sshSession.User(), "ssh", sshSession.RemoteAddr().String(), noticeBuffer)
	if err := s.sessions.Register(handle); err != nil {
		s.logger.Warn("session refused", "user", sshSession.User(), "error", err)
		if errors.Is(err, session.ErrFull) {
			wish.Fatalln(sshSession, "The server is full, try again later.")
		}
		return nil, nil
	}
	s.logger.Debug("session registered", "id", handle.ID().Short(), "remote", handle.Remote())
	go func() {
		<-sshSession.Context().Done()
		s.sessions.Unregister(handle.ID())
	}()

	app := NewApp(Options{
		Settings: s.config.Settings,
		Scores:   s.scores,
		History:  s.history,
		Sessions: s.sessions,
		Handle:   handle,
		Logger:   s.logger.With("session", handle.ID().Short()),
		FPS:      s.config.FPS,
		Width:    pty.Window.Width,
		Height:   pty.Window.Height,
	})

	return app, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
			"players", s.sessions.Count(),
		)
	}
}

// ListenAndServe runs the server until ctx is cancelled or the process
// receives SIGINT/SIGTERM, then shuts down gracefully.
func (s *SSHServer) ListenAndServe(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("starting SSH server", "address", s.config.Address)
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			return fmt.Errorf("ssh: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		s.logger.Info("shutting down...", "players", s.sessions.Count())
		return s.Shutdown()
	})
	return g.Wait()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.server.Shutdown(ctx)
	if s.history != nil {
		s.history.Close()
	}
	return err
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// Sessions returns the registry of connected players.
func (s *SSHServer) Sessions() *session.Registry {
	return s.sessions
}

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
	"github.com/google/uuid"

	"github.com/vovakirdan/pathquest/internal/config"
	"github.com/vovakirdan/pathquest/internal/core"
	"github.com/vovakirdan/pathquest/internal/gameplay"
	"github.com/vovakirdan/pathquest/internal/level"
	"github.com/vovakirdan/pathquest/internal/outbox"
	"github.com/vovakirdan/pathquest/internal/session"
	"github.com/vovakirdan/pathquest/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.pathquest/host_key.
	HostKeyPath string

	// DBPath is the path to the saves database shared by all players.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// SyncInterval is how often queued progress is flushed. Zero disables sync.
	SyncInterval time.Duration

	// Game is the generator and economy configuration.
	Game config.Config

	// Seed fixes level layouts for every player on this server.
	Seed int64
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:      ":23234",
		DBPath:       "~/.pathquest/pathquest.db",
		IdleTimeout:  30 * time.Minute,
		SyncInterval: time.Minute,
		Game:         config.DefaultConfig(),
		Seed:         1,
	}
}

// SSHServer wraps a Wish SSH server hosting one game session per connection.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	syncer *outbox.Syncer
	logger *log.Logger
	stop   context.CancelFunc
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "pathquest-ssh",
	})

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open saves database, progress will not persist", "error", err)
		store = nil
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
	}
	if store != nil {
		srv.syncer = outbox.NewSyncer(store, outbox.LogPusher{Logger: logger.WithPrefix("sync")}, logger)
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".pathquest", "host_key")
	}

	hostKeyDir := filepath.Dir(hostKeyPath)
	if mkdirErr := os.MkdirAll(hostKeyDir, 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// PlayerID maps an SSH user to a save slot. Anonymous users get a fresh
// guest slot per connection.
func PlayerID(user string) string {
	if user == "" {
		return "guest-" + uuid.NewString()
	}
	return "ssh:" + user
}

// teaHandler creates a game session and play model for each SSH connection.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	playerID := PlayerID(sshSession.User())
	logger := s.logger.With("player", playerID)

	gen := level.NewGenerator(s.config.Game.Generator, s.config.Seed, level.WithLogger(logger))
	engine := gameplay.NewEngine(level.NewRepository(gen, logger), s.config.Game, gameplay.WithLogger(logger))

	sess, err := session.Open(engine, s.store, s.syncer, playerID, logger)
	if err != nil {
		s.logger.Error("could not open session", "player", playerID, "error", err)
		return nil, nil
	}

	cfg := core.DefaultConfig().WithScreen(pty.Window.Width, pty.Window.Height)
	cfg.Seed = s.config.Seed
	cfg.PlayerID = playerID
	return NewModel(sess, s.store, cfg), []tea.ProgramOption{
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
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address, "seed", s.config.Seed)

	ctx, cancel := context.WithCancel(context.Background())
	s.stop = cancel
	if s.syncer != nil && s.config.SyncInterval > 0 {
		go s.syncer.Run(ctx, s.config.SyncInterval)
	}

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server. Pending sync entries get one last
// flush before the database closes.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.server.Shutdown(ctx)

	if s.stop != nil {
		s.stop()
	}
	if s.syncer != nil {
		if _, flushErr := s.syncer.Flush(ctx); flushErr != nil {
			s.logger.Warn("final sync flush failed", "error", flushErr)
		}
	}
	if s.store != nil {
		s.store.Close()
	}
	return err
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

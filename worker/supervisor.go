// Package worker supervises the long-lived Python worker subprocess and
// exposes the session command surface on top of it.
//
// A Supervisor owns at most one worker process at a time. It spawns the
// process with the search-path environment built by envpath, frames the
// process's stdout into lines, decodes each line as JSON, and hands the
// decoded object to the registered handler. Stderr is classified into
// user-visible errors and suppressed diagnostics. All failure kinds are
// contained here: nothing panics and nothing is retried automatically;
// restart is always an explicit Start call from the host.
package worker

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
	"strings"
	"sync"

	"github.com/mwagner82/pybridge/envpath"
	"github.com/mwagner82/pybridge/framing"
	"github.com/mwagner82/pybridge/protocol"
)

// Handler receives one decoded response per worker output line, in the
// order the worker emitted them. The supervisor never interprets the
// response; handling it is entirely the host's business.
type Handler func(protocol.Response)

// Supervisor state machine: Idle (no process) → Starting (spawn
// requested) → Running (handlers attached) → Idle (exit or Dispose).
// There is no public stopping state; kill is fire-and-forget and exit is
// observed asynchronously.
type state int

const (
	stateIdle state = iota
	stateStarting
	stateRunning
)

func (s state) String() string {
	switch s {
	case stateIdle:
		return "idle"
	case stateStarting:
		return "starting"
	case stateRunning:
		return "running"
	default:
		return "unknown"
	}
}

// Supervisor owns the worker process handle and its stream watchers.
type Supervisor struct {
	cfg        config
	logger     *slog.Logger
	sink       Sink
	classifier *Classifier

	mu      sync.Mutex
	state   state
	cmd     *exec.Cmd
	handler Handler
	lines   framing.LineBuffer

	// stdin has its own lock so a blocked write can never stall the
	// stdout watcher.
	writeMu sync.Mutex
	stdin   io.WriteCloser
}

// NewSupervisor creates a supervisor in the Idle state. No process is
// spawned until Start.
func NewSupervisor(opts ...Option) *Supervisor {
	cfg := defaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Supervisor{
		cfg:        cfg,
		logger:     cfg.logger,
		sink:       cfg.sink,
		classifier: cfg.classifier,
		state:      stateIdle,
	}
}

// Start spawns the worker process and attaches the stream watchers.
//
// The handler is always rebound, even when the worker is already
// running: the most recent registration receives all subsequent
// responses, and rebinding never restarts the process. When a process is
// already running (or a spawn is in flight) Start returns nil without
// spawning a second one.
//
// On spawn failure the supervisor stays Idle, emits a user-visible error
// event, and returns the error.
func (s *Supervisor) Start(handler Handler) error {
	s.mu.Lock()
	s.handler = handler
	if s.state != stateIdle {
		s.mu.Unlock()
		s.logger.Debug("start ignored: worker already active", "state", s.state.String())
		return nil
	}
	s.state = stateStarting
	s.mu.Unlock()

	if s.cfg.workerScript == "" {
		err := fmt.Errorf("no worker script configured")
		s.failStart(err)
		return err
	}

	// The environment spec is computed once per start and is immutable
	// for the life of this process instance.
	spec := envpath.Spec{
		Entries: envpath.Resolve(s.cfg.extraSearchPaths, s.cfg.workspaceRoot, s.cfg.bundledPath, os.Getenv(envpath.Var)),
		WorkDir: s.cfg.workspaceRoot,
	}

	cmd := exec.Command(s.cfg.pythonPath, append([]string{s.cfg.workerScript}, s.cfg.args...)...)
	cmd.Dir = spec.WorkDir
	cmd.Env = envpath.Environ(os.Environ(), spec.Entries)
	for k, v := range s.cfg.env {
		cmd.Env = append(cmd.Env, k+"="+v)
	}

	stdin, err := cmd.StdinPipe()
	if err != nil {
		err = fmt.Errorf("create stdin pipe: %w", err)
		s.failStart(err)
		return err
	}
	stdout, err := cmd.StdoutPipe()
	if err != nil {
		_ = stdin.Close()
		err = fmt.Errorf("create stdout pipe: %w", err)
		s.failStart(err)
		return err
	}
	stderr, err := cmd.StderrPipe()
	if err != nil {
		_ = stdin.Close()
		_ = stdout.Close()
		err = fmt.Errorf("create stderr pipe: %w", err)
		s.failStart(err)
		return err
	}

	if err := cmd.Start(); err != nil {
		_ = stdin.Close()
		err = fmt.Errorf("spawn worker: %w", err)
		s.failStart(err)
		return err
	}

	s.writeMu.Lock()
	s.stdin = stdin
	s.writeMu.Unlock()

	s.mu.Lock()
	s.cmd = cmd
	s.lines.Reset()
	s.state = stateRunning
	s.mu.Unlock()

	s.notify(SeverityInfo, fmt.Sprintf("started Python worker: %s %s", s.cfg.pythonPath, s.cfg.workerScript))
	s.logger.Debug("worker environment resolved",
		slog.String("search_path", envpath.Join(spec.Entries)),
		slog.String("workdir", spec.WorkDir))

	go s.watchStdout(stdout)
	go s.watchStderr(stderr)
	go s.watchExit(cmd)

	return nil
}

// failStart reports a spawn failure and returns the supervisor to Idle.
func (s *Supervisor) failStart(err error) {
	s.mu.Lock()
	s.state = stateIdle
	s.cmd = nil
	s.mu.Unlock()
	s.notify(SeverityError, fmt.Sprintf("could not start Python worker: %v", err))
}

// Send serializes cmd as one JSON line and writes it to the worker's
// stdin. It reports whether the command was delivered: false means the
// worker is not running or the write failed, and the caller may surface
// that or retry after a fresh Start. Send never blocks on a response.
//
// The protocol has no correlation identifiers; responses arrive strictly
// in command order. Behavior when several commands are sent before their
// responses return is worker-dependent.
func (s *Supervisor) Send(cmd protocol.Command) bool {
	s.mu.Lock()
	running := s.state == stateRunning
	s.mu.Unlock()
	if !running {
		s.logger.Warn("command not delivered: worker not running", "command", string(cmd.CommandKind()))
		return false
	}

	s.writeMu.Lock()
	stdin := s.stdin
	var err error
	if stdin == nil {
		err = fmt.Errorf("stdin closed")
	} else {
		err = protocol.Encode(stdin, cmd)
	}
	s.writeMu.Unlock()

	if err != nil {
		s.notify(SeverityError, fmt.Sprintf("could not send %s to Python worker: %v", cmd.CommandKind(), err))
		return false
	}
	return true
}

// Running reports whether a worker process is currently attached.
func (s *Supervisor) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state == stateRunning
}

// Dispose forcibly terminates the worker process, if any, and clears the
// session state. Safe to call repeatedly and before any Start. A
// disposed supervisor can be started again.
func (s *Supervisor) Dispose() {
	s.mu.Lock()
	cmd := s.cmd
	s.cmd = nil
	s.state = stateIdle
	s.lines.Reset()
	s.mu.Unlock()

	s.writeMu.Lock()
	stdin := s.stdin
	s.stdin = nil
	s.writeMu.Unlock()

	if stdin != nil {
		_ = stdin.Close()
	}
	if cmd != nil && cmd.Process != nil {
		// The exit watcher is still blocked in Wait and will reap the
		// process; it detaches quietly because the handle was cleared
		// above.
		_ = cmd.Process.Kill()
	}
}

// watchStdout feeds raw chunks through the line buffer and dispatches
// each decoded line to the current handler.
func (s *Supervisor) watchStdout(r io.Reader) {
	buf := make([]byte, 4096)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			s.dispatch(buf[:n])
		}
		if err != nil {
			return
		}
	}
}

// dispatch frames one chunk and invokes the handler per decoded line. A
// malformed line is logged and dropped; it never terminates the session
// or delays the lines after it.
func (s *Supervisor) dispatch(chunk []byte) {
	s.mu.Lock()
	lines := s.lines.Feed(chunk)
	handler := s.handler
	s.mu.Unlock()

	for _, line := range lines {
		resp, err := protocol.DecodeResponse([]byte(line))
		if err != nil {
			s.logger.Warn("dropped undecodable worker output",
				"error", err, "line", truncateForLog(line))
			continue
		}
		if handler != nil {
			handler(*resp)
		}
	}
}

// watchStderr classifies each stderr chunk. Fatal markers surface as
// user-visible errors; everything else is a suppressed diagnostic.
func (s *Supervisor) watchStderr(r io.Reader) {
	buf := make([]byte, 4096)
	for {
		n, err := r.Read(buf)
		if n > 0 {
			text := string(buf[:n])
			if s.classifier.Classify(text) == VerdictFatal {
				s.notify(SeverityError, fmt.Sprintf("Python worker error: %s", strings.TrimSpace(text)))
			} else {
				s.logger.Debug("worker stderr", "output", truncateForLog(text))
			}
		}
		if err != nil {
			return
		}
	}
}

// watchExit observes process termination and resets the session.
func (s *Supervisor) watchExit(cmd *exec.Cmd) {
	err := cmd.Wait()

	s.mu.Lock()
	if s.cmd != cmd {
		// Dispose (or a later start) already detached this process.
		s.mu.Unlock()
		return
	}
	s.cmd = nil
	s.state = stateIdle
	s.lines.Reset()
	s.mu.Unlock()

	s.writeMu.Lock()
	s.stdin = nil
	s.writeMu.Unlock()

	// A clean exit (code 0) and a signal kill (no exit code) are
	// expected terminations; only a real non-zero code warrants a
	// user-visible warning.
	code := cmd.ProcessState.ExitCode()
	if code > 0 {
		s.notify(SeverityWarning, fmt.Sprintf("Python worker exited unexpectedly (code %d); restart the session to continue", code))
		return
	}
	s.logger.Debug("worker exited", "code", code, "error", err)
}

// maxLogLineLength caps worker output echoed into logs.
const maxLogLineLength = 500

func truncateForLog(s string) string {
	if len(s) > maxLogLineLength {
		return s[:maxLogLineLength] + "... (truncated)"
	}
	return s
}

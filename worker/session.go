package worker

import "github.com/mwagner82/pybridge/protocol"

// Session is the public command surface of one worker session. Every
// command method is a convenience over the supervisor's Send: it builds
// the corresponding protocol command and forwards the delivery boolean
// unchanged. Sessions never interpret responses; those go to the
// handler registered with Start.
type Session struct {
	sup *Supervisor
}

// NewSession creates a session. No process is spawned until Start.
func NewSession(opts ...Option) *Session {
	return &Session{sup: NewSupervisor(opts...)}
}

// Start spawns the worker (if not already running) and registers the
// response handler. See Supervisor.Start.
func (s *Session) Start(handler Handler) error {
	return s.sup.Start(handler)
}

// IsRunning reports whether the worker process is running.
func (s *Session) IsRunning() bool {
	return s.sup.Running()
}

// Dispose terminates the worker process. Idempotent.
func (s *Session) Dispose() {
	s.sup.Dispose()
}

// Supervisor exposes the underlying supervisor for hosts that need
// direct Send access.
func (s *Session) Supervisor() *Supervisor {
	return s.sup
}

// RunFile asks the worker to execute a Python file.
func (s *Session) RunFile(path string) bool {
	return s.sup.Send(protocol.NewRunFile(path, s.sup.cfg.captureMainLocals))
}

// RunCode asks the worker to execute a code snippet.
func (s *Session) RunCode(code string) bool {
	return s.sup.Send(protocol.NewRunCode(code, s.sup.cfg.captureMainLocals))
}

// GetVariables asks for the current variable listing.
func (s *Session) GetVariables() bool {
	return s.sup.Send(protocol.NewGetVariables())
}

// GetDetails asks for an expanded view of one variable. An optional
// single path addresses a nested member.
func (s *Session) GetDetails(name string, path ...string) bool {
	p := ""
	if len(path) > 0 {
		p = path[0]
	}
	return s.sup.Send(protocol.NewGetDetails(name, p))
}

// UpdateVariable asks the worker to assign a new value to a variable.
func (s *Session) UpdateVariable(name, typ string, value any) bool {
	return s.sup.Send(protocol.NewUpdateVariable(name, typ, value))
}

// ClearNamespace asks the worker to drop all user-defined variables.
func (s *Session) ClearNamespace() bool {
	return s.sup.Send(protocol.NewClearNamespace())
}

// SaveSession asks the worker to persist its namespace to a file.
func (s *Session) SaveSession(path string) bool {
	return s.sup.Send(protocol.NewSaveSession(path))
}

// LoadSession asks the worker to restore a namespace from a file.
func (s *Session) LoadSession(path string) bool {
	return s.sup.Send(protocol.NewLoadSession(path))
}

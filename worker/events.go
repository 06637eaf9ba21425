package worker

// Severity grades a diagnostic event.
type Severity int

// Severities, in increasing order of urgency.
const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// Event is a user-visible diagnostic emitted by the supervisor. The
// message is ready for display; the core never renders UI itself.
type Event struct {
	Severity Severity
	Message  string
}

// Sink receives diagnostic events, typically to surface them in the
// host's notification UI. Sinks are invoked inline from supervisor
// goroutines and should return quickly.
type Sink func(Event)

// notify logs the event and forwards it to the configured sink.
// Suppressed diagnostics never reach this path; they are logged directly
// at debug level.
func (s *Supervisor) notify(severity Severity, message string) {
	switch severity {
	case SeverityError:
		s.logger.Error(message)
	case SeverityWarning:
		s.logger.Warn(message)
	default:
		s.logger.Info(message)
	}
	if s.sink != nil {
		s.sink(Event{Severity: severity, Message: message})
	}
}

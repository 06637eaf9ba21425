// Package pybridge provides a managed bridge between a host application
// and a long-lived Python worker subprocess.
//
// The worker is spawned once and kept alive across many commands; host
// and worker exchange newline-delimited JSON over the worker's standard
// streams. pybridge owns the risky parts of that arrangement (process
// lifecycle, environment construction, line framing, protocol
// serialization, stderr classification) and leaves rendering, settings
// UI, and the worker's domain semantics to the host.
//
// Each subpackage can be used independently:
//
//   - worker: process supervision and the session command surface
//   - protocol: command/response types and the wire codec
//   - framing: byte-chunk to line conversion for the output stream
//   - envpath: search-path environment variable construction
//   - settings: file-backed host configuration with live reload
//
// # Quick Start
//
//	sess := worker.NewSession(
//	    worker.WithWorkerScript("/ext/python/worker.py"),
//	    worker.WithWorkspaceRoot("/home/me/project"),
//	)
//	if err := sess.Start(func(resp protocol.Response) {
//	    // one decoded JSON object per worker output line
//	}); err != nil {
//	    // worker could not be spawned
//	}
//	defer sess.Dispose()
//
//	sess.RunFile("/home/me/project/main.py")
//	sess.GetVariables()
//
// Responses carry no correlation identifiers; the worker answers
// commands strictly in order, and pybridge preserves that order all the
// way to the handler.
//
// # Design Philosophy
//
//   - One worker process per session, never more
//   - Failures are contained: diagnostics and return values, not panics
//   - Interfaces for host collaborators, concrete types for the core
//   - The core never touches files or settings; hosts feed it resolved values
package pybridge

package protocol

import (
	"encoding/json"
	"fmt"
	"io"
)

// Encode serializes cmd as a single JSON line, terminated by a newline,
// and writes it to w. One call produces exactly one wire message.
func Encode(w io.Writer, cmd Command) error {
	if cmd == nil {
		return fmt.Errorf("nil command")
	}
	if cmd.CommandKind() == "" {
		return fmt.Errorf("command has empty kind")
	}
	if err := json.NewEncoder(w).Encode(cmd); err != nil {
		return fmt.Errorf("encode %s: %w", cmd.CommandKind(), err)
	}
	return nil
}

// EncodeLine returns the framed bytes for cmd, trailing newline included.
func EncodeLine(cmd Command) ([]byte, error) {
	if cmd == nil {
		return nil, fmt.Errorf("nil command")
	}
	data, err := json.Marshal(cmd)
	if err != nil {
		return nil, fmt.Errorf("encode %s: %w", cmd.CommandKind(), err)
	}
	return append(data, '\n'), nil
}

// Response is one decoded line from the worker's output stream. The
// worker's schema is not constrained beyond "one well-formed JSON object
// per line"; fields are passed through opaquely.
type Response struct {
	// Fields is the decoded object.
	Fields map[string]any

	// Raw is the original line as received, without the terminator.
	Raw []byte
}

// DecodeResponse parses a framed line into a Response. A failure is a
// non-fatal decode error: the caller should log it, drop the line, and
// keep reading. One malformed line never invalidates the stream.
func DecodeResponse(line []byte) (*Response, error) {
	var fields map[string]any
	if err := json.Unmarshal(line, &fields); err != nil {
		return nil, fmt.Errorf("decode response line: %w", err)
	}
	if fields == nil {
		return nil, fmt.Errorf("decode response line: not a JSON object")
	}
	raw := make([]byte, len(line))
	copy(raw, line)
	return &Response{Fields: fields, Raw: raw}, nil
}

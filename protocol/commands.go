// Package protocol defines the wire format spoken between the host and
// the Python worker: newline-delimited JSON, one object per line in each
// direction.
//
// Outbound commands are tagged records: a "command" kind plus
// kind-specific fields. Inbound responses are arbitrary JSON objects the
// worker produces; this package decodes them but never interprets their
// fields. The protocol carries no correlation identifiers: the worker
// answers commands strictly in the order they were written, and callers
// must preserve that discipline.
package protocol

// Kind identifies a command on the wire.
type Kind string

// Command kinds understood by the worker.
const (
	KindRunFile        Kind = "run_file"
	KindRunCode        Kind = "run_code"
	KindGetVariables   Kind = "get_variables"
	KindGetDetails     Kind = "get_details"
	KindUpdateVariable Kind = "update_variable"
	KindClearNamespace Kind = "clear_namespace"
	KindSaveSession    Kind = "save_session"
	KindLoadSession    Kind = "load_session"
)

// Command is an outbound request. Commands are immutable once sent.
type Command interface {
	// CommandKind returns the wire tag for this command.
	CommandKind() Kind
}

// RunFile asks the worker to execute a Python file.
type RunFile struct {
	Command           Kind   `json:"command"`
	File              string `json:"file"`
	CaptureMainLocals bool   `json:"capture_main_locals"`
}

// NewRunFile builds a run_file command.
func NewRunFile(file string, captureMainLocals bool) RunFile {
	return RunFile{Command: KindRunFile, File: file, CaptureMainLocals: captureMainLocals}
}

// CommandKind implements Command.
func (RunFile) CommandKind() Kind { return KindRunFile }

// RunCode asks the worker to execute a code snippet.
type RunCode struct {
	Command           Kind   `json:"command"`
	Code              string `json:"code"`
	CaptureMainLocals bool   `json:"capture_main_locals"`
}

// NewRunCode builds a run_code command.
func NewRunCode(code string, captureMainLocals bool) RunCode {
	return RunCode{Command: KindRunCode, Code: code, CaptureMainLocals: captureMainLocals}
}

// CommandKind implements Command.
func (RunCode) CommandKind() Kind { return KindRunCode }

// GetVariables asks for the worker's current variable listing.
type GetVariables struct {
	Command Kind `json:"command"`
}

// NewGetVariables builds a get_variables command.
func NewGetVariables() GetVariables {
	return GetVariables{Command: KindGetVariables}
}

// CommandKind implements Command.
func (GetVariables) CommandKind() Kind { return KindGetVariables }

// GetDetails asks for an expanded view of one variable. Path optionally
// addresses a nested member of the named variable.
type GetDetails struct {
	Command Kind   `json:"command"`
	Name    string `json:"name"`
	Path    string `json:"path,omitempty"`
}

// NewGetDetails builds a get_details command.
func NewGetDetails(name, path string) GetDetails {
	return GetDetails{Command: KindGetDetails, Name: name, Path: path}
}

// CommandKind implements Command.
func (GetDetails) CommandKind() Kind { return KindGetDetails }

// UpdateVariable asks the worker to assign a new value to a variable.
// Value may be any JSON-encodable value; Type names the worker-side type
// the value should be coerced to.
type UpdateVariable struct {
	Command Kind   `json:"command"`
	Name    string `json:"name"`
	Type    string `json:"type"`
	Value   any    `json:"value"`
}

// NewUpdateVariable builds an update_variable command.
func NewUpdateVariable(name, typ string, value any) UpdateVariable {
	return UpdateVariable{Command: KindUpdateVariable, Name: name, Type: typ, Value: value}
}

// CommandKind implements Command.
func (UpdateVariable) CommandKind() Kind { return KindUpdateVariable }

// ClearNamespace asks the worker to drop all user-defined variables.
type ClearNamespace struct {
	Command Kind `json:"command"`
}

// NewClearNamespace builds a clear_namespace command.
func NewClearNamespace() ClearNamespace {
	return ClearNamespace{Command: KindClearNamespace}
}

// CommandKind implements Command.
func (ClearNamespace) CommandKind() Kind { return KindClearNamespace }

// SaveSession asks the worker to persist its namespace to a file.
type SaveSession struct {
	Command Kind   `json:"command"`
	File    string `json:"file"`
}

// NewSaveSession builds a save_session command.
func NewSaveSession(file string) SaveSession {
	return SaveSession{Command: KindSaveSession, File: file}
}

// CommandKind implements Command.
func (SaveSession) CommandKind() Kind { return KindSaveSession }

// LoadSession asks the worker to restore a namespace from a file.
type LoadSession struct {
	Command Kind   `json:"command"`
	File    string `json:"file"`
}

// NewLoadSession builds a load_session command.
func NewLoadSession(file string) LoadSession {
	return LoadSession{Command: KindLoadSession, File: file}
}

// CommandKind implements Command.
func (LoadSession) CommandKind() Kind { return KindLoadSession }

package worker

import "log/slog"

// Option configures a Supervisor or Session.
type Option func(*config)

// config holds worker configuration. Hosts supply resolved values; the
// worker package never reads settings files or the environment itself
// beyond the inherited search path.
type config struct {
	// Interpreter and worker program
	pythonPath   string
	workerScript string
	args         []string

	// Environment construction
	workspaceRoot    string
	bundledPath      string
	extraSearchPaths []string
	env              map[string]string

	// Execution behavior
	captureMainLocals bool

	// Diagnostics
	logger     *slog.Logger
	sink       Sink
	classifier *Classifier
}

// defaultConfig returns the default worker configuration.
func defaultConfig() config {
	return config{
		pythonPath: "python3",
		logger:     slog.Default(),
		classifier: DefaultClassifier(),
	}
}

// WithPythonPath sets the Python interpreter to spawn.
func WithPythonPath(path string) Option {
	return func(c *config) { c.pythonPath = path }
}

// WithWorkerScript sets the worker program the interpreter runs.
// Required.
func WithWorkerScript(path string) Option {
	return func(c *config) { c.workerScript = path }
}

// WithArgs appends extra arguments after the worker script.
func WithArgs(args ...string) Option {
	return func(c *config) { c.args = append(c.args, args...) }
}

// WithWorkspaceRoot sets the workspace root. It becomes the worker's
// working directory and the base that relative extra search paths are
// resolved against.
func WithWorkspaceRoot(dir string) Option {
	return func(c *config) { c.workspaceRoot = dir }
}

// WithBundledPath sets the directory the host ships the worker's helper
// modules in. It is always appended to the search path.
func WithBundledPath(dir string) Option {
	return func(c *config) { c.bundledPath = dir }
}

// WithExtraSearchPaths sets the host-configured additional search-path
// entries. Relative entries resolve against the workspace root.
func WithExtraSearchPaths(paths []string) Option {
	return func(c *config) { c.extraSearchPaths = paths }
}

// WithCaptureMainLocals controls whether run commands ask the worker to
// capture local variables from the executed module's main scope.
func WithCaptureMainLocals(capture bool) Option {
	return func(c *config) { c.captureMainLocals = capture }
}

// WithEnv adds environment variables to the worker process on top of
// the inherited environment.
func WithEnv(env map[string]string) Option {
	return func(c *config) {
		if c.env == nil {
			c.env = make(map[string]string)
		}
		for k, v := range env {
			c.env[k] = v
		}
	}
}

// WithLogger sets the structured logger. Defaults to slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithSink sets the diagnostic event sink, typically the host's
// notification UI. Without a sink, events are only logged.
func WithSink(sink Sink) Option {
	return func(c *config) { c.sink = sink }
}

// WithClassifier replaces the stderr classifier. Defaults to
// DefaultClassifier.
func WithClassifier(classifier *Classifier) Option {
	return func(c *config) {
		if classifier != nil {
			c.classifier = classifier
		}
	}
}

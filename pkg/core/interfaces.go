package core

// Logger is the logging seam used by the renderer, scene loader and web server
type Logger interface {
	Printf(format string, args ...interface{})
}

// NopLogger discards everything
type NopLogger struct{}

func (NopLogger) Printf(string, ...interface{}) {}

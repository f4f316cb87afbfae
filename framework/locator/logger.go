package locator

// Logger is the structured logger the locator reports to. Arguments are
// key-value pairs, so a *slog.Logger satisfies it directly:
//
//	l := locator.New[string](locator.WithLogger(slog.Default()))
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

type nopLogger struct{}

func (nopLogger) Debug(string, ...any) {}
func (nopLogger) Info(string, ...any)  {}
func (nopLogger) Warn(string, ...any)  {}
func (nopLogger) Error(string, ...any) {}

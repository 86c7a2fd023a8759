package di

// Logger receives trace output from an InstantiationService.
//
// The method set is a subset of common leveled loggers, so a log4g.Logger
// (or any logger with variadic Info and Debug) can be passed as is.
type Logger interface {
	Info(args ...any)
	Debug(args ...any)
}

type nullLogger struct{}

func (nullLogger) Info(...any)  {}
func (nullLogger) Debug(...any) {}

package sheets

import "go.uber.org/zap"

// Diagnostic is a non-fatal observation made while mapping a row.
type Diagnostic struct {
	Row     int
	Name    string
	Field   string
	Value   string
	Message string
}

// Reporter receives diagnostics. It is called synchronously from Parse.
type Reporter func(Diagnostic)

// ZapReporter logs diagnostics as warnings.
func ZapReporter(logger *zap.Logger) Reporter {
	return func(d Diagnostic) {
		logger.Warn(d.Message,
			zap.Int("row", d.Row),
			zap.String("race", d.Name),
			zap.String("field", d.Field),
			zap.String("value", d.Value),
		)
	}
}

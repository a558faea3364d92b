package beap

import "log/slog"

// Diagnostics is the operator-only channel for internal failure detail.
// Whatever a Diagnostics implementation records never reaches the
// caller-facing result types; those have no field that could hold it.
type Diagnostics interface {
	// Failure records that a stage failed and why. err may carry
	// sensitive internal detail and must stay on the operator side.
	Failure(stage Stage, err error)
	// NotEligible records a not-for-me outcome. Expected in normal
	// operation, so distinct from Failure.
	NotEligible()
}

type discardDiagnostics struct{}

func (discardDiagnostics) Failure(Stage, error) {}
func (discardDiagnostics) NotEligible()         {}

// DiscardDiagnostics returns a Diagnostics that records nothing. It is
// the default.
func DiscardDiagnostics() Diagnostics {
	return discardDiagnostics{}
}

type slogDiagnostics struct {
	logger *slog.Logger
}

// SlogDiagnostics adapts a *slog.Logger into a Diagnostics. Failures log
// at warn, not-eligible outcomes at debug since they are expected.
func SlogDiagnostics(logger *slog.Logger) Diagnostics {
	return &slogDiagnostics{logger: logger}
}

func (d *slogDiagnostics) Failure(stage Stage, err error) {
	d.logger.Warn("package rejected", "stage", string(stage), "error", err)
}

func (d *slogDiagnostics) NotEligible() {
	d.logger.Debug("package not for this recipient")
}

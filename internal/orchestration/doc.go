// Package orchestration runs one or more arithmetic strategies concurrently
// on the same operands and compares their results. Presentation is kept out
// of this package behind the ProgressReporter, ResultPresenter and
// ErrorHandler interfaces.
package orchestration

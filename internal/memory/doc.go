// Package memory budgets the digit buffers of a calculation: it parses
// human-readable limits, predicts the peak buffer bytes a strategy will
// hold, and relaxes the garbage collector around very large runs.
package memory

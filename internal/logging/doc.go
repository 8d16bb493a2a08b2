// Package logging gives the application one logging interface regardless of
// backend. Components receive a Logger; the process-wide zerolog logger used
// by the arithmetic strategies is set up through Configure.
package logging

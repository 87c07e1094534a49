// Package logger provides logging functionality for the 3CB solver.
package logger

import (
	"log"
	"os"
)

// Level is a logging verbosity level, ordered from quietest to loudest.
type Level int

const (
	// META logs top-level solver lifecycle (catalog load, solve start/end).
	META Level = iota
	// SEARCH logs alpha-beta search milestones (depth, bound changes, TT stats).
	SEARCH
	// STATE logs phase transitions and state-based action sweeps.
	STATE
	// NODE logs per-node search detail; extremely chatty, debugging only.
	NODE
)

var currentLevel = META

var std = &Logger{logger: log.New(os.Stdout, "", log.Ltime)}

// Logger wraps the standard logger with solver-specific functionality.
type Logger struct {
	logger *log.Logger
}

// SetLevel sets the current logging level.
func SetLevel(level Level) {
	currentLevel = level
}

// ParseLevel parses a string into a Level, defaulting to META on no match.
func ParseLevel(level string) Level {
	switch level {
	case "META":
		return META
	case "SEARCH":
		return SEARCH
	case "STATE":
		return STATE
	case "NODE":
		return NODE
	default:
		return META
	}
}

// Meta logs a top-level solver lifecycle message.
func Meta(message string, args ...interface{}) {
	if currentLevel >= META {
		std.logger.Printf("META: "+message, args...)
	}
}

// Search logs an alpha-beta search milestone.
func Search(message string, args ...interface{}) {
	if currentLevel >= SEARCH {
		std.logger.Printf("SEARCH: "+message, args...)
	}
}

// State logs a phase transition or state-based action sweep.
func State(message string, args ...interface{}) {
	if currentLevel >= STATE {
		std.logger.Printf("STATE: "+message, args...)
	}
}

// Node logs per-node search detail.
func Node(message string, args ...interface{}) {
	if currentLevel >= NODE {
		std.logger.Printf("NODE: "+message, args...)
	}
}

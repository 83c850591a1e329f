package logger

import (
	"go.uber.org/zap"
)

// Field ...
type Field = zap.Field

var (
	// String ...
	String = zap.String
	// Int ...
	Int = zap.Int
	// Bool ...
	Bool = zap.Bool
	// Any ...
	Any = zap.Any
	// Error ...
	Error = zap.Error
)

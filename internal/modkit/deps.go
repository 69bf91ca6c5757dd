// Package modkit provides module wiring and core deps
package modkit

import (
	"verdian/internal/platform/config"
	"verdian/internal/platform/logger"
)

// Deps holds core dependencies passed to modules
// this is wiring only and does not introduce new abstractions
type Deps struct {
	Log *logger.Logger
	Cfg config.Conf
}

// DepsFromEnv returns deps backed by the process logger and unprefixed env config
func DepsFromEnv() Deps {
	return Deps{Log: logger.Get(), Cfg: config.New()}
}

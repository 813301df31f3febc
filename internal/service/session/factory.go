package session

import (
	"fmt"
)

// NewStrategyFactory maps a configured strategy name to a constructor for
// fresh per-user memory.
func NewStrategyFactory(strategy string, window Window) (func() Strategy, error) {
	switch strategy {
	case "buffer":
		return func() Strategy { return NewBuffer(window) }, nil
	case "entity":
		return func() Strategy { return NewEntityMemory(window) }, nil
	default:
		return nil, fmt.Errorf("unknown memory strategy: %s", strategy)
	}
}

// Package tracelog turns generator trace events into log records.
package tracelog

import (
	"github.com/charmbracelet/log"
	"github.com/lox/pcg128/pcg"
)

// Charm writes trace events to a charmbracelet logger at debug level.
type Charm struct {
	logger *log.Logger
}

// NewCharm returns an observer logging under the "pcg" prefix.
func NewCharm(logger *log.Logger) *Charm {
	return &Charm{logger: logger.WithPrefix("pcg")}
}

func (c *Charm) Observe(e pcg.Event) {
	kv := []interface{}{
		"state", e.State.Hex(),
		"steps", e.Steps,
		"dur", e.Duration,
	}
	kv = append(kv, details(e)...)
	c.logger.Debug(string(e.Op), kv...)
}

// details returns the operation specific key/value pairs of e.
func details(e pcg.Event) []interface{} {
	switch e.Op {
	case pcg.OpRoll:
		return []interface{}{"out", hex64(e.Output)}
	case pcg.OpBind:
		return []interface{}{"range", e.Range, "out", e.Output}
	case pcg.OpJump:
		return []interface{}{"delta", e.Delta.String()}
	case pcg.OpFlush, pcg.OpPull, pcg.OpYield, pcg.OpClipFloat:
		return []interface{}{"out", e.Float}
	case pcg.OpClip:
		return []interface{}{"range", e.Range, "out", e.Int}
	}
	return nil
}

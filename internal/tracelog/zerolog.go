package tracelog

import (
	"fmt"

	"github.com/lox/pcg128/pcg"
	"github.com/rs/zerolog"
)

// Zerolog writes trace events as structured zerolog debug records.
type Zerolog struct {
	logger zerolog.Logger
}

func NewZerolog(logger zerolog.Logger) *Zerolog {
	return &Zerolog{logger: logger.With().Str("component", "pcg").Logger()}
}

func (z *Zerolog) Observe(e pcg.Event) {
	ev := z.logger.Debug().
		Str("op", string(e.Op)).
		Str("state", e.State.Hex()).
		Int64("steps", e.Steps).
		Dur("dur", e.Duration)

	switch e.Op {
	case pcg.OpRoll:
		ev = ev.Str("out", hex64(e.Output))
	case pcg.OpBind:
		ev = ev.Uint64("range", e.Range).Uint64("out", e.Output)
	case pcg.OpJump:
		ev = ev.Str("delta", e.Delta.String())
	case pcg.OpFlush, pcg.OpPull, pcg.OpYield, pcg.OpClipFloat:
		ev = ev.Float64("out", e.Float)
	case pcg.OpClip:
		ev = ev.Uint64("range", e.Range).Int64("out", e.Int)
	}
	ev.Msg("trace")
}

func hex64(v uint64) string {
	return fmt.Sprintf("0x%016x", v)
}

package stream

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/lox/pcg128/pcg"
)

// Request operations
const (
	OpRoll      = "roll"
	OpBind      = "bind"
	OpJump      = "jump"
	OpFlush     = "flush"
	OpPull      = "pull"
	OpYield     = "yield"
	OpClip      = "clip"
	OpClipFloat = "clip-float"
	OpState     = "state"
)

// MaxCount caps the number of values returned for one request.
const MaxCount = 4096

var (
	ErrUnknownOp = errors.New("unknown op")
	ErrBadCount  = errors.New("invalid count")
)

// Request is a client message.
type Request struct {
	Op    string      `json:"op"`
	Count int         `json:"count,omitempty"`
	Range uint64      `json:"range,omitempty"`
	Delta int64       `json:"delta,omitempty"`
	Min   json.Number `json:"min,omitempty"`
	Max   json.Number `json:"max,omitempty"`
}

// Response answers one Request. Exactly one of the value slices is set on
// success, none when Error is non-empty.
type Response struct {
	Op     string    `json:"op"`
	Values []uint64  `json:"values,omitempty"`
	Ints   []int64   `json:"ints,omitempty"`
	Floats []float64 `json:"floats,omitempty"`
	State  string    `json:"state,omitempty"`
	Steps  int64     `json:"steps"`
	Error  string    `json:"error,omitempty"`
}

// session owns the generator of one connection.
type session struct {
	gen *pcg.Generator
}

func (s *session) handle(req Request) Response {
	resp, err := s.apply(req)
	if err != nil {
		resp = Response{Error: err.Error()}
	}
	resp.Op = req.Op
	resp.Steps = s.gen.Steps()
	return resp
}

func (s *session) apply(req Request) (Response, error) {
	var resp Response

	n := req.Count
	if n == 0 {
		n = 1
	}
	if n < 0 || n > MaxCount {
		return resp, fmt.Errorf("%w: %d (1-%d)", ErrBadCount, req.Count, MaxCount)
	}

	switch req.Op {
	case OpRoll:
		for i := 0; i < n; i++ {
			resp.Values = append(resp.Values, s.gen.Roll())
		}
	case OpBind:
		for i := 0; i < n; i++ {
			v, err := s.gen.Bind(req.Range)
			if err != nil {
				return resp, err
			}
			resp.Values = append(resp.Values, v)
		}
	case OpJump:
		s.gen.Jump(req.Delta)
		resp.State = s.gen.State().Hex()
	case OpState:
		resp.State = s.gen.State().Hex()
	case OpFlush, OpPull, OpYield:
		sample := map[string]func() float64{
			OpFlush: s.gen.Flush,
			OpPull:  s.gen.Pull,
			OpYield: s.gen.Yield,
		}[req.Op]
		for i := 0; i < n; i++ {
			resp.Floats = append(resp.Floats, sample())
		}
	case OpClip:
		min, err := req.Min.Int64()
		if err != nil {
			return resp, fmt.Errorf("min: %w", err)
		}
		max, err := req.Max.Int64()
		if err != nil {
			return resp, fmt.Errorf("max: %w", err)
		}
		for i := 0; i < n; i++ {
			v, err := s.gen.Clip(min, max)
			if err != nil {
				return resp, err
			}
			resp.Ints = append(resp.Ints, v)
		}
	case OpClipFloat:
		min, err := req.Min.Float64()
		if err != nil {
			return resp, fmt.Errorf("min: %w", err)
		}
		max, err := req.Max.Float64()
		if err != nil {
			return resp, fmt.Errorf("max: %w", err)
		}
		for i := 0; i < n; i++ {
			v, err := s.gen.ClipFloat(min, max)
			if err != nil {
				return resp, err
			}
			resp.Floats = append(resp.Floats, v)
		}
	default:
		return resp, fmt.Errorf("%w %q", ErrUnknownOp, req.Op)
	}
	return resp, nil
}

package runlog

import (
	"errors"
	"fmt"
	"slices"

	"github.com/alex65536/tsrand/internal/randsrc"
)

var (
	ErrNotReplayable = errors.New("run is not replayable")
	ErrMismatch      = errors.New("replayed sequence differs")
)

type Request struct {
	Source randsrc.Options
	Op     Op
	Bounds Bounds
	Count  int
}

func (r *Request) Validate() error {
	if err := r.Source.Validate(); err != nil {
		return fmt.Errorf("source: %w", err)
	}
	if _, err := ParseOp(string(r.Op)); err != nil {
		return err
	}
	if r.Count < 0 {
		return fmt.Errorf("negative count")
	}
	return nil
}

// Sample draws the requested sequence from a fresh source. The run is not stored and has no
// ID or name yet.
func Sample(req Request) (Run, error) {
	if err := req.Validate(); err != nil {
		return Run{}, fmt.Errorf("bad request: %w", err)
	}
	src, err := randsrc.New(req.Source)
	if err != nil {
		return Run{}, fmt.Errorf("create source: %w", err)
	}
	defer src.Close()

	run := Run{
		Kind:   req.Source.Kind,
		Seed:   req.Source.Clone().Seed,
		Op:     req.Op,
		Bounds: req.Bounds,
		Count:  req.Count,
	}
	switch req.Op {
	case OpInt:
		run.Ints = make([]int64, req.Count)
		for i := range run.Ints {
			v, err := src.IntRange(int(req.Bounds.IntMin), int(req.Bounds.IntMax))
			if err != nil {
				return Run{}, fmt.Errorf("sample: %w", err)
			}
			run.Ints[i] = int64(v)
		}
	case OpFloat:
		run.Floats = make([]float64, req.Count)
		for i := range run.Floats {
			v, err := src.Float64Range(req.Bounds.FloatMin, req.Bounds.FloatMax)
			if err != nil {
				return Run{}, fmt.Errorf("sample: %w", err)
			}
			run.Floats[i] = v
		}
	default:
		panic("must not happen")
	}
	return run, nil
}

// Replay samples run again from its seed and checks that the same sequence comes out.
func Replay(run Run) error {
	if !run.Replayable() {
		return fmt.Errorf("%w: %v source without seed", ErrNotReplayable, run.Kind)
	}
	again, err := Sample(Request{
		Source: run.SourceOptions(),
		Op:     run.Op,
		Bounds: run.Bounds,
		Count:  run.Count,
	})
	if err != nil {
		return fmt.Errorf("resample: %w", err)
	}
	switch run.Op {
	case OpInt:
		return compare(run.Ints, again.Ints)
	case OpFloat:
		return compare(run.Floats, again.Floats)
	default:
		return fmt.Errorf("unknown op %q", run.Op)
	}
}

func compare[T comparable](recorded, replayed []T) error {
	if len(recorded) != len(replayed) {
		return fmt.Errorf("%w: recorded %v values, replayed %v", ErrMismatch, len(recorded), len(replayed))
	}
	if idx := firstDiff(recorded, replayed); idx >= 0 {
		return fmt.Errorf("%w: value #%v: recorded %v, replayed %v", ErrMismatch, idx, recorded[idx], replayed[idx])
	}
	return nil
}

// firstDiff returns the first index where equal-length a and b differ, or -1.
func firstDiff[T comparable](a, b []T) int {
	if slices.Equal(a, b) {
		return -1
	}
	for i := range a {
		if a[i] != b[i] {
			return i
		}
	}
	panic("must not happen")
}

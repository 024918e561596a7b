package runlog

import (
	"fmt"
	"time"

	"github.com/alex65536/tsrand/internal/randsrc"
)

type Op string

const (
	OpInt   Op = "int"
	OpFloat Op = "float"
)

func ParseOp(s string) (Op, error) {
	switch Op(s) {
	case OpInt, OpFloat:
		return Op(s), nil
	default:
		return "", fmt.Errorf("unknown op %q", s)
	}
}

// Bounds holds the sampled range. Only the pair matching the run's Op is meaningful.
type Bounds struct {
	IntMin   int64
	IntMax   int64
	FloatMin float64
	FloatMax float64
}

type Run struct {
	ID        string `gorm:"primaryKey"`
	Name      string `gorm:"index"`
	Kind      randsrc.Kind
	Seed      *int64
	Op        Op
	Bounds    Bounds    `gorm:"embedded;embeddedPrefix:bounds_"`
	Count     int
	Ints      []int64   `gorm:"serializer:seq"`
	Floats    []float64 `gorm:"serializer:seq"`
	CreatedAt time.Time
}

func (r Run) Replayable() bool {
	return r.Kind == randsrc.KindUniform && r.Seed != nil
}

func (r Run) SourceOptions() randsrc.Options {
	return randsrc.Options{Kind: r.Kind, Seed: r.Seed}.Clone()
}

var models = []any{
	&Run{},
}

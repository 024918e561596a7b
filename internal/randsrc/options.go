package randsrc

import (
	"fmt"
)

type Kind int

const (
	KindUniform Kind = iota
	KindSecure
)

func (k Kind) String() string {
	switch k {
	case KindUniform:
		return "uniform"
	case KindSecure:
		return "secure"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

func ParseKind(s string) (Kind, error) {
	switch s {
	case "uniform", "":
		return KindUniform, nil
	case "secure":
		return KindSecure, nil
	default:
		return 0, fmt.Errorf("unknown source kind %q", s)
	}
}

func (k Kind) MarshalText() ([]byte, error) {
	switch k {
	case KindUniform, KindSecure:
		return []byte(k.String()), nil
	default:
		return nil, fmt.Errorf("bad source kind %v", int(k))
	}
}

func (k *Kind) UnmarshalText(b []byte) error {
	v, err := ParseKind(string(b))
	if err != nil {
		return err
	}
	*k = v
	return nil
}

type Options struct {
	Kind Kind `toml:"kind"`
	// Nil means seeding from system entropy. Only the uniform kind accepts a seed.
	Seed *int64 `toml:"seed"`
}

func (o Options) Clone() Options {
	if o.Seed != nil {
		seed := *o.Seed
		o.Seed = &seed
	}
	return o
}

func (o *Options) Validate() error {
	switch o.Kind {
	case KindUniform:
	case KindSecure:
		if o.Seed != nil {
			return fmt.Errorf("%v: %w", o.Kind, ErrSeedUnsupported)
		}
	default:
		return fmt.Errorf("bad source kind %v", int(o.Kind))
	}
	return nil
}

// New creates a source of the requested kind.
func New(o Options) (Source, error) {
	if err := o.Validate(); err != nil {
		return nil, fmt.Errorf("bad options: %w", err)
	}
	switch o.Kind {
	case KindUniform:
		if o.Seed != nil {
			return NewSeededUniform(*o.Seed), nil
		}
		return NewUniform(), nil
	case KindSecure:
		s, err := NewSecure()
		if err != nil {
			return nil, fmt.Errorf("create secure source: %w", err)
		}
		return s, nil
	default:
		panic("must not happen")
	}
}

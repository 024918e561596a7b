package main

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/alex65536/tsrand/internal/randsrc"
	"github.com/alex65536/tsrand/internal/runlog"
	"github.com/alex65536/tsrand/internal/stress"
)

type StreamOptions struct {
	// Values per second. Zero means default.
	Rate float64 `toml:"rate"`
	// Zero means default.
	Burst int `toml:"burst"`
}

func (o *StreamOptions) Validate() error {
	if o.Rate < 0 {
		return fmt.Errorf("negative rate")
	}
	if o.Burst < 0 {
		return fmt.Errorf("negative burst")
	}
	return nil
}

func (o *StreamOptions) FillDefaults() {
	if o.Rate == 0 {
		o.Rate = 10
	}
	if o.Burst == 0 {
		o.Burst = 1
	}
}

type Options struct {
	Source randsrc.Options `toml:"source"`
	Stress stress.Options  `toml:"stress"`
	DB     runlog.Options  `toml:"db"`
	Stream StreamOptions   `toml:"stream"`
}

func (o *Options) Validate() error {
	if err := o.Source.Validate(); err != nil {
		return fmt.Errorf("source: %w", err)
	}
	if err := o.Stress.Validate(); err != nil {
		return fmt.Errorf("stress: %w", err)
	}
	if err := o.DB.Validate(); err != nil {
		return fmt.Errorf("db: %w", err)
	}
	if err := o.Stream.Validate(); err != nil {
		return fmt.Errorf("stream: %w", err)
	}
	return nil
}

func (o *Options) FillDefaults() {
	o.Stress.FillDefaults()
	o.DB.FillDefaults()
	o.Stream.FillDefaults()
}

func loadOptions(path string) (Options, error) {
	var o Options
	if path == "" {
		return o, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return Options{}, fmt.Errorf("read options file: %w", err)
	}
	if err := toml.Unmarshal(data, &o); err != nil {
		return Options{}, fmt.Errorf("unmarshal options file: %w", err)
	}
	return o, nil
}

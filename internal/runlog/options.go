package runlog

import (
	"fmt"
	"time"
)

type Options struct {
	Path          string        `toml:"path"`
	Debug         bool          `toml:"debug"`
	SlowThreshold time.Duration `toml:"slow-threshold"`
	BusyTimeout   time.Duration `toml:"busy-timeout"`
	UseWAL        bool          `toml:"use-wal"`
}

func (o *Options) Validate() error {
	if o.SlowThreshold < 0 {
		return fmt.Errorf("negative slow threshold")
	}
	if o.BusyTimeout < 0 {
		return fmt.Errorf("negative busy timeout")
	}
	return nil
}

func (o *Options) FillDefaults() {
	if o.Path == "" {
		o.Path = "tsrand.db"
	}
	if o.SlowThreshold == 0 {
		o.SlowThreshold = 200 * time.Millisecond
	}
	if o.BusyTimeout == 0 {
		o.BusyTimeout = 10 * time.Second
	}
}

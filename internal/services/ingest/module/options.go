package module

import (
	"time"

	"tsudoi/internal/platform/config"
)

// Options carry the runtime knobs for the ingestion module
type Options struct {
	// Delay is the politeness pause between outbound source fetches
	Delay time.Duration
}

// FromConfig reads module options from the INGEST_ env prefix
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("INGEST_")
	return Options{
		Delay: c.MayDuration("DELAY", time.Second),
	}
}

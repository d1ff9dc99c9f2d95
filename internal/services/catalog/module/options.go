package module

import (
	"shelfsearch/internal/core/fuzzy"
	"shelfsearch/internal/platform/config"
)

// Options holds configuration settings for the catalog module
type Options struct {
	Catalog         string  // path to the catalog JSON document
	Workers         int     // candidate evaluation pool size
	PrefixRatio     float64 // fuzzy prefix stage ratio
	MaxWindowChecks int     // fuzzy window stage cap per word
}

// FromConfig extracts Options from the given config.Conf
func FromConfig(cfg config.Conf) Options {
	c := cfg.Prefix("SHELFSEARCH_")
	return Options{
		Catalog:         c.MayString("CATALOG", ""),
		Workers:         c.MayPositiveInt("WORKERS", 4),
		PrefixRatio:     c.MayRatio("PREFIX_RATIO", fuzzy.DefaultPrefixRatio),
		MaxWindowChecks: c.MayPositiveInt("MAX_WINDOW_CHECKS", fuzzy.DefaultMaxWindowChecks),
	}
}

// merge applies non-zero overrides on top of o
func (o Options) merge(overrides Options) Options {
	if overrides.Catalog != "" {
		o.Catalog = overrides.Catalog
	}
	if overrides.Workers != 0 {
		o.Workers = overrides.Workers
	}
	if overrides.PrefixRatio != 0 {
		o.PrefixRatio = overrides.PrefixRatio
	}
	if overrides.MaxWindowChecks != 0 {
		o.MaxWindowChecks = overrides.MaxWindowChecks
	}
	return o
}

// matcher returns the fuzzy options these settings describe
func (o Options) matcher() fuzzy.Options {
	m := fuzzy.DefaultOptions()
	m.PrefixRatio = o.PrefixRatio
	m.MaxWindowChecks = o.MaxWindowChecks
	return m
}

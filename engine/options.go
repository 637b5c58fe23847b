package engine

import (
	"github.com/spaghettifunk/d3d9ui/engine/core"
	"github.com/spaghettifunk/d3d9ui/engine/platform"
)

type options struct {
	config   *Config
	reactive *bool
	policy   core.ErrorPolicy
	platform *platform.Platform
	watcher  *ConfigWatcher
}

type Option func(*options)

// WithConfig replaces the default configuration.
func WithConfig(cfg *Config) Option {
	return func(o *options) {
		o.config = cfg
	}
}

// WithReactive overrides Config.Reactive.
func WithReactive(reactive bool) Option {
	return func(o *options) {
		o.reactive = &reactive
	}
}

// WithPolicy overrides the policy derived from Config.Tolerant.
func WithPolicy(policy core.ErrorPolicy) Option {
	return func(o *options) {
		o.policy = policy
	}
}

// WithPlatform supplies the host services instead of binding to the window
// handle passed to New.
func WithPlatform(p *platform.Platform) Option {
	return func(o *options) {
		o.platform = p
	}
}

// WithConfigWatcher applies configs reloaded by w at the start of each frame.
// The engine closes w on Shutdown.
func WithConfigWatcher(w *ConfigWatcher) Option {
	return func(o *options) {
		o.watcher = w
	}
}

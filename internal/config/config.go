// Copyright 2025 Florian Zenker (flo@znkr.io)
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package config provides shared configuration mechanisms for packages this module.
//
// This package is an implementation detail, the configuration surface for users is provided via
// mvd.Option.
package config

import "log/slog"

// Config collects all configurable parameters of a merge.
type Config struct {
	// KDist is the number of characters that may be skipped in the graph and in the text when a
	// match is extended into a chain. A chained segment must be longer than KDist.
	KDist int

	// QueueCapacity is the number of candidate matches the deck keeps.
	QueueCapacity int

	// MinTransposeLength is the minimum length of a match that's merged as a transposition.
	MinTransposeLength int

	// If set, the merged document is verified before it's returned.
	Verify bool

	// Logger receives debug records of the merge. It's never nil after FromOptions.
	Logger *slog.Logger
}

// Default is the default configuration.
var Default = Config{
	KDist:              2,
	QueueCapacity:      50,
	MinTransposeLength: 1,
	Verify:             true,
	Logger:             nil,
}

// Flag describes a single config entry. This is used to detect if configurations are being set
// that are not allowed for a function.
type Flag int

const (
	KDist Flag = 1 << iota
	QueueCapacity
	MinTransposeLength
	NoVerify
	Logger
)

// All is the set of all flags.
const All = KDist | QueueCapacity | MinTransposeLength | NoVerify | Logger

// Option is the mechanism used to expose the configuration to users.
type Option func(*Config) Flag

// FromOptions creates a configuration from a set of options.
func FromOptions(opts []Option, allowed Flag) Config {
	cfg := Default
	for _, opt := range opts {
		flag := opt(&cfg)
		if flag & ^allowed != 0 {
			panic("Option " + printFlag(flag) + " not allowed here")
		}
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	return cfg
}

func printFlag(flag Flag) string {
	switch flag {
	case KDist:
		return "mvd.KDist"
	case QueueCapacity:
		return "mvd.QueueCapacity"
	case MinTransposeLength:
		return "mvd.MinTransposeLength"
	case NoVerify:
		return "mvd.NoVerify"
	case Logger:
		return "mvd.Logger"
	default:
		panic("never reached")
	}
}

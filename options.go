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

package mvd

import (
	"log/slog"

	"znkr.io/mvd/internal/config"
)

// Option configures the behavior of [Merge].
type Option = config.Option

// KDist sets how many characters may be skipped, in the document and in the text, when a match
// is extended into a chain of matches. The default is 2.
func KDist(n int) Option {
	return func(cfg *config.Config) config.Flag {
		cfg.KDist = max(0, n)
		return config.KDist
	}
}

// QueueCapacity sets the number of candidate matches kept while searching for the best match.
// Larger values find unique matches in repetitive texts more reliably at the cost of memory. The
// default is 50.
func QueueCapacity(n int) Option {
	return func(cfg *config.Config) config.Flag {
		cfg.QueueCapacity = max(1, n)
		return config.QueueCapacity
	}
}

// MinTransposeLength sets the minimum length of a match that's merged as a transposition. Shorter
// matches out of order are inserted as new text. The default is 1.
func MinTransposeLength(n int) Option {
	return func(cfg *config.Config) config.Flag {
		cfg.MinTransposeLength = max(1, n)
		return config.MinTransposeLength
	}
}

// NoVerify skips the verification of the merged document.
func NoVerify() Option {
	return func(cfg *config.Config) config.Flag {
		cfg.Verify = false
		return config.NoVerify
	}
}

// Logger sets a logger for debug records of the merge. By default, nothing is logged.
func Logger(l *slog.Logger) Option {
	return func(cfg *config.Config) config.Flag {
		cfg.Logger = l
		return config.Logger
	}
}

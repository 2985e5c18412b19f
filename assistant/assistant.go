// Copyright 2025 Poiesic Systems
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


package assistant

import (
	"context"
	"log/slog"

	"github.com/poiesic/matchit/ai"
	"github.com/poiesic/matchit/core"
)

// maxResultItems caps how many matches a result carries back to the user.
const maxResultItems = 3

// Matcher scores the catalog against extracted attributes.
// *engine.Engine satisfies this interface.
type Matcher interface {
	Match(ctx context.Context, attrs core.Attributes) []core.Match
}

// Assistant turns a free-form prompt into a MatchResult: it extracts
// attributes, runs the matching engine (retrying once with relaxed
// attributes), and composes a natural-language answer from the best
// match. Every failure degrades to a fixed message; Handle never
// propagates an error to the caller.
type Assistant struct {
	extractor ai.AttributeExtractor
	matcher   Matcher
	composer  ai.Composer
	logger    *slog.Logger
}

// Option configures an Assistant.
type Option func(*Assistant) error

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(a *Assistant) error {
		if logger == nil {
			logger = slog.Default()
		}
		a.logger = logger
		return nil
	}
}

// NewAssistant creates an assistant over the given services.
func NewAssistant(extractor ai.AttributeExtractor, matcher Matcher, composer ai.Composer, opts ...Option) (*Assistant, error) {
	if extractor == nil {
		return nil, ErrExtractorRequired
	}
	if matcher == nil {
		return nil, ErrMatcherRequired
	}
	if composer == nil {
		return nil, ErrComposerRequired
	}

	a := &Assistant{
		extractor: extractor,
		matcher:   matcher,
		composer:  composer,
		logger:    slog.Default(),
	}

	// Apply options
	for _, opt := range opts {
		if err := opt(a); err != nil {
			return nil, err
		}
	}

	return a, nil
}

// Handle processes a prompt end to end and always returns a result.
// Panics anywhere below are converted into a fixed error result.
func (a *Assistant) Handle(ctx context.Context, prompt string) (result *core.MatchResult) {
	defer func() {
		if r := recover(); r != nil {
			a.logger.Error("panic while handling prompt", "prompt", prompt, "panic", r)
			result = &core.MatchResult{
				Message: MessageTechnicalIssue,
				Items:   []core.Match{},
				Error:   true,
			}
		}
	}()

	a.logger.Debug("handling prompt", "prompt", prompt)

	attrs, err := a.extractor.ExtractAttributes(ctx, prompt)
	if err != nil {
		// Extraction service unreachable. Fall back to matching on the
		// raw prompt text instead of giving up.
		a.logger.Warn("attribute extraction failed, using raw prompt", "err", err)
		attrs = core.Attributes{"query": prompt}
	}
	a.logger.Debug("extracted attributes", "attributes", attrs)

	if len(attrs) == 0 {
		return &core.MatchResult{Message: MessageNotUnderstood, Items: []core.Match{}}
	}

	matches := a.matcher.Match(ctx, attrs)
	if len(matches) == 0 {
		// Retry once with just type, color and the raw prompt.
		attrs = attrs.Simplified(prompt)
		a.logger.Debug("no matches, retrying relaxed", "attributes", attrs)
		matches = a.matcher.Match(ctx, attrs)
	}
	if len(matches) == 0 {
		return &core.MatchResult{Message: MessageNoMatches(prompt), Items: []core.Match{}}
	}

	top := matches[0]
	message, err := a.composer.Compose(ctx, prompt, attrs, &top)
	if err != nil {
		a.logger.Error("response composition failed", "err", err)
		message = MessageComposeFailed
	}

	return &core.MatchResult{Message: message, Items: capMatches(matches)}
}

func capMatches(matches []core.Match) []core.Match {
	if len(matches) > maxResultItems {
		matches = matches[:maxResultItems]
	}
	return matches
}

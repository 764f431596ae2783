package llm

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// ErrCompletionExhausted reports that the completion service failed on every
// attempt allowed by the retry policy.
var ErrCompletionExhausted = errors.New("completion service failed after all retries")

// Synthesizer drives the completion service with a bounded retry policy and
// post-processes the raw output into a structured brief.
type Synthesizer struct {
	provider Provider
	config   Config
	log      *logrus.Entry

	// sleep is swapped out by tests to avoid real backoff delays
	sleep func(time.Duration)
}

// NewSynthesizer creates a brief synthesizer on top of the given provider
func NewSynthesizer(provider Provider, config Config, log *logrus.Entry) *Synthesizer {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Synthesizer{
		provider: provider,
		config:   config,
		log:      log,
		sleep:    time.Sleep,
	}
}

// Synthesize produces a formatted brief for the case from extracted judgment
// text. Only a bounded prefix of the text is sent to the completion service.
// On retry exhaustion the returned brief contains a formatted error message
// instead of sections, alongside ErrCompletionExhausted - a single case's
// service failure must never take down a batch.
func (s *Synthesizer) Synthesize(ctx context.Context, caseTitle, judgmentText string) (string, error) {
	prefix := judgmentText
	if limit := s.config.PromptPrefixBytes; limit > 0 && len(prefix) > limit {
		prefix = prefix[:limit]
	}

	prompt := BuildBriefPrompt(caseTitle, prefix)

	raw, err := s.complete(ctx, prompt)
	if err != nil {
		attempts := s.config.Retries + 1
		content := fmt.Sprintf("**Case Name:** %s\n\n_Brief generation failed after %d attempts: %v_\n", caseTitle, attempts, err)
		return content, fmt.Errorf("%w: %v", ErrCompletionExhausted, err)
	}

	return FormatBrief(CleanResponse(raw)), nil
}

// SuggestTitles asks the completion service for Supreme Court case titles
// relevant to a plain-language legal issue and returns them raw; callers
// normalize before any storage use.
func (s *Synthesizer) SuggestTitles(ctx context.Context, issue string) ([]string, error) {
	raw, err := s.complete(ctx, BuildSuggestPrompt(issue))
	if err != nil {
		return nil, err
	}

	titles := ParseNumberedTitles(raw)
	if len(titles) == 0 {
		return nil, fmt.Errorf("no case titles found in completion response")
	}
	return titles, nil
}

// complete runs one prompt through the provider under the retry policy:
// Retries additional attempts with a fixed backoff between them. Only
// service/transport failures are retried; a successful response is returned
// as-is even if it violates the prompt contract.
func (s *Synthesizer) complete(ctx context.Context, prompt string) (string, error) {
	attempts := s.config.Retries + 1

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return "", ctx.Err()
			default:
			}
			s.sleep(s.config.RetryBackoff)
		}

		resp, err := s.provider.Complete(ctx, CompletionRequest{
			System:      systemInstruction,
			Prompt:      prompt,
			MaxTokens:   s.config.MaxTokens,
			Temperature: 0.5,
		})
		if err != nil {
			lastErr = err
			s.log.WithFields(logrus.Fields{
				"provider": s.provider.Name(),
				"attempt":  attempt,
				"attempts": attempts,
			}).WithError(err).Warn("completion attempt failed")
			continue
		}

		return resp.Text, nil
	}

	return "", lastErr
}

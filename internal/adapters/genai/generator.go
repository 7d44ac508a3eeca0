package genai

import "context"

// Fixed fallback strings. The UI never surfaces raw generation failures;
// any error at this boundary degrades to one of these.
const (
	FallbackOpeningStatement  = "Let's begin. State your position on the topic and support it with your strongest argument."
	FallbackInterviewQuestion = "Tell me about a challenge you faced in this role and how you handled it."
)

// DebateConfig tunes the generated opening statement.
type DebateConfig struct {
	Difficulty string // easy, medium, hard
	Role       string // side the AI argues, e.g. "for" or "against"
}

// Generator produces short natural-language prompts for practice sessions.
type Generator interface {
	// OpeningStatement returns an opening statement for a debate topic.
	OpeningStatement(ctx context.Context, topic string, cfg DebateConfig) (string, error)
	// InterviewQuestion returns one interview question for a job role.
	InterviewQuestion(ctx context.Context, jobRole string) (string, error)
}

// Safe wraps a Generator so that any failure returns the fixed fallback
// string instead of an error. Handlers use this wrapper; the raw error is
// logged inside but never propagated.
type Safe struct {
	Inner Generator
}

// OpeningStatement returns the generated statement or the fallback.
// POST: error is always nil
func (s Safe) OpeningStatement(ctx context.Context, topic string, cfg DebateConfig) (string, error) {
	if s.Inner == nil {
		return FallbackOpeningStatement, nil
	}
	text, err := s.Inner.OpeningStatement(ctx, topic, cfg)
	if err != nil || text == "" {
		return FallbackOpeningStatement, nil
	}
	return text, nil
}

// InterviewQuestion returns the generated question or the fallback.
// POST: error is always nil
func (s Safe) InterviewQuestion(ctx context.Context, jobRole string) (string, error) {
	if s.Inner == nil {
		return FallbackInterviewQuestion, nil
	}
	text, err := s.Inner.InterviewQuestion(ctx, jobRole)
	if err != nil || text == "" {
		return FallbackInterviewQuestion, nil
	}
	return text, nil
}

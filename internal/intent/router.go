// Package intent classifies a raw user message into the action it should
// trigger. Classification is a strictly ordered pipeline of rules; the
// first matching rule wins and no rule mutates any state.
package intent

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/shakauthossain/nh-buddy/internal/llm"
)

// Kind enumerates the classified purposes of an inbound message.
type Kind int

const (
	None Kind = iota
	Handoff
	Schedule
	Contact
	SpecificService
	GeneralServices
)

func (k Kind) String() string {
	switch k {
	case Handoff:
		return "handoff"
	case Schedule:
		return "schedule"
	case Contact:
		return "contact"
	case SpecificService:
		return "specific_service"
	case GeneralServices:
		return "general_services"
	default:
		return "none"
	}
}

// Intent is the classification result. Service and EnrichedQuery are only
// set for SpecificService.
type Intent struct {
	Kind          Kind
	Service       string
	EnrichedQuery string
}

// Router runs the classification pipeline. The generator is optional and
// only consulted for the borderline schedule check; a nil generator or a
// failed call defaults to "no".
type Router struct {
	generator llm.Generator
}

// NewRouter creates a classifier. generator may be nil.
func NewRouter(generator llm.Generator) *Router {
	return &Router{generator: generator}
}

// Classify runs the ordered pipeline:
//
//  1. active handoff is sticky: everything classifies as Handoff
//  2. explicit request to talk to a human
//  3. scheduling keywords, with a model yes/no check for long or
//     question-marked messages that match no keyword
//  4. explicit contact/reach-us requests
//  5. specific-service keyword scan (declaration order, first match wins)
//  6. general service-list keywords (only when step 5 did not match)
//  7. none: the message falls through to retrieval + generation
func (r *Router) Classify(ctx context.Context, text string, handoffActive bool) Intent {
	if handoffActive {
		return Intent{Kind: Handoff}
	}

	lower := strings.ToLower(strings.TrimSpace(text))

	if matchesAny(lower, agentKeywords) {
		return Intent{Kind: Handoff}
	}

	if r.isSchedule(ctx, text, lower) {
		return Intent{Kind: Schedule}
	}

	if matchesAny(lower, contactKeywords) {
		return Intent{Kind: Contact}
	}

	for _, m := range serviceMappings {
		if strings.Contains(lower, m.keyword) {
			return Intent{
				Kind:    SpecificService,
				Service: m.service,
				EnrichedQuery: fmt.Sprintf(
					"Tell me about %s services of yours. What does the company offer for %s?",
					m.service, m.service),
			}
		}
	}

	if matchesAny(lower, generalServiceKeywords) {
		return Intent{Kind: GeneralServices}
	}

	return Intent{Kind: None}
}

func (r *Router) isSchedule(ctx context.Context, original, lower string) bool {
	if matchesAny(lower, scheduleKeywords) {
		return true
	}

	// Keywords cover most cases; only long or question-shaped messages
	// are worth a model call.
	if r.generator == nil {
		return false
	}
	if len(strings.Fields(original)) <= 10 && !strings.Contains(original, "?") {
		return false
	}

	reply, err := r.generator.Generate(ctx, llm.BuildYesNoPrompt(original))
	if err != nil {
		slog.Debug("schedule intent check failed, defaulting to no", "error", err)
		return false
	}
	return strings.Contains(strings.ToLower(reply), "yes")
}

func matchesAny(lower string, keywords []string) bool {
	for _, kw := range keywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}

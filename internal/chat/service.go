// Package chat composes the session store, intent router, handoff
// correlator and the retrieval/generation collaborators into the
// per-request decision flow behind the chat endpoint.
package chat

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/shakauthossain/nh-buddy/internal/domain"
	"github.com/shakauthossain/nh-buddy/internal/handoff"
	"github.com/shakauthossain/nh-buddy/internal/intent"
	"github.com/shakauthossain/nh-buddy/internal/llm"
	"github.com/shakauthossain/nh-buddy/internal/retrieval"
	"github.com/shakauthossain/nh-buddy/internal/session"
)

const retrievalK = 3

// Service is the conversation orchestrator.
type Service struct {
	sessions   session.Store
	correlator *handoff.Correlator
	router     *intent.Router
	index      retrieval.Index
	generator  llm.Generator // nil degrades every generation to the fallback answer

	contactEmail string
	locks        *keyedMutex
	now          func() time.Time
}

// NewService wires the orchestrator. generator may be nil.
func NewService(
	sessions session.Store,
	correlator *handoff.Correlator,
	router *intent.Router,
	index retrieval.Index,
	generator llm.Generator,
	contactEmail string,
) *Service {
	return &Service{
		sessions:     sessions,
		correlator:   correlator,
		router:       router,
		index:        index,
		generator:    generator,
		contactEmail: contactEmail,
		locks:        newKeyedMutex(),
		now:          time.Now,
	}
}

// Ask handles one user message and returns the response payload. userID may
// be empty; a server-generated id is then used and echoed back for scripted
// payloads that carry one.
func (s *Service) Ask(ctx context.Context, userID, query string) *domain.Answer {
	query = strings.TrimSpace(query)
	if userID == "" {
		userID = fmt.Sprintf("user_%d", s.now().UnixMilli())
	}

	// Sticky handoff: the message goes straight to the operator, the
	// automated pipeline stays out of the way.
	if s.correlator.Active(userID) {
		if !s.correlator.Forward(userID, query) {
			return &domain.Answer{Answer: forwardFailAnswer}
		}
		return &domain.Answer{FromAgent: true, Answer: forwardedAnswer}
	}

	it := s.router.Classify(ctx, query, false)
	slog.Debug("classified message", "user_id", userID, "intent", it.Kind.String())

	switch it.Kind {
	case intent.Handoff:
		s.correlator.Activate(userID)
		if !s.correlator.Forward(userID, query) {
			// The handoff stays active; the user's next message retries
			// the forward. Retrying here could double-post.
			return &domain.Answer{
				Action: domain.ActionConnectAgent,
				UserID: userID,
				Answer: forwardFailAnswer,
			}
		}
		return &domain.Answer{
			Action: domain.ActionConnectAgent,
			UserID: userID,
			Answer: connectAgentAnswer,
		}

	case intent.Schedule:
		return &domain.Answer{Action: domain.ActionScheduleMeeting, Answer: scheduleAnswer}

	case intent.Contact:
		return &domain.Answer{
			Action:        domain.ActionContactRequest,
			ContactInfo:   s.contactEmail,
			CallbackOffer: true,
			Answer:        fmt.Sprintf("You can reach the team at %s. Would you like us to call you back?", s.contactEmail),
		}

	case intent.GeneralServices:
		return &domain.Answer{
			Action:   domain.ActionServicesInquiry,
			Services: serviceCatalog,
			Answer:   servicesAnswer,
		}

	case intent.SpecificService:
		answer := s.answer(ctx, userID, query, it.EnrichedQuery)
		answer.Action = domain.ActionSpecificService
		answer.Service = it.Service
		return answer

	default:
		return s.answer(ctx, userID, query, query)
	}
}

// answer runs the conversational path: record the user turn, retrieve
// context, generate, record the bot turn. The per-user lock only covers the
// session read-modify-write sections; retrieval and generation run outside
// it so a slow model call cannot stall other requests for the user's
// session data.
func (s *Service) answer(ctx context.Context, userID, query, retrievalQuery string) *domain.Answer {
	unlock := s.locks.lock(userID)
	if err := s.sessions.Append(ctx, userID, domain.RoleUser, query); err != nil {
		slog.Error("session append failed", "user_id", userID, "error", err)
	}
	history, err := s.sessions.Read(ctx, userID)
	if err != nil {
		slog.Error("session read failed", "user_id", userID, "error", err)
	}
	unlock()

	text, ok := s.generate(ctx, retrievalQuery, history, query)
	if !ok {
		return &domain.Answer{Answer: s.fallbackAnswer()}
	}

	unlock = s.locks.lock(userID)
	if err := s.sessions.Append(ctx, userID, domain.RoleBot, text); err != nil {
		slog.Error("session append failed", "user_id", userID, "error", err)
	}
	unlock()

	return &domain.Answer{Answer: text}
}

func (s *Service) generate(ctx context.Context, retrievalQuery string, history []domain.Turn, query string) (string, bool) {
	if s.generator == nil {
		return "", false
	}

	var faqContext string
	if s.index != nil {
		docs, err := s.index.Search(ctx, retrievalQuery, retrievalK)
		if err != nil {
			slog.Warn("retrieval failed, generating without context", "error", err)
		}
		parts := make([]string, 0, len(docs))
		for _, doc := range docs {
			parts = append(parts, doc.Text)
		}
		faqContext = strings.Join(parts, "\n\n")
	}

	text, err := s.generator.Generate(ctx, llm.BuildAnswerPrompt(faqContext, history, query))
	if err != nil {
		slog.Warn("generation failed", "error", err)
		return "", false
	}
	return text, true
}

func (s *Service) fallbackAnswer() string {
	return fmt.Sprintf(
		"I currently do not have an answer to your question. Please connect with us at %s for further help.",
		s.contactEmail)
}

// EndSession clears all per-user state: the handoff flag first so no new
// forward races the teardown, then the queued operator replies, then the
// conversation history.
func (s *Service) EndSession(ctx context.Context, userID string) error {
	s.correlator.Deactivate(userID)
	s.correlator.EndHandoff(userID)

	unlock := s.locks.lock(userID)
	defer unlock()
	if err := s.sessions.Clear(ctx, userID); err != nil {
		return fmt.Errorf("clear session for %s: %w", userID, err)
	}
	return nil
}

// Package handoff routes conversations between end users and human
// operators reachable through the Telegram agent chat.
//
// Outbound: a user's message is forwarded into the agent chat with an
// embedded user tag, and the returned Telegram message id is recorded.
// Inbound: the webhook feeds operator updates back through a three-tier
// correlation (reply-to id, tag in the replied-to text, inline tag) and the
// matched reply is queued FIFO for the user to poll.
package handoff

import (
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/shakauthossain/nh-buddy/internal/domain"
)

// Correlator owns all per-user handoff state: the one-shot outbound record
// map, the bounded FIFO reply queues and the handoff-active flags. All three
// share one mutex; every operation is a short map update, and the operator
// send in Forward happens before the lock is taken.
type Correlator struct {
	gateway  Gateway // nil when operator forwarding is not configured
	queueCap int

	mu      sync.Mutex
	records map[int]string // outbound message id -> user id, consumed once
	queues  map[string][]domain.AgentReply
	active  map[string]bool

	now func() time.Time
}

// NewCorrelator creates a correlator. gateway may be nil; Forward then
// reports failure without sending.
func NewCorrelator(gateway Gateway, queueCap int) *Correlator {
	return &Correlator{
		gateway:  gateway,
		queueCap: queueCap,
		records:  make(map[int]string),
		queues:   make(map[string][]domain.AgentReply),
		active:   make(map[string]bool),
		now:      time.Now,
	}
}

// Activate marks the user's conversation as handed off to an operator.
func (c *Correlator) Activate(userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.active[userID] = true
}

// Deactivate clears the handoff flag.
func (c *Correlator) Deactivate(userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.active, userID)
}

// Active reports whether the user is in an active handoff.
func (c *Correlator) Active(userID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active[userID]
}

// Forward sends the user's message to the operator channel with the user's
// identity embedded both as a structured tag and as a reply-to instruction.
// The outbound record is stored only after a confirmed send, so a transport
// failure never leaves a partial record. Returns false on any failure.
func (c *Correlator) Forward(userID, message string) bool {
	if c.gateway == nil {
		slog.Warn("operator forward skipped, no gateway configured", "user_id", userID)
		return false
	}

	tag := FormatTag(userID)
	full := fmt.Sprintf(
		"New user message\n%s\n\n%s\n\nAgents: please REPLY to this message (or include %s in your reply).",
		tag, message, tag,
	)

	messageID, err := c.gateway.Send(full)
	if err != nil {
		slog.Warn("operator forward failed", "user_id", userID, "error", err)
		return false
	}

	c.mu.Lock()
	c.records[messageID] = userID
	c.mu.Unlock()

	slog.Info("forwarded message to operator channel", "user_id", userID, "message_id", messageID)
	return true
}

// HandleUpdate correlates one inbound channel update with a waiting user.
// Correlation tiers, strictly in order:
//
//  1. reply-to message id against the one-shot record map
//  2. user tag embedded in the replied-to message's original text
//  3. inline user tag in the operator's own message (tag is stripped)
//
// Unmatched events are ignored, not errors: at-least-once webhook delivery
// means duplicates and unrelated chat traffic are expected here.
func (c *Correlator) HandleUpdate(update tgbotapi.Update) domain.CorrelationResult {
	msg := inboundMessage(update)
	if msg == nil {
		return domain.CorrelationResult{}
	}

	text := msg.Text
	if text == "" {
		text = msg.Caption
	}
	agent := agentName(msg)

	c.mu.Lock()
	defer c.mu.Unlock()

	if rt := msg.ReplyToMessage; rt != nil {
		if userID, ok := c.records[rt.MessageID]; ok {
			delete(c.records, rt.MessageID) // consume-once
			c.enqueueLocked(userID, strings.TrimSpace(text), agent)
			return domain.CorrelationResult{Matched: true, UserID: userID, Via: domain.ViaReplyID}
		}

		orig := rt.Text
		if orig == "" {
			orig = rt.Caption
		}
		if userID := ExtractTag(orig); userID != "" {
			c.enqueueLocked(userID, strings.TrimSpace(text), agent)
			return domain.CorrelationResult{Matched: true, UserID: userID, Via: domain.ViaReplyTag}
		}
	}

	if userID := ExtractTag(text); userID != "" {
		c.enqueueLocked(userID, StripTag(text), agent)
		return domain.CorrelationResult{Matched: true, UserID: userID, Via: domain.ViaInlineTag}
	}

	return domain.CorrelationResult{}
}

// Drain pops and returns the oldest queued reply for the user.
func (c *Correlator) Drain(userID string) (domain.AgentReply, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	q := c.queues[userID]
	if len(q) == 0 {
		return domain.AgentReply{}, false
	}

	reply := q[0]
	if len(q) == 1 {
		delete(c.queues, userID)
	} else {
		c.queues[userID] = q[1:]
	}
	return reply, true
}

// EndHandoff discards any queued replies for the user.
func (c *Correlator) EndHandoff(userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.queues, userID)
}

func (c *Correlator) enqueueLocked(userID, text, agent string) {
	q := append(c.queues[userID], domain.AgentReply{
		Text:      text,
		Agent:     agent,
		Timestamp: c.now().UTC(),
	})
	// Bounded queue, oldest evicted first.
	if len(q) > c.queueCap {
		q = q[len(q)-c.queueCap:]
	}
	c.queues[userID] = q
}

// inboundMessage selects the usable message out of the update envelope.
func inboundMessage(update tgbotapi.Update) *tgbotapi.Message {
	switch {
	case update.Message != nil:
		return update.Message
	case update.EditedMessage != nil:
		return update.EditedMessage
	case update.ChannelPost != nil:
		return update.ChannelPost
	case update.EditedChannelPost != nil:
		return update.EditedChannelPost
	default:
		return nil
	}
}

func agentName(msg *tgbotapi.Message) string {
	if msg.From != nil {
		if msg.From.UserName != "" {
			return msg.From.UserName
		}
		if msg.From.FirstName != "" {
			return msg.From.FirstName
		}
	}
	return "agent"
}

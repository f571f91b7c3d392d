package domain

// Via reports which correlation tier matched an inbound operator event.
type Via string

const (
	// ViaReplyID means the event replied to a forwarded message whose id
	// was still recorded.
	ViaReplyID Via = "reply_id"
	// ViaReplyTag means the user tag was recovered from the replied-to
	// message's original text.
	ViaReplyTag Via = "reply_tag"
	// ViaInlineTag means the operator embedded the tag in their own message.
	ViaInlineTag Via = "inline_tag"
)

// CorrelationResult is the outcome of routing one inbound operator event.
type CorrelationResult struct {
	Matched bool
	UserID  string
	Via     Via
}

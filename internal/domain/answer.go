package domain

// Actions returned by the chat endpoint for scripted intents.
const (
	ActionScheduleMeeting = "schedule_meeting"
	ActionContactRequest  = "contact_request"
	ActionSpecificService = "specific_service_inquiry"
	ActionServicesInquiry = "services_inquiry"
	ActionConnectAgent    = "connect_agent"
)

// ServiceInfo describes one entry of the service catalog.
type ServiceInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Answer is the chat endpoint response. Action and the action-specific
// fields are only set for scripted intents; plain generated answers carry
// just Answer.
type Answer struct {
	Answer        string        `json:"answer"`
	Action        string        `json:"action,omitempty"`
	UserID        string        `json:"user_id,omitempty"`
	FromAgent     bool          `json:"from_agent,omitempty"`
	Service       string        `json:"service,omitempty"`
	Services      []ServiceInfo `json:"services,omitempty"`
	ContactInfo   string        `json:"contact_info,omitempty"`
	CallbackOffer bool          `json:"callback_offer,omitempty"`
}

package intent

// Keyword tables for the rule tiers of the classifier. Matching is
// case-insensitive substring containment.

var scheduleKeywords = []string{
	"schedule", "book", "appointment", "meeting", "call", "session",
	"book a meeting", "schedule a call", "set up a meeting", "arrange",
	"when can we meet", "available time", "calendar", "book time",
}

var agentKeywords = []string{
	"talk to agent", "speak to agent", "human agent", "live agent",
	"contact agent", "connect me to agent", "agent please", "need agent",
	"talk to human", "speak to human", "human support", "live support",
	"customer support", "help me", "need help", "support team",
	"representative", "talk to someone", "speak to someone", "real person",
	"human help", "live chat", "customer service", "technical support",
}

var contactKeywords = []string{
	"contact you", "contact info", "contact information", "contact details",
	"how can i contact", "how do i contact", "how to contact",
	"reach you", "reach the team", "get in touch", "email address",
	"phone number", "call you back", "callback",
}

var generalServiceKeywords = []string{
	"what services", "list services", "what do you offer", "what do you do",
	"service list", "what can you help", "capabilities", "offerings",
	"what do you provide", "what are your services", "services you offer",
	"what kind of services", "services available", "service offerings",
	"what services do you have", "show me services", "tell me about your services",
	"list your services", "show services", "services of yours", "view our services",
	"view services", "view your services", "see services", "see your services",
	"see our services", "explore services", "browse services",
}

// serviceMapping maps a trigger keyword to its canonical service name.
// Scan order is declaration order and the first match wins, so more
// specific phrases must stay above the generic ones (e.g. "ui design"
// above "design").
type serviceMapping struct {
	keyword string
	service string
}

var serviceMappings = []serviceMapping{
	{"web development", "Web & App Development"},
	{"app development", "Web & App Development"},
	{"mobile development", "Web & App Development"},
	{"website development", "Web & App Development"},
	{"web design", "Web & App Development"},
	{"mobile app", "Web & App Development"},

	{"ui design", "User Experience Design"},
	{"ux design", "User Experience Design"},
	{"user experience", "User Experience Design"},
	{"user interface", "User Experience Design"},
	{"design", "User Experience Design"},

	{"digital marketing", "Strategy & Digital Marketing"},
	{"marketing", "Strategy & Digital Marketing"},
	{"strategy", "Strategy & Digital Marketing"},
	{"social media", "Strategy & Digital Marketing"},

	{"video production", "Video Production & Photography"},
	{"photography", "Video Production & Photography"},
	{"video", "Video Production & Photography"},
	{"content creation", "Video Production & Photography"},

	{"branding", "Branding & Communication"},
	{"brand identity", "Branding & Communication"},
	{"logo design", "Branding & Communication"},
	{"communication", "Branding & Communication"},

	{"seo", "Search Engine Optimization"},
	{"search engine", "Search Engine Optimization"},
	{"google ranking", "Search Engine Optimization"},

	{"resource augmentation", "Resource Augmentation"},
	{"team extension", "Resource Augmentation"},
	{"staff augmentation", "Resource Augmentation"},
	{"developers", "Resource Augmentation"},
}

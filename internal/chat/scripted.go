package chat

import "github.com/shakauthossain/nh-buddy/internal/domain"

// serviceCatalog is the fixed catalog returned for general service-list
// inquiries.
var serviceCatalog = []domain.ServiceInfo{
	{Name: "Web & App Development", Description: "Custom websites and mobile applications tailored to your needs"},
	{Name: "User Experience Design", Description: "Intuitive and engaging user interfaces that delight your customers"},
	{Name: "Strategy & Digital Marketing", Description: "Data-driven marketing strategies to grow your business"},
	{Name: "Video Production & Photography", Description: "Professional visual content that tells your story"},
	{Name: "Branding & Communication", Description: "Complete brand identity and messaging solutions"},
	{Name: "Search Engine Optimization", Description: "Get found online with our proven SEO strategies"},
	{Name: "Resource Augmentation", Description: "Skilled professionals to extend your team capabilities"},
}

const (
	scheduleAnswer     = "Sure! Let's schedule your meeting. Please choose a date and time."
	servicesAnswer     = "Here are our services. Ready to transform your digital presence? Let's discuss how we can help your business thrive!"
	connectAgentAnswer = "Connecting you to a human agent..."
	forwardedAnswer    = "Message sent to your agent. Please wait for their reply."
	forwardFailAnswer  = "We could not notify our support team just now. Please try again in a moment."
)

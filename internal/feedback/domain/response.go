package domain

import (
	"fmt"
)

// Fixed reply templates used when the generation backend is unavailable or
// fails. Selected by sentiment category, Neutral is the default.
var responseTemplates = map[Sentiment]string{
	SentimentPositive: "Dear %s,\n\nThank you so much for your wonderful feedback! We're thrilled to hear about your positive experience. Your kind words mean a lot to our team and motivate us to continue delivering excellent service.\n\nWe truly appreciate you taking the time to share your thoughts with us.\n\nBest regards,\nCustomer Support Team",
	SentimentNegative: "Dear %s,\n\nThank you for bringing this to our attention. We sincerely apologize for the experience you've had, and we understand your frustration.\n\nYour feedback is invaluable in helping us improve. A member of our team will review your concerns and reach out to you within 24 hours to resolve this matter.\n\nWe appreciate your patience and the opportunity to make things right.\n\nBest regards,\nCustomer Support Team",
	SentimentNeutral:  "Dear %s,\n\nThank you for taking the time to share your feedback with us. We value your input as it helps us understand how we can better serve you.\n\nIf you have any additional comments or questions, please don't hesitate to reach out.\n\nBest regards,\nCustomer Support Team",
}

// TemplateResponse returns the fixed reply for the given customer and
// sentiment category; unrecognized categories fall back to the Neutral
// template.
func TemplateResponse(customerName string, sentiment Sentiment) string {
	template, ok := responseTemplates[sentiment]
	if !ok {
		template = responseTemplates[SentimentNeutral]
	}
	return fmt.Sprintf(template, customerName)
}

package notify

// Confirmation is the payload sent to the notification service. Either
// Phone or Email is set; the service picks the channel.
type Confirmation struct {
	Phone   *string `json:"phone,omitempty"`
	Email   *string `json:"email,omitempty"`
	Subject string  `json:"subject"`
	Message string  `json:"message"`
}

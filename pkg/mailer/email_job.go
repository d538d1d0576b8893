package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// HTML is optional; Text is always set.
type EmailJob struct {
	To      string `json:"to"`
	Subject string `json:"subject"`
	Text    string `json:"text"`
	HTML    string `json:"html,omitempty"`
}

// Message is what the application hands to a Sender.
type Message struct {
	To      string
	Subject string
	Text    string
	HTML    string
}

func (m Message) Job() EmailJob {
	return EmailJob{To: m.To, Subject: m.Subject, Text: m.Text, HTML: m.HTML}
}

package notifier

// Mail задание на отправку письма, которое забирает почтовый воркер
type Mail struct {
	From    string `json:"from,omitempty"`
	To      string `json:"to"`
	Subject string `json:"subject"`
	HTML    string `json:"html"`
}

package models

// Notification is the message published to the notification exchange
// and consumed by the sender worker. Canal selects the delivery queue,
// Destino is an email address or phone number depending on the canal.
type Notification struct {
	Canal   string `json:"canal"`
	Destino string `json:"destino"`
	Asunto  string `json:"asunto,omitempty"`
	Mensaje string `json:"mensaje"`
}

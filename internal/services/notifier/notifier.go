// Package notifier builds subscription notifications and publishes
// them to the broker, routed by the user's delivery preference.
package notifier

import (
	"fmt"
	"log/slog"

	"github.com/fondosapp/fondos-api/internal/config"
	"github.com/fondosapp/fondos-api/internal/models"
)

// Publisher publishes a message to the broker under a routing key.
type Publisher interface {
	Publish(routingKey string, message any) error
}

// Notifier routes notifications to the email or sms queue according to
// the user's preference. Users without a preference get nothing.
type Notifier struct {
	publisher Publisher
	cfg       config.RabbitMQ
	log       *slog.Logger
}

// New creates a Notifier.
func New(publisher Publisher, cfg config.RabbitMQ, log *slog.Logger) *Notifier {
	return &Notifier{
		publisher: publisher,
		cfg:       cfg,
		log:       log,
	}
}

// SendSubscriptionOpened notifies the user of a new fund subscription.
func (n *Notifier) SendSubscriptionOpened(user *models.User, fund *models.Fund) error {
	return n.send(user,
		"Suscripción a Fondo",
		fmt.Sprintf("Se ha suscrito al fondo %s con éxito.", fund.Nombre))
}

// SendSubscriptionCanceled notifies the user of a canceled subscription.
func (n *Notifier) SendSubscriptionCanceled(user *models.User, fund *models.Fund) error {
	return n.send(user,
		"Cancelación de Suscripción a Fondo",
		fmt.Sprintf("Se ha cancelado la suscripción al fondo %s con éxito.", fund.Nombre))
}

func (n *Notifier) send(user *models.User, asunto, mensaje string) error {
	const op = "notifier.send"

	var notification models.Notification
	var routingKey string
	switch user.PreferenciaNotificacion {
	case models.PrefEmail:
		routingKey = n.cfg.EmailRoutingKey
		notification = models.Notification{
			Canal:   models.PrefEmail,
			Destino: user.Email,
			Asunto:  asunto,
			Mensaje: mensaje,
		}
	case models.PrefSMS:
		routingKey = n.cfg.SMSRoutingKey
		notification = models.Notification{
			Canal:   models.PrefSMS,
			Destino: user.Telefono,
			Mensaje: mensaje,
		}
	default:
		n.log.Debug("user has no notification preference, skipping",
			slog.String("id_usuario", user.IDUsuario))
		return nil
	}

	if err := n.publisher.Publish(routingKey, notification); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	n.log.Info("notification published",
		slog.String("canal", notification.Canal),
		slog.String("routing_key", routingKey))
	return nil
}

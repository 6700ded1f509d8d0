// Package rabbitmq wraps the connection, topology setup, publishing
// and consuming of the notification exchange.
package rabbitmq

import (
	"fmt"
	"time"

	"github.com/streadway/amqp"

	"github.com/fondosapp/fondos-api/internal/config"
)

// Connect dials RabbitMQ with the given number of retries.
func Connect(connection string, retries int, delay time.Duration) (*amqp.Connection, error) {
	const op = "rabbitmq.Connect"
	var conn *amqp.Connection
	var err error

	for range retries {
		conn, err = amqp.Dial(connection)
		if err == nil {
			return conn, nil
		}
		time.Sleep(delay)
	}

	return nil, fmt.Errorf("%s: %w", op, err)
}

// SetupChannel opens a channel and declares the notification exchange
// with the email and sms queues bound by their routing keys.
func SetupChannel(conn *amqp.Connection, cfg config.RabbitMQ) (*amqp.Channel, error) {
	const op = "rabbitmq.SetupChannel"

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err := ch.Qos(10, 0, false); err != nil {
		return nil, fmt.Errorf("%s: failed to set QoS: %w", op, err)
	}

	err = ch.ExchangeDeclare(
		cfg.Exchange,
		"direct",
		true,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	queues := []struct {
		name       string
		routingKey string
	}{
		{cfg.EmailQueue, cfg.EmailRoutingKey},
		{cfg.SMSQueue, cfg.SMSRoutingKey},
	}
	for _, q := range queues {
		_, err := ch.QueueDeclare(
			q.name,
			true,
			false,
			false,
			false,
			nil,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to declare queue %s: %w", op, q.name, err)
		}

		err = ch.QueueBind(
			q.name,
			q.routingKey,
			cfg.Exchange,
			false,
			nil,
		)
		if err != nil {
			return nil, fmt.Errorf("%s: failed to bind queue %s with routing key %s: %w", op, q.name, q.routingKey, err)
		}
	}

	return ch, nil
}

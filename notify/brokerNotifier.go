package notify

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/02priyeshraj/Tomato_Restaurant_Website/logger"
)

const NotificationsExchange = "notifications_fanout"

const publishTimeout = 5 * time.Second

// Publisher is satisfied by *amqp.Channel.
type Publisher interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

// Broker owns the AMQP connection the notifier publishes on.
type Broker struct {
	Conn    *amqp.Connection
	Channel *amqp.Channel
}

func ConnectBroker(url string, log *logger.Logger) (*Broker, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	err = channel.ExchangeDeclare(
		NotificationsExchange, // name
		"fanout",              // type
		true,                  // durable
		false,                 // auto-deleted
		false,                 // internal
		false,                 // no-wait
		nil,                   // arguments
	)
	if err != nil {
		channel.Close()
		conn.Close()
		return nil, fmt.Errorf("declare %s: %w", NotificationsExchange, err)
	}

	log.Action("startup").Info("Connected to RabbitMQ")
	return &Broker{Conn: conn, Channel: channel}, nil
}

func (b *Broker) Close() {
	if b.Channel != nil {
		b.Channel.Close()
	}
	if b.Conn != nil {
		b.Conn.Close()
	}
}

// BrokerNotifier publishes every status change, email-worthy or not, for
// other consumers such as a kitchen display.
type BrokerNotifier struct {
	pub Publisher
}

func NewBrokerNotifier(pub Publisher) *BrokerNotifier {
	return &BrokerNotifier{pub: pub}
}

func (n *BrokerNotifier) Notify(ctx context.Context, e Event) error {
	body, err := json.Marshal(e)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = n.pub.PublishWithContext(ctx,
		NotificationsExchange, // exchange
		"",                    // routing key
		false,                 // mandatory
		false,                 // immediate
		amqp.Publishing{
			DeliveryMode: amqp.Persistent,
			ContentType:  "application/json",
			Body:         body,
			Timestamp:    e.ChangedAt,
		})
	if err != nil {
		return fmt.Errorf("publish %s: %w", describe(e), err)
	}
	return nil
}

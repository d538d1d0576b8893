package mailer

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

// QueueSender publishes email jobs to a durable RabbitMQ queue; the
// email worker delivers them.
type QueueSender struct {
	conn    *amqp.Connection
	ch      *amqp.Channel
	Queue   string
	Timeout time.Duration
}

func NewQueueSender(url, queue string) (*QueueSender, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	if err := DeclareQueue(ch, queue); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	return &QueueSender{conn: conn, ch: ch, Queue: queue, Timeout: 5 * time.Second}, nil
}

// DeclareQueue declares the durable email queue used by both publisher and worker.
func DeclareQueue(ch *amqp.Channel, queue string) error {
	_, err := ch.QueueDeclare(
		queue,
		true,  // durable
		false, // autoDelete
		false, // exclusive
		false, // noWait
		nil,
	)
	return err
}

func (p *QueueSender) Close() {
	if p == nil {
		return
	}
	if p.ch != nil {
		_ = p.ch.Close()
	}
	if p.conn != nil {
		_ = p.conn.Close()
	}
}

func (p *QueueSender) Send(ctx context.Context, msg Message) error {
	b, err := json.Marshal(msg.Job())
	if err != nil {
		return err
	}
	c, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()
	return p.ch.PublishWithContext(c,
		"",      // default exchange
		p.Queue, // routing key = queue
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now().UTC(),
			Body:         b,
		},
	)
}

// LogSender is used when MAIL_SEND_ENABLED=false: the message is logged, not sent.
type LogSender struct {
	Logger *logrus.Logger
}

func (s LogSender) Send(_ context.Context, msg Message) error {
	s.Logger.WithFields(logrus.Fields{"to": msg.To, "subject": msg.Subject}).Info("email sending disabled; message dropped")
	s.Logger.Debug(msg.Text)
	return nil
}

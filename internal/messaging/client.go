package messaging

import (
	"context"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

// Client publishes and consumes analysis events over a durable direct
// exchange bound to a single queue.
type Client struct {
	conn         *amqp091.Connection
	channel      *amqp091.Channel
	exchangeName string
	queueName    string
	log          *logrus.Logger
}

// NewClient dials the broker and declares the exchange and queue
func NewClient(url, exchangeName, queueName string, log *logrus.Logger) (*Client, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	c := &Client{
		conn:         conn,
		channel:      channel,
		exchangeName: exchangeName,
		queueName:    queueName,
		log:          log,
	}
	if err := c.setup(); err != nil {
		c.Close()
		return nil, fmt.Errorf("setup exchange and queue: %w", err)
	}
	return c, nil
}

func (c *Client) setup() error {
	if err := c.channel.ExchangeDeclare(c.exchangeName, "direct", true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare exchange: %w", err)
	}
	if _, err := c.channel.QueueDeclare(c.queueName, true, false, false, false, nil); err != nil {
		return fmt.Errorf("declare queue: %w", err)
	}
	// The routing key is the queue name.
	if err := c.channel.QueueBind(c.queueName, c.queueName, c.exchangeName, false, nil); err != nil {
		return fmt.Errorf("bind queue: %w", err)
	}
	return nil
}

// PublishAnalysisSaved publishes a persistent analysis-saved event
func (c *Client) PublishAnalysisSaved(ctx context.Context, recordID, userID string) error {
	body, err := NewAnalysisSavedMessage(recordID, userID).ToJSON()
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	err = c.channel.PublishWithContext(ctx, c.exchangeName, c.queueName, false, false, amqp091.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp091.Persistent,
		Timestamp:    time.Now(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish message: %w", err)
	}

	c.log.WithFields(logrus.Fields{
		"record_id": recordID,
		"exchange":  c.exchangeName,
		"queue":     c.queueName,
	}).Info("Published analysis saved message")
	return nil
}

// Handler processes one event. Returning an error requeues the message.
type Handler func(ctx context.Context, msg *AnalysisSavedMessage) error

// ConsumeAnalysisSaved blocks delivering events to handler until ctx is
// cancelled or the channel closes.
func (c *Client) ConsumeAnalysisSaved(ctx context.Context, handler Handler) error {
	msgs, err := c.channel.Consume(c.queueName, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("start consuming: %w", err)
	}
	c.log.Infof("Started consuming analysis saved messages from %s", c.queueName)

	for {
		select {
		case <-ctx.Done():
			c.log.Infof("Stopping message consumption: %v", ctx.Err())
			return ctx.Err()
		case delivery, ok := <-msgs:
			if !ok {
				return fmt.Errorf("message channel closed")
			}
			process(ctx, c.log, delivery, handler)
		}
	}
}

// process acks on success, drops malformed bodies and requeues on handler
// errors.
func process(ctx context.Context, log *logrus.Logger, d amqp091.Delivery, handler Handler) {
	msg, err := AnalysisSavedMessageFromJSON(d.Body)
	if err != nil {
		log.Errorf("Failed to decode message: %v", err)
		d.Nack(false, false)
		return
	}

	entry := log.WithField("record_id", msg.RecordID)
	if err := handler(ctx, msg); err != nil {
		entry.Errorf("Failed to handle message: %v", err)
		d.Nack(false, true)
		return
	}
	d.Ack(false)
	entry.Info("Processed analysis saved message")
}

func (c *Client) Close() error {
	if c.channel != nil {
		c.channel.Close()
	}
	if c.conn != nil {
		return c.conn.Close()
	}
	return nil
}

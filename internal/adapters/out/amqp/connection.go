package amqp

import (
	"fmt"

	rabbit "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

// Connection owns the broker connection and the channel the notifier
// publishes on.
type Connection struct {
	conn     *rabbit.Connection
	ch       *rabbit.Channel
	exchange string
	log      *zap.Logger
}

// Dial connects to url and declares exchange as a durable topic exchange.
func Dial(url, exchange string, log *zap.Logger) (*Connection, error) {
	if log == nil {
		log = zap.NewNop()
	}

	conn, err := rabbit.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial broker: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	if err = ch.ExchangeDeclare(exchange, rabbit.ExchangeTopic, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("declare exchange %q: %w", exchange, err)
	}

	c := &Connection{conn: conn, ch: ch, exchange: exchange, log: log.With(zap.String("component", "amqp"))}
	go c.watch(conn.NotifyClose(make(chan *rabbit.Error, 1)))
	return c, nil
}

// Notifier returns a notifier publishing on this connection's channel.
func (c *Connection) Notifier() *Notifier {
	return NewNotifier(c.ch, c.exchange)
}

func (c *Connection) Close() error {
	chErr := c.ch.Close()
	if err := c.conn.Close(); err != nil {
		return err
	}
	return chErr
}

func (c *Connection) watch(closed <-chan *rabbit.Error) {
	if err, ok := <-closed; ok && err != nil {
		c.log.Error("broker connection lost", zap.String("reason", err.Reason), zap.Int("code", err.Code))
	}
}

package rabbitmq_producer

import (
	"context"
	"fmt"
	"sync"

	"discovery-service/pkg/rabbitmq/rabbitmq_common"

	amqp "github.com/rabbitmq/amqp091-go"
)

// PublisherConfig - параметры обменника, в который публикует производитель
type PublisherConfig struct {
	ExchangeName       string     // пустая строка - default exchange
	ExchangeType       string     // direct, fanout, topic, headers
	DurableExchange    bool
	AutoDeleteExchange bool
	ExchangeArgs       amqp.Table

	// Если false, производитель считает, что обменник уже существует
	DeclareExchangeIfMissing bool

	Logger rabbitmq_common.Logger
}

func (c PublisherConfig) validate() error {
	if !c.DeclareExchangeIfMissing {
		return nil
	}
	if c.ExchangeName == "" && c.ExchangeType != "" {
		return fmt.Errorf("producer: exchange name is required when ExchangeType is set and DeclareExchangeIfMissing is true")
	}
	if c.ExchangeType == "" && c.ExchangeName != "" {
		return fmt.Errorf("producer: exchange type is required when ExchangeName is set and DeclareExchangeIfMissing is true")
	}
	return nil
}

// ChannelSource выдает каналы на общем соединении
type ChannelSource interface {
	GetChannel() (*amqp.Connection, *amqp.Channel, error)
}

// Publisher публикует сообщения в один обменник.
// Канал переоткрывается при первой публикации после обрыва соединения.
type Publisher struct {
	config  PublisherConfig
	source  ChannelSource
	mu      sync.Mutex
	conn    *amqp.Connection
	channel *amqp.Channel

	Logger rabbitmq_common.Logger
}

func NewPublisher(cfg PublisherConfig, source ChannelSource) (*Publisher, error) {
	if source == nil {
		return nil, fmt.Errorf("producer: channel source cannot be nil")
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	logger := cfg.Logger
	if logger == nil {
		logger = rabbitmq_common.NewNoopLogger()
	}

	p := &Publisher{config: cfg, source: source, Logger: logger}

	p.mu.Lock()
	defer p.mu.Unlock()
	if err := p.openLocked(); err != nil {
		return nil, err
	}
	p.Logger.Debug("Producer ready", "exchange", cfg.ExchangeName)
	return p, nil
}

func (p *Publisher) openLocked() error {
	conn, ch, err := p.source.GetChannel()
	if err != nil {
		return fmt.Errorf("producer: failed to get channel: %w", err)
	}

	if p.config.DeclareExchangeIfMissing && p.config.ExchangeName != "" {
		p.Logger.Debug("Declaring exchange", "name", p.config.ExchangeName, "type", p.config.ExchangeType)
		err = ch.ExchangeDeclare(
			p.config.ExchangeName,
			p.config.ExchangeType,
			p.config.DurableExchange,
			p.config.AutoDeleteExchange,
			false, // internal
			false, // no-wait
			p.config.ExchangeArgs,
		)
		if err != nil {
			_ = ch.Close()
			return fmt.Errorf("producer: failed to declare exchange '%s': %w", p.config.ExchangeName, err)
		}
	}

	p.conn = conn
	p.channel = ch
	return nil
}

// Publish публикует сообщение с routing key
func (p *Publisher) Publish(ctx context.Context, routingKey string, msg amqp.Publishing) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.channel == nil || p.channel.IsClosed() || p.conn == nil || p.conn.IsClosed() {
		p.Logger.Warn("Producer channel is closed, reopening", "exchange", p.config.ExchangeName)
		if err := p.openLocked(); err != nil {
			return err
		}
	}

	err := p.channel.PublishWithContext(ctx, p.config.ExchangeName, routingKey,
		false, // mandatory
		false, // immediate
		msg,
	)
	if err != nil {
		return fmt.Errorf("producer: failed to publish message: %w", err)
	}
	return nil
}

// Close закрывает канал. Соединение принадлежит ConnectionManager.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var err error
	if p.channel != nil && !p.channel.IsClosed() {
		if err = p.channel.Close(); err != nil {
			p.Logger.Error(err, "Error closing channel")
		}
	}
	p.channel = nil
	p.Logger.Info("Producer closed")
	return err
}

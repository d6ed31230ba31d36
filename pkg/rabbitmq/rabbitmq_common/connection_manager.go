package rabbitmq_common

import (
	"context"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const defaultReconnectInterval = 10 * time.Second

// ConnectionManager держит одно соединение RabbitMQ на процесс и восстанавливает его в фоне
type ConnectionManager struct {
	url               string
	reconnectInterval time.Duration
	connection        *amqp.Connection
	mutex             sync.RWMutex
	Logger            Logger

	stop    context.CancelFunc
	stopped chan struct{}
}

// NewConnectionManager подключается сразу и запускает наблюдение за соединением.
// interval <= 0 означает интервал по умолчанию.
func NewConnectionManager(url string, interval time.Duration, logger Logger) (*ConnectionManager, error) {
	if url == "" {
		return nil, fmt.Errorf("ConnectionManager: RabbitMQ URL is required")
	}
	if logger == nil {
		logger = NewNoopLogger()
	}
	if interval <= 0 {
		interval = defaultReconnectInterval
	}

	m := &ConnectionManager{
		url:               url,
		reconnectInterval: interval,
		Logger:            logger,
		stopped:           make(chan struct{}),
	}
	if _, err := m.getConnection(); err != nil {
		logger.Error(err, "Initial connection failed")
		return nil, fmt.Errorf("initial connection failed: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	m.stop = cancel
	go m.handleReconnect(ctx)
	return m, nil
}

// getConnection возвращает живое соединение или устанавливает новое
func (m *ConnectionManager) getConnection() (*amqp.Connection, error) {
	m.mutex.RLock()
	if m.connection != nil && !m.connection.IsClosed() {
		defer m.mutex.RUnlock()
		return m.connection, nil
	}
	m.mutex.RUnlock()

	m.mutex.Lock()
	defer m.mutex.Unlock()

	// другая горутина могла успеть переподключиться
	if m.connection != nil && !m.connection.IsClosed() {
		return m.connection, nil
	}

	m.Logger.Debug("ConnectionManager: Connecting...")
	conn, err := amqp.Dial(m.url)
	if err != nil {
		return nil, fmt.Errorf("ConnectionManager: failed to dial RabbitMQ: %w", err)
	}
	m.connection = conn
	m.Logger.Debug("ConnectionManager: Connected successfully")
	return m.connection, nil
}

// GetChannel открывает новый канал на общем соединении
func (m *ConnectionManager) GetChannel() (*amqp.Connection, *amqp.Channel, error) {
	conn, err := m.getConnection()
	if err != nil {
		return nil, nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		return conn, nil, fmt.Errorf("ConnectionManager: failed to open a channel: %w", err)
	}
	return conn, ch, nil
}

func (m *ConnectionManager) handleReconnect(ctx context.Context) {
	defer close(m.stopped)
	ticker := time.NewTicker(m.reconnectInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}

		m.mutex.RLock()
		healthy := m.connection != nil && !m.connection.IsClosed()
		m.mutex.RUnlock()
		if healthy {
			continue
		}

		m.Logger.Warn("ConnectionManager: Detected closed connection, reconnecting")
		if _, err := m.getConnection(); err != nil {
			m.Logger.Error(err, "ConnectionManager: Reconnect failed")
		}
	}
}

// Close останавливает наблюдение и закрывает соединение
func (m *ConnectionManager) Close() error {
	if m.stop != nil {
		m.stop()
		<-m.stopped
		m.stop = nil
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	if m.connection == nil || m.connection.IsClosed() {
		m.Logger.Debug("ConnectionManager: Connection was already closed or not established")
		return nil
	}
	if err := m.connection.Close(); err != nil {
		m.Logger.Error(err, "ConnectionManager: Failed to close connection properly")
		return err
	}
	m.Logger.Debug("ConnectionManager: Connection closed")
	return nil
}

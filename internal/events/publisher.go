package events

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"
)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// Publisher публикует доменные события.
// Публикация best-effort: ошибка публикации логируется, но не должна
// приводить к ошибке вызвавшей операции.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

// RedisPublisher публикует события в redis pub/sub канал
type RedisPublisher struct {
	client  *redis.Client
	channel string
	log     Logger
}

// NewRedisPublisher создает publisher поверх redis.
// Проверяет соединение через PING.
func NewRedisPublisher(ctx context.Context, addr, password string, db int, channel string, log Logger) (*RedisPublisher, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("events: failed to connect to redis at %s: %w", addr, err)
	}

	return &RedisPublisher{
		client:  client,
		channel: channel,
		log:     log,
	}, nil
}

// Publish сериализует событие в JSON и публикует в канал
func (p *RedisPublisher) Publish(ctx context.Context, event Event) error {
	payload, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("events: failed to marshal event %s: %w", event.Type, err)
	}

	if err := p.client.Publish(ctx, p.channel, payload).Err(); err != nil {
		return fmt.Errorf("events: failed to publish event %s: %w", event.Type, err)
	}

	p.log.Info("Published event type=%s id=%s prison=%s", event.Type, event.ID, event.PrisonCode)
	return nil
}

// Close закрывает соединение с redis
func (p *RedisPublisher) Close() error {
	return p.client.Close()
}

// NoopPublisher заглушка, используется когда публикация событий отключена
type NoopPublisher struct{}

// Publish ничего не делает
func (NoopPublisher) Publish(ctx context.Context, event Event) error {
	return nil
}

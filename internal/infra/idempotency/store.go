package idempotency

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "salon:idem:create:"

// Store хранилище ключей идемпотентности для создания записей
//
// Повторный вызов create_appointment после неоднозначного сбоя может привести
// к двойному бронированию, поэтому автоматический retry запрещён: клиент
// передает Idempotency-Key, и повтор с тем же ключом возвращает результат
// первой попытки вместо новой записи
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStore создает хранилище ключей поверх redis
func NewStore(addr string, db int, ttl time.Duration) *Store {
	return &Store{
		client: redis.NewClient(&redis.Options{
			Addr: addr,
			DB:   db,
		}),
		ttl: ttl,
	}
}

// Ping проверяет доступность redis
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	return nil
}

// Close закрывает соединение с redis
func (s *Store) Close() error {
	return s.client.Close()
}

// Reserve атомарно резервирует ключ за текущим запросом (SETNX)
// Возвращает true, если ключ свободен и запрос должен выполняться
func (s *Store) Reserve(ctx context.Context, key string) (bool, error) {
	ok, err := s.client.SetNX(ctx, keyPrefix+key, "", s.ttl).Result()
	if err != nil {
		return false, fmt.Errorf("%w: reserve: %v", ErrUnavailable, err)
	}
	return ok, nil
}

// Complete сохраняет ID созданной записи за ключом
func (s *Store) Complete(ctx context.Context, key string, appointmentID int64) error {
	err := s.client.Set(ctx, keyPrefix+key, strconv.FormatInt(appointmentID, 10), s.ttl).Err()
	if err != nil {
		return fmt.Errorf("%w: complete: %v", ErrUnavailable, err)
	}
	return nil
}

// Release освобождает ключ после неуспешной попытки,
// позволяя клиенту повторить запрос с тем же ключом
func (s *Store) Release(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, keyPrefix+key).Err(); err != nil {
		return fmt.Errorf("%w: release: %v", ErrUnavailable, err)
	}
	return nil
}

// Result возвращает ID записи, созданной первой попыткой с этим ключом
// Возвращает ErrInFlight, если первая попытка ещё не завершилась
func (s *Store) Result(ctx context.Context, key string) (int64, error) {
	val, err := s.client.Get(ctx, keyPrefix+key).Result()
	if err == redis.Nil {
		return 0, ErrInFlight
	}
	if err != nil {
		return 0, fmt.Errorf("%w: result: %v", ErrUnavailable, err)
	}
	if val == "" {
		return 0, ErrInFlight
	}

	id, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: result: malformed value %q", ErrUnavailable, val)
	}
	return id, nil
}

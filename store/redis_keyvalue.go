package store

import (
	"context"
	"log"

	"github.com/go-redis/redis"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type RedisKeyValue struct {
	cli    *redis.Client
	logger *log.Logger
	tracer trace.Tracer
}

func NewRedisKeyValue(client *redis.Client, tracer trace.Tracer, logger *log.Logger) *RedisKeyValue {
	return &RedisKeyValue{
		cli:    client,
		logger: logger,
		tracer: tracer,
	}
}

// Check connection function
func (kv *RedisKeyValue) Ping() {
	val, _ := kv.cli.Ping().Result()
	kv.logger.Println(val)
}

func (kv *RedisKeyValue) GetBlob(ctx context.Context, key string) ([]byte, error) {
	ctx, span := kv.tracer.Start(ctx, "RedisKeyValue.GetBlob")
	defer span.End()

	value, err := kv.cli.Get(key).Bytes()
	if err == redis.Nil {
		return nil, ErrKeyMissing
	}
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		kv.logger.Println(err)
		return nil, err
	}
	return value, nil
}

func (kv *RedisKeyValue) SetBlob(ctx context.Context, key string, value []byte) error {
	ctx, span := kv.tracer.Start(ctx, "RedisKeyValue.SetBlob")
	defer span.End()

	err := kv.cli.Set(key, value, 0).Err()
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		kv.logger.Println(err)
		return err
	}
	return nil
}

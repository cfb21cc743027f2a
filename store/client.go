package store

import (
	"context"
	"fmt"

	"github.com/go-redis/redis"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

func GetRedisClient(host, port string) *redis.Client {
	redisAddress := fmt.Sprintf("%s:%s", host, port)
	return redis.NewClient(&redis.Options{
		Addr: redisAddress,
	})
}

func GetMongoClient(host, port string) (*mongo.Client, error) {
	uri := fmt.Sprintf("mongodb://%s:%s/", host, port)
	optionsClient := options.Client().ApplyURI(uri)
	return mongo.Connect(context.TODO(), optionsClient)
}

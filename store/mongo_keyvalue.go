package store

import (
	"context"
	"log"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	DATABASE   = "marketplace"
	COLLECTION = "records"
)

// recordDocument wraps one blob per kind. The key doubles as the document
// id so the collection holds at most one document per kind.
type recordDocument struct {
	Key  string `bson:"_id"`
	Data []byte `bson:"data"`
}

type MongoKeyValue struct {
	records *mongo.Collection
	logger  *log.Logger
	tracer  trace.Tracer
}

func NewMongoKeyValue(client *mongo.Client, tracer trace.Tracer, logger *log.Logger) *MongoKeyValue {
	records := client.Database(DATABASE).Collection(COLLECTION)
	return &MongoKeyValue{
		records: records,
		logger:  logger,
		tracer:  tracer,
	}
}

func (kv *MongoKeyValue) GetBlob(ctx context.Context, key string) ([]byte, error) {
	ctx, span := kv.tracer.Start(ctx, "MongoKeyValue.GetBlob")
	defer span.End()

	filter := bson.M{"_id": key}
	result := kv.records.FindOne(ctx, filter)

	var doc recordDocument
	err := result.Decode(&doc)
	if err == mongo.ErrNoDocuments {
		return nil, ErrKeyMissing
	}
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		kv.logger.Println(err)
		return nil, err
	}
	return doc.Data, nil
}

func (kv *MongoKeyValue) SetBlob(ctx context.Context, key string, value []byte) error {
	ctx, span := kv.tracer.Start(ctx, "MongoKeyValue.SetBlob")
	defer span.End()

	filter := bson.M{"_id": key}
	doc := recordDocument{Key: key, Data: value}

	_, err := kv.records.ReplaceOne(ctx, filter, doc, options.Replace().SetUpsert(true))
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		kv.logger.Println(err)
		return err
	}
	return nil
}

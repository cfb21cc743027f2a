package application

import (
	"context"
	"io"
	"log"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/trace"

	"marketplace_service/domain"
	"marketplace_service/store"
)

func testTracer() trace.Tracer {
	return trace.NewNoopTracerProvider().Tracer("")
}

func testLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(io.Discard)
	return logger
}

func newTestStore() domain.RecordStore {
	return store.NewRecordStore(store.NewMemoryKeyValue(), testTracer(), log.New(io.Discard, "", 0))
}

func newTestCatalog() *CatalogService {
	catalog := NewCatalogService(testTracer(), log.New(io.Discard, "", 0))
	catalog.fetchDelay = 0
	return catalog
}

// silentNotifier keeps the tested operation's store writes the only writes.
type silentNotifier struct{}

func (silentNotifier) Notify(ctx context.Context, userID, message, kind string) {}

package startup

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/casbin/casbin"
	"github.com/gorilla/mux"
	rotatelogs "github.com/lestrrat-go/file-rotatelogs"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/jaeger"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.12.0"
	"go.opentelemetry.io/otel/trace"

	"marketplace_service/casbinAuthorization"
	"marketplace_service/domain"
	"marketplace_service/handlers"
	application "marketplace_service/service"
	"marketplace_service/startup/config"
	"marketplace_service/store"
)

type Server struct {
	config *config.Config
}

var Logger = logrus.New()

type CustomFormatter struct{}

func (f *CustomFormatter) Format(entry *logrus.Entry) ([]byte, error) {
	entry.Data["id"] = generateUniqueID()

	msg := fmt.Sprintf("[%s] [%s] [%s] %s\n",
		entry.Time.Format("2006-01-02T15:04:05Z07:00"),
		entry.Level,
		entry.Data["id"],
		entry.Message,
	)

	return []byte(msg), nil
}

func generateUniqueID() string {
	return fmt.Sprintf("ID-%d", time.Now().UnixNano())
}

func (server *Server) initLogger() {
	writer, err := rotatelogs.New(
		server.config.LogFilePath+"_%Y%m%d%H%M",
		rotatelogs.WithRotationTime(15*time.Minute),
	)
	if err != nil {
		Logger.Warnf("failed to create rotatelogs hook, logging to stderr: %v", err)
		return
	}
	Logger.SetOutput(writer)

	Logger.SetFormatter(&CustomFormatter{})
}

func NewServer(config *config.Config) *Server {
	return &Server{
		config: config,
	}
}

func (server *Server) initRecordStore(tracer trace.Tracer, storeLogger *log.Logger) domain.RecordStore {
	switch server.config.StoreDriver {
	case "mongo":
		client, err := store.GetMongoClient(server.config.MongoHost, server.config.MongoPort)
		if err != nil {
			log.Fatal(err)
		}
		return store.NewRecordStore(store.NewMongoKeyValue(client, tracer, storeLogger), tracer, storeLogger)
	case "memory":
		return store.NewRecordStore(store.NewMemoryKeyValue(), tracer, storeLogger)
	default:
		client := store.GetRedisClient(server.config.RedisHost, server.config.RedisPort)
		kv := store.NewRedisKeyValue(client, tracer, storeLogger)
		kv.Ping()
		return store.NewRecordStore(kv, tracer, storeLogger)
	}
}

func (server *Server) Start() {
	server.initLogger()

	ctx := context.Background()
	exp, err := newExporter(server.config.JaegerAddress)
	if err != nil {
		log.Fatalf("Failed to Initialize Exporter: %v", err)
	}

	tp := newTraceProvider(exp)
	defer func() { _ = tp.Shutdown(ctx) }()
	otel.SetTracerProvider(tp)
	tracer := tp.Tracer("marketplace_service")
	otel.SetTextMapPropagator(propagation.TraceContext{})

	storeLogger := log.New(os.Stdout, "[record-store] ", log.LstdFlags)
	recordStore := server.initRecordStore(tracer, storeLogger)

	catalogLogger := log.New(os.Stdout, "[catalog] ", log.LstdFlags)
	catalogService := application.NewCatalogService(tracer, catalogLogger)
	notificationService := application.NewNotificationService(recordStore, tracer, Logger)
	paymentService := application.NewPaymentService(application.NewHostedCardCollector(), tracer, Logger)
	bookingService := application.NewBookingService(recordStore, catalogService, paymentService, notificationService, tracer, Logger)
	messagingService := application.NewMessagingService(recordStore, notificationService, tracer, Logger)
	userService := application.NewUserService(recordStore, tracer, Logger)

	userHandler := handlers.NewUserHandler(userService, notificationService, tracer)
	catalogHandler := handlers.NewCatalogHandler(catalogService, tracer)
	bookingHandler := handlers.NewBookingHandler(bookingService, catalogService, tracer)
	messagingHandler := handlers.NewMessagingHandler(messagingService, tracer)

	server.start(userHandler, catalogHandler, bookingHandler, messagingHandler)
}

func (server *Server) start(userHandler *handlers.UserHandler, catalogHandler *handlers.CatalogHandler, bookingHandler *handlers.BookingHandler, messagingHandler *handlers.MessagingHandler) {
	router := mux.NewRouter()
	router.Use(MiddlewareContentTypeSet)
	router.Use(handlers.ExtractTraceInfoMiddleware)

	userHandler.Init(router)
	catalogHandler.Init(router)
	bookingHandler.Init(router)
	messagingHandler.Init(router)

	enforcer, err := casbin.NewEnforcerSafe("./rbac_model.conf", "./policy.csv")
	if err != nil {
		log.Fatal(err)
	}
	log.Println("successful init of casbin enforcer")

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		AllowCredentials: true,
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", server.config.Port),
		Handler: corsHandler.Handler(casbinAuthorization.CasbinMiddleware(enforcer)(router)),
	}

	wait := time.Second * 15
	go func() {
		if err := srv.ListenAndServe(); err != nil {
			log.Println(err)
		}
	}()

	c := make(chan os.Signal, 1)

	signal.Notify(c, os.Interrupt)
	signal.Notify(c, syscall.SIGTERM)

	<-c

	ctx, cancel := context.WithTimeout(context.Background(), wait)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("Error Shutting Down Server %s", err)
	}
	log.Println("Server Gracefully Stopped")
}

func newExporter(address string) (*jaeger.Exporter, error) {
	exp, err := jaeger.New(jaeger.WithCollectorEndpoint(jaeger.WithEndpoint(address)))
	if err != nil {
		return nil, err
	}
	return exp, nil
}

func newTraceProvider(exp sdktrace.SpanExporter) *sdktrace.TracerProvider {
	r, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceNameKey.String("marketplace_service"),
		),
	)

	if err != nil {
		panic(err)
	}

	return sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exp),
		sdktrace.WithResource(r),
	)
}

func MiddlewareContentTypeSet(next http.Handler) http.Handler {
	return http.HandlerFunc(func(rw http.ResponseWriter, h *http.Request) {
		rw.Header().Add("Content-Type", "application/json")
		rw.Header().Set("X-Content-Type-Options", "nosniff")
		rw.Header().Set("X-Frame-Options", "DENY")

		next.ServeHTTP(rw, h)
	})
}

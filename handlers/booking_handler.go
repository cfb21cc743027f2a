package handlers

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"marketplace_service/domain"
	"marketplace_service/errors"
	application "marketplace_service/service"
)

// submitTimeout bounds the whole submit path including the simulated
// payment settlement.
const submitTimeout = 10 * time.Second

type BookingHandler struct {
	service *application.BookingService
	catalog *application.CatalogService
	tracer  trace.Tracer
}

func NewBookingHandler(service *application.BookingService, catalog *application.CatalogService, tracer trace.Tracer) *BookingHandler {
	return &BookingHandler{
		service: service,
		catalog: catalog,
		tracer:  tracer,
	}
}

func (handler *BookingHandler) Init(router *mux.Router) {
	router.HandleFunc("/bookings/quote", handler.Quote).Methods("POST")
	router.HandleFunc("/bookings", handler.Submit).Methods("POST")
	router.HandleFunc("/bookings", handler.Mine).Methods("GET")
	router.HandleFunc("/bookings/{id}", handler.Get).Methods("GET")
	router.HandleFunc("/bookings/{id}/confirm", handler.Confirm).Methods("POST")
	router.HandleFunc("/bookings/{id}/decline", handler.Decline).Methods("POST")
	router.HandleFunc("/bookings/{id}/complete", handler.Complete).Methods("POST")
}

type quoteRequest struct {
	ListingID string           `json:"listingId"`
	Period    domain.DateRange `json:"period"`
	Guests    int              `json:"guests"`
}

func (handler *BookingHandler) Quote(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "BookingHandler.Quote")
	defer span.End()

	var request quoteRequest
	if err := json.NewDecoder(req.Body).Decode(&request); err != nil {
		log.Println(err)
		http.Error(writer, errors.InvalidRequestFormatError, http.StatusBadRequest)
		return
	}

	listing, err := handler.catalog.Get(ctx, request.ListingID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(writer, err)
		return
	}

	quote := handler.service.Quote(listing, request.Period, request.Guests)
	jsonResponse(quote, writer)
}

type submitRequest struct {
	ListingID string                 `json:"listingId"`
	Period    domain.DateRange       `json:"period"`
	Guests    int                    `json:"guests"`
	Mode      domain.BookingMode     `json:"mode"`
	Payment   *domain.PaymentRequest `json:"payment,omitempty"`
}

func (handler *BookingHandler) Submit(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "BookingHandler.Submit")
	defer span.End()

	var request submitRequest
	if err := json.NewDecoder(req.Body).Decode(&request); err != nil {
		log.Println(err)
		http.Error(writer, errors.InvalidRequestFormatError, http.StatusBadRequest)
		return
	}

	// The request handle is cancelled with the connection, an abandoned
	// submit never applies a late side effect.
	ctx, cancel := context.WithTimeout(ctx, submitTimeout)
	defer cancel()

	booking, err := handler.service.Submit(ctx, requestUserID(req), request.ListingID, request.Period, request.Guests, request.Mode, request.Payment)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(writer, err)
		return
	}

	writer.WriteHeader(http.StatusCreated)
	jsonResponse(booking, writer)
}

func (handler *BookingHandler) Mine(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "BookingHandler.Mine")
	defer span.End()

	userID := requestUserID(req)
	if userID == "" {
		writeError(writer, errors.ErrUnauthenticated)
		return
	}

	bookings, err := handler.service.ForUser(ctx, userID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(writer, err)
		return
	}
	jsonResponse(bookings, writer)
}

func (handler *BookingHandler) Get(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "BookingHandler.Get")
	defer span.End()

	vars := mux.Vars(req)
	booking, err := handler.service.Get(ctx, vars["id"])
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(writer, err)
		return
	}
	jsonResponse(booking, writer)
}

func (handler *BookingHandler) Confirm(writer http.ResponseWriter, req *http.Request) {
	handler.transition(writer, req, "BookingHandler.Confirm", handler.service.Confirm)
}

func (handler *BookingHandler) Decline(writer http.ResponseWriter, req *http.Request) {
	handler.transition(writer, req, "BookingHandler.Decline", handler.service.Decline)
}

func (handler *BookingHandler) Complete(writer http.ResponseWriter, req *http.Request) {
	handler.transition(writer, req, "BookingHandler.Complete", handler.service.Complete)
}

func (handler *BookingHandler) transition(writer http.ResponseWriter, req *http.Request, spanName string, op func(context.Context, string, string) (*domain.Booking, error)) {
	ctx, span := handler.tracer.Start(req.Context(), spanName)
	defer span.End()

	vars := mux.Vars(req)
	booking, err := op(ctx, vars["id"], requestUserID(req))
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(writer, err)
		return
	}
	jsonResponse(booking, writer)
}

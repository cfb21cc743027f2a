package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"marketplace_service/errors"
	application "marketplace_service/service"
)

type MessagingHandler struct {
	service *application.MessagingService
	tracer  trace.Tracer
}

func NewMessagingHandler(service *application.MessagingService, tracer trace.Tracer) *MessagingHandler {
	return &MessagingHandler{
		service: service,
		tracer:  tracer,
	}
}

func (handler *MessagingHandler) Init(router *mux.Router) {
	router.HandleFunc("/messages", handler.Send).Methods("POST")
	router.HandleFunc("/conversations", handler.ListConversations).Methods("GET")
	router.HandleFunc("/conversations/{counterpartId}/read", handler.MarkRead).Methods("POST")
}

type sendRequest struct {
	ReceiverID string `json:"receiverId"`
	Content    string `json:"content"`
}

func (handler *MessagingHandler) Send(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "MessagingHandler.Send")
	defer span.End()

	userID := requestUserID(req)
	if userID == "" {
		writeError(writer, errors.ErrUnauthenticated)
		return
	}

	var request sendRequest
	if err := json.NewDecoder(req.Body).Decode(&request); err != nil {
		log.Println(err)
		http.Error(writer, errors.InvalidRequestFormatError, http.StatusBadRequest)
		return
	}

	message, err := handler.service.Send(ctx, userID, request.ReceiverID, request.Content)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(writer, err)
		return
	}

	writer.WriteHeader(http.StatusCreated)
	jsonResponse(message, writer)
}

func (handler *MessagingHandler) ListConversations(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "MessagingHandler.ListConversations")
	defer span.End()

	userID := requestUserID(req)
	if userID == "" {
		writeError(writer, errors.ErrUnauthenticated)
		return
	}

	conversations, err := handler.service.ListConversations(ctx, userID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(writer, err)
		return
	}
	jsonResponse(conversations, writer)
}

func (handler *MessagingHandler) MarkRead(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "MessagingHandler.MarkRead")
	defer span.End()

	userID := requestUserID(req)
	if userID == "" {
		writeError(writer, errors.ErrUnauthenticated)
		return
	}

	vars := mux.Vars(req)
	if err := handler.service.MarkRead(ctx, userID, vars["counterpartId"]); err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(writer, err)
		return
	}
	writer.WriteHeader(http.StatusOK)
}

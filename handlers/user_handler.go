package handlers

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"marketplace_service/domain"
	"marketplace_service/errors"
	application "marketplace_service/service"
)

type UserHandler struct {
	service       *application.UserService
	notifications *application.NotificationService
	tracer        trace.Tracer
}

func NewUserHandler(service *application.UserService, notifications *application.NotificationService, tracer trace.Tracer) *UserHandler {
	return &UserHandler{
		service:       service,
		notifications: notifications,
		tracer:        tracer,
	}
}

func (handler *UserHandler) Init(router *mux.Router) {
	router.HandleFunc("/register", handler.Register).Methods("POST")
	router.HandleFunc("/login", handler.Login).Methods("POST")
	router.HandleFunc("/logout", handler.Logout).Methods("POST")
	router.HandleFunc("/me", handler.CurrentUser).Methods("GET")
	router.HandleFunc("/me/favorites/{listingId}", handler.ToggleFavorite).Methods("POST")
	router.HandleFunc("/me/applications/{listingId}", handler.AddApplication).Methods("POST")
	router.HandleFunc("/me/notifications", handler.Notifications).Methods("GET")
	router.HandleFunc("/reviews", handler.AddReview).Methods("POST")
	router.HandleFunc("/reviews/{listingId}", handler.ReviewsForListing).Methods("GET")
	router.HandleFunc("/blogs/{blogId}/like", handler.ToggleLikedBlog).Methods("POST")
}

type registerRequest struct {
	domain.UserProfile
	Password string `json:"password"`
}

func (handler *UserHandler) Register(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "UserHandler.Register")
	defer span.End()

	var request registerRequest
	if err := json.NewDecoder(req.Body).Decode(&request); err != nil {
		log.Println(err)
		http.Error(writer, errors.InvalidRequestFormatError, http.StatusBadRequest)
		return
	}

	user, err := handler.service.Register(ctx, &request.UserProfile, request.Password)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(writer, err)
		return
	}
	jsonResponse(withoutPassword(user), writer)
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func (handler *UserHandler) Login(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "UserHandler.Login")
	defer span.End()

	var request loginRequest
	if err := json.NewDecoder(req.Body).Decode(&request); err != nil {
		log.Println(err)
		http.Error(writer, errors.InvalidRequestFormatError, http.StatusBadRequest)
		return
	}

	token, err := handler.service.Login(ctx, request.Username, request.Password)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(writer, err)
		return
	}
	jsonResponse(map[string]string{"token": token}, writer)
}

func (handler *UserHandler) Logout(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "UserHandler.Logout")
	defer span.End()

	if err := handler.service.Logout(ctx); err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(writer, err)
		return
	}
	writer.WriteHeader(http.StatusOK)
}

func (handler *UserHandler) CurrentUser(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "UserHandler.CurrentUser")
	defer span.End()

	user, err := handler.service.CurrentUser(ctx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(writer, err)
		return
	}
	jsonResponse(withoutPassword(user), writer)
}

// withoutPassword strips the stored hash before a profile leaves the API.
// The hash has to serialize for persistence, so the boundary copies instead
// of tagging the field out of JSON entirely.
func withoutPassword(user *domain.UserProfile) *domain.UserProfile {
	sanitized := *user
	sanitized.Password = ""
	return &sanitized
}

func (handler *UserHandler) ToggleFavorite(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "UserHandler.ToggleFavorite")
	defer span.End()

	userID := requestUserID(req)
	if userID == "" {
		writeError(writer, errors.ErrUnauthenticated)
		return
	}

	vars := mux.Vars(req)
	saved, err := handler.service.ToggleSavedListing(ctx, userID, vars["listingId"])
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(writer, err)
		return
	}
	jsonResponse(map[string]bool{"saved": saved}, writer)
}

func (handler *UserHandler) AddApplication(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "UserHandler.AddApplication")
	defer span.End()

	userID := requestUserID(req)
	if userID == "" {
		writeError(writer, errors.ErrUnauthenticated)
		return
	}

	vars := mux.Vars(req)
	if err := handler.service.AddApplication(ctx, userID, vars["listingId"]); err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(writer, err)
		return
	}
	writer.WriteHeader(http.StatusOK)
}

func (handler *UserHandler) Notifications(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "UserHandler.Notifications")
	defer span.End()

	userID := requestUserID(req)
	if userID == "" {
		writeError(writer, errors.ErrUnauthenticated)
		return
	}

	notifications, err := handler.notifications.ForUser(ctx, userID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(writer, err)
		return
	}
	jsonResponse(notifications, writer)
}

type reviewRequest struct {
	ListingID string `json:"listingId"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment"`
}

func (handler *UserHandler) AddReview(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "UserHandler.AddReview")
	defer span.End()

	userID := requestUserID(req)
	if userID == "" {
		writeError(writer, errors.ErrUnauthenticated)
		return
	}

	var request reviewRequest
	if err := json.NewDecoder(req.Body).Decode(&request); err != nil {
		log.Println(err)
		http.Error(writer, errors.InvalidRequestFormatError, http.StatusBadRequest)
		return
	}

	review, err := handler.service.AddReview(ctx, userID, request.ListingID, request.Rating, request.Comment)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(writer, err)
		return
	}
	jsonResponse(review, writer)
}

func (handler *UserHandler) ReviewsForListing(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "UserHandler.ReviewsForListing")
	defer span.End()

	vars := mux.Vars(req)
	reviews, err := handler.service.ReviewsForListing(ctx, vars["listingId"])
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(writer, err)
		return
	}
	jsonResponse(reviews, writer)
}

func (handler *UserHandler) ToggleLikedBlog(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "UserHandler.ToggleLikedBlog")
	defer span.End()

	vars := mux.Vars(req)
	liked, err := handler.service.ToggleLikedBlog(ctx, vars["blogId"])
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(writer, err)
		return
	}
	jsonResponse(map[string]bool{"liked": liked}, writer)
}

package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"marketplace_service/domain"
	application "marketplace_service/service"
)

type CatalogHandler struct {
	service *application.CatalogService
	tracer  trace.Tracer
}

func NewCatalogHandler(service *application.CatalogService, tracer trace.Tracer) *CatalogHandler {
	return &CatalogHandler{
		service: service,
		tracer:  tracer,
	}
}

func (handler *CatalogHandler) Init(router *mux.Router) {
	router.HandleFunc("/listings", handler.Listings).Methods("GET")
	router.HandleFunc("/listings/{id}", handler.Get).Methods("GET")
	router.HandleFunc("/regions/{region}/listings", handler.FetchRegion).Methods("GET")
}

func (handler *CatalogHandler) Listings(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "CatalogHandler.Listings")
	defer span.End()

	filter := filterFromQuery(req)
	listings, err := handler.service.Listings(ctx, filter)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(writer, err)
		return
	}
	jsonResponse(listings, writer)
}

func (handler *CatalogHandler) Get(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "CatalogHandler.Get")
	defer span.End()

	vars := mux.Vars(req)
	listing, err := handler.service.Get(ctx, vars["id"])
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(writer, err)
		return
	}
	jsonResponse(listing, writer)
}

func (handler *CatalogHandler) FetchRegion(writer http.ResponseWriter, req *http.Request) {
	ctx, span := handler.tracer.Start(req.Context(), "CatalogHandler.FetchRegion")
	defer span.End()

	vars := mux.Vars(req)
	listings, err := handler.service.FetchRegion(ctx, vars["region"])
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		writeError(writer, err)
		return
	}
	jsonResponse(listings, writer)
}

func filterFromQuery(req *http.Request) *domain.ListingFilter {
	query := req.URL.Query()
	if len(query) == 0 {
		return nil
	}

	filter := &domain.ListingFilter{
		Type:     domain.ListingType(query.Get("type")),
		Province: query.Get("province"),
	}
	if v, err := strconv.Atoi(query.Get("minPrice")); err == nil {
		filter.MinPrice = v
	}
	if v, err := strconv.Atoi(query.Get("maxPrice")); err == nil {
		filter.MaxPrice = v
	}
	if v, err := strconv.Atoi(query.Get("guests")); err == nil {
		filter.Guests = v
	}
	if query.Get("pets") == "true" {
		filter.PetsOnly = true
	}
	if amenities := query.Get("amenities"); amenities != "" {
		filter.Amenities = strings.Split(amenities, ",")
	}
	return filter
}

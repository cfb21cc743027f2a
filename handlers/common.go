package handlers

import (
	"encoding/json"
	goerrors "errors"
	"net/http"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"marketplace_service/authorization"
	"marketplace_service/errors"
)

func jsonResponse(object interface{}, writer http.ResponseWriter) {
	resp, err := json.Marshal(object)
	if err != nil {
		http.Error(writer, err.Error(), http.StatusInternalServerError)
		return
	}
	writer.Write(resp)
}

// writeError maps service errors onto HTTP statuses. Validation problems
// carry the offending field back to the client; storage details never leave
// as anything but a 500.
func writeError(writer http.ResponseWriter, err error) {
	var validationErr *errors.ValidationError
	if goerrors.As(err, &validationErr) {
		writer.WriteHeader(http.StatusBadRequest)
		jsonResponse(validationErr, writer)
		return
	}

	var transitionErr *errors.TransitionError
	if goerrors.As(err, &transitionErr) {
		http.Error(writer, transitionErr.Error(), http.StatusConflict)
		return
	}

	switch {
	case goerrors.Is(err, errors.ErrUnauthenticated):
		http.Error(writer, err.Error(), http.StatusUnauthorized)
	case goerrors.Is(err, errors.ErrForbidden):
		http.Error(writer, err.Error(), http.StatusForbidden)
	case goerrors.Is(err, errors.ErrPaymentDeclined):
		http.Error(writer, err.Error(), http.StatusPaymentRequired)
	case goerrors.Is(err, errors.ErrPaymentFormUnavailable):
		http.Error(writer, err.Error(), http.StatusServiceUnavailable)
	case goerrors.Is(err, errors.ErrReceiverNotFound):
		http.Error(writer, err.Error(), http.StatusNotFound)
	case goerrors.Is(err, errors.ErrStoreUnavailable):
		http.Error(writer, err.Error(), http.StatusInternalServerError)
	case err.Error() == errors.BookingNotFound,
		err.Error() == errors.ListingNotFound,
		err.Error() == errors.UserNotFound:
		http.Error(writer, err.Error(), http.StatusNotFound)
	case err.Error() == errors.UsernameExist,
		err.Error() == errors.EmailAlreadyExist:
		http.Error(writer, err.Error(), http.StatusConflict)
	case err.Error() == errors.InvalidCredentials:
		http.Error(writer, err.Error(), http.StatusUnauthorized)
	default:
		http.Error(writer, err.Error(), http.StatusInternalServerError)
	}
}

// requestUserID pulls the user id claim out of the bearer token, empty when
// the request carries no usable token.
func requestUserID(req *http.Request) string {
	bearer := req.Header.Get("Authorization")
	bearerToken := strings.Split(bearer, "Bearer ")
	if len(bearerToken) != 2 {
		return ""
	}

	token := authorization.GetToken(bearerToken[1])
	if token == nil {
		return ""
	}
	claims := authorization.GetMapClaims(token.Bytes())
	return claims["user_id"]
}

func ExtractTraceInfoMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := otel.GetTextMapPropagator().Extract(r.Context(), propagation.HeaderCarrier(r.Header))
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

package application

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/cristalhq/jwt/v4"
	"github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/crypto/bcrypt"

	"marketplace_service/domain"
	"marketplace_service/errors"
)

type UserService struct {
	store  domain.RecordStore
	logger *logrus.Logger
	tracer trace.Tracer
}

func NewUserService(store domain.RecordStore, tracer trace.Tracer, logger *logrus.Logger) *UserService {
	return &UserService{
		store:  store,
		logger: logger,
		tracer: tracer,
	}
}

func (service *UserService) Register(ctx context.Context, user *domain.UserProfile, password string) (*domain.UserProfile, error) {
	ctx, span := service.tracer.Start(ctx, "UserService.Register")
	defer span.End()

	if err := user.Validate(); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, errors.NewValidationError("profile", err.Error())
	}
	if password == "" {
		return nil, errors.NewValidationError("password", "Password cannot be empty")
	}

	users, err := service.store.Users(ctx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	for _, existing := range users {
		if existing.Username == user.Username {
			span.SetStatus(codes.Error, errors.UsernameExist)
			return nil, fmt.Errorf(errors.UsernameExist)
		}
		if existing.Email == user.Email {
			span.SetStatus(codes.Error, errors.EmailAlreadyExist)
			return nil, fmt.Errorf(errors.EmailAlreadyExist)
		}
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	user.ID = primitive.NewObjectID()
	user.Password = string(hash)

	if err := service.store.SaveUser(ctx, user); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	service.logger.Infof("registered user %s", user.Username)
	return user, nil
}

// Login checks credentials, stores the session pointer and returns a signed
// token. The session slot only ever holds the user id, the profile itself
// stays in the users collection.
func (service *UserService) Login(ctx context.Context, username, password string) (string, error) {
	ctx, span := service.tracer.Start(ctx, "UserService.Login")
	defer span.End()

	user, err := service.GetByUsername(ctx, username)
	if err != nil {
		span.SetStatus(codes.Error, errors.InvalidCredentials)
		return "", fmt.Errorf(errors.InvalidCredentials)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		span.SetStatus(codes.Error, errors.InvalidCredentials)
		return "", fmt.Errorf(errors.InvalidCredentials)
	}

	if err := service.store.SetCurrentUserID(ctx, user.ID.Hex()); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}

	token, err := GenerateJWT(user)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return "", err
	}
	return token, nil
}

func (service *UserService) Logout(ctx context.Context) error {
	ctx, span := service.tracer.Start(ctx, "UserService.Logout")
	defer span.End()

	return service.store.SetCurrentUserID(ctx, "")
}

// CurrentUser resolves the session pointer against the users collection.
func (service *UserService) CurrentUser(ctx context.Context) (*domain.UserProfile, error) {
	ctx, span := service.tracer.Start(ctx, "UserService.CurrentUser")
	defer span.End()

	id, err := service.store.CurrentUserID(ctx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if id == "" {
		return nil, errors.ErrUnauthenticated
	}
	return service.GetByID(ctx, id)
}

func (service *UserService) GetByID(ctx context.Context, id string) (*domain.UserProfile, error) {
	ctx, span := service.tracer.Start(ctx, "UserService.GetByID")
	defer span.End()

	users, err := service.store.Users(ctx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	for _, user := range users {
		if user.ID.Hex() == id {
			return user, nil
		}
	}
	span.SetStatus(codes.Error, errors.UserNotFound)
	return nil, fmt.Errorf(errors.UserNotFound)
}

func (service *UserService) GetByUsername(ctx context.Context, username string) (*domain.UserProfile, error) {
	ctx, span := service.tracer.Start(ctx, "UserService.GetByUsername")
	defer span.End()

	users, err := service.store.Users(ctx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	for _, user := range users {
		if user.Username == username {
			return user, nil
		}
	}
	span.SetStatus(codes.Error, errors.UserNotFound)
	return nil, fmt.Errorf(errors.UserNotFound)
}

// ToggleSavedListing adds or removes a listing id from the user's saved set
// and reports whether it is saved afterwards.
func (service *UserService) ToggleSavedListing(ctx context.Context, userID, listingID string) (bool, error) {
	ctx, span := service.tracer.Start(ctx, "UserService.ToggleSavedListing")
	defer span.End()

	user, err := service.GetByID(ctx, userID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return false, err
	}

	for i, saved := range user.SavedListings {
		if saved == listingID {
			user.SavedListings = append(user.SavedListings[:i], user.SavedListings[i+1:]...)
			return false, service.store.SaveUser(ctx, user)
		}
	}
	user.SavedListings = append(user.SavedListings, listingID)
	return true, service.store.SaveUser(ctx, user)
}

func (service *UserService) AddApplication(ctx context.Context, userID, listingID string) error {
	ctx, span := service.tracer.Start(ctx, "UserService.AddApplication")
	defer span.End()

	user, err := service.GetByID(ctx, userID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	user.Applications = append(user.Applications, domain.Application{
		ListingID: listingID,
		AppliedAt: time.Now(),
	})
	return service.store.SaveUser(ctx, user)
}

func (service *UserService) AddReview(ctx context.Context, userID, listingID string, rating int, comment string) (*domain.UserReview, error) {
	ctx, span := service.tracer.Start(ctx, "UserService.AddReview")
	defer span.End()

	user, err := service.GetByID(ctx, userID)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	review := domain.UserReview{
		ID:        primitive.NewObjectID(),
		UserID:    userID,
		ListingID: listingID,
		Rating:    rating,
		Comment:   comment,
		Date:      time.Now(),
	}
	if err := review.Validate(); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, errors.NewValidationError("rating", "Rating must be between 1 and 5")
	}

	user.Reviews = append(user.Reviews, review)
	if err := service.store.SaveUser(ctx, user); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	return &review, nil
}

// ReviewsForListing scans every user's reviews list. Reviews live on the
// reviewing user's record, there is no per-listing index.
func (service *UserService) ReviewsForListing(ctx context.Context, listingID string) ([]domain.UserReview, error) {
	ctx, span := service.tracer.Start(ctx, "UserService.ReviewsForListing")
	defer span.End()

	users, err := service.store.Users(ctx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	var reviews []domain.UserReview
	for _, user := range users {
		for _, review := range user.Reviews {
			if review.ListingID == listingID {
				reviews = append(reviews, review)
			}
		}
	}
	return reviews, nil
}

func (service *UserService) ToggleLikedBlog(ctx context.Context, blogID string) (bool, error) {
	ctx, span := service.tracer.Start(ctx, "UserService.ToggleLikedBlog")
	defer span.End()

	ids, err := service.store.LikedBlogs(ctx)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return false, err
	}
	for i, id := range ids {
		if id == blogID {
			ids = append(ids[:i], ids[i+1:]...)
			return false, service.store.SetLikedBlogs(ctx, ids)
		}
	}
	ids = append(ids, blogID)
	return true, service.store.SetLikedBlogs(ctx, ids)
}

func GenerateJWT(user *domain.UserProfile) (string, error) {
	key := []byte(os.Getenv("SECRET_KEY"))
	signer, err := jwt.NewSignerHS(jwt.HS256, key)
	if err != nil {
		return "", err
	}

	builder := jwt.NewBuilder(signer)

	claims := &domain.Claims{
		UserID:    user.ID.Hex(),
		Username:  user.Username,
		Role:      user.UserType,
		ExpiresAt: time.Now().Add(time.Minute * 60),
	}

	token, err := builder.Build(claims)
	if err != nil {
		return "", err
	}

	return token.String(), nil
}

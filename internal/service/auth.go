// Package service provides the business logic layer (use cases).
// AuthService handles identity flows; TransactionService owns the
// aggregation pipeline over linked bank data.
package service

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/thetajwar2003/SpendWiseApi/internal/domain"
	"github.com/thetajwar2003/SpendWiseApi/internal/infra/observability"
	"github.com/thetajwar2003/SpendWiseApi/internal/port"
)

var authTracer = otel.Tracer("service/auth")

// AuthService orchestrates sign-up, sign-in, and confirmation flows
// against the identity provider, mirroring each registered user into
// the user store.
type AuthService struct {
	idp     port.IdentityProvider
	users   port.UserStore
	metrics *observability.Metrics
	logger  *zap.Logger
}

// NewAuthService creates a new auth service.
func NewAuthService(idp port.IdentityProvider, users port.UserStore, metrics *observability.Metrics, logger *zap.Logger) *AuthService {
	return &AuthService{idp: idp, users: users, metrics: metrics, logger: logger}
}

// Register signs the user up with the identity provider and creates the
// matching user record.
func (s *AuthService) Register(ctx context.Context, req *domain.RegisterRequest) (*domain.RegisterResponse, error) {
	ctx, span := authTracer.Start(ctx, "AuthService.Register")
	defer span.End()

	if req.Email == "" {
		return nil, &domain.ErrValidation{Field: "email", Message: "email is required"}
	}
	if req.Password == "" {
		return nil, &domain.ErrValidation{Field: "password", Message: "password is required"}
	}

	userID, err := s.idp.SignUp(ctx, req)
	if err != nil {
		s.metrics.IncrExternalError("cognito")
		return nil, err
	}
	span.SetAttributes(attribute.String("user.id", userID))

	now := time.Now().UTC().Format(time.RFC3339)
	record := &domain.UserRecord{
		UserID:    userID,
		Email:     req.Email,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.users.PutUser(ctx, record); err != nil {
		// The identity account exists either way; surface the store
		// failure so the client can retry.
		s.logger.Error("auth: creating user record failed", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}

	s.logger.Info("auth: user registered", zap.String("user_id", userID))
	return &domain.RegisterResponse{
		Message: "registration successful, confirm your email to continue",
		UserID:  userID,
	}, nil
}

// Confirm submits the emailed confirmation code.
func (s *AuthService) Confirm(ctx context.Context, req *domain.ConfirmRequest) error {
	ctx, span := authTracer.Start(ctx, "AuthService.Confirm")
	defer span.End()

	if req.Email == "" {
		return &domain.ErrValidation{Field: "email", Message: "email is required"}
	}
	if req.ConfirmationCode == "" {
		return &domain.ErrValidation{Field: "confirmation_code", Message: "confirmation code is required"}
	}
	return s.idp.ConfirmSignUp(ctx, req.Email, req.ConfirmationCode)
}

// ResendConfirmation re-sends the confirmation code email.
func (s *AuthService) ResendConfirmation(ctx context.Context, email string) error {
	ctx, span := authTracer.Start(ctx, "AuthService.ResendConfirmation")
	defer span.End()

	if email == "" {
		return &domain.ErrValidation{Field: "email", Message: "email is required"}
	}
	return s.idp.ResendConfirmation(ctx, email)
}

// Login authenticates the user and returns the provider's token set.
func (s *AuthService) Login(ctx context.Context, req *domain.LoginRequest) (*domain.LoginResponse, error) {
	ctx, span := authTracer.Start(ctx, "AuthService.Login")
	defer span.End()

	if req.Email == "" || req.Password == "" {
		return nil, &domain.ErrValidation{Field: "credentials", Message: "email and password are required"}
	}

	resp, err := s.idp.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	s.logger.Info("auth: user logged in", zap.String("user_id", resp.UserID))
	return resp, nil
}

// SignOut revokes the user's tokens.
func (s *AuthService) SignOut(ctx context.Context, accessToken string) error {
	ctx, span := authTracer.Start(ctx, "AuthService.SignOut")
	defer span.End()

	if accessToken == "" {
		return &domain.ErrValidation{Field: "access_token", Message: "access token is required"}
	}
	return s.idp.SignOut(ctx, accessToken)
}

// Package cognito provides the identity-provider integration: sign-up,
// sign-in, confirmation flows, and access-token verification.
package cognito

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	cip "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/thetajwar2003/SpendWiseApi/internal/domain"
)

var tracer = otel.Tracer("cognito")

// Client wraps the Cognito identity-provider SDK.
type Client struct {
	idp          *cip.Client
	clientID     string
	clientSecret string
	logger       *zap.Logger
}

// NewClient creates a Cognito client for the given app client.
func NewClient(awsCfg aws.Config, clientID, clientSecret string, logger *zap.Logger) *Client {
	return &Client{
		idp:          cip.NewFromConfig(awsCfg),
		clientID:     clientID,
		clientSecret: clientSecret,
		logger:       logger,
	}
}

// secretHash computes the SECRET_HASH Cognito requires when the app client
// has a secret: base64(HMAC-SHA256(secret, username + clientID)).
func (c *Client) secretHash(username string) string {
	mac := hmac.New(sha256.New, []byte(c.clientSecret))
	mac.Write([]byte(username + c.clientID))
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

// SignUp registers a new user and returns the provider-assigned user id.
func (c *Client) SignUp(ctx context.Context, req *domain.RegisterRequest) (string, error) {
	ctx, span := tracer.Start(ctx, "Cognito.SignUp")
	defer span.End()

	out, err := c.idp.SignUp(ctx, &cip.SignUpInput{
		ClientId:   aws.String(c.clientID),
		SecretHash: aws.String(c.secretHash(req.Email)),
		Username:   aws.String(req.Email),
		Password:   aws.String(req.Password),
		UserAttributes: []types.AttributeType{
			{Name: aws.String("email"), Value: aws.String(req.Email)},
			{Name: aws.String("given_name"), Value: aws.String(req.FirstName)},
			{Name: aws.String("family_name"), Value: aws.String(req.LastName)},
		},
	})
	if err != nil {
		return "", c.mapError("sign up", err)
	}
	return aws.ToString(out.UserSub), nil
}

// ConfirmSignUp submits the emailed confirmation code.
func (c *Client) ConfirmSignUp(ctx context.Context, email, code string) error {
	ctx, span := tracer.Start(ctx, "Cognito.ConfirmSignUp")
	defer span.End()

	_, err := c.idp.ConfirmSignUp(ctx, &cip.ConfirmSignUpInput{
		ClientId:         aws.String(c.clientID),
		SecretHash:       aws.String(c.secretHash(email)),
		Username:         aws.String(email),
		ConfirmationCode: aws.String(code),
	})
	if err != nil {
		return c.mapError("confirm sign up", err)
	}
	return nil
}

// ResendConfirmation re-sends the confirmation code email.
func (c *Client) ResendConfirmation(ctx context.Context, email string) error {
	ctx, span := tracer.Start(ctx, "Cognito.ResendConfirmation")
	defer span.End()

	_, err := c.idp.ResendConfirmationCode(ctx, &cip.ResendConfirmationCodeInput{
		ClientId:   aws.String(c.clientID),
		SecretHash: aws.String(c.secretHash(email)),
		Username:   aws.String(email),
	})
	if err != nil {
		return c.mapError("resend confirmation", err)
	}
	return nil
}

// Login authenticates with username/password and resolves the user id from
// the returned access token.
func (c *Client) Login(ctx context.Context, email, password string) (*domain.LoginResponse, error) {
	ctx, span := tracer.Start(ctx, "Cognito.Login")
	defer span.End()

	out, err := c.idp.InitiateAuth(ctx, &cip.InitiateAuthInput{
		ClientId: aws.String(c.clientID),
		AuthFlow: types.AuthFlowTypeUserPasswordAuth,
		AuthParameters: map[string]string{
			"USERNAME":    email,
			"PASSWORD":    password,
			"SECRET_HASH": c.secretHash(email),
		},
	})
	if err != nil {
		return nil, c.mapError("login", err)
	}
	if out.AuthenticationResult == nil {
		return nil, &domain.ErrUnauthorized{Message: "authentication challenge not supported"}
	}

	accessToken := aws.ToString(out.AuthenticationResult.AccessToken)

	userOut, err := c.idp.GetUser(ctx, &cip.GetUserInput{
		AccessToken: aws.String(accessToken),
	})
	if err != nil {
		return nil, c.mapError("get user", err)
	}

	var userID string
	for _, attr := range userOut.UserAttributes {
		if aws.ToString(attr.Name) == "sub" {
			userID = aws.ToString(attr.Value)
			break
		}
	}

	return &domain.LoginResponse{
		Message:      "login successful",
		AccessToken:  accessToken,
		RefreshToken: aws.ToString(out.AuthenticationResult.RefreshToken),
		IDToken:      aws.ToString(out.AuthenticationResult.IdToken),
		UserID:       userID,
	}, nil
}

// SignOut revokes all of the user's tokens.
func (c *Client) SignOut(ctx context.Context, accessToken string) error {
	ctx, span := tracer.Start(ctx, "Cognito.SignOut")
	defer span.End()

	_, err := c.idp.GlobalSignOut(ctx, &cip.GlobalSignOutInput{
		AccessToken: aws.String(accessToken),
	})
	if err != nil {
		return c.mapError("sign out", err)
	}
	return nil
}

// mapError translates Cognito SDK exceptions into domain errors so the
// handler layer can pick status codes without importing AWS types.
func (c *Client) mapError(op string, err error) error {
	var (
		usernameExists   *types.UsernameExistsException
		invalidPassword  *types.InvalidPasswordException
		invalidParameter *types.InvalidParameterException
		codeMismatch     *types.CodeMismatchException
		expiredCode      *types.ExpiredCodeException
		notAuthorized    *types.NotAuthorizedException
		notConfirmed     *types.UserNotConfirmedException
		userNotFound     *types.UserNotFoundException
	)

	switch {
	case errors.As(err, &usernameExists):
		return &domain.ErrConflict{Message: "an account with this email already exists"}
	case errors.As(err, &invalidPassword):
		return &domain.ErrValidation{Field: "password", Message: "password does not meet requirements"}
	case errors.As(err, &invalidParameter):
		return &domain.ErrValidation{Field: "request", Message: "invalid request parameters"}
	case errors.As(err, &codeMismatch):
		return &domain.ErrValidation{Field: "confirmation_code", Message: "incorrect confirmation code"}
	case errors.As(err, &expiredCode):
		return &domain.ErrValidation{Field: "confirmation_code", Message: "confirmation code has expired"}
	case errors.As(err, &notConfirmed):
		return &domain.ErrUnauthorized{Message: "account is not confirmed"}
	case errors.As(err, &notAuthorized):
		return &domain.ErrUnauthorized{Message: "incorrect email or password"}
	case errors.As(err, &userNotFound):
		return &domain.ErrNotFound{Resource: "user", ID: "unknown"}
	}

	c.logger.Error(fmt.Sprintf("cognito: %s failed", op), zap.Error(err))
	return &domain.ErrExternalService{Service: "cognito", Err: err}
}

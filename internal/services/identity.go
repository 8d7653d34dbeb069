package services

import (
	"context"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/idtoken"
	"google.golang.org/api/option"

	"guidelk/internal/config"
	"guidelk/pkg/utils"
)

// Identity is a verified external user.
type Identity struct {
	UID   string
	Email string
	Name  string
}

// IdentityProvider verifies an opaque bearer token.
type IdentityProvider interface {
	Verify(ctx context.Context, token string) (*Identity, error)
}

// NewIdentityProvider builds the verifier selected by AUTH_PROVIDER.
func NewIdentityProvider(ctx context.Context, cfg config.AuthConfig) (IdentityProvider, error) {
	switch cfg.Provider {
	case config.ProviderFirebase:
		return NewFirebaseVerifier(ctx, cfg.FirebaseProjectID)
	case config.ProviderGoogle:
		validator, err := idtoken.NewValidator(ctx)
		if err != nil {
			return nil, fmt.Errorf("google id token validator: %w", err)
		}
		return &googleVerifier{validator: validator, audience: cfg.GoogleClientID}, nil
	case config.ProviderHMAC:
		return NewHMACVerifier([]byte(cfg.JWTSecret)), nil
	default:
		return nil, fmt.Errorf("unknown auth provider %q", cfg.Provider)
	}
}

type hmacVerifier struct {
	secret []byte
}

// NewHMACVerifier accepts tokens minted by utils.CreateIdentityToken.
func NewHMACVerifier(secret []byte) IdentityProvider {
	return &hmacVerifier{secret: secret}
}

func (h *hmacVerifier) Verify(_ context.Context, token string) (*Identity, error) {
	claims, err := utils.ValidateIdentityToken(h.secret, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrUnauthorized, err)
	}
	return &Identity{UID: claims.Subject, Email: claims.Email, Name: claims.Name}, nil
}

type googleVerifier struct {
	validator *idtoken.Validator
	audience  string
}

func (g *googleVerifier) Verify(ctx context.Context, token string) (*Identity, error) {
	payload, err := g.validator.Validate(ctx, token, g.audience)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrUnauthorized, err)
	}
	if payload.Subject == "" {
		return nil, fmt.Errorf("%w: token has no subject", utils.ErrUnauthorized)
	}
	id := &Identity{UID: payload.Subject}
	id.Email, _ = payload.Claims["email"].(string)
	id.Name, _ = payload.Claims["name"].(string)
	return id, nil
}

// idTokenVerifier is the part of the Firebase auth client used here.
type idTokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
}

// firebaseVerifier checks Firebase ID tokens through the Admin SDK, which
// fetches and caches Google's signing certificates.
type firebaseVerifier struct {
	client idTokenVerifier
}

// NewFirebaseVerifier builds a verify-only Firebase auth client for
// projectID. No service account is needed to check ID tokens.
func NewFirebaseVerifier(ctx context.Context, projectID string) (IdentityProvider, error) {
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, option.WithoutAuthentication())
	if err != nil {
		return nil, fmt.Errorf("firebase app: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase auth client: %w", err)
	}
	return &firebaseVerifier{client: client}, nil
}

func (f *firebaseVerifier) Verify(ctx context.Context, token string) (*Identity, error) {
	verified, err := f.client.VerifyIDToken(ctx, token)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", utils.ErrUnauthorized, err)
	}
	if verified.UID == "" {
		return nil, fmt.Errorf("%w: token has no subject", utils.ErrUnauthorized)
	}
	id := &Identity{UID: verified.UID}
	id.Email, _ = verified.Claims["email"].(string)
	id.Name, _ = verified.Claims["name"].(string)
	return id, nil
}

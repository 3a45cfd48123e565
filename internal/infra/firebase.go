// README: Firebase ID-token verification for the /api routes.
package infra

import (
	"context"
	"errors"
	"fmt"

	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/auth"
	"google.golang.org/api/option"
)

// FirebaseToken is the verified identity of a caller.
type FirebaseToken struct {
	UID string
}

// TokenVerifier verifies a raw Firebase ID token string.
type TokenVerifier interface {
	VerifyIDToken(ctx context.Context, idToken string) (*FirebaseToken, error)
}

// idTokenClient is the part of *auth.Client used here.
type idTokenClient interface {
	VerifyIDToken(ctx context.Context, idToken string) (*auth.Token, error)
	VerifyIDTokenAndCheckRevoked(ctx context.Context, idToken string) (*auth.Token, error)
}

type firebaseVerifier struct {
	client       idTokenClient
	checkRevoked bool
}

// NewFirebaseVerifier creates a TokenVerifier for projectID. When credentialsFile is
// empty, application-default credentials are used. checkRevoked adds a round trip to
// Firebase per request so signed-out sessions are refused before their tokens expire.
func NewFirebaseVerifier(ctx context.Context, projectID, credentialsFile string, checkRevoked bool) (TokenVerifier, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}
	app, err := firebase.NewApp(ctx, &firebase.Config{ProjectID: projectID}, opts...)
	if err != nil {
		return nil, fmt.Errorf("firebase app: %w", err)
	}
	client, err := app.Auth(ctx)
	if err != nil {
		return nil, fmt.Errorf("firebase auth client: %w", err)
	}
	return &firebaseVerifier{client: client, checkRevoked: checkRevoked}, nil
}

func (v *firebaseVerifier) VerifyIDToken(ctx context.Context, idToken string) (*FirebaseToken, error) {
	var (
		token *auth.Token
		err   error
	)
	if v.checkRevoked {
		token, err = v.client.VerifyIDTokenAndCheckRevoked(ctx, idToken)
	} else {
		token, err = v.client.VerifyIDToken(ctx, idToken)
	}
	if err != nil {
		return nil, err
	}
	// Plans and quota are keyed by uid.
	if token.UID == "" {
		return nil, errors.New("id token has no uid")
	}
	return &FirebaseToken{UID: token.UID}, nil
}

package infra

import (
	"context"
	"errors"
	"testing"

	"firebase.google.com/go/v4/auth"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeIDTokenClient struct {
	token   *auth.Token
	err     error
	revoked bool
}

func (f *fakeIDTokenClient) VerifyIDToken(_ context.Context, _ string) (*auth.Token, error) {
	return f.token, f.err
}

func (f *fakeIDTokenClient) VerifyIDTokenAndCheckRevoked(_ context.Context, _ string) (*auth.Token, error) {
	if f.revoked {
		return nil, errors.New("id token has been revoked")
	}
	return f.token, f.err
}

func TestFirebaseVerifier(t *testing.T) {
	ctx := context.Background()

	t.Run("uid", func(t *testing.T) {
		v := &firebaseVerifier{client: &fakeIDTokenClient{token: &auth.Token{UID: "traveller"}}}
		tok, err := v.VerifyIDToken(ctx, "t")
		require.NoError(t, err)
		assert.Equal(t, "traveller", tok.UID)
	})
	t.Run("empty uid rejected", func(t *testing.T) {
		v := &firebaseVerifier{client: &fakeIDTokenClient{token: &auth.Token{}}}
		_, err := v.VerifyIDToken(ctx, "t")
		assert.Error(t, err)
	})
	t.Run("revocation checked only when enabled", func(t *testing.T) {
		client := &fakeIDTokenClient{token: &auth.Token{UID: "u"}, revoked: true}

		_, err := (&firebaseVerifier{client: client}).VerifyIDToken(ctx, "t")
		assert.NoError(t, err)

		_, err = (&firebaseVerifier{client: client, checkRevoked: true}).VerifyIDToken(ctx, "t")
		assert.ErrorContains(t, err, "revoked")
	})
}

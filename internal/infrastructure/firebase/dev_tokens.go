package firebase

import (
	"context"
)

// GenerateDevToken mints a custom token for a user. Only wired up outside
// production, for local API testing without a browser sign-in flow.
func (f *FirebaseAuthClient) GenerateDevToken(ctx context.Context, uid string) (string, error) {
	customToken, err := f.client.CustomToken(ctx, uid)
	if err != nil {
		return "", err
	}
	return customToken, nil
}

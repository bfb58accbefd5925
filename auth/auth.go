// This package verifies the bearer tokens curation clients present.
// Tokens are fernet-encrypted usernames, signed with the service secret;
// verifying one therefore both authenticates the caller and recovers who
// they are.
package auth

import (
	"strings"
	"time"

	"github.com/fernet/fernet-go"

	"github.com/McNamara84/ernie-sub013/config"
)

// Authorize checks an Authorization header, returning the name of the
// authenticated user and an error describing any issue encountered.
func Authorize(authorizationHeader string) (string, error) {
	if !strings.HasPrefix(authorizationHeader, "Bearer ") {
		return "", &InvalidHeaderError{}
	}
	token := strings.TrimSpace(authorizationHeader[len("Bearer "):])

	key, err := serviceKey()
	if err != nil {
		return "", err
	}
	payload := fernet.VerifyAndDecrypt([]byte(token), tokenLifetime(),
		[]*fernet.Key{key})
	if payload == nil {
		return "", &InvalidTokenError{}
	}
	user := strings.TrimSpace(string(payload))
	if user == "" {
		return "", &InvalidTokenError{}
	}
	return user, nil
}

// NewToken mints a bearer token for the given user, signed with the service
// secret. Used by operators to issue credentials and by tests.
func NewToken(user string) (string, error) {
	key, err := serviceKey()
	if err != nil {
		return "", err
	}
	token, err := fernet.EncryptAndSign([]byte(user), key)
	if err != nil {
		return "", err
	}
	return string(token), nil
}

// decodes the configured service secret into a fernet key
func serviceKey() (*fernet.Key, error) {
	key, err := fernet.DecodeKey(config.Service.Secret)
	if err != nil {
		return nil, &InvalidKeyError{Message: err.Error()}
	}
	return key, nil
}

// the configured token lifetime; zero disables the TTL check
func tokenLifetime() time.Duration {
	return time.Duration(config.Service.TokenLifetime) * time.Hour
}

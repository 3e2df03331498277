/*
Copyright 2026 the GreenMarket Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package twin

import (
	"crypto/rand"
	"errors"
	"fmt"
	"time"

	"github.com/go-jose/go-jose/v4"
	"github.com/go-jose/go-jose/v4/jwt"
	"github.com/google/uuid"
)

const issuer = "greenmarket-twin"

var errInvalidToken = errors.New("invalid token")

// tokens issues and verifies HS256 JWTs with a per twin key.
type tokens struct {
	key    []byte
	signer jose.Signer
	ttl    time.Duration
}

func newTokens(ttl time.Duration) (*tokens, error) {
	key := make([]byte, 32)

	if _, err := rand.Read(key); err != nil {
		return nil, err
	}

	signer, err := jose.NewSigner(jose.SigningKey{Algorithm: jose.HS256, Key: key}, (&jose.SignerOptions{}).WithType("JWT"))
	if err != nil {
		return nil, err
	}

	return &tokens{
		key:    key,
		signer: signer,
		ttl:    ttl,
	}, nil
}

// issue returns a signed token for the user.
func (t *tokens) issue(userID string, now time.Time) (string, error) {
	claims := jwt.Claims{
		ID:       uuid.NewString(),
		Issuer:   issuer,
		Subject:  userID,
		IssuedAt: jwt.NewNumericDate(now),
		Expiry:   jwt.NewNumericDate(now.Add(t.ttl)),
	}

	return jwt.Signed(t.signer).Claims(claims).Serialize()
}

// verify returns the user ID a valid, unexpired token was issued to.
func (t *tokens) verify(raw string, now time.Time) (string, error) {
	token, err := jwt.ParseSigned(raw, []jose.SignatureAlgorithm{jose.HS256})
	if err != nil {
		return "", fmt.Errorf("%w: %w", errInvalidToken, err)
	}

	var claims jwt.Claims

	if err := token.Claims(t.key, &claims); err != nil {
		return "", fmt.Errorf("%w: %w", errInvalidToken, err)
	}

	if err := claims.ValidateWithLeeway(jwt.Expected{Issuer: issuer, Time: now}, 0); err != nil {
		return "", fmt.Errorf("%w: %w", errInvalidToken, err)
	}

	return claims.Subject, nil
}

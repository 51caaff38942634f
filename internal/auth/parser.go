package auth

import (
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"

	"github.com/nurpe/renttax/internal/model"
)

var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	Name string `json:"name,omitempty"`
	jwt.RegisteredClaims
}

// Parser validates HS256 access tokens signed with a shared secret.
type Parser struct {
	secret []byte
}

func NewParser(secret string) *Parser {
	return &Parser{secret: []byte(secret)}
}

// Enabled reports whether a secret is configured.
func (p *Parser) Enabled() bool {
	return len(p.secret) > 0
}

func (p *Parser) Parse(token string) (model.Principal, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return p.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return model.Principal{}, fmt.Errorf("%w: %w", ErrInvalidToken, err)
	}
	if !parsed.Valid || claims.Subject == "" {
		return model.Principal{}, ErrInvalidToken
	}
	return model.Principal{Subject: claims.Subject, Name: claims.Name}, nil
}

// Sign issues a token for subject with the parser's secret.
func (p *Parser) Sign(subject, name string, claims jwt.RegisteredClaims) (string, error) {
	claims.Subject = subject
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{Name: name, RegisteredClaims: claims})
	return token.SignedString(p.secret)
}

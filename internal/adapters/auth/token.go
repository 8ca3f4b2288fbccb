package auth

import (
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"eventmanagement/internal/domain"
)

// DefaultTokenExpiry is used when TokenConfig.Expiry is zero.
const DefaultTokenExpiry = 3 * time.Hour

// TokenConfig configures token signing and validation.
type TokenConfig struct {
	Secret   string
	Issuer   string
	Audience string
	Expiry   time.Duration
}

type jwtClaims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

type jwtAuth struct {
	secret   []byte
	issuer   string
	audience string
	expiry   time.Duration
	now      func() time.Time
}

func newJWTAuth(cfg TokenConfig) *jwtAuth {
	expiry := cfg.Expiry
	if expiry <= 0 {
		expiry = DefaultTokenExpiry
	}
	return &jwtAuth{
		secret:   []byte(cfg.Secret),
		issuer:   cfg.Issuer,
		audience: cfg.Audience,
		expiry:   expiry,
		now:      time.Now,
	}
}

// NewJWTIssuer returns a TokenIssuer that signs JWTs with HS256 using cfg.Secret.
func NewJWTIssuer(cfg TokenConfig) domain.TokenIssuer {
	return newJWTAuth(cfg)
}

// NewJWTVerifier returns a TokenVerifier that checks signature, expiry, issuer and audience.
func NewJWTVerifier(cfg TokenConfig) domain.TokenVerifier {
	return newJWTAuth(cfg)
}

func (a *jwtAuth) Issue(user *domain.User) (string, error) {
	now := a.now()
	claims := jwtClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(user.ID, 10),
			Issuer:    a.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(a.expiry)),
		},
		Username: user.Username,
		Email:    user.Email,
		Role:     user.Role,
	}
	if a.audience != "" {
		claims.Audience = jwt.ClaimStrings{a.audience}
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(a.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return tokenString, nil
}

func (a *jwtAuth) Verify(tokenString string) (*domain.Principal, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(a.now),
	}
	if a.issuer != "" {
		opts = append(opts, jwt.WithIssuer(a.issuer))
	}
	if a.audience != "" {
		opts = append(opts, jwt.WithAudience(a.audience))
	}
	claims := &jwtClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return a.secret, nil
	}, opts...)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, errors.New("invalid token: malformed subject")
	}
	return &domain.Principal{
		UserID:   id,
		Username: claims.Username,
		Email:    claims.Email,
		Role:     claims.Role,
	}, nil
}

package auth

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Amsaho/jobhunt/internal/core/account"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL はセッショントークンの有効期限です。
const DefaultTokenTTL = 24 * time.Hour

// ErrInvalidToken はトークンが不正または期限切れの場合に返却されます。
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims はセッショントークンのクレームです。
type Claims struct {
	UserID string `json:"userId"`
	jwt.RegisteredClaims
}

// JWTIssuer は HS256 で署名したセッショントークンを発行・検証します。
type JWTIssuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewJWTIssuer は JWTIssuer を生成します。
func NewJWTIssuer(secret string, ttl time.Duration) (*JWTIssuer, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, fmt.Errorf("auth: jwt secret must be set")
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &JWTIssuer{
		secret: []byte(secret),
		ttl:    ttl,
		now:    func() time.Time { return time.Now().UTC() },
	}, nil
}

// Issue はユーザー ID を埋め込んだトークンを発行します。
func (i *JWTIssuer) Issue(userID string) (account.Token, error) {
	issuedAt := i.now()
	expiresAt := issuedAt.Add(i.ttl)

	claims := Claims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(i.secret)
	if err != nil {
		return account.Token{}, fmt.Errorf("auth: sign token: %w", err)
	}

	return account.Token{Value: signed, ExpiresAt: expiresAt}, nil
}

// Verify はトークンを検証し、埋め込まれたユーザー ID を返します。
func (i *JWTIssuer) Verify(token string) (string, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return i.secret, nil
	}, jwt.WithTimeFunc(i.now), jwt.WithExpirationRequired())
	if err != nil || !parsed.Valid {
		return "", ErrInvalidToken
	}
	if claims.UserID == "" {
		return "", ErrInvalidToken
	}
	return claims.UserID, nil
}

// TTL はトークンの有効期間を返します。
func (i *JWTIssuer) TTL() time.Duration {
	return i.ttl
}

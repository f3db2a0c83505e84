package config

import (
	"crypto/rsa"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const defaultTokenLifetime = 30 * 24 * time.Hour

type PlayerClaims struct {
	PlayerId int64  `json:"player_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

type JWT struct {
	publicKey     *rsa.PublicKey
	privateKey    *rsa.PrivateKey
	signingMethod jwt.SigningMethod
	tokenLifetime time.Duration
}

func NewJWT() (*JWT, error) {
	privatePEM, err := fromEnvOrFile("JWT_PRIVATE_KEY")
	if err != nil {
		return nil, err
	}
	privateKey, err := jwt.ParseRSAPrivateKeyFromPEM(privatePEM)
	if err != nil {
		return nil, fmt.Errorf("unable to parse JWT private key: %w", err)
	}

	publicPEM, err := fromEnvOrFile("JWT_PUBLIC_KEY")
	if err != nil {
		return nil, err
	}
	publicKey, err := jwt.ParseRSAPublicKeyFromPEM(publicPEM)
	if err != nil {
		return nil, fmt.Errorf("unable to parse JWT public key: %w", err)
	}

	lifetime, err := durationEnv("JWT_TOKEN_LIFETIME", defaultTokenLifetime)
	if err != nil {
		return nil, err
	}

	return NewJWTWithKeys(privateKey, publicKey, lifetime)
}

func NewJWTWithKeys(
	privateKey *rsa.PrivateKey, publicKey *rsa.PublicKey, lifetime time.Duration,
) (*JWT, error) {
	if privateKey == nil || publicKey == nil {
		return nil, fmt.Errorf("both JWT keys are required")
	}
	return &JWT{
		privateKey:    privateKey,
		publicKey:     publicKey,
		signingMethod: jwt.SigningMethodRS256,
		tokenLifetime: lifetime,
	}, nil
}

func (j *JWT) Lifetime() time.Duration {
	return j.tokenLifetime
}

// Sign issues a token for the player that expires after the configured
// lifetime.
func (j *JWT) Sign(playerId int64, username string) (string, error) {
	now := time.Now()
	claims := &PlayerClaims{
		PlayerId: playerId,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(j.tokenLifetime)),
		},
	}
	return jwt.NewWithClaims(j.signingMethod, claims).SignedString(j.privateKey)
}

func (j *JWT) Parse(tokenString string) (*PlayerClaims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&PlayerClaims{},
		func(t *jwt.Token) (interface{}, error) {
			return j.publicKey, nil
		},
		jwt.WithValidMethods([]string{j.signingMethod.Alg()}),
	)
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*PlayerClaims)
	if !ok {
		return nil, fmt.Errorf("malformed claims")
	}
	return claims, nil
}

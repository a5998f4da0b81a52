package services

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrMissingCredentials = errors.New("livekit api key and secret are required")

// videoGrant mirrors the LiveKit access-token grant shape. Clients take
// the minted token straight to the media server; the relay never
// inspects it again.
type videoGrant struct {
	Room         string `json:"room"`
	RoomJoin     bool   `json:"roomJoin"`
	CanPublish   bool   `json:"canPublish"`
	CanSubscribe bool   `json:"canSubscribe"`
}

type accessClaims struct {
	jwt.RegisteredClaims
	Video videoGrant `json:"video"`
}

// AccessTokenService mints HS256 room access tokens compatible with the
// LiveKit token format.
type AccessTokenService struct {
	apiKey    string
	apiSecret []byte
	ttl       time.Duration
}

func NewAccessTokenService(apiKey, apiSecret string, ttl time.Duration) (*AccessTokenService, error) {
	if apiKey == "" || apiSecret == "" {
		return nil, ErrMissingCredentials
	}
	if ttl <= 0 {
		ttl = 6 * time.Hour
	}
	return &AccessTokenService{
		apiKey:    apiKey,
		apiSecret: []byte(apiSecret),
		ttl:       ttl,
	}, nil
}

// Mint issues a token granting identity join/publish/subscribe rights
// in room.
func (s *AccessTokenService) Mint(room, identity string) (string, error) {
	if room == "" || identity == "" {
		return "", errors.New("room and identity are required")
	}

	now := time.Now()
	claims := accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    s.apiKey,
			Subject:   identity,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
		Video: videoGrant{
			Room:         room,
			RoomJoin:     true,
			CanPublish:   true,
			CanSubscribe: true,
		},
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tok.SignedString(s.apiSecret)
}

package services

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

func TestAccessTokenRequiresCredentials(t *testing.T) {
	if _, err := NewAccessTokenService("", "secret", time.Hour); err == nil {
		t.Error("expected error for missing api key")
	}
	if _, err := NewAccessTokenService("key", "", time.Hour); err == nil {
		t.Error("expected error for missing api secret")
	}
}

func TestMintRequiresRoomAndIdentity(t *testing.T) {
	svc, err := NewAccessTokenService("key", "secret", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := svc.Mint("", "alice"); err == nil {
		t.Error("expected error for missing room")
	}
	if _, err := svc.Mint("demo", ""); err == nil {
		t.Error("expected error for missing identity")
	}
}

func TestMintedTokenCarriesGrants(t *testing.T) {
	svc, err := NewAccessTokenService("api-key", "api-secret", time.Hour)
	if err != nil {
		t.Fatal(err)
	}

	raw, err := svc.Mint("demo-room", "alice")
	if err != nil {
		t.Fatal(err)
	}

	claims := jwt.MapClaims{}
	_, err = jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("api-secret"), nil
	})
	if err != nil {
		t.Fatalf("minted token failed verification: %v", err)
	}

	if claims["iss"] != "api-key" {
		t.Errorf("issuer should be the api key, got %v", claims["iss"])
	}
	if claims["sub"] != "alice" {
		t.Errorf("subject should be the identity, got %v", claims["sub"])
	}

	video, ok := claims["video"].(map[string]interface{})
	if !ok {
		t.Fatalf("missing video grant: %v", claims)
	}
	if video["room"] != "demo-room" {
		t.Errorf("grant should name the room, got %v", video["room"])
	}
	for _, right := range []string{"roomJoin", "canPublish", "canSubscribe"} {
		if granted, _ := video[right].(bool); !granted {
			t.Errorf("%s should be granted", right)
		}
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		t.Fatal("token should carry an expiry")
	}
	if ttl := time.Until(exp.Time); ttl <= 0 || ttl > time.Hour {
		t.Errorf("expiry should be within the configured TTL, got %s", ttl)
	}
}

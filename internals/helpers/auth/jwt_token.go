package helper

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

// IssueToken menandatangani access token HMAC berisi role + natural key.
func IssueToken(secret string, p Principal, ttl time.Duration) (string, time.Time, error) {
	if strings.TrimSpace(secret) == "" {
		return "", time.Time{}, fmt.Errorf("jwt secret kosong")
	}
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	now := time.Now().UTC()
	exp := now.Add(ttl)
	claims := jwt.MapClaims{
		"id":   strconv.FormatUint(uint64(p.AccountID), 10),
		"role": p.Role,
		"key":  p.Key,
		"name": p.DisplayName,
		"iat":  now.Unix(),
		"exp":  exp.Unix(),
		"jti":  uuid.NewString(),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, exp, nil
}

// ParseToken memverifikasi token dan mengembalikan Principal + waktu kedaluwarsa.
func ParseToken(secret, raw string) (Principal, time.Time, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("invalid signing method")
		}
		return []byte(secret), nil
	})
	if err != nil || !tok.Valid {
		return Principal{}, time.Time{}, fmt.Errorf("invalid token: %v", err)
	}
	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Principal{}, time.Time{}, fmt.Errorf("invalid token claims")
	}

	id, err := strconv.ParseUint(strClaim(claims, "id"), 10, 64)
	if err != nil || id == 0 {
		return Principal{}, time.Time{}, fmt.Errorf("invalid or missing user id")
	}
	p := Principal{
		AccountID:   uint(id),
		Role:        strClaim(claims, "role"),
		Key:         strClaim(claims, "key"),
		DisplayName: strClaim(claims, "name"),
	}

	var exp time.Time
	if v, ok := claims["exp"].(float64); ok {
		exp = time.Unix(int64(v), 0).UTC()
	}
	return p, exp, nil
}

func strClaim(m jwt.MapClaims, key string) string {
	if v, ok := m[key]; ok {
		if s, ok := v.(string); ok {
			return strings.TrimSpace(s)
		}
	}
	return ""
}

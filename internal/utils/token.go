package utils // package utils provides helper functions for session token issue and verification

import (
    "errors"
    "time" // time utilities for generating expirations

    "github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens

    "github.com/renderatl/volunteer-checkin/internal/model"
)

// Identity is the payload carried inside a session token. It is what
// the external token-service contract calls "identity": the resolved
// person plus their role and, for team leads, the task and event their
// link points at.
type Identity struct {
    FirstName string     // resolved first name
    LastName  string     // resolved last name
    Role      model.Role // closed role enumeration
    Task      string     // assigned task (team leads only)
    Event     string     // event affiliation
}

// ErrInvalidToken is returned by VerifyToken for any token that fails
// signature, expiry or claim checks. Callers never learn which check
// failed.
var ErrInvalidToken = errors.New("invalid token")

// IssueToken builds and signs an HS256 JWT for a resolved identity.
// The JWT includes the identity fields plus standard expiration (exp)
// and issued at (iat) claims. Tokens are short-lived; role-gated pages
// re-verify on every load.
func IssueToken(secret string, id Identity, ttlMin int) (string, time.Time, error) {
    exp := time.Now().UTC().Add(time.Duration(ttlMin) * time.Minute)
    claims := jwt.MapClaims{
        "first_name": id.FirstName,
        "last_name":  id.LastName,
        "role":       string(id.Role),
        "task":       id.Task,
        "event":      id.Event,
        "exp":        exp.Unix(),
        "iat":        time.Now().UTC().Unix(),
    }
    t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
    signed, err := t.SignedString([]byte(secret))
    if err != nil {
        return "", time.Time{}, err
    }
    return signed, exp, nil
}

// VerifyToken parses a token, checks its signature and expiry and
// returns the embedded identity. The signing method is pinned to HMAC
// so a token signed with a different algorithm is rejected outright.
func VerifyToken(secret, raw string) (Identity, error) {
    tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
        if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
            return nil, ErrInvalidToken
        }
        return []byte(secret), nil
    })
    if err != nil || !tok.Valid {
        return Identity{}, ErrInvalidToken
    }
    claims, ok := tok.Claims.(jwt.MapClaims)
    if !ok {
        return Identity{}, ErrInvalidToken
    }
    id := Identity{
        FirstName: claimString(claims, "first_name"),
        LastName:  claimString(claims, "last_name"),
        Role:      model.ParseRole(claimString(claims, "role")),
        Task:      claimString(claims, "task"),
        Event:     claimString(claims, "event"),
    }
    if id.FirstName == "" || id.LastName == "" {
        return Identity{}, ErrInvalidToken
    }
    return id, nil
}

func claimString(claims jwt.MapClaims, key string) string {
    if v, ok := claims[key].(string); ok {
        return v
    }
    return ""
}

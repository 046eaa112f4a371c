// Package session caches "who is using this device" entries in Redis.
// An entry is written when an admin or team lead checks in and cleared
// on logout. It is a UX convenience only, never a security boundary:
// role-gated endpoints always re-verify the session token, and
// server-side lookups re-derive the role from the directory.
package session

import (
    "context"
    "encoding/json"
    "errors"
    "time"

    "github.com/google/uuid"
    "github.com/redis/go-redis/v9"

    "github.com/renderatl/volunteer-checkin/internal/model"
)

// Entry is one cached device session.
type Entry struct {
    DeviceID  string     `json:"device_id"`
    FirstName string     `json:"first_name"`
    LastName  string     `json:"last_name"`
    Role      model.Role `json:"role"`
    Task      string     `json:"task,omitempty"`
    Event     string     `json:"event,omitempty"`
}

// ErrNoSession is returned by Get when no entry exists for the device.
var ErrNoSession = errors.New("no session")

// Store reads and writes session entries. A nil Redis client disables
// the cache entirely; every method degrades to a no-op or ErrNoSession
// so the workflow keeps functioning without Redis.
type Store struct {
    rdb *redis.Client
    ttl time.Duration
}

func NewStore(rdb *redis.Client, ttl time.Duration) *Store {
    return &Store{rdb: rdb, ttl: ttl}
}

func key(deviceID string) string { return "session:" + deviceID }

// Put stores an entry under its device id, generating a fresh id when
// the entry has none, and returns the id the entry was stored under.
func (s *Store) Put(ctx context.Context, e Entry) (string, error) {
    if e.DeviceID == "" {
        e.DeviceID = uuid.NewString()
    }
    if s.rdb == nil {
        return e.DeviceID, nil
    }
    b, err := json.Marshal(e)
    if err != nil {
        return "", err
    }
    if err := s.rdb.Set(ctx, key(e.DeviceID), b, s.ttl).Err(); err != nil {
        return "", err
    }
    return e.DeviceID, nil
}

// Get returns the entry for a device, or ErrNoSession.
func (s *Store) Get(ctx context.Context, deviceID string) (Entry, error) {
    if s.rdb == nil || deviceID == "" {
        return Entry{}, ErrNoSession
    }
    b, err := s.rdb.Get(ctx, key(deviceID)).Bytes()
    if err == redis.Nil {
        return Entry{}, ErrNoSession
    }
    if err != nil {
        return Entry{}, err
    }
    var e Entry
    if err := json.Unmarshal(b, &e); err != nil {
        return Entry{}, err
    }
    return e, nil
}

// Delete clears the entry for a device. Logout calls this; clearing a
// missing entry is not an error.
func (s *Store) Delete(ctx context.Context, deviceID string) error {
    if s.rdb == nil || deviceID == "" {
        return nil
    }
    return s.rdb.Del(ctx, key(deviceID)).Err()
}

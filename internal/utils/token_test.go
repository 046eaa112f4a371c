package utils

import (
    "testing"
    "time"

    "github.com/stretchr/testify/assert"
    "github.com/stretchr/testify/require"

    "github.com/renderatl/volunteer-checkin/internal/model"
)

func testIdentity() Identity {
    return Identity{
        FirstName: "Morgan",
        LastName:  "Reed",
        Role:      model.RoleTeamLead,
        Task:      "Registration",
        Event:     "render-2026",
    }
}

func TestIssueAndVerify(t *testing.T) {
    signed, exp, err := IssueToken("secret", testIdentity(), 30)
    require.NoError(t, err)
    assert.WithinDuration(t, time.Now().UTC().Add(30*time.Minute), exp, 5*time.Second)

    got, err := VerifyToken("secret", signed)
    require.NoError(t, err)
    assert.Equal(t, testIdentity(), got)
}

func TestVerifyRejectsWrongSecret(t *testing.T) {
    signed, _, err := IssueToken("secret", testIdentity(), 30)
    require.NoError(t, err)

    _, err = VerifyToken("other", signed)
    assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsExpired(t *testing.T) {
    signed, _, err := IssueToken("secret", testIdentity(), -1)
    require.NoError(t, err)

    _, err = VerifyToken("secret", signed)
    assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRejectsGarbage(t *testing.T) {
    _, err := VerifyToken("secret", "not.a.token")
    assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifyRequiresNames(t *testing.T) {
    id := testIdentity()
    id.FirstName = ""
    signed, _, err := IssueToken("secret", id, 30)
    require.NoError(t, err)

    _, err = VerifyToken("secret", signed)
    assert.ErrorIs(t, err, ErrInvalidToken)
}

package repository

import (
    "context"
    "database/sql"
    "strings"
    "time"
)

// RecoveryRepo owns the `qr_recovery_attempts` table: one counter per
// (first name, last name) pair capping how many times a team lead may
// regenerate their access link. Counters only ever grow; there is no
// expiry.
type RecoveryRepo struct{ DB *sql.DB }

func NewRecoveryRepo(db *sql.DB) *RecoveryRepo { return &RecoveryRepo{DB: db} }

// RecoveryKey builds the lowercase "first_last" counter key used by the
// table's primary key.
func RecoveryKey(first, last string) string {
    return strings.ToLower(strings.TrimSpace(first)) + "_" + strings.ToLower(strings.TrimSpace(last))
}

// Increment bumps the counter for a name pair, creating it at 1 when
// absent. The row is locked for the duration of the transaction so two
// concurrent regenerations cannot both slip under the cap. It returns
// the new count, or ErrRecoveryExhausted when the counter already
// reached max.
func (r *RecoveryRepo) Increment(ctx context.Context, key string, max int) (int, error) {
    tx, err := r.DB.BeginTx(ctx, nil)
    if err != nil {
        return 0, err
    }
    defer func() { _ = tx.Rollback() }()

    var count int
    err = tx.QueryRowContext(ctx,
        "SELECT count FROM qr_recovery_attempts WHERE name_key=? FOR UPDATE", key).Scan(&count)
    if err != nil && err != sql.ErrNoRows {
        return 0, err
    }
    if count >= max {
        return count, ErrRecoveryExhausted
    }

    now := time.Now().UTC()
    if err == sql.ErrNoRows {
        if _, err := tx.ExecContext(ctx,
            "INSERT INTO qr_recovery_attempts (name_key, count, last_accessed) VALUES (?, 1, ?)",
            key, now); err != nil {
            return 0, err
        }
        count = 1
    } else {
        count++
        if _, err := tx.ExecContext(ctx,
            "UPDATE qr_recovery_attempts SET count=?, last_accessed=? WHERE name_key=?",
            count, now, key); err != nil {
            return 0, err
        }
    }
    return count, tx.Commit()
}

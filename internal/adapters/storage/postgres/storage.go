package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	pgdb "github.com/ogurasousui/employee-registry/internal/platform/db/postgres"
)

const (
	selectValueSQL = `SELECT value FROM registry_kv WHERE key = $1`
	// 読み書きトランザクション内では行ロックを取り、同じキーへの書き込みを直列化します。
	selectValueForUpdateSQL = `SELECT value FROM registry_kv WHERE key = $1 FOR UPDATE`
	upsertValueSQL          = `
        INSERT INTO registry_kv (key, value, updated_at)
        VALUES ($1, $2, now())
        ON CONFLICT (key) DO UPDATE
           SET value = EXCLUDED.value,
               updated_at = EXCLUDED.updated_at
    `
)

// Storage は registry_kv テーブルを利用したキーバリューストアです。
type Storage struct {
	pool pgdb.Queryer
}

// NewStorage は Storage を生成します。
func NewStorage(pool pgdb.Queryer) *Storage {
	return &Storage{pool: pool}
}

// Get は key の値を返します。
func (s *Storage) Get(ctx context.Context, key string) (string, bool, error) {
	query := selectValueSQL
	if pgdb.InReadWriteTx(ctx) {
		query = selectValueForUpdateSQL
	}

	exec := pgdb.QueryerFromContext(ctx, s.pool)
	var value string
	if err := exec.QueryRow(ctx, query, key).Scan(&value); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("postgres storage: get %s: %w", key, err)
	}
	return value, true, nil
}

// Set は key の値を上書きします。
func (s *Storage) Set(ctx context.Context, key, value string) error {
	exec := pgdb.QueryerFromContext(ctx, s.pool)
	if _, err := exec.Exec(ctx, upsertValueSQL, key, value); err != nil {
		return fmt.Errorf("postgres storage: set %s: %w", key, err)
	}
	return nil
}

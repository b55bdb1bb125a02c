package repositories

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), time.Now().UnixNano())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err, "open sqlite")
	return db
}

func mustExec(t *testing.T, db *gorm.DB, q string, args ...interface{}) {
	t.Helper()
	require.NoError(t, db.Exec(q, args...).Error, "exec failed: query=%s", q)
}

func createPersonalKeyTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE personal_keys (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		key TEXT NOT NULL UNIQUE,
		secret TEXT NOT NULL,
		secret_salt TEXT NOT NULL,
		max_count INTEGER NOT NULL,
		permissions TEXT NOT NULL,
		whitelist_range TEXT NOT NULL,
		activated_at DATETIME NOT NULL,
		expires_at DATETIME,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createAccessKeyTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE access_keys (
		id TEXT PRIMARY KEY,
		token TEXT NOT NULL UNIQUE,
		permissions TEXT NOT NULL,
		whitelist_range TEXT NOT NULL,
		rate_limit INTEGER NOT NULL DEFAULT 0,
		created_at DATETIME,
		updated_at DATETIME
	);`)
}

func createLogTable(t *testing.T, db *gorm.DB) {
	mustExec(t, db, `CREATE TABLE logs (
		id TEXT PRIMARY KEY,
		key_id TEXT NOT NULL,
		request_id TEXT NOT NULL,
		request_info TEXT,
		access_ip TEXT,
		created_at DATETIME
	);`)
}

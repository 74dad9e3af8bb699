package monitoring

import (
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/acebook-go/acebook-be/internal/database"
)

func newTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := database.New(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	t.Cleanup(func() { db.Close() })
	return db
}

func writeUpload(t *testing.T, dir, name string, age time.Duration) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte("img"), 0644))
	stamp := time.Now().Add(-age)
	require.NoError(t, os.Chtimes(path, stamp, stamp))
	return path
}

func TestJanitor_SweepRemovesOnlyAgedOrphans(t *testing.T) {
	db := newTestDB(t)
	dir := t.TempDir()

	agedOrphan := writeUpload(t, dir, "aged-orphan.png", 48*time.Hour)
	freshOrphan := writeUpload(t, dir, "fresh-orphan.png", time.Minute)
	referenced := writeUpload(t, dir, "referenced.png", 48*time.Hour)

	_, err := db.Exec(
		"INSERT INTO posts(id, user_id, message, image, date_time) VALUES(?, ?, ?, ?, ?)",
		"p1", "u1", "howdy!", "/uploads/referenced.png", time.Now().UnixMilli(),
	)
	require.NoError(t, err)

	janitor, err := NewUploadJanitor(db, dir, "@hourly")
	require.NoError(t, err)
	janitor.Sweep()

	_, err = os.Stat(agedOrphan)
	assert.True(t, os.IsNotExist(err), "aged orphan must be removed")

	_, err = os.Stat(freshOrphan)
	assert.NoError(t, err, "fresh orphan must survive")

	_, err = os.Stat(referenced)
	assert.NoError(t, err, "referenced upload must survive")
}

func TestNewUploadJanitor_BadSchedule(t *testing.T) {
	_, err := NewUploadJanitor(newTestDB(t), t.TempDir(), "not a schedule")
	assert.Error(t, err)
}

func TestJanitor_RunStop(t *testing.T) {
	janitor, err := NewUploadJanitor(newTestDB(t), t.TempDir(), "@hourly")
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		janitor.Run()
		close(done)
	}()

	janitor.Stop()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop")
	}
}

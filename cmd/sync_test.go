package cmd

import (
	"bytes"
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chriserin/zgr/internal/config"
	"github.com/chriserin/zgr/internal/db"
)

const loginFeature = `Feature: Login
Background:
  Given:
    - a user "bob" with password "secret"
Scenarios:
  - Scenario: User logs in
    When:
      - user "bob" logs in with "secret"
    Then:
      - the dashboard is shown
  - Scenario: Wrong password
    When:
      - user "bob" logs in with "nope"
    Then:
      - an error "denied" is shown
`

func runSync(t *testing.T) string {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, RunSync(&buf, config.DefaultConfig()))
	return buf.String()
}

func openTestIndex(t *testing.T) *sql.DB {
	t.Helper()
	sqlDB, err := db.Open("features/zgr.db")
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })
	return sqlDB
}

func writeFeature(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func count(t *testing.T, sqlDB *sql.DB, query string, args ...any) int {
	t.Helper()
	var n int
	require.NoError(t, sqlDB.QueryRow(query, args...).Scan(&n))
	return n
}

func TestSync_RegisterNewFile(t *testing.T) {
	inTempDir(t)
	runInit(t)
	writeFeature(t, "features/login.zgr", "")

	out := runSync(t)

	sqlDB := openTestIndex(t)
	assert.Equal(t, 1, count(t, sqlDB, `SELECT COUNT(*) FROM files WHERE file_path = ?`, "features/login.zgr"))
	assert.Contains(t, out, "new  features/login.zgr")
	assert.Contains(t, out, "synced 1 files")
}

func TestSync_NestedDirectories(t *testing.T) {
	inTempDir(t)
	runInit(t)
	writeFeature(t, "features/login.zgr", "")
	writeFeature(t, "features/shop/checkout.zgr", "")
	writeFeature(t, "features/shop/deep/refund.zgr", "")

	out := runSync(t)

	assert.Contains(t, out, "new  features/shop/checkout.zgr")
	assert.Contains(t, out, "new  features/shop/deep/refund.zgr")
	assert.Contains(t, out, "synced 3 files")
}

func TestSync_ShowAlreadyTrackedFile(t *testing.T) {
	inTempDir(t)
	runInit(t)
	writeFeature(t, "features/login.zgr", "")

	runSync(t)
	out := runSync(t)

	assert.Contains(t, out, "trk  features/login.zgr")
	assert.Equal(t, 1, count(t, openTestIndex(t), `SELECT COUNT(*) FROM files`))
}

func TestSync_OtherFilesIgnored(t *testing.T) {
	inTempDir(t)
	runInit(t)
	writeFeature(t, "features/notes.txt", "")
	writeFeature(t, "features/login.zgr", "")

	out := runSync(t)

	assert.NotContains(t, out, "notes.txt")
	assert.Contains(t, out, "synced 1 files")
}

func TestSync_NoFeatureFiles(t *testing.T) {
	inTempDir(t)
	runInit(t)

	assert.Contains(t, runSync(t), "synced 0 files")
}

func TestSync_WithoutInit(t *testing.T) {
	inTempDir(t)

	var buf bytes.Buffer
	err := RunSync(&buf, config.DefaultConfig())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "run `zgr init` first")
}

func TestSync_IndexesScenariosAndStatements(t *testing.T) {
	inTempDir(t)
	runInit(t)
	writeFeature(t, "features/login.zgr", loginFeature)

	runSync(t)

	sqlDB := openTestIndex(t)
	assert.Equal(t, 2, count(t, sqlDB, `SELECT COUNT(*) FROM scenarios`))
	assert.Equal(t, 11, count(t, sqlDB, `SELECT line FROM scenarios WHERE name = ?`, "Wrong password"))
	assert.Equal(t, 1, count(t, sqlDB, `SELECT COUNT(*) FROM statements WHERE keyword = 'When'`))
	assert.Equal(t, 2, count(t, sqlDB, `SELECT COUNT(*) FROM statements WHERE keyword = 'Then'`))

	var tmpl string
	require.NoError(t, sqlDB.QueryRow(`SELECT template FROM statements WHERE keyword = 'Given'`).Scan(&tmpl))
	assert.Equal(t, `a user "" with password ""`, tmpl)
}

func TestSync_RecordsParseErrors(t *testing.T) {
	inTempDir(t)
	runInit(t)
	writeFeature(t, "features/typo.zgr", "Feature: x\nGivn:\n  - a\n")

	runSync(t)

	assert.Equal(t, 1, count(t, openTestIndex(t), `SELECT error_count FROM files WHERE file_path = ?`, "features/typo.zgr"))
}

func TestSync_RemovesDeletedFiles(t *testing.T) {
	inTempDir(t)
	runInit(t)
	writeFeature(t, "features/login.zgr", loginFeature)
	runSync(t)

	require.NoError(t, os.Remove("features/login.zgr"))
	out := runSync(t)

	assert.Contains(t, out, "del  features/login.zgr")
	sqlDB := openTestIndex(t)
	assert.Equal(t, 0, count(t, sqlDB, `SELECT COUNT(*) FROM files`))
	assert.Equal(t, 0, count(t, sqlDB, `SELECT COUNT(*) FROM scenarios`))
}

func TestSync_RejectsOversizedDocument(t *testing.T) {
	inTempDir(t)
	runInit(t)
	writeFeature(t, "features/big.zgr", strings.Repeat("# filler\n", 20))

	cfg := config.DefaultConfig()
	cfg.MaxDocumentBytes = 64

	var buf bytes.Buffer
	err := RunSync(&buf, cfg)
	require.ErrorIs(t, err, ErrDocumentTooLarge)
}

// syncBuffer lets the watch goroutine write while the test reads.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSyncWatch_ReindexesChanges(t *testing.T) {
	inTempDir(t)
	runInit(t)
	writeFeature(t, "features/login.zgr", "")

	ctx, cancel := context.WithCancel(context.Background())
	out := &syncBuffer{}
	done := make(chan error, 1)
	go func() { done <- RunSyncWatch(ctx, out, config.DefaultConfig()) }()

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "synced 1 files")
	}, 5*time.Second, 20*time.Millisecond)

	writeFeature(t, "features/signup.zgr", "Feature: Signup\n")
	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "new  features/signup.zgr")
	}, 5*time.Second, 20*time.Millisecond)

	require.NoError(t, os.Remove("features/login.zgr"))
	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "del  features/login.zgr")
	}, 5*time.Second, 20*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}

package backup

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sample = "0 * * * * /home/deploy/project/bin/hourly_refresh.sh\n"

type stubReader struct {
	text string
	err  error
}

func (s stubReader) Read(context.Context, bool, bool) (string, error) {
	return s.text, s.err
}

func fixedClock() time.Time {
	return time.Date(2020, 2, 20, 20, 2, 20, 0, time.Local)
}

func TestBackup_NoCrontab_NoBackup(t *testing.T) {
	backupPath := filepath.Join(t.TempDir(), "backup")
	w := NewWriter(stubReader{}, backupPath, nil)

	path, err := w.Backup(context.Background(), "")
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.NoDirExists(t, backupPath)
}

func TestBackup_CrontabExists_BackupCreated(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(stubReader{text: sample}, filepath.Join(dir, "unused"), nil)
	w.SetClock(fixedClock)

	path, err := w.Backup(context.Background(), dir)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "crontab.20200220-200220"), path)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, sample, string(data))
	assert.NoDirExists(t, filepath.Join(dir, "unused"))
}

func TestBackup_DefaultDirCreated(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "cron.d", "backups")
	w := NewWriter(stubReader{text: sample}, dir, nil)
	w.SetClock(fixedClock)

	path, err := w.Backup(context.Background(), "")
	require.NoError(t, err)
	assert.FileExists(t, path)
	assert.Equal(t, dir, filepath.Dir(path))
}

func TestBackup_SameSecondOverwrites(t *testing.T) {
	dir := t.TempDir()
	first := NewWriter(stubReader{text: "first\n"}, dir, nil)
	first.SetClock(fixedClock)
	second := NewWriter(stubReader{text: "second\n"}, dir, nil)
	second.SetClock(fixedClock)

	_, err := first.Backup(context.Background(), "")
	require.NoError(t, err)
	path, err := second.Backup(context.Background(), "")
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Len(t, entries, 1)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "second\n", string(data))
}

func TestBackup_ReadError(t *testing.T) {
	w := NewWriter(stubReader{err: errors.New("boom")}, t.TempDir(), nil)

	_, err := w.Backup(context.Background(), "")
	assert.EqualError(t, err, "boom")
}

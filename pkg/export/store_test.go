package export_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-canvas/pkg/export"
)

func TestDirStoreWritesLegacyFilenames(t *testing.T) {
	dir := t.TempDir()
	store, err := export.NewDirStore(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, store.Dir())

	path, err := store.SaveForm(77, "Well Survey", []byte(`{"id":77}`))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "form_77_Well Survey.json"), path)

	path, err = store.SaveSubmission(9001, "17", []byte(`{"id":9001}`))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "submission_9001_17.json"), path)

	path, err = store.SaveSubmissionV2(9001, "17", []byte(`{"Id":"9001"}`))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "submission_9001_17_v2.json"), path)

	payload, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, `{"Id":"9001"}`, string(payload))
}

func TestDirStoreOmitsEmptySubmissionNumber(t *testing.T) {
	dir := t.TempDir()
	store, err := export.NewDirStore(dir)
	require.NoError(t, err)

	path, err := store.SaveSubmission(42, "", []byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "submission_42.json"), path)
}

func TestDirStoreSanitizesNames(t *testing.T) {
	dir := t.TempDir()
	store, err := export.NewDirStore(dir)
	require.NoError(t, err)

	path, err := store.SaveForm(1, `Site: A/B "audit"?`, []byte(`{}`))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "form_1_Site_ A_B _audit__.json"), path)

	_, err = os.Stat(path)
	require.NoError(t, err)
}

func TestDirStoreCreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	store, err := export.NewDirStore(dir)
	require.NoError(t, err)

	_, err = store.SaveSubmission(1, "", []byte(`{}`))
	require.NoError(t, err)

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestNewDirStoreRejectsEmptyPath(t *testing.T) {
	_, err := export.NewDirStore("")
	require.Error(t, err)
}

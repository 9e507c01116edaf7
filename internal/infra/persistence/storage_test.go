package persistence

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"hbnb/config"
	"hbnb/internal/domain/entity"
	"hbnb/internal/infra/persistence/filestore"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx/fxtest"
)

func testConfig(storageType, medium, url string) *config.Config {
	cfg := &config.Config{Storage: &config.StorageConfig{Type: storageType}}
	cfg.Storage.File.Medium = medium
	cfg.Storage.File.URL = url

	return cfg
}

func newParams(t *testing.T, cfg *config.Config) (Params, *fxtest.Lifecycle) {
	t.Helper()

	lc := fxtest.NewLifecycle(t)

	return Params{
		Lifecycle: lc,
		Ctx:       context.Background(),
		Config:    cfg,
		Logger:    slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})),
	}, lc
}

func TestNew_FileEngineOnDisk(t *testing.T) {
	dir := t.TempDir()
	url := "file://" + dir
	ctx := context.Background()

	params, lc := newParams(t, testConfig(config.StorageTypeFile, config.MediumBlob, url))
	store, err := New(params)
	require.NoError(t, err)
	require.IsType(t, &filestore.FileStorage{}, store)

	lc.RequireStart()

	state := entity.NewState("Persisted")
	require.NoError(t, store.New(ctx, state))
	require.NoError(t, store.Save(ctx))
	lc.RequireStop()

	assert.FileExists(t, filepath.Join(dir, filestore.DefaultDocumentKey))

	// A second process starting on the same directory sees the record.
	params, lc = newParams(t, testConfig(config.StorageTypeFile, config.MediumBlob, url))
	again, err := New(params)
	require.NoError(t, err)
	lc.RequireStart()
	defer lc.RequireStop()

	_, ok, err := again.Get(ctx, entity.ClassState, state.ID)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestNew_StartFailsOnUnknownClass(t *testing.T) {
	dir := t.TempDir()
	document := `{"Ghost.1":{"__class__":"Ghost","id":"1"}}`
	require.NoError(t, os.WriteFile(filepath.Join(dir, filestore.DefaultDocumentKey), []byte(document), 0o600))

	params, lc := newParams(t, testConfig(config.StorageTypeFile, config.MediumBlob, "file://"+dir))
	_, err := New(params)
	require.NoError(t, err)

	err = lc.Start(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, entity.ErrUnknownClass)
}

func TestNew_RejectsUnknownSettings(t *testing.T) {
	params, _ := newParams(t, testConfig("tape", config.MediumBlob, "mem://"))
	_, err := New(params)
	assert.Error(t, err)

	params, _ = newParams(t, testConfig(config.StorageTypeFile, "floppy", "mem://"))
	_, err = New(params)
	assert.Error(t, err)

	params, _ = newParams(t, testConfig(config.StorageTypeFile, config.MediumBlob, "nosuchscheme://x"))
	_, err = New(params)
	assert.Error(t, err)
}

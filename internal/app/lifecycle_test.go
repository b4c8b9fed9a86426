package app

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/blogicum/core/internal/config"
	"github.com/blogicum/core/internal/pkg/testdb"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func mediaConfig(t *testing.T, media string) *config.AppConfig {
	t.Helper()
	cfg, err := config.Parse([]byte(fmt.Sprintf("env: prod\npaths:\n  media: %q\n", media)))
	require.NoError(t, err)
	return cfg
}

func requireClosed(t *testing.T, db *gorm.DB) {
	t.Helper()
	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.Error(t, sqlDB.Ping())
}

func TestAssembleClosesDatabaseOnStorageError(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "media")
	require.NoError(t, os.WriteFile(blocker, []byte("not a dir"), 0o644))
	db := testdb.New(t)

	app, err := assemble(zap.NewNop(), mediaConfig(t, blocker), db, nil)
	require.Error(t, err)
	require.Nil(t, app)
	requireClosed(t, db)
}

func TestAssembleAndShutdown(t *testing.T) {
	db := testdb.New(t)

	app, err := assemble(zap.NewNop(), mediaConfig(t, t.TempDir()), db, nil)
	require.NoError(t, err)
	require.NotNil(t, app.Router())

	sqlDB, err := db.DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Ping())

	app.Shutdown()
	requireClosed(t, db)
}

package postgres

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationVersions_Embebidas(t *testing.T) {
	versions, err := migrationVersions(migrationFiles)
	require.NoError(t, err)
	require.NotEmpty(t, versions)
	assert.Equal(t, "001_init.sql", versions[0])
}

func TestMigrationVersions_OrdenYFiltro(t *testing.T) {
	fsys := fstest.MapFS{
		"migrations/010_b.sql":   {Data: []byte("SELECT 1")},
		"migrations/002_a.sql":   {Data: []byte("SELECT 1")},
		"migrations/README.md":   {Data: []byte("doc")},
		"migrations/old/003.sql": {Data: []byte("SELECT 1")},
	}
	versions, err := migrationVersions(fsys)
	require.NoError(t, err)
	assert.Equal(t, []string{"002_a.sql", "010_b.sql"}, versions)
}

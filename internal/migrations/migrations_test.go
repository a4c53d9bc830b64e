package migrations

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEmbedded_ListsUpMigrations(t *testing.T) {
	files, err := Embedded()
	require.NoError(t, err)
	require.Equal(t, []string{"000001_create_salaries.up.sql"}, files)

	body, err := MigrationFiles.ReadFile("000001_create_salaries.up.sql")
	require.NoError(t, err)
	require.Contains(t, string(body), "CREATE TABLE IF NOT EXISTS salaries")
}

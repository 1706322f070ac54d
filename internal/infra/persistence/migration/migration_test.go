package migration

import (
	"io/fs"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrationFiles_ArePaired(t *testing.T) {
	entries, err := fs.ReadDir(migrationFiles, "sql")
	require.NoError(t, err)
	require.NotEmpty(t, entries)

	ups := map[string]bool{}
	downs := map[string]bool{}
	for _, entry := range entries {
		name := entry.Name()
		switch {
		case strings.HasSuffix(name, ".up.sql"):
			ups[strings.TrimSuffix(name, ".up.sql")] = true
		case strings.HasSuffix(name, ".down.sql"):
			downs[strings.TrimSuffix(name, ".down.sql")] = true
		default:
			t.Errorf("unexpected file %s", name)
		}
	}

	assert.Equal(t, ups, downs)
}

func TestMigrationFiles_EnforceRedemptionUniqueness(t *testing.T) {
	schema, err := fs.ReadFile(migrationFiles, "sql/000001_create_storefront.up.sql")
	require.NoError(t, err)

	assert.Contains(t, string(schema), "UNIQUE (user_id, offer_code_id)")
	assert.Contains(t, string(schema), "UNIQUE (cart_id, product_id, size)")
	assert.Contains(t, string(schema), "products_stock_non_negative")
}

package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/finchql/finch/internal/commerce"
	"github.com/finchql/finch/internal/parser"
	"github.com/finchql/finch/internal/qlang"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "finch.db"), zaptest.NewLogger(t).Sugar())
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func seed(t *testing.T, s *Store) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, s.AddCatalog(ctx, "cat-1", "Sports", "Sports Catalog"))
	require.NoError(t, s.AddCatalog(ctx, "cat-2", "Outdoor", "Outdoor Catalog"))

	uid, err := s.AddSetting(ctx, "set-1", "COMMERCE", "STORE", "on")
	require.NoError(t, err)
	require.NoError(t, s.AddMetadata(ctx, uid, "sharding", "enabled"))

	_, err = s.AddSetting(ctx, "set-2", "COMMERCE", "GLOBAL", "off")
	require.NoError(t, err)
	_, err = s.AddSetting(ctx, "set-3", "SEARCH", "STORE", "on")
	require.NoError(t, err)
}

func compile(t *testing.T, query string) *qlang.CompiledQuery {
	t.Helper()
	q, err := parser.New(commerce.DefaultRegistry()).Parse(query)
	require.NoError(t, err)
	return q
}

func TestOpenIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "finch.db")
	log := zaptest.NewLogger(t).Sugar()

	s, err := Open(path, log)
	require.NoError(t, err)
	require.NoError(t, s.Close())

	s, err = Open(path, log)
	require.NoError(t, err)
	require.NoError(t, s.Close())
}

func TestExecuteCatalogQuery(t *testing.T) {
	s := openStore(t)
	seed(t, s)

	ids, err := s.Execute(context.Background(), compile(t, `FIND Catalog WHERE CatalogCode = 'Sports'`))
	require.NoError(t, err)
	assert.Equal(t, []string{"1"}, ids)
}

func TestExecuteFetchGUID(t *testing.T) {
	s := openStore(t)
	seed(t, s)

	ids, err := s.Execute(context.Background(),
		compile(t, `FIND Configuration RETURN GUID WHERE Namespace = 'COMMERCE' AND Context = 'STORE'`))
	require.NoError(t, err)
	assert.Equal(t, []string{"set-1"}, ids)
}

func TestExecuteMetadataSubquery(t *testing.T) {
	s := openStore(t)
	seed(t, s)

	ids, err := s.Execute(context.Background(),
		compile(t, `FIND Configuration RETURN GUID WHERE MetadataKey{sharding} = 'enabled'`))
	require.NoError(t, err)
	assert.Equal(t, []string{"set-1"}, ids)
}

func TestExecutePaging(t *testing.T) {
	s := openStore(t)
	seed(t, s)

	// Namespace sort puts both COMMERCE rows ahead of the SEARCH row.
	ids, err := s.Execute(context.Background(),
		compile(t, `FIND Configuration RETURN GUID LIMIT 2 OFFSET 1`))
	require.NoError(t, err)
	assert.Len(t, ids, 2)
	assert.Contains(t, ids, "set-3")

	ids, err = s.Execute(context.Background(),
		compile(t, `FIND Configuration RETURN GUID LIMIT 1`))
	require.NoError(t, err)
	require.Len(t, ids, 1)
	assert.NotEqual(t, "set-3", ids[0])
}

func TestExecuteRejectsSearchDialect(t *testing.T) {
	s := openStore(t)

	_, err := s.Execute(context.Background(), compile(t, `FIND Product WHERE ProductCode = 'A'`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot be executed")
}

func TestExecuteRejectsValidateOnly(t *testing.T) {
	s := openStore(t)

	q, err := parser.New(commerce.DefaultRegistry()).Verify(`FIND Catalog WHERE CatalogCode = 'Sports'`)
	require.NoError(t, err)
	_, err = s.Execute(context.Background(), q)
	require.Error(t, err)
}

func TestExecuteRecordsRun(t *testing.T) {
	s := openStore(t)
	seed(t, s)

	_, err := s.Execute(context.Background(), compile(t, `FIND Catalog WHERE CatalogCode = 'Sports'`))
	require.NoError(t, err)

	var count, rowCount int
	var objectType string
	require.NoError(t, s.DB().QueryRow(
		"SELECT COUNT(*), MAX(row_count), MAX(object_type) FROM runs").
		Scan(&count, &rowCount, &objectType))
	assert.Equal(t, 1, count)
	assert.Equal(t, 1, rowCount)
	assert.Equal(t, "Catalog", objectType)
}

package migrations

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFS_ContainsSchema(t *testing.T) {
	files, err := fs.Glob(FS, "*.sql")
	require.NoError(t, err)
	require.NotEmpty(t, files)
	assert.Equal(t, "00001_blog_schema.sql", files[0])

	data, err := fs.ReadFile(FS, files[0])
	require.NoError(t, err)
	schema := string(data)
	assert.Contains(t, schema, "-- +goose Up")
	assert.Contains(t, schema, "-- +goose Down")
	assert.Contains(t, schema, "REFERENCES categories(id) ON DELETE SET NULL")
}

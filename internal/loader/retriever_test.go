package loader

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMux_Retrieve(t *testing.T) {
	var got []string
	record := func(name string) Retriever {
		return RetrieverFunc(func(_ context.Context, address string) ([]byte, error) {
			got = append(got, name+" "+address)
			return []byte(name), nil
		})
	}
	mux := Mux{
		"file":  record("file"),
		"http":  record("http"),
		"https": record("http"),
		"s3":    record("s3"),
	}

	for _, address := range []string{
		"data.csv",
		"file:///tmp/data.csv",
		"http://host/data.csv",
		"HTTPS://host/data.csv",
		"s3://bucket/data.csv",
	} {
		_, err := mux.Retrieve(context.Background(), address)
		require.NoError(t, err, address)
	}

	assert.Equal(t, []string{
		"file data.csv",
		"file file:///tmp/data.csv",
		"http http://host/data.csv",
		"http HTTPS://host/data.csv",
		"s3 s3://bucket/data.csv",
	}, got)
}

func TestMux_Retrieve_UnsupportedScheme(t *testing.T) {
	_, err := Mux{}.Retrieve(context.Background(), "ftp://host/data.csv")
	assert.ErrorContains(t, err, `unsupported scheme "ftp"`)
}

func TestFileRetriever_Retrieve(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.csv")
	require.NoError(t, os.WriteFile(path, []byte("a\n1\n"), 0o600))

	body, err := FileRetriever{}.Retrieve(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, "a\n1\n", string(body))

	body, err = FileRetriever{}.Retrieve(context.Background(), "file://"+path)
	require.NoError(t, err)
	assert.Equal(t, "a\n1\n", string(body))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = FileRetriever{}.Retrieve(ctx, path)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestVariants(t *testing.T) {
	v := Variants{"colors": ColorsFile, "books": BooksFile, "archive": "old.csv"}

	assert.Equal(t, []string{"archive", "books", "colors"}, v.Names())

	file, ok := v.File("colors")
	assert.True(t, ok)
	assert.Equal(t, "data-colors.csv", file)

	_, ok = v.File("unknown")
	assert.False(t, ok)
}

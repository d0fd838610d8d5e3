package archive

import (
	"archive/tar"
	"archive/zip"
	"compress/gzip"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTarGz(t *testing.T, path string, entries map[string]string) {
	t.Helper()
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()

	gz := gzip.NewWriter(f)
	tw := tar.NewWriter(gz)
	for name, content := range entries {
		require.NoError(t, tw.WriteHeader(&tar.Header{
			Name:     name,
			Mode:     0644,
			Size:     int64(len(content)),
			Typeflag: tar.TypeReg,
		}))
		_, err := tw.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, tw.Close())
	require.NoError(t, gz.Close())
}

func TestExtractTarGz(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "phenio.tar.gz")
	writeTarGz(t, archive, map[string]string{
		"phenio.owl": "<rdf:RDF/>",
	})

	out := filepath.Join(dir, "out")
	require.NoError(t, ExtractTarGz(archive, out))

	data, err := os.ReadFile(filepath.Join(out, "phenio.owl"))
	require.NoError(t, err)
	assert.Equal(t, "<rdf:RDF/>", string(data))
}

func TestExtractTarGzRejectsTraversal(t *testing.T) {
	dir := t.TempDir()
	archive := filepath.Join(dir, "evil.tar.gz")
	writeTarGz(t, archive, map[string]string{
		"../escape.txt": "nope",
	})

	err := ExtractTarGz(archive, filepath.Join(dir, "out"))
	assert.ErrorContains(t, err, "escapes destination")
}

func TestGunzip(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "mapping.tsv.gz")

	f, err := os.Create(src)
	require.NoError(t, err)
	gz := gzip.NewWriter(f)
	_, err = gz.Write([]byte("p1\tp2\n"))
	require.NoError(t, err)
	require.NoError(t, gz.Close())
	require.NoError(t, f.Close())

	dst := filepath.Join(dir, "mapping.tsv")
	require.NoError(t, Gunzip(src, dst))

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "p1\tp2\n", string(data))
}

func TestUnzip(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "data.zip")

	f, err := os.Create(src)
	require.NoError(t, err)
	zw := zip.NewWriter(f)
	w, err := zw.Create("sub/nodes.tsv")
	require.NoError(t, err)
	_, err = w.Write([]byte("id\n"))
	require.NoError(t, err)
	require.NoError(t, zw.Close())
	require.NoError(t, f.Close())

	out := filepath.Join(dir, "out")
	require.NoError(t, Unzip(src, out))

	data, err := os.ReadFile(filepath.Join(out, "sub", "nodes.tsv"))
	require.NoError(t, err)
	assert.Equal(t, "id\n", string(data))
}

package data

import (
	"archive/zip"
	"bytes"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stylegrid/internal/model"
)

func zipWithFiles(t *testing.T, files map[string]string) []byte {
	t.Helper()
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for name, content := range files {
		w, err := zw.Create(name)
		require.NoError(t, err)
		_, err = w.Write([]byte(content))
		require.NoError(t, err)
	}
	require.NoError(t, zw.Close())
	return buf.Bytes()
}

const factorCSV = "preamble\nDate,Mkt-RF,RF\n200001,1.0,0.3\n200002,-2.0,0.3\n"

func TestLibraryClient_FetchCSV(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Write(zipWithFiles(t, map[string]string{"F-F_Factors.csv": factorCSV}))
	}))
	defer srv.Close()

	client := NewLibraryClient(srv.URL)
	raw, err := client.FetchCSV("F-F_Factors_CSV.zip")
	require.NoError(t, err)
	assert.Equal(t, factorCSV, string(raw))
	// The library rejects requests without a browser-like user-agent.
	assert.NotEmpty(t, gotUA)
	assert.Contains(t, gotUA, "Mozilla")
}

func TestLibraryClient_Non200IsSourceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "go away", http.StatusForbidden)
	}))
	defer srv.Close()

	client := NewLibraryClient(srv.URL)
	_, err := client.FetchCSV("whatever.zip")
	require.Error(t, err)

	var srcErr *model.SourceError
	require.True(t, errors.As(err, &srcErr))
	assert.Equal(t, http.StatusForbidden, srcErr.StatusCode)
}

func TestLibraryClient_BadArchiveIsSourceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("this is not a zip"))
	}))
	defer srv.Close()

	client := NewLibraryClient(srv.URL)
	_, err := client.FetchCSV("whatever.zip")

	var srcErr *model.SourceError
	require.True(t, errors.As(err, &srcErr))
}

func TestLibraryClient_NetworkErrorIsSourceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // connection refused from here on

	client := NewLibraryClient(srv.URL)
	_, err := client.FetchCSV("whatever.zip")

	var srcErr *model.SourceError
	require.True(t, errors.As(err, &srcErr))
}

func TestRemoteSource_FetchParsesTable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(zipWithFiles(t, map[string]string{"factors.csv": factorCSV}))
	}))
	defer srv.Close()

	src := &RemoteSource{
		Client:   NewLibraryClient(srv.URL),
		Archive:  "factors_CSV.zip",
		Keywords: []string{"Mkt-RF"},
	}
	table, err := src.Fetch()
	require.NoError(t, err)
	assert.Equal(t, 2, table.Len())
	assert.False(t, table.Synthetic)
}

func TestLoader_FallsThroughChain(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(zipWithFiles(t, map[string]string{"factors.csv": factorCSV}))
	}))
	defer srv.Close()

	missing := &FileSource{Path: "/nonexistent/factors.csv", Keywords: []string{"Mkt-RF"}}
	remote := &RemoteSource{
		Client:   NewLibraryClient(srv.URL),
		Archive:  "factors_CSV.zip",
		Keywords: []string{"Mkt-RF"},
	}

	loader := &Loader{}
	table, err := loader.Load(missing, remote)
	require.NoError(t, err)
	assert.Equal(t, 2, table.Len())
}

func TestLoader_NoFallbackSurfacesSourceError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusInternalServerError)
	}))
	defer srv.Close()

	remote := &RemoteSource{
		Client:   NewLibraryClient(srv.URL),
		Archive:  "factors_CSV.zip",
		Keywords: []string{"Mkt-RF"},
	}

	loader := &Loader{}
	_, err := loader.Load(remote)
	require.Error(t, err)

	var srcErr *model.SourceError
	assert.True(t, errors.As(err, &srcErr))
}

func TestLoader_SyntheticFallbackIsFlagged(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	remote := &RemoteSource{
		Client:   NewLibraryClient(srv.URL),
		Archive:  "factors_CSV.zip",
		Keywords: []string{"Mkt-RF"},
	}

	loader := &Loader{
		Fallback: &SyntheticSource{
			Name:          "factors",
			FactorColumns: []string{"Mkt-RF", "RF"},
			Seed:          1,
		},
	}
	table, err := loader.Load(remote)
	require.NoError(t, err)
	// Never silently substituted: the flag must survive.
	assert.True(t, table.Synthetic)
	assert.True(t, table.HasColumn("Mkt-RF"))
	assert.True(t, table.HasColumn("RF"))
}

func TestLoader_CachesFirstSuccess(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		w.Write(zipWithFiles(t, map[string]string{"factors.csv": factorCSV}))
	}))
	defer srv.Close()

	remote := &RemoteSource{
		Client:   NewLibraryClient(srv.URL),
		Archive:  "factors_CSV.zip",
		Keywords: []string{"Mkt-RF"},
	}

	cache := NewTableCache(0)
	defer cache.Close()
	loader := &Loader{Cache: cache}

	_, err := loader.Load(remote)
	require.NoError(t, err)
	_, err = loader.Load(remote)
	require.NoError(t, err)
	assert.Equal(t, 1, hits)
}

package repository_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"

	"github.com/RogoLabs/CNAPulse/pkg/repository"
)

const sampleCNAList = `[
  {
    "shortName": "GitHub_M",
    "organizationName": "GitHub, Inc.",
    "UUID": "A0D2C72C-3CF7-489C-B02E-D96C3BFBC755",
    "securityAdvisories": {
      "advisories": [{"url": "https://github.com/advisories"}]
    }
  },
  {
    "cnaShortName": "legacy-cna",
    "organizationName": "Legacy Org",
    "advisories": [{"url": "https://legacy.example/advisories"}]
  },
  {
    "organizationName": "No Short Name Inc."
  }
]`

func TestCNAListFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "CNAsList.json")
	gt.NoError(t, os.WriteFile(path, []byte(sampleCNAList), 0o644))

	source := repository.NewCNAList(path)
	registry, err := source.LoadRegistry(context.Background())
	gt.NoError(t, err)

	// The nameless entry is dropped
	gt.Equal(t, registry.Len(), 2)

	github := registry.Lookup("github_m", "")
	gt.Equal(t, github.OrgName, "GitHub, Inc.")
	gt.Equal(t, github.AdvisoryURL, "https://github.com/advisories")

	// cnaShortName and top-level advisories are accepted as fallbacks
	legacy := registry.Lookup("legacy-cna", "")
	gt.Equal(t, legacy.OrgName, "Legacy Org")
	gt.Equal(t, legacy.AdvisoryURL, "https://legacy.example/advisories")
}

func TestCNAListFromURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(sampleCNAList))
	}))
	defer server.Close()

	source := repository.NewCNAList(server.URL)
	registry, err := source.LoadRegistry(context.Background())
	gt.NoError(t, err)
	gt.Equal(t, registry.Len(), 2)
}

func TestCNAListWrappedShape(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wrapped.json")
	gt.NoError(t, os.WriteFile(path, []byte(`{"cnas": [{"shortName": "solo"}]}`), 0o644))

	registry, err := repository.NewCNAList(path).LoadRegistry(context.Background())
	gt.NoError(t, err)
	gt.Equal(t, registry.Len(), 1)
	gt.True(t, registry.Contains("solo"))
}

func TestCNAListFailures(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := repository.NewCNAList(filepath.Join(t.TempDir(), "nope.json")).LoadRegistry(context.Background())
		gt.Error(t, err)
	})

	t.Run("http error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", http.StatusInternalServerError)
		}))
		defer server.Close()

		_, err := repository.NewCNAList(server.URL).LoadRegistry(context.Background())
		gt.Error(t, err)
	})

	t.Run("empty list", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "empty.json")
		gt.NoError(t, os.WriteFile(path, []byte(`[]`), 0o644))

		_, err := repository.NewCNAList(path).LoadRegistry(context.Background())
		gt.Error(t, err)
	})

	t.Run("not json", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "garbage.json")
		gt.NoError(t, os.WriteFile(path, []byte(`<html>`), 0o644))

		_, err := repository.NewCNAList(path).LoadRegistry(context.Background())
		gt.Error(t, err)
	})
}

package repository

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/RogoLabs/CNAPulse/pkg/domain/interfaces"
	"github.com/RogoLabs/CNAPulse/pkg/domain/model"
	"github.com/RogoLabs/CNAPulse/pkg/domain/types"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// DefaultCNAListURL is the official CNA list published by the CVE
// Program
const DefaultCNAListURL = "https://raw.githubusercontent.com/CVEProject/cve-website/dev/src/assets/data/CNAsList.json"

// cnaListEntry mirrors one entry of CNAsList.json. The list has grown
// organically; json's case-insensitive matching absorbs the
// shortName/ShortName and UUID/uuid variants, cnaShortName needs its
// own field.
type cnaListEntry struct {
	ShortName        string `json:"shortName"`
	CNAShortName     string `json:"cnaShortName"`
	OrganizationName string `json:"organizationName"`
	UUID             string `json:"uuid"`
	Advisories       []struct {
		URL string `json:"url"`
	} `json:"advisories"`
	SecurityAdvisories struct {
		Advisories []struct {
			URL string `json:"url"`
		} `json:"advisories"`
	} `json:"securityAdvisories"`
}

func (e cnaListEntry) shortName() types.ShortName {
	if e.ShortName != "" {
		return types.ShortName(e.ShortName)
	}
	return types.ShortName(e.CNAShortName)
}

func (e cnaListEntry) advisoryURL() string {
	if list := e.SecurityAdvisories.Advisories; len(list) > 0 && list[0].URL != "" {
		return list[0].URL
	}
	if len(e.Advisories) > 0 {
		return e.Advisories[0].URL
	}
	return ""
}

// CNAList loads the CNA registry from the official CNAsList.json,
// either over HTTP or from a local file.
type CNAList struct {
	location string
	client   *http.Client
}

// NewCNAList creates a registry source. The location is an http(s) URL
// or a local file path.
func NewCNAList(location string) *CNAList {
	return &CNAList{
		location: location,
		client:   &http.Client{Timeout: 30 * time.Second},
	}
}

var _ interfaces.RegistrySource = (*CNAList)(nil)

// LoadRegistry fetches and parses the CNA list. Any failure here is
// fatal for the run: without the full CNA universe the report would be
// misleading.
func (c *CNAList) LoadRegistry(ctx context.Context) (*model.Registry, error) {
	logger := ctxlog.From(ctx)

	data, err := c.fetch(ctx)
	if err != nil {
		return nil, err
	}

	entries, err := parseCNAList(data)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to parse CNA list",
			goerr.V("location", c.location))
	}

	registry := model.NewRegistry()
	var dropped int
	for _, entry := range entries {
		profile := model.CNAProfile{
			ShortName:   entry.shortName(),
			OrgName:     entry.OrganizationName,
			AdvisoryURL: entry.advisoryURL(),
			UUID:        types.CNAID(entry.UUID),
		}
		if err := registry.Add(profile); err != nil {
			dropped++
		}
	}

	if registry.Len() == 0 {
		return nil, goerr.New("CNA list contains no usable entries",
			goerr.V("location", c.location))
	}

	logger.Info("Loaded CNA registry",
		"location", c.location,
		"cnas", registry.Len(),
		"dropped", dropped,
	)
	return registry, nil
}

func (c *CNAList) fetch(ctx context.Context) ([]byte, error) {
	if strings.HasPrefix(c.location, "http://") || strings.HasPrefix(c.location, "https://") {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.location, nil)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to build CNA list request")
		}
		resp, err := c.client.Do(req)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to download CNA list",
				goerr.V("url", c.location))
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, goerr.New("unexpected status downloading CNA list",
				goerr.V("url", c.location),
				goerr.V("status", resp.StatusCode))
		}
		data, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read CNA list response")
		}
		return data, nil
	}

	data, err := os.ReadFile(c.location)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read CNA list file",
			goerr.V("path", c.location))
	}
	return data, nil
}

// parseCNAList accepts both the bare-array shape the official list uses
// today and an object wrapping the list
func parseCNAList(data []byte) ([]cnaListEntry, error) {
	var entries []cnaListEntry
	if err := json.Unmarshal(data, &entries); err == nil {
		return entries, nil
	}

	var wrapped struct {
		CNAs []cnaListEntry `json:"cnas"`
	}
	if err := json.Unmarshal(data, &wrapped); err != nil {
		return nil, goerr.Wrap(err, "CNA list is neither an array nor a cnas object")
	}
	return wrapped.CNAs, nil
}

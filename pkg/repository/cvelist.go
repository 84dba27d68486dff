package repository

import (
	"context"
	"encoding/json"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/RogoLabs/CNAPulse/pkg/domain/interfaces"
	"github.com/RogoLabs/CNAPulse/pkg/domain/model"
	"github.com/RogoLabs/CNAPulse/pkg/domain/types"
	"github.com/m-mizutani/ctxlog"
	"github.com/m-mizutani/goerr/v2"
)

// maxLoggedParseErrors caps per-file error logging; a corrupted mirror
// would otherwise flood the log with hundreds of thousands of lines.
const maxLoggedParseErrors = 10

// cveEnvelope is the subset of the CVE JSON 5.x record format the
// analysis needs
type cveEnvelope struct {
	CVEMetadata struct {
		CVEID             string `json:"cveId"`
		DatePublished     string `json:"datePublished"`
		AssignerOrgID     string `json:"assignerOrgId"`
		AssignerShortName string `json:"assignerShortName"`
	} `json:"cveMetadata"`
	Containers struct {
		CNA struct {
			ProviderMetadata struct {
				ShortName string `json:"shortName"`
			} `json:"providerMetadata"`
		} `json:"cna"`
	} `json:"containers"`
}

// CVEListDir loads CVE records from a local clone of the cvelistV5
// repository (the cves/ directory, one JSON file per CVE).
type CVEListDir struct {
	dir string
}

// NewCVEListDir creates a record source reading a cvelistV5 cves tree
func NewCVEListDir(dir string) *CVEListDir {
	return &CVEListDir{dir: dir}
}

var _ interfaces.RecordSource = (*CVEListDir)(nil)

// LoadRecords walks the corpus directory and extracts one record per
// parseable CVE file. Files that fail to parse or lack a publication
// date are skipped and counted; an unreadable corpus directory is
// fatal.
func (c *CVEListDir) LoadRecords(ctx context.Context) ([]model.Record, int, error) {
	logger := ctxlog.From(ctx)

	if _, err := os.Stat(c.dir); err != nil {
		return nil, 0, goerr.Wrap(err, "CVE corpus directory is not readable",
			goerr.V("dir", c.dir))
	}

	var records []model.Record
	var skipped int

	err := filepath.WalkDir(c.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".json") {
			return nil
		}
		// The cvelistV5 tree carries delta.json / deltaLog.json change
		// manifests alongside the CVE records.
		if !strings.HasPrefix(d.Name(), "CVE-") {
			return nil
		}

		record, perr := parseCVEFile(path)
		if perr != nil {
			skipped++
			if skipped <= maxLoggedParseErrors {
				logger.Warn("Skipping unparseable CVE file",
					"path", path,
					"error", perr,
				)
			}
			return nil
		}
		records = append(records, record)
		return nil
	})
	if err != nil {
		return nil, 0, goerr.Wrap(err, "failed to walk CVE corpus",
			goerr.V("dir", c.dir))
	}

	logger.Info("Loaded CVE corpus",
		"dir", c.dir,
		"records", len(records),
		"skipped", skipped,
	)
	return records, skipped, nil
}

func parseCVEFile(path string) (model.Record, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Record{}, goerr.Wrap(err, "failed to read CVE file")
	}

	var envelope cveEnvelope
	if err := json.Unmarshal(data, &envelope); err != nil {
		return model.Record{}, goerr.Wrap(err, "failed to parse CVE JSON")
	}

	meta := envelope.CVEMetadata
	if meta.DatePublished == "" {
		return model.Record{}, goerr.New("CVE record has no publication date",
			goerr.V("cveId", meta.CVEID))
	}

	publishedAt, err := ParsePublishedDate(meta.DatePublished)
	if err != nil {
		return model.Record{}, goerr.Wrap(err, "failed to parse publication date",
			goerr.V("cveId", meta.CVEID),
			goerr.V("date", meta.DatePublished))
	}

	// providerMetadata carries the accurate CNA short name; old records
	// only have assignerShortName.
	shortName := envelope.Containers.CNA.ProviderMetadata.ShortName
	if shortName == "" {
		shortName = meta.AssignerShortName
	}

	return model.Record{
		CVEID:       types.CVEID(meta.CVEID),
		AssignerID:  types.CNAID(meta.AssignerOrgID),
		ShortName:   types.ShortName(shortName),
		PublishedAt: publishedAt,
	}, nil
}

// publishedDateLayouts covers the timestamp shapes observed in the CVE
// corpus: full RFC3339 with or without sub-seconds, naive datetimes,
// and bare dates.
var publishedDateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// ParsePublishedDate parses the loosely formatted ISO-8601 publication
// timestamps found in CVE records. Naive timestamps are taken as UTC.
func ParsePublishedDate(value string) (time.Time, error) {
	for _, layout := range publishedDateLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return t.UTC(), nil
		}
	}
	return time.Time{}, goerr.New("unsupported date format", goerr.V("value", value))
}

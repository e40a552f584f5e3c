package reputation

import (
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"strings"
)

// DB is a file-backed implementation of domain.ReputationChecker: a JSON
// object mapping hostnames to verdict strings, maintained out of band by
// a security team or an export from an external reputation feed. Lookups
// are offline, so validation stays network-free.
type DB struct {
	verdicts map[string]string
}

// Open loads a verdict database. A missing file yields an empty database
// so a configured-but-absent path degrades to no reputation evidence.
func Open(path string) (*DB, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &DB{}, nil
		}
		return nil, err
	}

	var verdicts map[string]string
	if err := json.Unmarshal(data, &verdicts); err != nil {
		return nil, fmt.Errorf("parsing reputation database %s: %w", path, err)
	}

	normalized := make(map[string]string, len(verdicts))
	for host, verdict := range verdicts {
		normalized[strings.ToLower(host)] = verdict
	}
	return &DB{verdicts: normalized}, nil
}

// Check returns the verdict recorded for the URL's host, or "" when the
// host is unknown.
func (d *DB) Check(rawURL string) (string, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "", nil
	}
	return d.verdicts[strings.ToLower(u.Hostname())], nil
}

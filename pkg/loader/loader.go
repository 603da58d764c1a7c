// Package loader reads protocol algorithm JSON from disk or HTTP and
// guarantees the engine always receives a normalized, valid graph; when
// everything else fails there is an embedded default algorithm to fall
// back on.
package loader

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/projecthamburgresearch/resuscitation-health-app/pkg/model"
)

// FindAlgorithmPath locates the algorithm file in the given directory.
// Prefers algorithm.json (canonical) over *.algorithm.json companions.
// Skips backup files and merge artifacts.
func FindAlgorithmPath(dir string) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", fmt.Errorf("failed to read algorithm directory: %w", err)
	}

	var candidates []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		name := e.Name()
		if !strings.HasSuffix(name, ".json") {
			continue
		}
		if strings.Contains(name, ".backup") || strings.Contains(name, ".orig") {
			continue
		}
		if name == "algorithm.json" || strings.HasSuffix(name, ".algorithm.json") {
			candidates = append(candidates, name)
		}
	}

	if len(candidates) == 0 {
		return "", fmt.Errorf("no algorithm JSON found in %s", dir)
	}

	// algorithm.json wins; otherwise take the first non-empty candidate.
	for _, name := range append([]string{"algorithm.json"}, candidates...) {
		for _, c := range candidates {
			if c != name {
				continue
			}
			path := filepath.Join(dir, c)
			if info, err := os.Stat(path); err == nil && info.Size() > 0 {
				return path, nil
			}
		}
	}
	return filepath.Join(dir, candidates[0]), nil
}

// Load reads and normalizes an algorithm from a JSON file.
func Load(path string) (*model.Algorithm, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open algorithm file: %w", err)
	}
	defer f.Close()
	return LoadFromReader(f)
}

// LoadFromReader decodes, normalizes, and validates an algorithm.
func LoadFromReader(r io.Reader) (*model.Algorithm, error) {
	raw, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read algorithm: %w", err)
	}
	raw = stripBOM(raw)

	var alg model.Algorithm
	if err := json.Unmarshal(raw, &alg); err != nil {
		return nil, fmt.Errorf("invalid algorithm JSON: %w", err)
	}
	alg.Normalize()
	if err := alg.Validate(); err != nil {
		return nil, err
	}
	return &alg, nil
}

// Fetch downloads an algorithm over HTTP.
func Fetch(ctx context.Context, url string) (*model.Algorithm, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	client := &http.Client{Timeout: 15 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch algorithm: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("failed to fetch algorithm: %s", resp.Status)
	}
	return LoadFromReader(resp.Body)
}

// stripBOM removes the UTF-8 Byte Order Mark if present
func stripBOM(b []byte) []byte {
	if bytes.HasPrefix(b, []byte{0xEF, 0xBB, 0xBF}) {
		return b[3:]
	}
	return b
}

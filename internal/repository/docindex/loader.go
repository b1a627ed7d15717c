package docindex

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/docdex/internal/domain"
	"github.com/kailas-cloud/docdex/internal/domain/doctree"
)

// JSONPCallback wraps the index in files meant for local (file://) browsing.
const JSONPCallback = "crystal_doc_search_index_callback"

// MaxIndexSize bounds how much of an index file is read.
const MaxIndexSize = 256 << 20

// ErrIndexTooLarge is returned when an index exceeds the loader's size limit.
var ErrIndexTooLarge = errors.New("index too large")

// Loader fetches and decodes index files.
type Loader struct {
	client  *http.Client
	logger  *zap.Logger
	maxSize int64
}

// NewLoader creates a loader. A nil client uses http.DefaultClient.
func NewLoader(client *http.Client, logger *zap.Logger) *Loader {
	if client == nil {
		client = http.DefaultClient
	}
	return &Loader{client: client, logger: logger, maxSize: MaxIndexSize}
}

// Load reads the index at location (URL, file:// URL or path) and returns
// a snapshot ready for Holder.Install. Failures wrap domain.ErrIndexUnavailable.
func (l *Loader) Load(ctx context.Context, location string) (*doctree.Program, error) {
	start := time.Now()

	data, err := l.fetch(ctx, location)
	if err != nil {
		return nil, domain.NewIndexLoadError(location, err)
	}

	program, err := Decode(data)
	if err != nil {
		return nil, domain.NewIndexLoadError(location, err)
	}

	stats := program.Root.Count()
	l.logger.Info("Search index loaded",
		zap.String("location", location),
		zap.Int("bytes", len(data)),
		zap.String("digest", program.Digest),
		zap.Int("types", stats.Types),
		zap.Int("methods", stats.Methods),
		zap.Int("constants", stats.Constants),
		zap.Duration("duration", time.Since(start)),
	)
	return program, nil
}

func (l *Loader) fetch(ctx context.Context, location string) ([]byte, error) {
	if isRemote(location) {
		return l.fetchHTTP(ctx, location)
	}

	filePath := location
	if u, err := url.Parse(location); err == nil && u.Scheme == "file" {
		filePath = u.Path
	}
	f, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("read index: %w", err)
	}
	defer func() { _ = f.Close() }()

	return l.readLimited(f)
}

func (l *Loader) fetchHTTP(ctx context.Context, location string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, location, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Accept", "application/json, application/javascript")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch index: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch index: unexpected status %d", resp.StatusCode)
	}

	return l.readLimited(resp.Body)
}

// readLimited reads at most maxSize bytes and fails instead of truncating.
func (l *Loader) readLimited(r io.Reader) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(r, l.maxSize+1))
	if err != nil {
		return nil, fmt.Errorf("read index: %w", err)
	}
	if int64(len(data)) > l.maxSize {
		return nil, fmt.Errorf("%w: index exceeds %d bytes", ErrIndexTooLarge, l.maxSize)
	}
	return data, nil
}

// Decode parses a JSON or JSONP index and computes its digest.
func Decode(data []byte) (*doctree.Program, error) {
	payload := unwrapJSONP(bytes.TrimSpace(data))

	var raw struct {
		Program *doctree.Type `json:"program"`
	}
	if err := json.Unmarshal(payload, &raw); err != nil {
		return nil, fmt.Errorf("decode index: %w", err)
	}
	if raw.Program == nil {
		return nil, errors.New("decode index: missing program")
	}

	sum := sha256.Sum256(payload)
	return &doctree.Program{
		Root:   *raw.Program,
		Digest: hex.EncodeToString(sum[:]),
	}, nil
}

// unwrapJSONP strips "callback(" ... ");" around the JSON payload.
func unwrapJSONP(data []byte) []byte {
	prefix := []byte(JSONPCallback + "(")
	if !bytes.HasPrefix(data, prefix) {
		return data
	}
	data = bytes.TrimSpace(data[len(prefix):])
	data = bytes.TrimSuffix(data, []byte(";"))
	data = bytes.TrimSpace(data)
	return bytes.TrimSuffix(data, []byte(")"))
}

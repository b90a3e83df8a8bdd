// Package artifacts publishes browser-suite failure artifacts (screenshots,
// page dumps, reports). When ARTIFACTS_BUCKET is set they go to S3-compatible
// storage, otherwise to a local output directory.
package artifacts

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"

	"github.com/horecastore/storefront-e2e/internal/obs"
)

// DefaultOutputDir matches the suite's local report directory.
const DefaultOutputDir = "test-output/artifacts"

// ErrObjectNotFound is returned when a requested artifact does not exist.
var ErrObjectNotFound = errors.New("artifacts: object not found")

// Store persists artifacts and returns where they can be found.
type Store interface {
	Put(ctx context.Context, key string, content []byte, contentType string) (string, error)
	Get(ctx context.Context, key string) ([]byte, error)
}

// Config selects and configures the artifact store.
type Config struct {
	Bucket          string
	Endpoint        string
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	PublicURL       string
	UsePathStyle    bool
	OutputDir       string
}

// ConfigFromEnv reads the artifact store configuration using lookup.
func ConfigFromEnv(lookup func(string) (string, bool)) Config {
	if lookup == nil {
		lookup = os.LookupEnv
	}
	get := func(key, def string) string {
		v, ok := lookup(key)
		v = strings.TrimSpace(v)
		if !ok || v == "" {
			return def
		}
		return v
	}
	cfg := Config{
		Bucket:          get("ARTIFACTS_BUCKET", ""),
		Endpoint:        get("ARTIFACTS_ENDPOINT_URL", get("AWS_ENDPOINT_URL_S3", "")),
		Region:          get("AWS_REGION", "us-east-1"),
		AccessKeyID:     get("AWS_ACCESS_KEY_ID", ""),
		SecretAccessKey: get("AWS_SECRET_ACCESS_KEY", ""),
		PublicURL:       get("ARTIFACTS_PUBLIC_URL", ""),
		UsePathStyle:    get("ARTIFACTS_PATH_STYLE", "") == "true",
		OutputDir:       get("ARTIFACTS_DIR", DefaultOutputDir),
	}
	if cfg.PublicURL == "" && cfg.Endpoint != "" && cfg.Bucket != "" {
		cfg.PublicURL = strings.TrimRight(cfg.Endpoint, "/") + "/" + cfg.Bucket
	}
	return cfg
}

// Open returns an S3 store when a bucket is configured, otherwise a
// directory store.
func Open(ctx context.Context, cfg Config) (Store, error) {
	if cfg.Bucket != "" {
		return NewS3(ctx, cfg)
	}
	dir := cfg.OutputDir
	if dir == "" {
		dir = DefaultOutputDir
	}
	return NewDir(dir), nil
}

// DirStore writes artifacts below a root directory.
type DirStore struct {
	root string
}

func NewDir(root string) *DirStore {
	return &DirStore{root: root}
}

func (d *DirStore) Put(_ context.Context, key string, content []byte, _ string) (string, error) {
	path, err := d.path(key)
	if err != nil {
		return "", err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("artifacts: failed to create directory for %q: %w", key, err)
	}
	if err := os.WriteFile(path, content, 0o644); err != nil {
		return "", fmt.Errorf("artifacts: failed to write %q: %w", key, err)
	}
	return path, nil
}

func (d *DirStore) Get(_ context.Context, key string) ([]byte, error) {
	path, err := d.path(key)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrObjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("artifacts: failed to read %q: %w", key, err)
	}
	return data, nil
}

func (d *DirStore) path(key string) (string, error) {
	clean := filepath.Clean("/" + filepath.FromSlash(key))
	if clean == string(filepath.Separator) {
		return "", fmt.Errorf("artifacts: empty key")
	}
	return filepath.Join(d.root, clean), nil
}

var unsafeKeyChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// SanitizeSegment makes a test or project name safe for an object key.
func SanitizeSegment(s string) string {
	s = unsafeKeyChars.ReplaceAllString(strings.TrimSpace(s), "_")
	s = strings.Trim(s, "_")
	if s == "" {
		return "unnamed"
	}
	return s
}

// Recorder files artifacts of one suite run under runs/<run id>/.
type Recorder struct {
	store Store
	runID string
}

// NewRecorder creates a Recorder. An empty runID gets a random one.
func NewRecorder(store Store, runID string) *Recorder {
	if strings.TrimSpace(runID) == "" {
		runID = uuid.NewString()
	}
	return &Recorder{store: store, runID: runID}
}

func (r *Recorder) RunID() string {
	return r.runID
}

// Key builds the object key for an artifact.
func (r *Recorder) Key(project, test, name string) string {
	return strings.Join([]string{
		"runs",
		SanitizeSegment(r.runID),
		SanitizeSegment(project),
		SanitizeSegment(test),
		SanitizeSegment(name),
	}, "/")
}

// Record stores content and logs its location.
func (r *Recorder) Record(ctx context.Context, project, test, name string, content []byte, contentType string) (string, error) {
	key := r.Key(project, test, name)
	location, err := r.store.Put(ctx, key, content, contentType)
	if err != nil {
		obs.From(ctx).Error("artifact upload failed", "key", key, "error", err.Error())
		return "", err
	}
	obs.From(ctx).Info("artifact stored", "key", key, "location", location, "bytes", len(content))
	return location, nil
}

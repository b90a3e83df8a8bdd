package artifacts

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/horecastore/storefront-e2e/internal/obs"
)

func TestS3Store_RoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	store := TestS3Store(t, "suite-artifacts")

	location, err := store.Put(ctx, "runs/r1/desktop/login/screenshot.png", []byte("png-bytes"), "image/png")
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(location, "/suite-artifacts/runs/r1/desktop/login/screenshot.png"), location)

	got, err := store.Get(ctx, "runs/r1/desktop/login/screenshot.png")
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), got)

	_, err = store.Get(ctx, "runs/r1/missing.png")
	assert.True(t, errors.Is(err, ErrObjectNotFound), "got %v", err)
}

func TestS3Store_LocationWithoutPublicURL(t *testing.T) {
	t.Parallel()
	store := NewS3FromClient(nil, "bucket", "")
	assert.Equal(t, "s3://bucket/a/b.png", store.Location("/a/b.png"))
	assert.Equal(t, "bucket", store.BucketName())
}

func TestDirStore_RoundTrip(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	root := t.TempDir()
	store := NewDir(root)

	location, err := store.Put(ctx, "runs/r1/mobile/home/page.html", []byte("<html/>"), "text/html")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "runs", "r1", "mobile", "home", "page.html"), location)

	got, err := store.Get(ctx, "runs/r1/mobile/home/page.html")
	require.NoError(t, err)
	assert.Equal(t, []byte("<html/>"), got)

	_, err = store.Get(ctx, "runs/none")
	assert.ErrorIs(t, err, ErrObjectNotFound)
}

func TestDirStore_KeysStayInsideRoot(t *testing.T) {
	t.Parallel()
	root := t.TempDir()
	store := NewDir(root)

	location, err := store.Put(context.Background(), "../../escape.txt", []byte("x"), "text/plain")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(root, "escape.txt"), location)

	_, err = store.Put(context.Background(), "", []byte("x"), "text/plain")
	assert.Error(t, err)
}

func testSanitizeSegment_SafeCharacters(t *rapid.T) {
	raw := rapid.String().Draw(t, "raw")
	got := SanitizeSegment(raw)
	if got == "" {
		t.Fatal("sanitized segment must not be empty")
	}
	if unsafeKeyChars.MatchString(got) {
		t.Fatalf("unsafe characters remain: %q", got)
	}
}

func TestSanitizeSegment_SafeCharacters(t *testing.T) {
	t.Parallel()
	rapid.Check(t, testSanitizeSegment_SafeCharacters)
}

func TestRecorder_KeyLayout(t *testing.T) {
	t.Parallel()
	r := NewRecorder(NewDir(t.TempDir()), "run-42")
	assert.Equal(t, "run-42", r.RunID())
	assert.Equal(t, "runs/run-42/mobile-iphone-safari/TestLogin_ValidUser_sub/failure.png",
		r.Key("mobile-iphone-safari", "TestLogin/ValidUser sub", "failure.png"))
}

func TestRecorder_GeneratesRunID(t *testing.T) {
	t.Parallel()
	a := NewRecorder(NewDir(t.TempDir()), "")
	b := NewRecorder(NewDir(t.TempDir()), "")
	assert.Len(t, a.RunID(), 36)
	assert.NotEqual(t, a.RunID(), b.RunID())
}

func TestRecorder_RecordLogsLocation(t *testing.T) {
	var buf bytes.Buffer
	restore := obs.SetOutputForTests(&buf)
	defer restore()

	store := TestS3Store(t, "rec-bucket")
	r := NewRecorder(store, "run-7")
	ctx := obs.WithRun(context.Background(), obs.Run{RunID: r.RunID(), Project: "desktop"})

	location, err := r.Record(ctx, "desktop", "TestHome", "page.html", []byte("<p>hi</p>"), "text/html")
	require.NoError(t, err)

	got, err := store.Get(ctx, "runs/run-7/desktop/TestHome/page.html")
	require.NoError(t, err)
	assert.Equal(t, "<p>hi</p>", string(got))

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(strings.TrimSpace(buf.String())), &rec))
	assert.Equal(t, "artifact stored", rec["msg"])
	assert.Equal(t, location, rec["location"])
	assert.Equal(t, "run-7", rec["run_id"])
}

func TestConfigFromEnv(t *testing.T) {
	t.Parallel()
	vars := map[string]string{
		"ARTIFACTS_BUCKET":    "e2e",
		"AWS_ENDPOINT_URL_S3": "https://fly.storage.tigris.dev/",
		"AWS_ACCESS_KEY_ID":   "id",
	}
	cfg := ConfigFromEnv(func(k string) (string, bool) {
		v, ok := vars[k]
		return v, ok
	})
	assert.Equal(t, "e2e", cfg.Bucket)
	assert.Equal(t, "https://fly.storage.tigris.dev/", cfg.Endpoint)
	assert.Equal(t, "https://fly.storage.tigris.dev/e2e", cfg.PublicURL)
	assert.Equal(t, "us-east-1", cfg.Region)
	assert.Equal(t, DefaultOutputDir, cfg.OutputDir)
	assert.False(t, cfg.UsePathStyle)
}

func TestOpen_FallsBackToDirectory(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	store, err := Open(context.Background(), Config{OutputDir: dir})
	require.NoError(t, err)
	ds, ok := store.(*DirStore)
	require.True(t, ok)
	assert.Equal(t, dir, ds.root)
}

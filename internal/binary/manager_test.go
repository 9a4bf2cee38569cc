package binary

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/sirupsen/logrus"

	"github.com/atakanttl/tvm/internal/inventory"
	"github.com/atakanttl/tvm/internal/platform"
)

const testTag = "linux_amd64"

// fakeConfirmer answers every prompt with a fixed response and records the
// prompts it was asked.
type fakeConfirmer struct {
	answer  bool
	prompts []string
}

func (f *fakeConfirmer) Confirm(prompt string, defaultYes bool) (bool, error) {
	f.prompts = append(f.prompts, prompt)
	return f.answer, nil
}

// newReleaseServer serves release archives and checksum files for the given
// versions under the real URL layout. Unknown paths answer 403, matching the
// release host's behavior for nonexistent versions.
func newReleaseServer(t *testing.T, versions ...string) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()

	for _, version := range versions {
		archiveName := fmt.Sprintf("terraform_%s_%s.zip", version, testTag)
		zipData := makeZip(t, map[string]string{
			"terraform": "terraform binary " + version,
		})

		sum := sha256.Sum256(zipData)
		sumsData := []byte(fmt.Sprintf("%s  %s\n", hex.EncodeToString(sum[:]), archiveName))

		releaseDir := fmt.Sprintf("/terraform/%s/", version)
		mux.HandleFunc(releaseDir+archiveName, func(w http.ResponseWriter, r *http.Request) {
			w.Write(zipData)
		})
		mux.HandleFunc(releaseDir+fmt.Sprintf("terraform_%s_SHA256SUMS", version), func(w http.ResponseWriter, r *http.Request) {
			w.Write(sumsData)
		})
	}

	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func newTestManager(t *testing.T, baseURL, dir string, confirm Confirmer) *Manager {
	t.Helper()

	log := logrus.New()
	log.SetOutput(io.Discard)

	manager, err := NewManager(Config{
		Dir:          dir,
		PlatformInfo: &platform.Info{OS: "linux", Arch: "amd64", ArchRaw: "x86_64"},
		BaseURL:      baseURL,
		Confirmer:    confirm,
		Logger:       log,
	})
	if err != nil {
		t.Fatalf("NewManager error: %v", err)
	}
	return manager
}

func TestNewManagerValidation(t *testing.T) {
	info := &platform.Info{OS: "linux", Arch: "amd64"}

	if _, err := NewManager(Config{PlatformInfo: info}); err == nil {
		t.Error("expected error for missing Dir")
	}
	if _, err := NewManager(Config{Dir: "/tmp/x"}); err == nil {
		t.Error("expected error for missing PlatformInfo")
	}
}

func TestManagerInstall(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits not supported on windows")
	}

	server := newReleaseServer(t, "1.5.0")
	dir := t.TempDir()
	manager := newTestManager(t, server.URL, dir, &fakeConfirmer{answer: true})

	if err := manager.Install(context.Background(), "1.5.0"); err != nil {
		t.Fatalf("Install error: %v", err)
	}

	destPath := filepath.Join(dir, "terraform_1.5.0_"+testTag)
	info, err := os.Stat(destPath)
	if err != nil {
		t.Fatalf("installed binary missing: %v", err)
	}

	if perm := info.Mode().Perm(); perm != 0755 {
		t.Errorf("permissions = %o, want 0755", perm)
	}

	content, err := os.ReadFile(destPath)
	if err != nil {
		t.Fatalf("read installed binary: %v", err)
	}
	if string(content) != "terraform binary 1.5.0" {
		t.Errorf("unexpected binary content: %q", content)
	}

	if _, err := os.Stat(filepath.Join(dir, "tmp")); !os.IsNotExist(err) {
		t.Error("scratch directory should not persist after install")
	}
}

func TestManagerInstallMultipleVersions(t *testing.T) {
	server := newReleaseServer(t, "1.4.6", "1.5.0")
	dir := t.TempDir()
	manager := newTestManager(t, server.URL, dir, &fakeConfirmer{answer: true})

	if err := manager.Install(context.Background(), "1.4.6", "1.5.0"); err != nil {
		t.Fatalf("Install error: %v", err)
	}

	for _, version := range []string{"1.4.6", "1.5.0"} {
		if !fileExists(filepath.Join(dir, "terraform_"+version+"_"+testTag)) {
			t.Errorf("version %s not installed", version)
		}
	}
}

func TestManagerInstallUnknownVersion(t *testing.T) {
	server := newReleaseServer(t, "1.5.0")
	dir := t.TempDir()
	manager := newTestManager(t, server.URL, dir, &fakeConfirmer{answer: true})

	err := manager.Install(context.Background(), "99.99.99")

	var notFound *VersionNotFoundError
	if !errors.As(err, &notFound) {
		t.Fatalf("expected VersionNotFoundError, got %v", err)
	}
}

func TestManagerInstallBatchAbortsOnFailure(t *testing.T) {
	server := newReleaseServer(t, "1.5.0")
	dir := t.TempDir()
	manager := newTestManager(t, server.URL, dir, &fakeConfirmer{answer: true})

	// The bad version comes first, so the good one must never be installed.
	err := manager.Install(context.Background(), "99.99.99", "1.5.0")
	if err == nil {
		t.Fatal("expected error from first version")
	}

	if fileExists(filepath.Join(dir, "terraform_1.5.0_"+testTag)) {
		t.Error("batch should have aborted before the second version")
	}
}

func TestManagerInstallOverwritePrompt(t *testing.T) {
	server := newReleaseServer(t, "1.5.0")
	dir := t.TempDir()

	destPath := filepath.Join(dir, "terraform_1.5.0_"+testTag)
	if err := os.WriteFile(destPath, []byte("old install"), 0755); err != nil {
		t.Fatalf("pre-create installed file: %v", err)
	}

	t.Run("declined", func(t *testing.T) {
		confirm := &fakeConfirmer{answer: false}
		manager := newTestManager(t, server.URL, dir, confirm)

		err := manager.Install(context.Background(), "1.5.0")
		if !errors.Is(err, ErrDeclined) {
			t.Fatalf("expected ErrDeclined, got %v", err)
		}

		if len(confirm.prompts) != 1 {
			t.Fatalf("expected one prompt, got %d", len(confirm.prompts))
		}

		content, _ := os.ReadFile(destPath)
		if string(content) != "old install" {
			t.Error("existing install should be untouched after decline")
		}
	})

	t.Run("accepted", func(t *testing.T) {
		manager := newTestManager(t, server.URL, dir, &fakeConfirmer{answer: true})

		if err := manager.Install(context.Background(), "1.5.0"); err != nil {
			t.Fatalf("Install error: %v", err)
		}

		content, _ := os.ReadFile(destPath)
		if string(content) != "terraform binary 1.5.0" {
			t.Error("existing install should be replaced after confirmation")
		}
	})
}

func TestManagerInstallDeclineAbortsBatch(t *testing.T) {
	server := newReleaseServer(t, "1.4.6", "1.5.0")
	dir := t.TempDir()

	// First version already installed; declining its overwrite prompt must
	// stop the whole batch, not just skip that version.
	if err := os.WriteFile(filepath.Join(dir, "terraform_1.4.6_"+testTag), []byte("x"), 0755); err != nil {
		t.Fatalf("pre-create installed file: %v", err)
	}

	manager := newTestManager(t, server.URL, dir, &fakeConfirmer{answer: false})

	err := manager.Install(context.Background(), "1.4.6", "1.5.0")
	if !errors.Is(err, ErrDeclined) {
		t.Fatalf("expected ErrDeclined, got %v", err)
	}

	if fileExists(filepath.Join(dir, "terraform_1.5.0_"+testTag)) {
		t.Error("remaining versions should not be installed after a decline")
	}
}

func TestManagerInstallMissingSumsFileFails(t *testing.T) {
	// Serve only the archive, no SHA256SUMS.
	archiveName := "terraform_1.5.0_" + testTag + ".zip"
	zipData := makeZip(t, map[string]string{"terraform": "bin"})

	mux := http.NewServeMux()
	mux.HandleFunc("/terraform/1.5.0/"+archiveName, func(w http.ResponseWriter, r *http.Request) {
		w.Write(zipData)
	})
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	server := httptest.NewServer(mux)
	defer server.Close()

	dir := t.TempDir()
	manager := newTestManager(t, server.URL, dir, &fakeConfirmer{answer: true})

	if err := manager.Install(context.Background(), "1.5.0"); err == nil {
		t.Fatal("expected error when checksum file is unavailable")
	}

	// With verification disabled the same install succeeds.
	manager.skipVerify = true
	if err := manager.Install(context.Background(), "1.5.0"); err != nil {
		t.Fatalf("Install with skipVerify error: %v", err)
	}
}

func TestManagerUse(t *testing.T) {
	server := newReleaseServer(t, "1.5.0")
	dir := t.TempDir()
	manager := newTestManager(t, server.URL, dir, &fakeConfirmer{answer: true})

	if err := manager.Install(context.Background(), "1.5.0"); err != nil {
		t.Fatalf("Install error: %v", err)
	}

	confirm := &fakeConfirmer{answer: false} // must not be asked
	manager = newTestManager(t, server.URL, dir, confirm)

	if err := manager.Use(context.Background(), "1.5.0"); err != nil {
		t.Fatalf("Use error: %v", err)
	}

	if len(confirm.prompts) != 0 {
		t.Errorf("no prompt expected for an installed version, got %v", confirm.prompts)
	}

	linkPath := filepath.Join(dir, "terraform")
	target, err := filepath.EvalSymlinks(linkPath)
	if err != nil {
		t.Fatalf("resolve symlink: %v", err)
	}

	if filepath.Base(target) != "terraform_1.5.0_"+testTag {
		t.Errorf("symlink resolves to %s, want terraform_1.5.0_%s", target, testTag)
	}

	// Activating the same version again just repoints the link.
	if err := manager.Use(context.Background(), "1.5.0"); err != nil {
		t.Fatalf("second Use error: %v", err)
	}

	target, err = filepath.EvalSymlinks(linkPath)
	if err != nil {
		t.Fatalf("resolve symlink after repoint: %v", err)
	}
	if filepath.Base(target) != "terraform_1.5.0_"+testTag {
		t.Errorf("symlink target changed: %s", target)
	}
}

func TestManagerUseSwitchesVersions(t *testing.T) {
	server := newReleaseServer(t, "1.4.6", "1.5.0")
	dir := t.TempDir()
	manager := newTestManager(t, server.URL, dir, &fakeConfirmer{answer: true})

	if err := manager.Install(context.Background(), "1.4.6", "1.5.0"); err != nil {
		t.Fatalf("Install error: %v", err)
	}

	if err := manager.Use(context.Background(), "1.5.0"); err != nil {
		t.Fatalf("Use 1.5.0 error: %v", err)
	}
	if err := manager.Use(context.Background(), "1.4.6"); err != nil {
		t.Fatalf("Use 1.4.6 error: %v", err)
	}

	name, ok, err := inventory.NewStore(dir).ActiveName()
	if err != nil {
		t.Fatalf("ActiveName error: %v", err)
	}
	if !ok || name != "terraform_1.4.6_"+testTag {
		t.Errorf("active = %q (ok=%v), want terraform_1.4.6_%s", name, ok, testTag)
	}
}

func TestManagerUseDownloadsWhenAbsent(t *testing.T) {
	server := newReleaseServer(t, "1.5.0")
	dir := t.TempDir()

	confirm := &fakeConfirmer{answer: true}
	manager := newTestManager(t, server.URL, dir, confirm)

	if err := manager.Use(context.Background(), "1.5.0"); err != nil {
		t.Fatalf("Use error: %v", err)
	}

	if len(confirm.prompts) != 1 {
		t.Fatalf("expected one download prompt, got %d", len(confirm.prompts))
	}

	if !fileExists(filepath.Join(dir, "terraform_1.5.0_"+testTag)) {
		t.Error("version should have been installed")
	}

	if _, err := os.Lstat(filepath.Join(dir, "terraform")); err != nil {
		t.Errorf("active symlink missing: %v", err)
	}
}

func TestManagerUseDeclined(t *testing.T) {
	server := newReleaseServer(t, "1.5.0")
	dir := t.TempDir()
	manager := newTestManager(t, server.URL, dir, &fakeConfirmer{answer: false})

	err := manager.Use(context.Background(), "1.5.0")
	if !errors.Is(err, ErrDeclined) {
		t.Fatalf("expected ErrDeclined, got %v", err)
	}

	if fileExists(filepath.Join(dir, "terraform_1.5.0_"+testTag)) {
		t.Error("nothing should be installed after a decline")
	}
	if _, err := os.Lstat(filepath.Join(dir, "terraform")); !os.IsNotExist(err) {
		t.Error("no symlink should be created after a decline")
	}
}

func TestManagerVersionPath(t *testing.T) {
	manager := newTestManager(t, "http://unused", "/managed", &fakeConfirmer{})

	got := manager.VersionPath("1.5.0")
	want := filepath.Join("/managed", "terraform_1.5.0_"+testTag)
	if got != want {
		t.Errorf("VersionPath = %q, want %q", got, want)
	}
}

func TestOnSearchPath(t *testing.T) {
	t.Setenv("PATH", "/usr/bin:/home/user/.tvm:/bin")

	if !OnSearchPath("/home/user/.tvm") {
		t.Error("expected true for a directory on PATH")
	}
	if OnSearchPath("/home/user/.other") {
		t.Error("expected false for a directory not on PATH")
	}
}

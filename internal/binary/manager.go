package binary

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/atakanttl/tvm/internal/inventory"
	"github.com/atakanttl/tvm/internal/logging"
	"github.com/atakanttl/tvm/internal/platform"
)

// Manager orchestrates terraform version download, verification, and
// installation into the managed directory.
type Manager struct {
	dir        string
	info       *platform.Info
	baseURL    string
	downloader *Downloader
	extractor  *Extractor
	verifier   *Verifier
	confirm    Confirmer
	skipVerify bool
	log        *logrus.Logger
}

// Config holds configuration for the binary manager.
type Config struct {
	// Dir is the managed directory (default ~/.tvm, injected for test isolation)
	Dir string
	// PlatformInfo contains resolved OS and architecture information
	PlatformInfo *platform.Info
	// BaseURL overrides the release distribution root (default DefaultBaseURL)
	BaseURL string
	// Timeout bounds each release fetch (default DefaultTimeout)
	Timeout time.Duration
	// Confirmer answers confirmation prompts (default: stdin prompts)
	Confirmer Confirmer
	// SkipVerify disables SHA256SUMS verification of downloaded archives
	SkipVerify bool
	// Logger receives progress and warning output (default: shared logger)
	Logger *logrus.Logger
}

// NewManager creates a new binary manager.
func NewManager(config Config) (*Manager, error) {
	if config.Dir == "" {
		return nil, fmt.Errorf("Dir is required")
	}

	if config.PlatformInfo == nil {
		return nil, fmt.Errorf("PlatformInfo is required")
	}

	if config.BaseURL == "" {
		config.BaseURL = DefaultBaseURL
	}

	if config.Confirmer == nil {
		config.Confirmer = NewStdinConfirmer()
	}

	if config.Logger == nil {
		config.Logger = logging.NewLogger()
	}

	return &Manager{
		dir:        config.Dir,
		info:       config.PlatformInfo,
		baseURL:    config.BaseURL,
		downloader: NewDownloader(config.Timeout),
		extractor:  NewExtractor(),
		verifier:   NewVerifier(filepath.Join(config.Dir, KeyringFile)),
		confirm:    config.Confirmer,
		skipVerify: config.SkipVerify,
		log:        config.Logger,
	}, nil
}

// VersionPath returns the final path for an installed version.
func (m *Manager) VersionPath(version string) string {
	return filepath.Join(m.dir, VersionFileName(version, m.info.Tag()))
}

// scratchDir is the transient extraction directory inside the managed
// directory. It should not persist between operations.
func (m *Manager) scratchDir() string {
	return filepath.Join(m.dir, "tmp")
}

// Install downloads and installs each requested version in order. The batch
// is strictly sequential and aborts on the first failure; a declined
// overwrite prompt aborts the remaining versions with ErrDeclined.
func (m *Manager) Install(ctx context.Context, versions ...string) error {
	if len(versions) == 0 {
		return fmt.Errorf("no versions requested")
	}

	for _, version := range versions {
		if err := m.installOne(ctx, version); err != nil {
			return err
		}
	}

	return nil
}

// installOne downloads, verifies, extracts, and installs a single version.
func (m *Manager) installOne(ctx context.Context, version string) error {
	destPath := m.VersionPath(version)

	if fileExists(destPath) {
		prompt := fmt.Sprintf("Terraform v%s already exists. Do you want to download it again?", version)
		ok, err := m.confirm.Confirm(prompt, false)
		if err != nil {
			return fmt.Errorf("confirm overwrite: %w", err)
		}
		if !ok {
			return ErrDeclined
		}
	}

	scratch := m.scratchDir()

	// Recreate the scratch dir, clearing stale contents from any
	// interrupted earlier run.
	if err := os.RemoveAll(scratch); err != nil {
		return fmt.Errorf("clear scratch dir: %w", err)
	}
	if err := os.MkdirAll(scratch, 0755); err != nil {
		return fmt.Errorf("create scratch dir: %w", err)
	}

	info := constructDownloadInfo(m.baseURL, version, m.info.Tag())

	m.log.Infof("Downloading from %s...", info.URL)
	archivePath := filepath.Join(scratch, filepath.Base(info.URL))
	if err := m.downloader.DownloadToFile(ctx, info.URL, version, archivePath); err != nil {
		return err
	}

	if !m.skipVerify {
		if err := m.verifyDownload(ctx, info, scratch, archivePath); err != nil {
			return err
		}
	}

	m.log.Info("Decompressing zip file...")
	if err := m.extractor.ExtractZip(archivePath, scratch); err != nil {
		return fmt.Errorf("extract archive: %w", err)
	}

	// Zip permission bits are not trusted; force the executable mode.
	srcPath := filepath.Join(scratch, ToolName)
	if err := SetExecutable(srcPath); err != nil {
		return err
	}

	m.log.Infof("Moving the binary to %s", m.dir)
	if err := os.Rename(srcPath, destPath); err != nil {
		return fmt.Errorf("move binary: %w", err)
	}

	m.log.Info("Cleaning up temp directory...")
	if err := os.RemoveAll(scratch); err != nil {
		// Non-fatal: the install itself succeeded
		m.log.Warnf("remove scratch dir %s: %v", scratch, err)
	}

	return nil
}

// verifyDownload fetches the release's SHA256SUMS (and its signature when a
// keyring is provisioned) and checks the archive against them.
func (m *Manager) verifyDownload(ctx context.Context, info *DownloadInfo, scratch, archivePath string) error {
	sumsPath := filepath.Join(scratch, filepath.Base(info.SumsURL))
	if err := m.downloader.DownloadToFile(ctx, info.SumsURL, info.Version, sumsPath); err != nil {
		return err
	}

	sigPath := ""
	if m.verifier.HasKeyring() {
		sigPath = filepath.Join(scratch, filepath.Base(info.SigURL))
		if err := m.downloader.DownloadToFile(ctx, info.SigURL, info.Version, sigPath); err != nil {
			return err
		}
	}

	if err := m.verifier.VerifyArchive(archivePath, sumsPath, sigPath); err != nil {
		return fmt.Errorf("verify archive: %w", err)
	}

	return nil
}

// Use ensures the version is installed, downloading it after a confirmation
// prompt when absent, then repoints the active symlink at it. An already
// active version still goes through the remove-and-recreate of the symlink.
func (m *Manager) Use(ctx context.Context, version string) error {
	destPath := m.VersionPath(version)

	if !fileExists(destPath) {
		prompt := fmt.Sprintf("Terraform v%s cannot be found locally. Do you want to download?", version)
		ok, err := m.confirm.Confirm(prompt, true)
		if err != nil {
			return fmt.Errorf("confirm download: %w", err)
		}
		if !ok {
			return ErrDeclined
		}

		if err := m.installOne(ctx, version); err != nil {
			return err
		}
	}

	store := inventory.NewStore(m.dir)
	if err := store.SetActive(destPath); err != nil {
		return fmt.Errorf("activate %s: %w", version, err)
	}

	return nil
}

// OnSearchPath reports whether the managed directory appears in the
// process's PATH variable.
func OnSearchPath(dir string) bool {
	return strings.Contains(os.Getenv("PATH"), dir)
}

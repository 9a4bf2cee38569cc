package binary

import (
	"errors"
	"fmt"
	"time"
)

const (
	// ToolName is the managed binary's name and the active symlink's name.
	ToolName = "terraform"

	// DefaultBaseURL is the HashiCorp release distribution root.
	DefaultBaseURL = "https://releases.hashicorp.com"

	// DefaultTimeout bounds a single release fetch. There are no retries;
	// a timeout surfaces as a fetch failure.
	DefaultTimeout = 30 * time.Second

	// KeyringFile is the optional HashiCorp GPG keyring inside the managed
	// directory. When present, checksum files are signature-checked.
	KeyringFile = "hashicorp.gpg"
)

// ErrDeclined reports that the operator declined a confirmation prompt.
// It maps to a clean (zero) exit at the CLI boundary.
var ErrDeclined = errors.New("declined by operator")

// VersionNotFoundError reports a forbidden response from the release host,
// which is how it answers requests for versions that do not exist.
type VersionNotFoundError struct {
	Version string
}

func (e *VersionNotFoundError) Error() string {
	return fmt.Sprintf("invalid terraform version: %s", e.Version)
}

// StatusError reports any other non-success release host response.
type StatusError struct {
	URL  string
	Code int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("request not successful. Response code: %d", e.Code)
}

// DownloadInfo contains the URLs for one version's release artifacts.
type DownloadInfo struct {
	Version string
	Tag     string // "<os>_<arch>"
	URL     string // zip archive
	SumsURL string // SHA256SUMS file
	SigURL  string // detached GPG signature of the SHA256SUMS file
}

package binary

import (
	"bufio"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ProtonMail/go-crypto/openpgp" //nolint:staticcheck // Using ProtonMail's maintained fork
)

// Verifier checks downloaded archives against the release's SHA256SUMS file
// and, when a HashiCorp keyring is available, the checksum file's detached
// GPG signature.
type Verifier struct {
	keyringPath string
}

// NewVerifier creates a verifier. keyringPath points at an operator-provided
// keyring file; it may be absent, in which case the signature step is
// skipped and only checksums are enforced.
func NewVerifier(keyringPath string) *Verifier {
	return &Verifier{keyringPath: keyringPath}
}

// HasKeyring reports whether the keyring file exists on disk.
func (v *Verifier) HasKeyring() bool {
	info, err := os.Stat(v.keyringPath)
	if err != nil {
		return false
	}
	return !info.IsDir() && info.Size() > 0
}

// VerifyArchive checks the archive's SHA256 against its entry in the sums
// file. When sigPath is non-empty, the sums file's detached signature is
// verified against the keyring first, so a tampered sums file cannot vouch
// for a tampered archive.
func (v *Verifier) VerifyArchive(archivePath, sumsPath, sigPath string) error {
	if sigPath != "" {
		if err := v.verifyGPG(sumsPath, sigPath); err != nil {
			return fmt.Errorf("verify checksum signature: %w", err)
		}
	}

	actual, err := calculateSHA256(archivePath)
	if err != nil {
		return fmt.Errorf("calculate checksum: %w", err)
	}

	expected, err := findChecksum(sumsPath, filepath.Base(archivePath))
	if err != nil {
		return fmt.Errorf("find checksum: %w", err)
	}

	if !strings.EqualFold(actual, expected) {
		return fmt.Errorf("checksum mismatch for %s:\nactual:   %s\nexpected: %s",
			filepath.Base(archivePath), actual, expected)
	}

	return nil
}

// verifyGPG verifies a detached signature over targetPath using the keyring.
func (v *Verifier) verifyGPG(targetPath, sigPath string) error {
	keyring, err := v.loadKeyring()
	if err != nil {
		return fmt.Errorf("load keyring: %w", err)
	}

	targetFile, err := os.Open(targetPath)
	if err != nil {
		return fmt.Errorf("open signed file: %w", err)
	}
	defer targetFile.Close()

	sigFile, err := os.Open(sigPath)
	if err != nil {
		return fmt.Errorf("open signature: %w", err)
	}
	defer sigFile.Close()

	// Try armored first, then binary
	_, err = openpgp.CheckArmoredDetachedSignature(keyring, targetFile, sigFile, nil)
	if err != nil {
		targetFile.Seek(0, io.SeekStart)
		sigFile.Seek(0, io.SeekStart)
		_, err = openpgp.CheckDetachedSignature(keyring, targetFile, sigFile, nil)
	}
	if err != nil {
		return fmt.Errorf("check signature: %w", err)
	}

	return nil
}

// loadKeyring loads the GPG keyring from disk.
func (v *Verifier) loadKeyring() (openpgp.EntityList, error) {
	keyringFile, err := os.Open(v.keyringPath)
	if err != nil {
		return nil, fmt.Errorf("open keyring: %w", err)
	}
	defer keyringFile.Close()

	keyring, err := openpgp.ReadArmoredKeyRing(keyringFile)
	if err != nil {
		// Try reading as non-armored keyring
		keyringFile.Seek(0, io.SeekStart)
		keyring, err = openpgp.ReadKeyRing(keyringFile)
		if err != nil {
			return nil, fmt.Errorf("read keyring: %w", err)
		}
	}

	if len(keyring) == 0 {
		return nil, fmt.Errorf("keyring is empty")
	}

	return keyring, nil
}

// calculateSHA256 calculates the SHA256 checksum of a file.
func calculateSHA256(filePath string) (string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return "", err
	}
	defer file.Close()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, file); err != nil {
		return "", err
	}

	return hex.EncodeToString(hasher.Sum(nil)), nil
}

// findChecksum finds the checksum for a specific filename in a sums file.
// Format: "abc123def456  terraform_1.5.0_linux_amd64.zip"
func findChecksum(sumsPath, filename string) (string, error) {
	file, err := os.Open(sumsPath)
	if err != nil {
		return "", fmt.Errorf("open checksum file: %w", err)
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		parts := strings.Fields(scanner.Text())
		if len(parts) < 2 {
			continue
		}

		if parts[1] == filename || filepath.Base(parts[1]) == filename {
			return parts[0], nil
		}
	}

	if err := scanner.Err(); err != nil {
		return "", fmt.Errorf("scan checksum file: %w", err)
	}

	return "", fmt.Errorf("checksum not found for %s", filename)
}

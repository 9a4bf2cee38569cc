package binary

import (
	"fmt"
	"strings"
)

// constructDownloadInfo builds the release URLs for a version and platform tag.
//
// Archive:   <base>/terraform/<version>/terraform_<version>_<os>_<arch>.zip
// Checksums: <base>/terraform/<version>/terraform_<version>_SHA256SUMS
// Signature: <base>/terraform/<version>/terraform_<version>_SHA256SUMS.sig
func constructDownloadInfo(baseURL, version, tag string) *DownloadInfo {
	releaseDir := fmt.Sprintf("%s/%s/%s", strings.TrimRight(baseURL, "/"), ToolName, version)

	return &DownloadInfo{
		Version: version,
		Tag:     tag,
		URL:     fmt.Sprintf("%s/%s_%s_%s.zip", releaseDir, ToolName, version, tag),
		SumsURL: fmt.Sprintf("%s/%s_%s_SHA256SUMS", releaseDir, ToolName, version),
		SigURL:  fmt.Sprintf("%s/%s_%s_SHA256SUMS.sig", releaseDir, ToolName, version),
	}
}

// VersionFileName returns the version-qualified name an installed binary is
// stored under: terraform_<version>_<os>_<arch>.
func VersionFileName(version, tag string) string {
	return fmt.Sprintf("%s_%s_%s", ToolName, version, tag)
}

package platform

import (
	"fmt"
	"strings"
)

// normalizeOS maps host OS names to release artifact OS tags. Accepts both
// Go runtime names and uname-style names ("Darwin", "Linux"). There is no
// archive for anything else, so unrecognized values are an error.
func normalizeOS(osName string) (string, error) {
	switch strings.ToLower(osName) {
	case "linux":
		return "linux", nil
	case "darwin":
		return "darwin", nil
	default:
		return "", fmt.Errorf("%s is not supported", osName)
	}
}

// normalizeArch maps machine architectures to artifact arch tags. The two
// spellings of 64-bit ARM map to "arm64"; every other value falls back to
// "amd64" without error.
func normalizeArch(arch string) string {
	switch strings.ToLower(arch) {
	case "arm64", "aarch64":
		return "arm64"
	default:
		return "amd64"
	}
}

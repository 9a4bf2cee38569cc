package platform

import (
	"runtime"

	"github.com/shirou/gopsutil/v4/host"
)

// RealResolver implements Resolver using actual host detection.
type RealResolver struct{}

// NewResolver creates a new platform resolver.
func NewResolver() Resolver {
	return &RealResolver{}
}

// Resolve performs platform detection and returns platform information.
// It uses runtime.GOOS for the OS and gopsutil's kernel architecture for
// the machine type, which reports uname-style values ("x86_64", "aarch64")
// rather than GOARCH names.
//
// If the kernel query fails, it falls back to runtime.GOARCH. Both spellings
// of 64-bit ARM normalize to "arm64"; every other architecture maps to
// "amd64".
func (r *RealResolver) Resolve() (*Info, error) {
	archRaw, err := host.KernelArch()
	if err != nil || archRaw == "" {
		archRaw = runtime.GOARCH
	}

	return resolve(runtime.GOOS, archRaw)
}

// resolve builds an Info from raw OS and architecture names. Split out from
// Resolve so tests can exercise the mapping for arbitrary hosts.
func resolve(osName, archRaw string) (*Info, error) {
	normalizedOS, err := normalizeOS(osName)
	if err != nil {
		return nil, err
	}

	return &Info{
		OS:      normalizedOS,
		Arch:    normalizeArch(archRaw),
		ArchRaw: archRaw,
	}, nil
}

// Package platform resolves the host OS and CPU architecture into the
// artifact naming convention used by the HashiCorp release distribution.
//
// The OS comes from the Go runtime; only linux and darwin have published
// terraform archives, so anything else is an error. The machine architecture
// comes from the kernel (the equivalent of uname -m) via gopsutil, so values
// like "x86_64" and "aarch64" are seen as-is before normalization.
package platform

// Info contains resolved platform information.
type Info struct {
	OS      string // "linux" or "darwin"
	Arch    string // "amd64" or "arm64" (normalized)
	ArchRaw string // raw machine architecture (e.g. "x86_64", "aarch64")
}

// Tag returns the "<os>_<arch>" suffix used in release artifact names.
func (i *Info) Tag() string {
	return i.OS + "_" + i.Arch
}

// IsARM64 returns true if the normalized architecture is arm64.
func (i *Info) IsARM64() bool {
	return i.Arch == "arm64"
}

// Resolver is the interface for platform resolution.
type Resolver interface {
	Resolve() (*Info, error)
}

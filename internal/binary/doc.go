// Package binary downloads, verifies, and installs the terraform binaries
// that tvm manages.
//
// # Layout
//
// Installed versions live directly inside the managed directory under
// version-qualified names (terraform_<version>_<os>_<arch>, mode 0755). A
// transient tmp/ scratch directory holds in-flight downloads and extraction
// output and is removed after each install.
//
// # Verification
//
// Release archives are checked against the release's SHA256SUMS file. When
// the operator has provisioned a HashiCorp keyring (hashicorp.gpg in the
// managed directory), the sums file's detached GPG signature is verified as
// well. Verification can be disabled per invocation.
//
// # Usage
//
//	mgr, err := binary.NewManager(binary.Config{
//	    Dir:          "/home/user/.tvm",
//	    PlatformInfo: info,
//	})
//	if err != nil {
//	    return err
//	}
//
//	// Install one or more versions
//	err = mgr.Install(ctx, "1.5.0", "1.4.6")
//
//	// Activate a version (installing it if absent)
//	err = mgr.Use(ctx, "1.5.0")
//
// # Architecture
//
// The package is organized into several components:
//   - Manager: High-level orchestration of download, verify, install, use
//   - Downloader: Single-shot HTTP fetch with a bounded timeout
//   - Verifier: SHA256SUMS and optional GPG verification
//   - Extractor: Release zip extraction
package binary

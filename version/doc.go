// Package version provides build version information embedding.
//
// Version, commit, and build date are set at compile time via -ldflags:
//
//	go build -ldflags "-X github.com/kbukum/pipekit/version.Version=1.0.0"
//
// When the variables are unset, Get falls back to the VCS details the Go
// toolchain embeds in the binary.
package version

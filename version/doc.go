// Package version reports the audiodigest build.
//
// Values are injected at link time and fall back to the VCS stamp the Go
// toolchain embeds:
//
//	go build -ldflags "-X github.com/kbukum/audiodigest/version.Version=1.2.0" ./cmd/audiodigest
package version

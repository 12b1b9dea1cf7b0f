// Package version reports the client library version and the default
// User-Agent the transport sends.
//
// When the library is a dependency of a built binary, the version is read
// from the binary's module build info. It can also be pinned at link time:
//
//	go build -ldflags "-X github.com/kbukum/billplz/version.Version=v1.2.0"
package version

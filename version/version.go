package version

import (
	"runtime"
	"runtime/debug"
)

// ModulePath is the import path of this module.
const ModulePath = "github.com/kbukum/billplz"

// Version is set at build time using -ldflags; "dev" means unset.
var Version = "dev"

// readBuildInfo is swapped in tests.
var readBuildInfo = debug.ReadBuildInfo

// Get returns the library version: the -ldflags value if set, otherwise the
// version recorded for this module in the binary's build info.
func Get() string {
	if Version != "" && Version != "dev" {
		return Version
	}
	if info, ok := readBuildInfo(); ok {
		if info.Main.Path == ModulePath && validModuleVersion(info.Main.Version) {
			return info.Main.Version
		}
		for _, dep := range info.Deps {
			if dep.Path != ModulePath {
				continue
			}
			if dep.Replace != nil && validModuleVersion(dep.Replace.Version) {
				return dep.Replace.Version
			}
			if validModuleVersion(dep.Version) {
				return dep.Version
			}
		}
	}
	return "dev"
}

func validModuleVersion(v string) bool {
	return v != "" && v != "(devel)"
}

// UserAgent returns the default User-Agent header value,
// e.g. "billplz-go/v1.2.0 (go1.26.0)".
func UserAgent() string {
	return "billplz-go/" + Get() + " (" + runtime.Version() + ")"
}

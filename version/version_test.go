package version

import (
	"runtime"
	"runtime/debug"
	"strings"
	"testing"
)

func stubBuildInfo(t *testing.T, info *debug.BuildInfo) {
	t.Helper()
	origVersion, origRead := Version, readBuildInfo
	t.Cleanup(func() {
		Version = origVersion
		readBuildInfo = origRead
	})
	Version = "dev"
	readBuildInfo = func() (*debug.BuildInfo, bool) { return info, info != nil }
}

func TestGet_LdflagsWins(t *testing.T) {
	stubBuildInfo(t, &debug.BuildInfo{Deps: []*debug.Module{{Path: ModulePath, Version: "v0.9.0"}}})
	Version = "v1.2.0"
	if got := Get(); got != "v1.2.0" {
		t.Errorf("expected ldflags version, got %q", got)
	}
}

func TestGet_FromDependency(t *testing.T) {
	stubBuildInfo(t, &debug.BuildInfo{
		Main: debug.Module{Path: "example.com/shop", Version: "(devel)"},
		Deps: []*debug.Module{
			{Path: "github.com/rs/zerolog", Version: "v1.34.0"},
			{Path: ModulePath, Version: "v0.3.1"},
		},
	})
	if got := Get(); got != "v0.3.1" {
		t.Errorf("expected dependency version, got %q", got)
	}
}

func TestGet_FromReplacedDependency(t *testing.T) {
	stubBuildInfo(t, &debug.BuildInfo{
		Deps: []*debug.Module{
			{Path: ModulePath, Version: "v0.3.1", Replace: &debug.Module{Path: "../billplz", Version: ""}},
		},
	})
	if got := Get(); got != "v0.3.1" {
		t.Errorf("expected original version when replacement has none, got %q", got)
	}
}

func TestGet_MainModule(t *testing.T) {
	stubBuildInfo(t, &debug.BuildInfo{Main: debug.Module{Path: ModulePath, Version: "v1.0.0"}})
	if got := Get(); got != "v1.0.0" {
		t.Errorf("expected main module version, got %q", got)
	}
}

func TestGet_Dev(t *testing.T) {
	stubBuildInfo(t, nil)
	if got := Get(); got != "dev" {
		t.Errorf("expected dev, got %q", got)
	}
}

func TestUserAgent(t *testing.T) {
	stubBuildInfo(t, nil)
	ua := UserAgent()
	if !strings.HasPrefix(ua, "billplz-go/dev") {
		t.Errorf("unexpected user agent %q", ua)
	}
	if !strings.Contains(ua, runtime.Version()) {
		t.Errorf("user agent should include go version, got %q", ua)
	}
}

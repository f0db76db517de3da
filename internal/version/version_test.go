package version

import (
	"runtime/debug"
	"testing"
)

func TestFromBuildInfoKeepsLinkerValues(t *testing.T) {
	info := Info{Version: "v1.2.0", Commit: "abc"}
	fromBuildInfo(&info, &debug.BuildInfo{
		Main: debug.Module{Version: "v0.0.1"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "def"},
			{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
		},
	})
	if info.Version != "v1.2.0" || info.Commit != "abc" {
		t.Fatalf("linker values overwritten: %+v", info)
	}
	if info.BuildTime != "2026-01-02T03:04:05Z" {
		t.Fatalf("build time: got %q", info.BuildTime)
	}
}

func TestFromBuildInfoIgnoresDevel(t *testing.T) {
	var info Info
	fromBuildInfo(&info, &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}})
	if info.Version != "" {
		t.Fatalf("version: got %q want empty", info.Version)
	}
}

func TestShortCommit(t *testing.T) {
	if got := shortCommit("0123456789abcdef"); got != "0123456789ab" {
		t.Fatalf("got %q", got)
	}
	if got := shortCommit("abc"); got != "abc" {
		t.Fatalf("got %q", got)
	}
}

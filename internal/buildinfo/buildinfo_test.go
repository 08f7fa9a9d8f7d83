package buildinfo

import (
	"bytes"
	"runtime/debug"
	"testing"

	"github.com/stretchr/testify/assert"
)

func stubBuildInfo(t *testing.T, bi *debug.BuildInfo, ok bool) {
	t.Helper()
	orig := readBuildInfo
	readBuildInfo = func() (*debug.BuildInfo, bool) { return bi, ok }
	t.Cleanup(func() { readBuildInfo = orig })
}

func TestPrintBuildData_Defaults(t *testing.T) {
	stubBuildInfo(t, nil, false)

	var buf bytes.Buffer
	PrintBuildData(&buf)
	assert.Equal(t, "Build version: N/A\nBuild date: N/A\nBuild commit: N/A\n", buf.String())
}

func TestGet_LinkerFlagsWin(t *testing.T) {
	stubBuildInfo(t, &debug.BuildInfo{
		Main:     debug.Module{Version: "v9.9.9"},
		Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "deadbeef"}},
	}, true)

	orig := buildVersion
	buildVersion = "v1.2.3"
	t.Cleanup(func() { buildVersion = orig })

	info := Get()
	assert.Equal(t, "v1.2.3", info.Version)
	assert.Equal(t, "deadbeef", info.Commit)
	assert.Equal(t, "N/A", info.Date)
}

func TestGet_DevelVersionIgnored(t *testing.T) {
	stubBuildInfo(t, &debug.BuildInfo{
		Main:     debug.Module{Version: "(devel)"},
		Settings: []debug.BuildSetting{{Key: "vcs.time", Value: "2024-01-02T03:04:05Z"}},
	}, true)

	info := Get()
	assert.Equal(t, "N/A", info.Version)
	assert.Equal(t, "2024-01-02T03:04:05Z", info.Date)
}

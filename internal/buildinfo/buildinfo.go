// Package buildinfo reports version data stamped at link time, e.g.
//
//	go build -ldflags "-X github.com/dmitrijs2005/promptkeeper/internal/buildinfo.buildVersion=v1.0.0"
package buildinfo

import (
	"fmt"
	"io"
	"runtime/debug"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

// readBuildInfo is a test seam for debug.ReadBuildInfo.
var readBuildInfo = debug.ReadBuildInfo

// Info is the resolved build data. Missing values are "N/A".
type Info struct {
	Version string
	Date    string
	Commit  string
}

// Get resolves build data, falling back to VCS settings embedded by the Go
// toolchain when the linker flags were not set.
func Get() Info {
	info := Info{Version: buildVersion, Date: buildDate, Commit: buildCommit}

	if bi, ok := readBuildInfo(); ok {
		if info.Version == "" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
			info.Version = bi.Main.Version
		}
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				if info.Commit == "" {
					info.Commit = s.Value
				}
			case "vcs.time":
				if info.Date == "" {
					info.Date = s.Value
				}
			}
		}
	}

	for _, v := range []*string{&info.Version, &info.Date, &info.Commit} {
		if *v == "" {
			*v = "N/A"
		}
	}
	return info
}

// PrintBuildData writes the build data to w, one field per line.
func PrintBuildData(w io.Writer) {
	info := Get()
	fmt.Fprintf(w, "Build version: %s\n", info.Version)
	fmt.Fprintf(w, "Build date: %s\n", info.Date)
	fmt.Fprintf(w, "Build commit: %s\n", info.Commit)
}

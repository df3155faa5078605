// Package version identifies the harmonicon build.
package version

import "runtime/debug"

// Version is stamped by the release build:
//
//	go build -ldflags "-X github.com/harmonicon/harmonicon/version.Version=v1.2.0" ./cmd/harmonicon
var Version string

// VersionOrHash is printed by harmonicon -v. Without a stamped Version it
// falls back to the VCS revision recorded by the go tool, then to "devel".
var VersionOrHash = describe(Version, readBuildInfo())

func readBuildInfo() map[string]string {
	settings := map[string]string{}
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return settings
	}
	for _, s := range info.Settings {
		settings[s.Key] = s.Value
	}
	return settings
}

func describe(version string, settings map[string]string) string {
	if version != "" {
		return version
	}
	rev := settings["vcs.revision"]
	if rev == "" {
		return "devel"
	}
	if len(rev) > 12 {
		rev = rev[:12]
	}
	if settings["vcs.modified"] == "true" {
		rev += "+dirty"
	}
	return rev
}

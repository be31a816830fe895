package version

import (
	"fmt"
	"runtime/debug"
	"strings"
	"time"
)

var (
	// These variables are set at build time using -ldflags
	Version = "dev"
	Commit  = ""
	Date    = ""
)

// Info represents version information.
type Info struct {
	Version   string    `json:"version"`
	Commit    string    `json:"commit"`
	Date      string    `json:"date"`
	GoVersion string    `json:"go_version"`
	BuildDate time.Time `json:"build_date"`
	IsRelease bool      `json:"is_release"`
	IsDirty   bool      `json:"is_dirty"`
}

// Get returns version information from the -ldflags variables, filling
// gaps from the binary's embedded build info.
func Get() *Info {
	info := &Info{
		Version:   Version,
		Commit:    Commit,
		Date:      Date,
		IsRelease: Version != "dev" && !strings.Contains(Version, "dirty"),
	}

	if Date != "" {
		if t, err := time.Parse(time.RFC3339, Date); err == nil {
			info.BuildDate = t
		}
	}

	if buildInfo, ok := debug.ReadBuildInfo(); ok {
		info.GoVersion = buildInfo.GoVersion
		for _, setting := range buildInfo.Settings {
			switch setting.Key {
			case "vcs.revision":
				if Commit == "" {
					info.Commit = setting.Value
					if len(info.Commit) > 7 {
						info.Commit = info.Commit[:7]
					}
				}
			case "vcs.modified":
				info.IsDirty = setting.Value == "true"
			case "vcs.time":
				if Date == "" {
					if t, err := time.Parse(time.RFC3339, setting.Value); err == nil {
						info.BuildDate = t
						info.Date = setting.Value
					}
				}
			}
		}
	}

	return info
}

// Short returns a compact version string, e.g. "1.2.0-abc1234".
func Short() string {
	info := Get()
	if info.Commit == "" {
		return info.Version
	}
	if info.IsDirty {
		return fmt.Sprintf("%s-%s-dirty", info.Version, info.Commit)
	}
	return fmt.Sprintf("%s-%s", info.Version, info.Commit)
}

// Full returns a detailed version string including build date and Go
// toolchain version when known.
func Full() string {
	info := Get()
	parts := []string{info.Version}
	if info.Commit != "" {
		parts = append(parts, info.Commit)
	}
	if info.IsDirty {
		parts = append(parts, "dirty")
	}
	out := strings.Join(parts, "-")
	if !info.BuildDate.IsZero() {
		out += fmt.Sprintf(" (built %s)", info.BuildDate.UTC().Format("2006-01-02T15:04:05Z"))
	}
	if info.GoVersion != "" {
		out += " " + info.GoVersion
	}
	return out
}

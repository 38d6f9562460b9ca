package version

import (
	"fmt"

	"github.com/aatumaykin/crondir/internal/constants"
)

var (
	Version   = constants.DefaultVersion
	BuildTime = constants.DefaultBuildTime
	GitCommit = constants.DefaultGitCommit
	GoVersion = constants.DefaultGoVersion
)

func SetInfo(v, bt, gc, gv string) {
	if v != "" {
		Version = v
	}
	if bt != "" {
		BuildTime = bt
	}
	if gc != "" {
		GitCommit = gc
	}
	if gv != "" {
		GoVersion = gv
	}
}

// Format returns the multi-line text printed by `crondir version`.
func Format() string {
	return fmt.Sprintf("crondir - merge cron snippets into your crontab\nVersion: %s\nBuild Time: %s\nGit Commit: %s\nGo Version: %s\n",
		Version, BuildTime, GitCommit, GoVersion)
}

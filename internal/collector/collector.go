package collector

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"runtime"
	"time"

	charmlog "github.com/charmbracelet/log"
	"github.com/user/mysql-charts-go/internal/models"
	"github.com/user/mysql-charts-go/pkg/gitutil"
)

// Version is the tool version recorded in every report. Set by build flags.
var Version = "0.1.0-go"

// MetadataCollector gathers run metadata: who generated the charts, where,
// and from which revision of the working tree.
type MetadataCollector struct {
	// RepoPath is searched for an enclosing git repository. Empty skips provenance.
	RepoPath string
	Logger   *charmlog.Logger
}

// NewMetadataCollector resolves repoPath to an absolute path.
func NewMetadataCollector(repoPath string, logger *charmlog.Logger) (*MetadataCollector, error) {
	mc := &MetadataCollector{Logger: logger}
	if repoPath == "" {
		return mc, nil
	}
	abs, err := filepath.Abs(repoPath)
	if err != nil {
		return nil, fmt.Errorf("failed to get absolute path for repo: %w", err)
	}
	mc.RepoPath = abs
	return mc, nil
}

// Collect returns metadata stamped with now. Missing user, host or
// repository information is logged and left blank; it never fails a run.
func (mc *MetadataCollector) Collect(now time.Time) models.RunMetadata {
	userName := "unknown"
	if currentUser, err := user.Current(); err == nil {
		userName = currentUser.Username
	} else {
		mc.debug("could not determine current user", "err", err)
	}

	hostname, err := os.Hostname()
	if err != nil {
		mc.debug("could not determine hostname", "err", err)
		hostname = "unknown"
	}

	meta := models.RunMetadata{
		GeneratedAt: now,
		Version:     Version,
		User:        userName,
		Hostname:    hostname,
		Platform:    fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
		GoVersion:   runtime.Version(),
	}

	if mc.RepoPath != "" {
		repo, err := gitutil.Describe(mc.RepoPath)
		if err != nil {
			mc.debug("no git provenance", "path", mc.RepoPath, "err", err)
		} else {
			meta.Repo = repo
		}
	}
	return meta
}

func (mc *MetadataCollector) debug(msg string, keyvals ...interface{}) {
	if mc.Logger != nil {
		mc.Logger.Debug(msg, keyvals...)
	}
}

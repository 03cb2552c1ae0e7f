package paths

import (
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/cockroachdb/errors"
)

// AppName is the directory name used under the XDG base directories.
const AppName = "ci"

// Well-known file and directory names.
const (
	// ProjectConfigFile is the per-project configuration file.
	ProjectConfigFile = ".ci-config.json"

	// BrainConfigFile is the file in the home directory holding the BRAIN path.
	BrainConfigFile = ".ci_brain_config"

	// BrainDirName is the knowledge directory expected inside a registered path.
	BrainDirName = "BRAIN"

	// AgentsDirName holds one subdirectory per agent in the CI repository.
	AgentsDirName = "AGENTS"

	// AgentsIndexFile is the markdown catalog of all agents.
	AgentsIndexFile = "AGENTS.md"

	// ManagerAgent is the agent directory that hosts the full catalog.
	ManagerAgent = "Manager"

	// RepoMarker must exist at the root of a CI repository.
	RepoMarker = "CLAUDE.md"

	// RepoDirName is the conventional checkout name of the CI repository.
	RepoDirName = "CollaborativeIntelligence"
)

// Sentinel errors for path resolution.
var (
	// ErrHomeDirNotFound indicates the user's home directory could not be determined.
	ErrHomeDirNotFound = errors.New("home directory not found")

	// ErrInvalidPath indicates the provided path is malformed or invalid.
	ErrInvalidPath = errors.New("invalid path")
)

// DefaultDirPerm is the default permission for newly created directories (private).
const DefaultDirPerm = 0o700

// EnsureDir creates the directory and any necessary parents with specified permissions.
// If perm is 0, DefaultDirPerm (0700) is used. Existing directories are left alone.
func EnsureDir(path string, perm os.FileMode) error {
	if path == "" {
		return ErrInvalidPath
	}
	if perm == 0 {
		perm = DefaultDirPerm
	}
	return os.MkdirAll(path, perm)
}

// Home returns the user's home directory, or "" when it cannot be determined.
// Use ResolveHome for proper error handling.
func Home() string {
	h, _ := ResolveHome()
	return h
}

// ResolveHome returns the user's home directory.
// Returns ErrHomeDirNotFound if the directory cannot be determined.
func ResolveHome() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return "", errors.Wrap(ErrHomeDirNotFound, "resolving home")
	}
	return home, nil
}

// ConfigHome returns the XDG config home directory.
func ConfigHome() string {
	return xdg.ConfigHome
}

// DataHome returns the XDG data home directory.
func DataHome() string {
	return xdg.DataHome
}

// StateHome returns the XDG state home directory.
func StateHome() string {
	return xdg.StateHome
}

// CacheHome returns the XDG cache home directory.
func CacheHome() string {
	return xdg.CacheHome
}

// BinHome returns the XDG user binary directory, ~/.local/bin by default.
func BinHome() string {
	return xdg.BinHome
}

// AppConfigDir returns <ConfigHome>/ci.
func AppConfigDir() string {
	return filepath.Join(ConfigHome(), AppName)
}

// AppDataDir returns <DataHome>/ci.
func AppDataDir() string {
	return filepath.Join(DataHome(), AppName)
}

// CurrentAgentFile records the agent chosen with "ci agent switch".
// Returns: <StateHome>/ci/current_agent
func CurrentAgentFile() string {
	return filepath.Join(StateHome(), AppName, "current_agent")
}

// DefaultIdeasFile is used when the working directory is outside a git repository.
// Returns: <DataHome>/ci/ideas.json
func DefaultIdeasFile() string {
	return filepath.Join(AppDataDir(), "ideas.json")
}

// DocsCacheDir holds documentation rendered by "ci docs serve --temp".
// Returns: <CacheHome>/ci/docs
func DocsCacheDir() string {
	return filepath.Join(CacheHome(), AppName, "docs")
}

// BrainConfigPath returns ~/.ci_brain_config, or "" without a home directory.
func BrainConfigPath() string {
	home := Home()
	if home == "" {
		return ""
	}
	return filepath.Join(home, BrainConfigFile)
}

// CandidateRepoPaths lists where a CI repository is looked for, in order,
// when neither a flag, CI_PATH nor the config names one.
func CandidateRepoPaths(home string) []string {
	if home == "" {
		return []string{filepath.Join("/usr/local/share", RepoDirName)}
	}
	return []string{
		filepath.Join(home, "Documents", "Projects", RepoDirName),
		filepath.Join(home, "Projects", RepoDirName),
		filepath.Join(home, RepoDirName),
		filepath.Join("/usr/local/share", RepoDirName),
	}
}

// IsRepo reports whether dir looks like a CI repository.
func IsRepo(dir string) bool {
	info, err := os.Stat(filepath.Join(dir, RepoMarker))
	return err == nil && !info.IsDir()
}

// Exists reports whether path exists.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// IsDir reports whether path exists and is a directory.
func IsDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

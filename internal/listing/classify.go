package listing

import (
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/thoreinstein/ci/internal/ui"
)

// Kind is a file category. Lower values are listed first.
type Kind int

// Kinds in display order.
const (
	KindDirectory Kind = iota
	KindSource
	KindConfig
	KindBuild
	KindDocumentation
	KindGit
	KindBinary
	KindArchive
	KindMedia
	KindBackup
	KindOther
)

type kindInfo struct {
	name  string
	icon  string
	color lipgloss.Color
	rule  string
}

var kinds = map[Kind]kindInfo{
	KindDirectory:     {"Directories", "📁", ui.Blue, "━"},
	KindSource:        {"Source Code", "📝", ui.Green, "─"},
	KindConfig:        {"Configuration", "⚙️", ui.Cyan, "┄"},
	KindBuild:         {"Build Files", "🔧", ui.Yellow, "─"},
	KindDocumentation: {"Documentation", "📚", ui.Cyan, "┈"},
	KindGit:           {"Git Files", "🌿", ui.Magenta, "─"},
	KindBinary:        {"Binaries", "⚡", ui.Red, "─"},
	KindArchive:       {"Archives", "📦", ui.Yellow, "─"},
	KindMedia:         {"Media Files", "🎨", ui.Purple, "─"},
	KindBackup:        {"Backup Files", "💾", ui.Dim, "─"},
	KindOther:         {"Other Files", "📄", ui.White, "─"},
}

// Name returns the group title.
func (k Kind) Name() string { return kinds[k].name }

// Icon returns the group icon.
func (k Kind) Icon() string { return kinds[k].icon }

// Color returns the group color.
func (k Kind) Color() lipgloss.Color { return kinds[k].color }

func set(items ...string) map[string]bool {
	m := make(map[string]bool, len(items))
	for _, s := range items {
		m[s] = true
	}
	return m
}

var (
	backupExts = set("bak", "backup", "old", "tmp", "orig", "swp")
	sourceExts = set("rs", "js", "ts", "jsx", "tsx", "py", "java", "cpp", "c", "h", "hpp",
		"cs", "php", "rb", "go", "swift", "kt", "scala", "clj", "hs", "ml",
		"elm", "dart", "vue", "svelte", "sol", "zig", "nim")
	buildNames = set("makefile", "cargo.toml", "package.json", "go.mod", "go.sum", "pom.xml",
		"build.gradle", "cmakelists.txt", "build.sh", "build.py", "gulpfile.js",
		"webpack.config.js", "rollup.config.js", "justfile", "taskfile.yml", "goreleaser.yml", ".goreleaser.yml")
	configExts  = set("json", "toml", "yaml", "yml", "ini", "conf", "config", "xml", "env", "properties")
	configNames = set("dockerfile", ".env", ".envrc", "config", "settings")
	docExts     = set("md", "txt", "rst", "adoc", "org", "tex", "pdf", "doc", "docx")
	docNames    = set("readme", "changelog", "license", "authors", "contributors")
	binaryExts  = set("exe", "bin", "so", "dll", "dylib", "a", "lib", "deb", "rpm", "msi", "pkg")
	mediaExts   = set("png", "jpg", "jpeg", "gif", "svg", "bmp", "ico", "webp",
		"mp4", "avi", "mov", "mkv", "webm", "mp3", "wav", "flac", "ogg", "m4a")
	archiveExts = set("zip", "tar", "gz", "bz2", "xz", "7z", "rar", "dmg", "iso")
)

func ext(name string) string {
	return strings.ToLower(strings.TrimPrefix(filepath.Ext(name), "."))
}

// Classify assigns a Kind from the entry name. Build files are recognized
// before configuration so package.json and Cargo.toml group as build files.
func Classify(name string, isDir bool) Kind {
	if isDir {
		return KindDirectory
	}
	lower := strings.ToLower(name)
	e := ext(lower)

	switch {
	case strings.HasPrefix(lower, ".git"):
		return KindGit
	case backupExts[e]:
		return KindBackup
	case sourceExts[e]:
		return KindSource
	case buildNames[lower] || strings.Contains(lower, "build") || strings.Contains(lower, "make"):
		return KindBuild
	case configExts[e] || configNames[lower]:
		return KindConfig
	case docExts[e] || docNames[lower]:
		return KindDocumentation
	case binaryExts[e]:
		return KindBinary
	case mediaExts[e]:
		return KindMedia
	case archiveExts[e]:
		return KindArchive
	}
	return KindOther
}

// family groups files of a large group by extension.
func family(name string) string {
	switch ext(name) {
	case "go":
		return "Go"
	case "rs":
		return "Rust"
	case "js", "ts", "jsx", "tsx":
		return "JavaScript/TypeScript"
	case "py":
		return "Python"
	case "json", "toml", "yaml", "yml", "ini":
		return "Config"
	case "md", "txt", "rst":
		return "Documentation"
	case "png", "jpg", "jpeg", "gif", "svg":
		return "Images"
	case "zip", "tar", "gz", "7z":
		return "Archives"
	case "":
		return "No Extension"
	default:
		return "Other"
	}
}

var familyOrder = map[string]int{
	"Go": 1, "Rust": 2, "JavaScript/TypeScript": 3, "Python": 4, "Config": 5,
	"Documentation": 6, "Images": 7, "Archives": 8, "No Extension": 9, "Other": 10,
}

// prefix returns the icon shown before a file name.
func prefix(name string) string {
	switch ext(name) {
	case "go":
		return "🐹 "
	case "rs":
		return "🦀 "
	case "js", "ts":
		return "📜 "
	case "py":
		return "🐍 "
	case "json", "toml", "yaml", "yml":
		return "⚙️ "
	case "md", "txt":
		return "📄 "
	case "gitignore":
		return "🌿 "
	case "png", "jpg", "jpeg", "gif":
		return "🖼️ "
	case "zip", "tar", "gz":
		return "📦 "
	default:
		return "📋 "
	}
}

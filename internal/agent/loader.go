package agent

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/thoreinstein/ci/internal/errors"
	"github.com/thoreinstein/ci/internal/paths"
	"github.com/thoreinstein/ci/pkg/fileutil"
)

// Environment variables exported to processes launched with an agent.
const (
	EnvContext     = "CI_AGENT_CONTEXT"
	EnvToolkitPath = "CI_AGENT_TOOLKIT_PATH"
	EnvName        = "CI_AGENT_NAME"
	EnvContextType = "CI_AGENT_CONTEXT_TYPE"
)

// SourceKind tells where an agent's memory came from.
type SourceKind string

// Memory sources in lookup order.
const (
	SourceDirect SourceKind = "direct"
	SourceMemory SourceKind = "memory"
	SourceIndex  SourceKind = "index"
)

// NotFoundError reports an agent missing from every source.
type NotFoundError struct {
	Name      string
	Available []string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("agent %q not found", e.Name)
}

// Unwrap makes errors.Is(err, errors.ErrNotFound) hold.
func (e *NotFoundError) Unwrap() error { return errors.ErrNotFound }

// Source is a resolved memory source.
type Source struct {
	Kind SourceKind
	Path string
}

// LoadOptions tune Loader.Load.
type LoadOptions struct {
	// Context describes the task the agent is loaded for.
	Context string

	// OutputPath overrides the working file location.
	OutputPath string
}

// Loaded is the result of preparing an agent for a session.
type Loaded struct {
	Name        string
	Source      Source
	ToolkitPath string
	SessionPath string
	WorkingPath string
	Content     string
	Metadata    *Metadata

	// CreatedToolkit is true when the toolkit directory did not exist yet.
	CreatedToolkit bool

	// Env holds KEY=VALUE pairs for child processes.
	Env []string
}

// Loader prepares agent memory from a CI repository.
type Loader struct {
	Repo paths.Repo

	// Now and Getwd are replaceable in tests.
	Now   func() time.Time
	Getwd func() (string, error)
}

// NewLoader returns a Loader for the repository rooted at root.
func NewLoader(root string) *Loader {
	return &Loader{Repo: paths.NewRepo(root), Now: time.Now, Getwd: os.Getwd}
}

// Resolve finds the memory source for name: AGENTS/<n>/<n>.md, then
// AGENTS/<n>/<n>_memory.md, then the AGENTS.md index.
func (l *Loader) Resolve(name string) (Source, error) {
	dir := l.Repo.AgentDir(name)
	candidates := []Source{
		{Kind: SourceDirect, Path: filepath.Join(dir, name+".md")},
		{Kind: SourceMemory, Path: filepath.Join(dir, name+"_memory.md")},
	}
	for _, c := range candidates {
		if paths.Exists(c.Path) {
			return c, nil
		}
	}

	index := l.Repo.AgentsIndex()
	if !paths.Exists(index) {
		return Source{}, errors.WithDetailf(
			&NotFoundError{Name: name},
			"neither agent files in %s nor %s exist", dir, index)
	}
	catalog, err := LoadCatalog(index)
	if err != nil {
		return Source{}, err
	}
	if !catalog.Exists(name) {
		return Source{}, &NotFoundError{Name: name, Available: catalog.List()}
	}
	return Source{Kind: SourceIndex, Path: index}, nil
}

// Load resolves name and prepares its session: toolkit directory, metadata,
// session record and the working memory file.
func (l *Loader) Load(name string, opts LoadOptions) (*Loaded, error) {
	src, err := l.Resolve(name)
	if err != nil {
		return nil, err
	}
	now := l.Now()

	res := &Loaded{Name: name, Source: src, ToolkitPath: l.Repo.AgentDir(name)}
	if !paths.IsDir(res.ToolkitPath) {
		if err := paths.EnsureDir(res.ToolkitPath, 0o755); err != nil {
			return nil, errors.Wrap(err, "creating agent toolkit directory")
		}
		res.CreatedToolkit = true
	}

	memory, memoryPath, err := l.readMemory(name, src, res.ToolkitPath)
	if err != nil {
		return nil, err
	}

	metaPath := filepath.Join(res.ToolkitPath, MetadataFile)
	md, ok := LoadMetadata(metaPath)
	if !ok {
		md = NewMetadata(name, res.ToolkitPath, memoryPath, memory, now)
	}
	md.Touch(now)
	if err := md.Save(metaPath); err != nil {
		return nil, err
	}
	res.Metadata = md

	res.Env = []string{
		EnvContext + "=true",
		EnvToolkitPath + "=" + res.ToolkitPath,
		EnvName + "=" + name,
	}
	if opts.Context != "" {
		res.Env = append(res.Env, EnvContextType+"="+opts.Context)
	}

	if learning, err := fileutil.ReadString(filepath.Join(res.ToolkitPath, LearningFile)); err == nil {
		memory += "\n\n# Continuous Learning\n\n" + learning
	}

	res.SessionPath, _, err = StartSession(res.ToolkitPath, name, opts.Context, now)
	if err != nil {
		return nil, err
	}

	wd, err := l.Getwd()
	if err != nil {
		wd = "<unknown>"
	}
	memory += "\n\n" + ContextBlock(name, opts.Context, md, wd, now)
	res.Content = memory

	res.WorkingPath = opts.OutputPath
	if res.WorkingPath == "" {
		res.WorkingPath = filepath.Join(res.ToolkitPath, fmt.Sprintf("working_%d.md", now.Unix()))
	}
	if err := fileutil.AtomicWriteFile(res.WorkingPath, []byte(memory), fileutil.DefaultFilePerm); err != nil {
		return nil, errors.Wrap(err, "writing working memory file")
	}
	return res, nil
}

// readMemory returns the memory text for src and the file it is kept in.
// Index extractions are cached as <n>_memory.md in the toolkit directory.
func (l *Loader) readMemory(name string, src Source, toolkit string) (string, string, error) {
	if src.Kind != SourceIndex {
		content, err := fileutil.ReadString(src.Path)
		if err != nil {
			return "", "", errors.Wrapf(err, "reading agent memory %s", src.Path)
		}
		return content, src.Path, nil
	}

	catalog, err := LoadCatalog(src.Path)
	if err != nil {
		return "", "", err
	}
	memory := catalog.Extract(name, toolkit)
	cache := filepath.Join(toolkit, name+"_memory.md")
	if err := fileutil.AtomicWriteFile(cache, []byte(memory), fileutil.DefaultFilePerm); err != nil {
		return "", "", errors.Wrap(err, "caching agent memory")
	}
	return memory, cache, nil
}

// ContextBlock renders the "# Agent Context Information" section appended to
// a loaded agent's memory.
func ContextBlock(name, context string, md *Metadata, workdir string, at time.Time) string {
	var b strings.Builder
	b.WriteString("# Agent Context Information\n\n")
	fmt.Fprintf(&b, "## Agent: %s\n\n", name)
	fmt.Fprintf(&b, "Role: %s\n\n", md.Description)

	if len(md.Capabilities) > 0 {
		b.WriteString("### Capabilities\n\n")
		for _, c := range md.Capabilities {
			fmt.Fprintf(&b, "- %s\n", c)
		}
		b.WriteString("\n")
	}

	b.WriteString("### Session Information\n\n")
	fmt.Fprintf(&b, "- Started: %s\n", at.UTC().Format(time.RFC3339))
	if context != "" {
		fmt.Fprintf(&b, "- Context: %s\n", context)
	}
	fmt.Fprintf(&b, "- Previous sessions: %d\n", md.UsageCount)
	if md.LastUsed != nil {
		fmt.Fprintf(&b, "- Last used: %s\n", *md.LastUsed)
	}
	b.WriteString("\n")

	b.WriteString("### Environment\n\n")
	fmt.Fprintf(&b, "- Toolkit path: %s\n", md.ToolkitPath)
	fmt.Fprintf(&b, "- Working directory: %s\n", workdir)

	b.WriteString("\n### Usage Instructions\n\n")
	b.WriteString("This agent has its own toolkit directory and capabilities.\n")
	b.WriteString("When working with this agent, refer to its specific role and capabilities.\n")
	b.WriteString("The agent will prioritize its own resources before checking parent repositories.\n")
	return b.String()
}

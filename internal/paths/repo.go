package paths

import "path/filepath"

// Repo describes the layout of a CI repository checkout.
type Repo struct {
	Root string
}

// NewRepo returns the layout rooted at root.
func NewRepo(root string) Repo {
	return Repo{Root: root}
}

// AgentsDir returns <root>/AGENTS.
func (r Repo) AgentsDir() string {
	return filepath.Join(r.Root, AgentsDirName)
}

// AgentsIndex returns <root>/AGENTS.md.
func (r Repo) AgentsIndex() string {
	return filepath.Join(r.Root, AgentsIndexFile)
}

// AgentsFull returns the manager's full catalog, <root>/AGENTS/Manager/AGENTS_FULL.md.
func (r Repo) AgentsFull() string {
	return filepath.Join(r.AgentsDir(), ManagerAgent, "AGENTS_FULL.md")
}

// AgentDir returns <root>/AGENTS/<name>.
func (r Repo) AgentDir(name string) string {
	return filepath.Join(r.AgentsDir(), name)
}

// DocsDir returns <root>/docs/cli.
func (r Repo) DocsDir() string {
	return filepath.Join(r.Root, "docs", "cli")
}

// WebDir returns <root>/web.
func (r Repo) WebDir() string {
	return filepath.Join(r.Root, "web")
}

// Package paths resolves the directories and files the ci CLI reads and
// writes.
//
// Per-user state follows the XDG Base Directory layout through
// github.com/adrg/xdg:
//
//	| Purpose          | Location                          |
//	|------------------|-----------------------------------|
//	| app config       | <ConfigHome>/ci/config.yaml       |
//	| ideas (no repo)  | <DataHome>/ci/ideas.json          |
//	| current agent    | <StateHome>/ci/current_agent      |
//	| rendered docs    | <CacheHome>/ci/docs/              |
//
// The BRAIN registration lives in ~/.ci_brain_config for compatibility with
// existing installs.
//
// [Repo] describes the layout of a CollaborativeIntelligence checkout:
//
//	repo := paths.NewRepo(root)
//	repo.AgentsIndex()  // <root>/AGENTS.md
//	repo.AgentDir("Athena")
package paths

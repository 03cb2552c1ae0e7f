package visualize

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/ci/internal/agent"
	"github.com/thoreinstein/ci/internal/git"
	"github.com/thoreinstein/ci/internal/project"
)

// Item is one line of a section. Value, when positive, is drawn as a bar.
type Item struct {
	Icon     string `json:"icon,omitempty"`
	Label    string `json:"label"`
	Detail   string `json:"detail,omitempty"`
	Value    int    `json:"value,omitempty"`
	Children []Item `json:"children,omitempty"`
}

// Section is a titled group of items.
type Section struct {
	Title string `json:"title"`
	Items []Item `json:"items"`
}

// Diagram is a renderer-independent view.
type Diagram struct {
	View     View      `json:"view"`
	Title    string    `json:"title"`
	Sections []Section `json:"sections"`
}

// MaxValue returns the largest item value, at least 1.
func (d *Diagram) MaxValue() int {
	n := 1
	for _, s := range d.Sections {
		for _, it := range s.Items {
			n = max(n, it.Value)
		}
	}
	return n
}

// Sources are the inputs diagrams are drawn from.
type Sources struct {
	Root       *cobra.Command
	Agents     []string
	ProjectDir string
}

// Options narrow a view.
type Options struct {
	Group    string
	Category string
	Tree     bool
	Beginner bool
	Detailed bool
	Name     string
}

// Build draws view from src.
func Build(view View, src Sources, opts Options) (*Diagram, error) {
	switch view {
	case ViewOverview:
		return overview(src), nil
	case ViewCommands:
		return commands(src.Root, opts)
	case ViewAgents:
		return agents(src.Agents, opts)
	case ViewWorkflows:
		return workflows(src.Root, opts), nil
	case ViewProject:
		return projectView(src.ProjectDir, opts), nil
	}
	return nil, invalid("view", string(view), "overview, commands, agents, workflows, project")
}

func visible(c *cobra.Command) bool {
	return !c.Hidden && c.IsAvailableCommand() && c.Name() != "help" && c.Name() != "completion"
}

func subcommands(c *cobra.Command) []*cobra.Command {
	var out []*cobra.Command
	for _, sub := range c.Commands() {
		if visible(sub) {
			out = append(out, sub)
		}
	}
	return out
}

func commandItem(c *cobra.Command, depth int) Item {
	it := Item{Label: c.Name(), Detail: c.Short}
	subs := subcommands(c)
	if len(subs) > 0 {
		it.Value = len(subs)
	}
	if depth > 0 {
		for _, sub := range subs {
			it.Children = append(it.Children, commandItem(sub, depth-1))
		}
	}
	return it
}

func countCommands(c *cobra.Command) int {
	n := 0
	for _, sub := range subcommands(c) {
		n += 1 + countCommands(sub)
	}
	return n
}

func commands(root *cobra.Command, opts Options) (*Diagram, error) {
	d := &Diagram{View: ViewCommands, Title: "CI Commands Overview"}
	tops := subcommands(root)
	if opts.Group != "" {
		var match *cobra.Command
		for _, c := range tops {
			if strings.EqualFold(c.Name(), opts.Group) {
				match = c
			}
		}
		if match == nil {
			return nil, invalid("command group", opts.Group, groupNames(tops))
		}
		tops = []*cobra.Command{match}
		d.Title = "CI Commands - " + match.Name() + " Group"
	}

	depth := 0
	if opts.Tree || opts.Group != "" {
		depth = 8
	}
	var standalone, groups []Item
	for _, c := range tops {
		it := commandItem(c, depth)
		if it.Value > 0 {
			groups = append(groups, it)
		} else {
			standalone = append(standalone, it)
		}
	}
	if len(groups) > 0 {
		d.Sections = append(d.Sections, Section{Title: "Command Groups", Items: groups})
	}
	if len(standalone) > 0 {
		d.Sections = append(d.Sections, Section{Title: "Commands", Items: standalone})
	}
	return d, nil
}

func groupNames(cmds []*cobra.Command) string {
	names := make([]string, 0, len(cmds))
	for _, c := range cmds {
		names = append(names, c.Name())
	}
	return strings.Join(names, ", ")
}

var categoryIcons = map[string]string{
	"Architecture":  "🏗",
	"Testing":       "🧪",
	"Analysis":      "🔍",
	"Documentation": "📚",
	"Operations":    "⚙",
	"Visualization": "👁",
	"Development":   "💻",
}

func categoryItems(names []string, withChildren bool) []Item {
	groups := agent.Group(names)
	var items []Item
	for _, c := range agent.Categories() {
		members := groups[c]
		if len(members) == 0 {
			continue
		}
		it := Item{Icon: categoryIcons[c], Label: c, Value: len(members), Detail: fmt.Sprintf("%d agents", len(members))}
		if withChildren {
			for _, m := range members {
				it.Children = append(it.Children, Item{Label: m})
			}
		}
		items = append(items, it)
	}
	return items
}

func agents(names []string, opts Options) (*Diagram, error) {
	d := &Diagram{View: ViewAgents, Title: "CI Agents Ecosystem"}
	sorted := append([]string(nil), names...)
	sort.Strings(sorted)

	if opts.Category != "" {
		var members []string
		for _, n := range sorted {
			if strings.EqualFold(agent.Category(n), opts.Category) {
				members = append(members, n)
			}
		}
		if len(members) == 0 && !validCategory(opts.Category) {
			return nil, invalid("agent category", opts.Category, strings.Join(agent.Categories(), ", "))
		}
		d.Title = "CI Agents - " + opts.Category + " Category"
		items := make([]Item, 0, len(members))
		for _, m := range members {
			items = append(items, Item{Label: m})
		}
		d.Sections = []Section{{Title: "Agents", Items: items}}
		return d, nil
	}

	d.Sections = []Section{
		{Title: "Summary", Items: []Item{{Icon: "📊", Label: "Total Agents", Detail: fmt.Sprint(len(sorted))}}},
		{Title: "Agent Categories", Items: categoryItems(sorted, true)},
	}
	return d, nil
}

func validCategory(name string) bool {
	for _, c := range agent.Categories() {
		if strings.EqualFold(c, name) {
			return true
		}
	}
	return false
}

type recipe struct {
	name     string
	category string
	beginner bool
	steps    [][2]string
}

var recipes = []recipe{
	{"Getting Started", "Intelligence", true, [][2]string{
		{"init", "ci init <project>"}, {"agents", "ci agents"}, {"load", "ci load Athena"},
	}},
	{"Basic Development", "Development", true, [][2]string{
		{"status", "ci status"}, {"ls", "ci ls"}, {"commit", "ci commit"},
	}},
	{"Agent Exploration", "Intelligence", true, [][2]string{
		{"visualize", "ci visualize agents"}, {"agent", "ci agent info <agent>"}, {"load", "ci load <agent>"},
	}},
	{"Integrate a Project", "Development", false, [][2]string{
		{"integrate", "ci integrate --integration override"}, {"load", "ci load <agent>"}, {"session", "ci session list --agent <agent>"},
	}},
	{"Idea Capture", "Workflow", false, [][2]string{
		{"idea", "ci idea add <title>"}, {"idea", "ci idea list --status new"}, {"idea", "ci idea update <id> --status exploring"},
	}},
	{"Knowledge Base", "Intelligence", false, [][2]string{
		{"brain", "ci brain register <path>"}, {"brain", "ci brain health"}, {"load", "ci load <agent>"},
	}},
	{"Ship a Change", "Source Control", false, [][2]string{
		{"ignore", "ci ignore"}, {"commit", "ci commit"}, {"deploy", "ci deploy"},
	}},
	{"Publish Documentation", "Documentation", false, [][2]string{
		{"docs", "ci docs generate -o site"}, {"docs", "ci docs serve --open"}, {"docs", "ci docs deploy github-pages"},
	}},
	{"Health Check", "Development", false, [][2]string{
		{"verify", "ci verify"}, {"brain", "ci brain test"}, {"config", "ci config validate"},
	}},
}

func workflows(root *cobra.Command, opts Options) *Diagram {
	d := &Diagram{View: ViewWorkflows, Title: "CI Workflows Overview"}
	switch {
	case opts.Beginner:
		d.Title = "CI Workflows - Beginner Friendly"
	case opts.Category != "":
		d.Title = "CI Workflows - " + opts.Category + " Category"
	}

	available := map[string]bool{}
	if root != nil {
		for _, c := range subcommands(root) {
			available[c.Name()] = true
		}
	}

	sections := map[string]*Section{}
	var order []string
	for _, r := range recipes {
		if opts.Beginner && !r.beginner {
			continue
		}
		if opts.Category != "" && !strings.EqualFold(r.category, opts.Category) {
			continue
		}
		it := Item{Icon: "📋", Label: r.name}
		for _, step := range r.steps {
			if available[step[0]] {
				it.Children = append(it.Children, Item{Label: step[1]})
			}
		}
		if len(it.Children) == 0 {
			continue
		}
		s, ok := sections[r.category]
		if !ok {
			s = &Section{Title: r.category}
			sections[r.category] = s
			order = append(order, r.category)
		}
		s.Items = append(s.Items, it)
	}
	for _, name := range order {
		d.Sections = append(d.Sections, *sections[name])
	}
	return d
}

func projectView(dir string, opts Options) *Diagram {
	d := &Diagram{View: ViewProject}
	info := Section{Title: "Project Overview"}
	name := opts.Name

	path, cfg, err := project.FindNearest(dir)
	if err == nil {
		if name == "" {
			name = cfg.ProjectName
		}
		info.Items = append(info.Items,
			Item{Icon: "🔗", Label: "CI Integration", Detail: "active (" + path + ")"},
			Item{Icon: "🏷", Label: "CI Version", Detail: cfg.CIVersion},
		)
	} else {
		info.Items = append(info.Items, Item{Icon: "🔗", Label: "CI Integration", Detail: "not configured"})
	}
	if name == "" {
		name = "Current Project"
	}
	d.Title = "Project Analysis - " + name
	info.Items = append([]Item{{Icon: "📛", Label: "Project Name", Detail: name}, {Icon: "📍", Label: "Location", Detail: dir}}, info.Items...)
	d.Sections = append(d.Sections, info)

	if cfg != nil {
		s := Section{Title: "Agents"}
		for _, a := range cfg.ActiveAgents {
			s.Items = append(s.Items, Item{Label: a, Detail: cfg.AgentStatus(a)})
		}
		for _, a := range cfg.DisabledAgents() {
			if !cfg.HasAgent(a) {
				s.Items = append(s.Items, Item{Label: a, Detail: "disabled"})
			}
		}
		d.Sections = append(d.Sections, s)
	}

	status, err := git.Inspect(dir)
	if err != nil {
		d.Sections = append(d.Sections, Section{Title: "Repository", Items: []Item{{Icon: "📁", Label: "Git", Detail: "not a git repository"}}})
		return d
	}
	state := "clean"
	if !status.Clean {
		state = fmt.Sprintf("%d uncommitted changes", len(status.Changes))
	}
	repo := Section{Title: "Repository", Items: []Item{
		{Icon: "🌿", Label: "Branch", Detail: status.Branch},
		{Icon: "📝", Label: "Commits", Detail: fmt.Sprint(status.Commits)},
		{Icon: "🧹", Label: "Working Tree", Detail: state},
	}}
	if status.Origin != "" {
		repo.Items = append(repo.Items, Item{Icon: "🌐", Label: "Origin", Detail: status.Origin})
	}
	d.Sections = append(d.Sections, repo)

	if opts.Detailed && len(status.Changes) > 0 {
		s := Section{Title: "Changes"}
		for _, c := range status.Changes {
			s.Items = append(s.Items, Item{Label: c.Path, Detail: strings.TrimSpace(c.Staging + c.Worktree)})
		}
		d.Sections = append(d.Sections, s)
	}
	return d
}

func overview(src Sources) *Diagram {
	d := &Diagram{View: ViewOverview, Title: "CI Ecosystem Architecture"}

	if src.Root != nil {
		cmds, _ := commands(src.Root, Options{})
		total := Item{Icon: "⚡", Label: "Commands", Detail: fmt.Sprintf("%d commands in %d top-level entries", countCommands(src.Root), len(subcommands(src.Root)))}
		d.Sections = append(d.Sections, Section{Title: "Core Components", Items: []Item{
			total,
			{Icon: "🧠", Label: "Agents", Detail: fmt.Sprintf("%d agents", len(src.Agents))},
		}})
		d.Sections = append(d.Sections, cmds.Sections...)
	}
	if len(src.Agents) > 0 {
		d.Sections = append(d.Sections, Section{Title: "Agent Ecosystem", Items: categoryItems(src.Agents, false)})
	}
	if src.ProjectDir != "" {
		if _, cfg, err := project.FindNearest(src.ProjectDir); err == nil {
			d.Sections = append(d.Sections, Section{Title: "Project", Items: []Item{
				{Icon: "📦", Label: cfg.ProjectName, Detail: fmt.Sprintf("%d active agents", len(cfg.ActiveAgents))},
			}})
		}
	}
	return d
}

// Package docs renders the ci documentation site from the command tree and
// the agent catalog, serves it locally and publishes it.
package docs

import (
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/thoreinstein/ci/internal/agent"
)

// Flag documents one command flag.
type Flag struct {
	Name      string `json:"name"`
	Shorthand string `json:"shorthand,omitempty"`
	Usage     string `json:"usage"`
	Default   string `json:"default,omitempty"`
	Type      string `json:"type"`
}

// Command documents one runnable command.
type Command struct {
	Path     string   `json:"path"`
	Use      string   `json:"use"`
	Short    string   `json:"short"`
	Long     string   `json:"long,omitempty"`
	Example  string   `json:"example,omitempty"`
	Aliases  []string `json:"aliases,omitempty"`
	Flags    []Flag   `json:"flags,omitempty"`
	Children int      `json:"children"`
}

// Group is a top-level command and everything below it.
type Group struct {
	Name     string    `json:"name"`
	Short    string    `json:"short"`
	Commands []Command `json:"commands"`
}

// Agent is one entry of the agent gallery.
type Agent struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category,omitempty"`
}

// Site is the data every page is rendered from.
type Site struct {
	Title     string    `json:"title"`
	Version   string    `json:"version"`
	Generated time.Time `json:"generated"`
	Theme     string    `json:"theme"`
	Groups    []Group   `json:"groups"`
	Agents    []Agent   `json:"agents"`

	// App page sections.
	Interactive bool `json:"interactive"`
	Examples    bool `json:"examples"`
	Visualizer  bool `json:"visualizer"`

	// AgentsPage links the agents gallery from the navigation.
	AgentsPage bool `json:"-"`
	// App renders the single-page app, which has no navigation.
	App bool `json:"-"`
}

// CommandCount returns the number of documented commands.
func (s *Site) CommandCount() int {
	n := 0
	for _, g := range s.Groups {
		n += len(g.Commands)
	}
	return n
}

func visible(c *cobra.Command) bool {
	return !c.Hidden && c.IsAvailableCommand() && c.Name() != "help" && c.Name() != "completion"
}

// Groups walks the command tree below root. Each visible top-level command
// becomes a group holding itself and its visible descendants.
func Groups(root *cobra.Command) []Group {
	var groups []Group
	for _, top := range root.Commands() {
		if !visible(top) {
			continue
		}
		g := Group{Name: top.Name(), Short: top.Short}
		collect(top, &g.Commands)
		groups = append(groups, g)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Name < groups[j].Name })
	return groups
}

func collect(c *cobra.Command, out *[]Command) {
	*out = append(*out, describe(c))
	for _, sub := range c.Commands() {
		if visible(sub) {
			collect(sub, out)
		}
	}
}

func describe(c *cobra.Command) Command {
	cmd := Command{
		Path:    c.CommandPath(),
		Use:     c.UseLine(),
		Short:   c.Short,
		Long:    strings.TrimSpace(c.Long),
		Example: strings.TrimRight(c.Example, "\n"),
		Aliases: c.Aliases,
	}
	for _, sub := range c.Commands() {
		if visible(sub) {
			cmd.Children++
		}
	}
	c.NonInheritedFlags().VisitAll(func(f *pflag.Flag) {
		if f.Hidden || f.Name == "help" {
			return
		}
		cmd.Flags = append(cmd.Flags, Flag{
			Name:      f.Name,
			Shorthand: f.Shorthand,
			Usage:     f.Usage,
			Default:   f.DefValue,
			Type:      f.Value.Type(),
		})
	})
	return cmd
}

// AgentsFrom converts agents index entries for the gallery.
func AgentsFrom(entries []agent.Entry) []Agent {
	out := make([]Agent, 0, len(entries))
	for _, e := range entries {
		out = append(out, Agent{Name: e.Name, Description: e.Description, Category: agent.Category(e.Name)})
	}
	return out
}

package agent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCategory(t *testing.T) {
	tests := []struct {
		name string
		want string
	}{
		{"ProjectArchitect", "Architecture"},
		{"TestingAgent", "Testing"},
		{"DataAnalyst", "Analysis"},
		{"Scribe", "Documentation"},
		{"DeploymentManager", "Operations"},
		{"Visualist", "Visualization"},
		{"Developer", "Development"},
		{"Builder", "Development"},
		{"Athena", GeneralCategory},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Category(tt.name))
		})
	}
}

func TestGroup(t *testing.T) {
	groups := Group([]string{"Athena", "Developer", "Debugger", "Tester"})
	assert.Equal(t, map[string][]string{
		GeneralCategory: {"Athena"},
		"Development":   {"Developer", "Debugger"},
		"Testing":       {"Tester"},
	}, groups)
	assert.Equal(t, GeneralCategory, Categories()[len(Categories())-1])
}

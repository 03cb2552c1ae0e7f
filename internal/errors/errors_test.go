package errors

import (
	"bytes"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExitError_Error(t *testing.T) {
	tests := []struct {
		name string
		err  *ExitError
		want string
	}{
		{
			name: "with underlying error",
			err:  NewExitError(ErrNotFound, ExitUser),
			want: "resource not found",
		},
		{
			name: "with wrapped error",
			err:  NewExitError(fmt.Errorf("loading config: %w", ErrInvalidConfig), ExitUser),
			want: "loading config: invalid configuration",
		},
		{
			name: "with cockroach wrap",
			err:  NewExitError(Wrap(ErrNotRegistered, "reading brain config"), ExitUser),
			want: "reading brain config: brain not registered",
		},
		{
			name: "nil underlying error",
			err:  NewExitError(nil, ExitUser),
			want: "exit code 1",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.want {
				t.Errorf("ExitError.Error() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestExitError_Unwrap(t *testing.T) {
	tests := []struct {
		name       string
		err        *ExitError
		wantTarget error
		wantIs     bool
	}{
		{
			name:       "unwrap to sentinel error",
			err:        NewExitError(ErrNotFound, ExitUser),
			wantTarget: ErrNotFound,
			wantIs:     true,
		},
		{
			name:       "unwrap through wrapped error",
			err:        NewExitError(Wrapf(ErrMissingName, "agent %q", "x"), ExitUser),
			wantTarget: ErrMissingName,
			wantIs:     true,
		},
		{
			name:       "no match for different sentinel",
			err:        NewExitError(ErrNotFound, ExitUser),
			wantTarget: ErrInvalidConfig,
			wantIs:     false,
		},
		{
			name:       "nil underlying error",
			err:        NewExitError(nil, ExitUser),
			wantTarget: ErrNotFound,
			wantIs:     false,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Is(tt.err, tt.wantTarget); got != tt.wantIs {
				t.Errorf("Is() = %v, want %v", got, tt.wantIs)
			}
		})
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, ExitSuccess},
		{"plain error", New("boom"), ExitUser},
		{"user error", NewUserError(ErrNotFound, ""), ExitUser},
		{"system error", NewSystemError(New("io"), ""), ExitSystem},
		{"wrapped system error", Wrap(NewToolError("gh", "https://cli.github.com/"), "listing"), ExitSystem},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExitCode(tt.err))
		})
	}
}

func TestSuggestionOf(t *testing.T) {
	assert.Equal(t, "", SuggestionOf(New("plain")))
	assert.Equal(t, "Run: ci verify", SuggestionOf(NewConfigError(ErrInvalidConfig)))
	assert.Equal(t, "set CI_PATH", SuggestionOf(Wrap(NewUserError(ErrNotFound, "set CI_PATH"), "resolving")))
}

func TestNewToolError(t *testing.T) {
	err := NewToolError("gh", "Install from https://cli.github.com/")
	assert.True(t, Is(err, ErrToolNotFound))
	assert.Equal(t, ExitSystem, err.Code)
	assert.Contains(t, err.Error(), "gh is not installed")
}

func TestSentinelErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantMsg string
	}{
		{"ErrMissingName", ErrMissingName, "name is required"},
		{"ErrNotFound", ErrNotFound, "resource not found"},
		{"ErrAlreadyExists", ErrAlreadyExists, "resource already exists"},
		{"ErrInvalidConfig", ErrInvalidConfig, "invalid configuration"},
		{"ErrToolNotFound", ErrToolNotFound, "required tool not found"},
		{"ErrNotRegistered", ErrNotRegistered, "brain not registered"},
		{"ErrNotGitRepo", ErrNotGitRepo, "not a git repository"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.err.Error(); got != tt.wantMsg {
				t.Errorf("%s.Error() = %q, want %q", tt.name, got, tt.wantMsg)
			}
		})
	}
}

func TestExitCodeConstants(t *testing.T) {
	assert.Equal(t, 0, ExitSuccess)
	assert.Equal(t, 1, ExitUser)
	assert.Equal(t, 2, ExitSystem)
}

func TestPrint(t *testing.T) {
	var buf bytes.Buffer
	err := WithDetailf(Wrap(ErrNotFound, "agent Nobody"), "searched: %s", "/ci/AGENTS")
	Print(&buf, NewUserError(WithDetailf(err, "index: AGENTS.md"), "Run: ci agents"))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "Error: agent Nobody: resource not found\n"))
	assert.Contains(t, out, "  searched: /ci/AGENTS\n")
	assert.Contains(t, out, "  index: AGENTS.md\n")
	assert.True(t, strings.HasSuffix(out, "  Run: ci agents\n"))
	assert.NotContains(t, out, "--")

	buf.Reset()
	Print(&buf, New("plain"))
	assert.Equal(t, "Error: plain\n", buf.String())
}

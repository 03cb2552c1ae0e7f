package brain

import (
	"fmt"
	"os"

	"github.com/thoreinstein/ci/internal/doctor"
	"github.com/thoreinstein/ci/internal/paths"
)

// CategoryBrain groups BRAIN checks.
const CategoryBrain = "brain"

// healthSample caps the files read by the readability check.
const healthSample = 3

func result(ok bool, pass, fail string) *doctor.CheckResult {
	if ok {
		return &doctor.CheckResult{Status: doctor.SeverityPass, Message: pass}
	}
	return &doctor.CheckResult{Status: doctor.SeverityError, Message: fail}
}

// HealthChecks verify that root is usable as a BRAIN.
func HealthChecks(root string) []doctor.Check {
	dir := Dir(root)
	return []doctor.Check{
		doctor.NewFunc("brain-path", CategoryBrain, func() *doctor.CheckResult {
			return result(paths.Exists(root),
				"BRAIN path accessible: "+root,
				"BRAIN path not accessible: "+root)
		}),
		doctor.NewFunc("brain-dir", CategoryBrain, func() *doctor.CheckResult {
			return result(paths.IsDir(dir),
				"BRAIN directory found: "+dir,
				"BRAIN directory missing: "+dir)
		}),
		doctor.NewFunc("brain-files", CategoryBrain, func() *doctor.CheckResult {
			n := CountMarkdown(dir)
			return result(n > 0,
				fmt.Sprintf("BRAIN files found: %d markdown files", n),
				"No BRAIN files found in directory")
		}),
		doctor.NewFunc("brain-readable", CategoryBrain, func() *doctor.CheckResult {
			n := readableFiles(dir, healthSample)
			return result(n > 0,
				fmt.Sprintf("BRAIN files readable: %d files tested", n),
				"BRAIN files not readable")
		}),
	}
}

// Env reads and writes environment variables.
type Env struct {
	Getenv   func(string) string
	Setenv   func(string, string) error
	Unsetenv func(string) error
}

// OSEnv is the process environment.
var OSEnv = Env{Getenv: os.Getenv, Setenv: os.Setenv, Unsetenv: os.Unsetenv}

// FunctionalChecks are the four checks run by "ci brain test".
func FunctionalChecks(root string, env Env) []doctor.Check {
	dir := Dir(root)
	return []doctor.Check{
		doctor.NewFunc("path-accessibility", CategoryBrain, func() *doctor.CheckResult {
			return result(paths.Exists(root), "Path accessibility", "Path accessibility")
		}),
		doctor.NewFunc("brain-directory", CategoryBrain, func() *doctor.CheckResult {
			return result(paths.IsDir(dir), "BRAIN directory exists", "BRAIN directory exists")
		}),
		doctor.NewFunc("files-readable", CategoryBrain, func() *doctor.CheckResult {
			return result(readableFiles(dir, 1) > 0, "Files are readable", "Files are readable")
		}),
		doctor.NewFunc("environment", CategoryBrain, func() *doctor.CheckResult {
			const want = "test_value"
			ok := env.Setenv(EnvTest, want) == nil && env.Getenv(EnvTest) == want
			if ok {
				_ = env.Unsetenv(EnvTest)
			}
			return result(ok, "Environment variables work", "Environment variables work")
		}),
	}
}

// RegistrationCheck reports whether a BRAIN is registered and healthy
// enough to use. An unregistered BRAIN is a warning.
func RegistrationCheck(r *Registry) doctor.Check {
	return doctor.NewFunc("brain-registration", CategoryBrain, func() *doctor.CheckResult {
		root, err := r.Path()
		if err != nil {
			return &doctor.CheckResult{
				Status:  doctor.SeverityWarning,
				Message: "BRAIN not registered",
				FixHint: "Run: ci brain register <path>",
			}
		}
		n := CountMarkdown(Dir(root))
		if n == 0 {
			return &doctor.CheckResult{
				Status:  doctor.SeverityError,
				Message: "registered BRAIN has no markdown files: " + root,
				FixHint: "Run: ci brain health",
			}
		}
		return &doctor.CheckResult{
			Status:  doctor.SeverityPass,
			Message: fmt.Sprintf("BRAIN registered at %s (%d files)", root, n),
			Details: map[string]any{"path": root, "files": n},
		}
	})
}

// Status is the state shown by "ci brain status".
type Status struct {
	Registered bool   `json:"registered"`
	Path       string `json:"path,omitempty"`
	Dir        string `json:"dir,omitempty"`
	ConfigFile string `json:"config_file"`
	Accessible bool   `json:"accessible"`
	Files      int    `json:"files"`
	EnvPath    string `json:"env_path,omitempty"`
	EnvAvail   string `json:"env_available,omitempty"`
}

// CurrentStatus gathers the registration state.
func CurrentStatus(r *Registry, env Env) *Status {
	s := &Status{ConfigFile: r.ConfigPath}
	root, err := r.Path()
	if err != nil {
		return s
	}
	s.Registered = true
	s.Path = root
	s.Dir = Dir(root)
	s.Accessible = paths.IsDir(s.Dir)
	if s.Accessible {
		s.Files = CountMarkdown(s.Dir)
	}
	s.EnvPath = env.Getenv(EnvPath)
	s.EnvAvail = env.Getenv(EnvAvailable)
	return s
}

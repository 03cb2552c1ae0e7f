package doctor

import "time"

// Check is the interface that diagnostic checks must implement.
type Check interface {
	// Name returns the unique identifier for this check.
	Name() string

	// Category returns the grouping for this check.
	Category() string

	// Run executes the diagnostic check and returns its result.
	Run() *CheckResult
}

// Func adapts a function to the Check interface.
type Func struct {
	CheckName     string
	CheckCategory string
	Fn            func() *CheckResult
}

var _ Check = Func{}

// NewFunc returns a Check that calls fn.
func NewFunc(name, category string, fn func() *CheckResult) Func {
	return Func{CheckName: name, CheckCategory: category, Fn: fn}
}

// Name implements Check.
func (f Func) Name() string { return f.CheckName }

// Category implements Check.
func (f Func) Category() string { return f.CheckCategory }

// Run implements Check. Name and category are filled in when fn leaves them
// empty.
func (f Func) Run() *CheckResult {
	r := f.Fn()
	if r == nil {
		r = &CheckResult{Status: SeverityError, Message: "check returned no result"}
	}
	if r.Name == "" {
		r.Name = f.CheckName
	}
	if r.Category == "" {
		r.Category = f.CheckCategory
	}
	return r
}

// Runner executes diagnostic checks and aggregates their results.
type Runner struct {
	checks []Check
	now    func() time.Time
}

// NewRunner creates a new diagnostic runner.
func NewRunner() *Runner {
	return &Runner{
		checks: make([]Check, 0),
		now:    time.Now,
	}
}

// AddCheck registers a diagnostic check with the runner.
func (r *Runner) AddCheck(c ...Check) {
	r.checks = append(r.checks, c...)
}

// Run executes all registered checks in order and returns a report.
func (r *Runner) Run() *Report {
	report := &Report{
		Timestamp: r.now().UTC(),
		Results:   make([]*CheckResult, 0, len(r.checks)),
	}

	for _, check := range r.checks {
		result := check.Run()
		report.Results = append(report.Results, result)

		switch result.Status {
		case SeverityPass:
			report.Summary.Passed++
		case SeverityInfo:
			report.Summary.Info++
		case SeverityWarning:
			report.Summary.Warnings++
		case SeverityError:
			report.Summary.Errors++
		}
	}

	return report
}

// Report aggregates all check results with timing and summary.
type Report struct {
	// Timestamp is when the diagnostic run started.
	Timestamp time.Time `json:"timestamp"`

	// Results contains the outcome of each check.
	Results []*CheckResult `json:"results"`

	// Summary contains counts by severity level.
	Summary Summary `json:"summary"`
}

// HasErrors returns true if any check has SeverityError.
func (r *Report) HasErrors() bool {
	return r.Summary.Errors > 0
}

// HasWarnings returns true if any check has SeverityWarning.
func (r *Report) HasWarnings() bool {
	return r.Summary.Warnings > 0
}

// PassRate returns the share of passing or informational results in percent.
func (r *Report) PassRate() float64 {
	total := r.Summary.Total()
	if total == 0 {
		return 100
	}
	return float64(r.Summary.Passed+r.Summary.Info) / float64(total) * 100
}

// Package validator collects validation issues and reports them.
//
// A [Result] gathers [Issue] values of different [Severity] for one source,
// usually a file. [Reporter] prints a result as colored text or JSON.
//
//	result := validator.NewResult(path)
//	if cfg.ProjectName == "" {
//		result.AddError("project_name", "is required", nil)
//	}
//	_ = validator.NewReporter(os.Stdout, validator.FormatText).Report(result)
package validator

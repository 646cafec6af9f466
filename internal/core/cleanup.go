package core

import (
	"fmt"

	"phd/internal/cli/output"
)

// CleanupStep is one best-effort removal step and its outcome.
type CleanupStep struct {
	Name string
	Err  error
}

// CleanupReport collects the outcomes of best-effort deletion steps so they
// can be reported together at the end instead of being swallowed one by one.
type CleanupReport struct {
	steps []CleanupStep
}

// Record stores the outcome of a step.
func (r *CleanupReport) Record(name string, err error) {
	r.steps = append(r.steps, CleanupStep{Name: name, Err: err})
}

// Failures returns the steps that did not complete.
func (r *CleanupReport) Failures() []CleanupStep {
	var failed []CleanupStep
	for _, step := range r.steps {
		if step.Err != nil {
			failed = append(failed, step)
		}
	}
	return failed
}

// Print summarizes the report on the terminal.
func (r *CleanupReport) Print() {
	failures := r.Failures()
	if len(failures) == 0 {
		output.PrintSuccess(fmt.Sprintf("Completed %d cleanup %s", len(r.steps), output.Plural(len(r.steps), "step", "steps")))
		return
	}

	output.PrintWarning(fmt.Sprintf("%d of %d cleanup %s did not complete:", len(failures), len(r.steps), output.Plural(len(r.steps), "step", "steps")))
	for _, step := range failures {
		output.PrintStep(fmt.Sprintf("%s: %v", step.Name, step.Err))
	}
}

package core

import (
	"fmt"
	"strings"

	"phd/internal/cli/progress"
	"phd/internal/core/domain"
	"phd/internal/ports"
)

const defaultWorkflowTimeoutSeconds = 300

// WorkflowWaiter tracks workflow-engine jobs with kubectl.
type WorkflowWaiter struct {
	commandRunner ports.CommandRunner

	// TimeoutSeconds bounds a single Wait call.
	TimeoutSeconds int
}

func ProvideWorkflowWaiter(commandRunner ports.CommandRunner) *WorkflowWaiter {
	return &WorkflowWaiter{
		commandRunner:  commandRunner,
		TimeoutSeconds: defaultWorkflowTimeoutSeconds,
	}
}

// Wait blocks until the workflow completes and reports whether it
// succeeded. Timeouts and kubectl failures count as not succeeded; callers
// aggregate results instead of aborting on the first slow workflow.
func (w *WorkflowWaiter) Wait(namespace, name string) bool {
	_, err := w.commandRunner.Run(
		"kubectl", "wait", "--for=condition=Completed",
		"workflow/"+name, "-n", namespace,
		fmt.Sprintf("--timeout=%ds", w.TimeoutSeconds),
	)
	if err != nil {
		return false
	}

	out, err := w.commandRunner.Run(
		"kubectl", "get", "workflow/"+name, "-n", namespace,
		"-o", "jsonpath={.status.phase}",
	)
	if err != nil {
		return false
	}

	return domain.WorkflowPhase(strings.TrimSpace(string(out))) == domain.WorkflowSucceeded
}

// WaitAll waits for each workflow in order with a progress tracker and
// reports whether every one of them succeeded.
func (w *WorkflowWaiter) WaitAll(namespace string, names []string, verb string) bool {
	tracker := progress.NewTracker(names, verb)
	tracker.Start()
	defer tracker.Stop()

	allSucceeded := true
	for i, name := range names {
		tracker.StartItem(i)
		if w.Wait(namespace, name) {
			tracker.CompleteItem(i, nil)
		} else {
			tracker.CompleteItem(i, domain.NewClusterError(nil, "workflow %s did not succeed", name))
			allSucceeded = false
		}
	}
	return allSucceeded
}

// Delete removes a workflow, ignoring failures so cleanup passes stay
// best-effort.
func (w *WorkflowWaiter) Delete(namespace, name string) {
	_, _ = w.commandRunner.Run("kubectl", "delete", "workflow", name, "-n", namespace)
}

// PrintSnapshot shows the current workflows in a namespace on the user's
// terminal for inspection after a provisioning round.
func (w *WorkflowWaiter) PrintSnapshot(namespace string) {
	out, err := w.commandRunner.Run("kubectl", "get", "workflows", "-n", namespace)
	if err == nil {
		fmt.Print(string(out))
	}
}

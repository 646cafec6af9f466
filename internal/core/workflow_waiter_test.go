package core

import (
	"errors"
	"testing"

	"phd/internal/testutil"

	"github.com/stretchr/testify/assert"
)

func TestWorkflowWaiter_WaitSucceeded(t *testing.T) {
	commandRunner := new(testutil.MockCommandRunner)
	commandRunner.On("Run", "kubectl", []string{
		"wait", "--for=condition=Completed", "workflow/mysql-provision-demo", "-n", "argo", "--timeout=300s",
	}).Return([]byte(""), nil)
	commandRunner.On("Run", "kubectl", []string{
		"get", "workflow/mysql-provision-demo", "-n", "argo", "-o", "jsonpath={.status.phase}",
	}).Return([]byte("Succeeded"), nil)
	sut := ProvideWorkflowWaiter(commandRunner)

	assert.True(t, sut.Wait("argo", "mysql-provision-demo"))
	commandRunner.AssertExpectations(t)
}

func TestWorkflowWaiter_WaitFailedPhase(t *testing.T) {
	commandRunner := new(testutil.MockCommandRunner)
	commandRunner.On("Run", "kubectl", []string{
		"wait", "--for=condition=Completed", "workflow/mysql-provision-demo", "-n", "argo", "--timeout=300s",
	}).Return([]byte(""), nil)
	commandRunner.On("Run", "kubectl", []string{
		"get", "workflow/mysql-provision-demo", "-n", "argo", "-o", "jsonpath={.status.phase}",
	}).Return([]byte("Failed"), nil)
	sut := ProvideWorkflowWaiter(commandRunner)

	assert.False(t, sut.Wait("argo", "mysql-provision-demo"))
}

func TestWorkflowWaiter_WaitTimeoutCountsAsFailure(t *testing.T) {
	commandRunner := new(testutil.MockCommandRunner)
	commandRunner.On("Run", "kubectl", []string{
		"wait", "--for=condition=Completed", "workflow/storage-provision-demo", "-n", "argo", "--timeout=10s",
	}).Return([]byte("timed out"), errors.New("exit status 1"))
	sut := ProvideWorkflowWaiter(commandRunner)
	sut.TimeoutSeconds = 10

	assert.False(t, sut.Wait("argo", "storage-provision-demo"))
	commandRunner.AssertNumberOfCalls(t, "Run", 1)
}

func TestWorkflowWaiter_DeleteIgnoresFailures(t *testing.T) {
	commandRunner := new(testutil.MockCommandRunner)
	commandRunner.On("Run", "kubectl", []string{
		"delete", "workflow", "mysql-provision-demo", "-n", "argo",
	}).Return([]byte("not found"), errors.New("exit status 1"))
	sut := ProvideWorkflowWaiter(commandRunner)

	sut.Delete("argo", "mysql-provision-demo")

	commandRunner.AssertExpectations(t)
}

func TestWorkflowWaiter_WaitAllAggregatesFailures(t *testing.T) {
	commandRunner := new(testutil.MockCommandRunner)
	commandRunner.On("Run", "kubectl", []string{
		"wait", "--for=condition=Completed", "workflow/a", "-n", "argo", "--timeout=300s",
	}).Return([]byte(""), nil)
	commandRunner.On("Run", "kubectl", []string{
		"get", "workflow/a", "-n", "argo", "-o", "jsonpath={.status.phase}",
	}).Return([]byte("Succeeded"), nil)
	commandRunner.On("Run", "kubectl", []string{
		"wait", "--for=condition=Completed", "workflow/b", "-n", "argo", "--timeout=300s",
	}).Return([]byte(""), errors.New("exit status 1"))
	sut := ProvideWorkflowWaiter(commandRunner)

	assert.False(t, sut.WaitAll("argo", []string{"a", "b"}, "Provisioning"))
	commandRunner.AssertExpectations(t)
}

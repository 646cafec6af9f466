package domain

// WorkflowPhase is the status.phase of a workflow-engine job resource.
type WorkflowPhase string

// WorkflowSucceeded is the only phase that counts as a successful run;
// completion alone is not enough, since failed workflows complete too.
const WorkflowSucceeded WorkflowPhase = "Succeeded"

package workflow

import "github.com/graphflow-ai/graphflow/agent"

// SuccessorSpec declares a follow-up task whose input is the recorded
// output of an earlier task. Specs may nest, forming arbitrarily deep
// chains; siblings run in listed order.
type SuccessorSpec struct {
	// ID identifies the successor's result; generated when empty.
	ID string `json:"id,omitempty"`
	// Type is the task type dispatched to the resolved agent.
	Type string `json:"type"`
	// DataSource names a previously completed task id whose output
	// becomes this task's data. Forward and self references are invalid.
	DataSource string `json:"data_source"`
	// AgentType is the resolver key for the executing agent.
	AgentType string `json:"agent_type"`
	// NextTasks are this successor's own successors.
	NextTasks []SuccessorSpec `json:"next_tasks,omitempty"`
}

// ConditionalTask pairs a root task with its successor specs.
type ConditionalTask struct {
	Task      *agent.Task     `json:"task"`
	NextTasks []SuccessorSpec `json:"next_tasks,omitempty"`
}

// TaskResult is one entry of a workflow's ordered result sequence.
type TaskResult struct {
	TaskID string `json:"task_id"`
	Output any    `json:"output"`
}

// Copyright (c) GraphFlow Authors.
// Licensed under the MIT License.

/*
Package workflow executes ordered, conditionally branching task sequences.

The Orchestrator walks a list of root tasks, resolves each to an agent
through a Resolver, dispatches it, and then expands the task's successor
specs depth-first: every successor receives the recorded output of the task
named by its DataSource as its input payload. Execution is strictly
sequential and the first failure aborts the whole run.
*/
package workflow

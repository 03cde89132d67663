// Package batch implements the task-orchestration pipeline: decomposing
// uploaded files into an ordered task list, dispatching tasks against the
// vision service under a concurrency cap, and collecting exactly one result
// per task in input order.
package batch

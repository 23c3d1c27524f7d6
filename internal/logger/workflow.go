package logger

import (
	"go.temporal.io/sdk/workflow"
	"go.uber.org/zap"
)

// FromWorkflow returns the global logger annotated with the workflow execution
func FromWorkflow(ctx workflow.Context) *zap.Logger {
	info := workflow.GetInfo(ctx)
	if info == nil {
		return log
	}

	return log.With(
		zap.String("workflow_type", info.WorkflowType.Name),
		zap.String("workflow_id", info.WorkflowExecution.ID),
		zap.String("run_id", info.WorkflowExecution.RunID),
		zap.String("task_queue", info.TaskQueueName),
	)
}

// InfoWf logs an info message with workflow context
func InfoWf(ctx workflow.Context, msg string, fields ...zap.Field) {
	if workflow.IsReplaying(ctx) {
		return
	}
	FromWorkflow(ctx).Info(msg, fields...)
}

// ErrorWf logs an error with workflow context
func ErrorWf(ctx workflow.Context, err error, fields ...zap.Field) {
	if workflow.IsReplaying(ctx) {
		return
	}
	FromWorkflow(ctx).Error(errorMessage(err), fields...)
}

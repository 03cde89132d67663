package domain

// ResultStatus indicates whether a task produced usable metadata.
type ResultStatus string

// Possible result status values
const (
	ResultStatusOK     ResultStatus = "ok"
	ResultStatusFailed ResultStatus = "failed"
)

// FailureCode classifies why a task failed. The classification is part of the
// export contract: failed rows carry the code and message instead of metadata.
type FailureCode string

// Task-level failure classifications
const (
	// FailureTransport covers network-level problems reaching the vision
	// service (timeouts, connection resets).
	FailureTransport FailureCode = "transport_error"

	// FailureService covers non-success responses from the vision service,
	// including rate-limit and quota rejections.
	FailureService FailureCode = "service_error"

	// FailureParse covers responses that do not match the expected
	// two-line name/tags contract.
	FailureParse FailureCode = "parse_error"
)

// TaskResult is the outcome of exactly one Task. Every task settles with
// exactly one result, whether it succeeded or failed; a batch is complete
// only when the result count equals the task count.
type TaskResult struct {
	// Index is the sequence index of the task this result belongs to.
	Index int

	// DisplayName is carried over from the task for export.
	DisplayName string

	Status ResultStatus

	// EnglishName and ArabicName are the bilingual asset name fields
	// extracted from the service response. Empty on failure.
	EnglishName string
	ArabicName  string

	// Tags is the parsed tag list. Empty on failure.
	Tags []string

	// FailureCode and FailureMessage describe the failure when Status is
	// ResultStatusFailed; both are empty on success.
	FailureCode    FailureCode
	FailureMessage string

	// RawText is the unparsed service response, retained for parse
	// failures so malformed output stays visible.
	RawText string
}

// NewSuccessResult builds an ok result for the given task.
func NewSuccessResult(task Task, english, arabic string, tags []string, raw string) TaskResult {
	return TaskResult{
		Index:       task.Index,
		DisplayName: task.DisplayName,
		Status:      ResultStatusOK,
		EnglishName: english,
		ArabicName:  arabic,
		Tags:        tags,
		RawText:     raw,
	}
}

// NewFailedResult builds a failed result for the given task with the
// supplied classification and message.
func NewFailedResult(task Task, code FailureCode, message string) TaskResult {
	return TaskResult{
		Index:          task.Index,
		DisplayName:    task.DisplayName,
		Status:         ResultStatusFailed,
		FailureCode:    code,
		FailureMessage: message,
	}
}

// Failed reports whether the result carries a failure classification.
func (r TaskResult) Failed() bool {
	return r.Status == ResultStatusFailed
}

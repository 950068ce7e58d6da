// Package messages defines Bubbletea message types for the study console.
// Messages represent events and commands that flow through the Elm architecture.
package messages

// Task identifies a slash command run against the session.
type Task int

const (
	// TaskSummary produces the corpus summary.
	TaskSummary Task = iota
	// TaskSections detects sections.
	TaskSections
	// TaskAnalysis analyses one section.
	TaskAnalysis
	// TaskConcepts produces the key concepts table.
	TaskConcepts
	// TaskReset drops every source.
	TaskReset
	// TaskHelp lists the commands.
	TaskHelp
	// TaskSources lists the loaded sources.
	TaskSources
)

// String returns the string representation of the task.
func (t Task) String() string {
	switch t {
	case TaskSummary:
		return "summary"
	case TaskSections:
		return "sections"
	case TaskAnalysis:
		return "analyse"
	case TaskConcepts:
		return "concepts"
	case TaskReset:
		return "reset"
	case TaskHelp:
		return "help"
	case TaskSources:
		return "sources"
	default:
		return "unknown"
	}
}

// Remote reports whether the task calls the language model.
func (t Task) Remote() bool {
	switch t {
	case TaskSummary, TaskSections, TaskAnalysis, TaskConcepts:
		return true
	default:
		return false
	}
}

// QuestionAsked is sent when the user submits a chat question.
type QuestionAsked struct {
	Question string
}

// AnswerReceived carries the reply to a chat question.
type AnswerReceived struct {
	Question string
	Answer   string
	Err      error
}

// TaskRequested is sent when the user submits a slash command.
type TaskRequested struct {
	Task Task
	Arg  int
}

// TaskCompleted carries the Markdown produced by a slash command.
type TaskCompleted struct {
	Task     Task
	Title    string
	Markdown string
	Err      error
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}

package tui

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/custodia-labs/studydeck/internal/adapters/driving/tui/messages"
)

const helpText = `Commands:
  /summary       summarise all sources
  /sections      detect sections
  /analyse N     analyse section N
  /concepts      key concepts table
  /sources       list loaded sources
  /reset         drop all sources and history
  /quit          exit

Anything else is a question about your material.`

// parseCommand turns a slash command line into a task request.
// Lines not starting with "/" are not commands.
func parseCommand(line string) (req messages.TaskRequested, isCommand bool, err error) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "/") {
		return messages.TaskRequested{}, false, nil
	}

	fields := strings.Fields(strings.TrimPrefix(line, "/"))
	if len(fields) == 0 {
		return messages.TaskRequested{}, true, fmt.Errorf("%w: /", ErrUnknownCommand)
	}

	switch strings.ToLower(fields[0]) {
	case "summary", "summarise", "summarize":
		return messages.TaskRequested{Task: messages.TaskSummary}, true, nil
	case "sections":
		return messages.TaskRequested{Task: messages.TaskSections}, true, nil
	case "analyse", "analyze":
		if len(fields) < 2 {
			return messages.TaskRequested{}, true, fmt.Errorf("usage: /analyse N")
		}
		n, err := strconv.Atoi(fields[1])
		if err != nil || n < 1 {
			return messages.TaskRequested{}, true, fmt.Errorf("invalid section number %q", fields[1])
		}
		return messages.TaskRequested{Task: messages.TaskAnalysis, Arg: n}, true, nil
	case "concepts":
		return messages.TaskRequested{Task: messages.TaskConcepts}, true, nil
	case "sources":
		return messages.TaskRequested{Task: messages.TaskSources}, true, nil
	case "reset":
		return messages.TaskRequested{Task: messages.TaskReset}, true, nil
	case "help", "?":
		return messages.TaskRequested{Task: messages.TaskHelp}, true, nil
	default:
		return messages.TaskRequested{}, true, fmt.Errorf("%w: /%s", ErrUnknownCommand, fields[0])
	}
}

func isQuit(line string) bool {
	switch strings.TrimSpace(strings.ToLower(line)) {
	case "/quit", "/exit", "/q":
		return true
	}
	return false
}

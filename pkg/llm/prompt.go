package llm

import (
	"strings"
	"todosummary/internal/model"
)

const summaryInstruction = "Summarize the following pending to-do items:"

// BuildPrompt renders pending items as one instruction line followed by one
// "- title: description" line per item, in the order given.
func BuildPrompt(todos []model.Todo) string {
	var sb strings.Builder
	sb.WriteString(summaryInstruction)
	sb.WriteString("\n")
	for _, t := range todos {
		sb.WriteString("- ")
		sb.WriteString(t.Title)
		sb.WriteString(": ")
		sb.WriteString(t.Description)
		sb.WriteString("\n")
	}
	return sb.String()
}

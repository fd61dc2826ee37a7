package quiz

import (
	"bytes"
	_ "embed"
	"fmt"
	"strings"
	"text/template"

	"github.com/memoraid/memoraid/pkg/domain/model"
	"github.com/memoraid/memoraid/pkg/domain/types"
)

//go:embed prompt/question_generation.md
var questionPromptTmpl string

var questionPrompt = template.Must(template.New("question_generation").Parse(questionPromptTmpl))

// promptData holds all data for the question generation template
type promptData struct {
	Count           int
	Description     string
	Relationship    string
	ContributorName string
	EventDate       string
	OptionCount     int
	AnswerCount     int
	Sentinel        string
	MinDifficulty   int
	MaxDifficulty   int
	MinPoints       int
	MaxPoints       int
}

// BuildPrompt renders the question generation instruction for a memory.
// The output only depends on its arguments. The date line is omitted when
// the memory has no event date.
func BuildPrompt(memory *model.Memory, contributor model.ContributorSummary) string {
	data := promptData{
		Count:           model.QuestionsPerMemory,
		Description:     memory.Description,
		Relationship:    contributor.RelationshipType.Label(),
		ContributorName: contributor.Name,
		OptionCount:     model.OptionCount,
		AnswerCount:     model.OptionCount - 1,
		Sentinel:        model.SentinelOption,
		MinDifficulty:   int(types.MinDifficulty),
		MaxDifficulty:   int(types.MaxDifficulty),
		MinPoints:       int(types.MinPoints),
		MaxPoints:       int(types.MaxPoints),
	}
	if memory.HasEventDate() {
		data.EventDate = strings.TrimSpace(memory.EventDate)
	}

	var buf bytes.Buffer
	if err := questionPrompt.Execute(&buf, data); err != nil {
		// Template execution should not fail with string data
		return fmt.Sprintf("Generate %d multiple-choice questions as a JSON array about this memory: %s",
			model.QuestionsPerMemory, memory.Description)
	}

	return buf.String()
}

package notify

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/memoraid/memoraid/pkg/domain/interfaces"
	"github.com/memoraid/memoraid/pkg/domain/model"
	"github.com/slack-go/slack"
)

// poster is the part of *slack.Client the notifier uses
type poster interface {
	PostMessageContext(ctx context.Context, channelID string, options ...slack.MsgOption) (string, string, error)
}

// Slack posts caregiver notifications to a Slack channel
type Slack struct {
	api       poster
	channelID string
}

var _ interfaces.Notifier = &Slack{}

// NewSlack creates a Slack notifier posting to channelID
func NewSlack(token, channelID string) (*Slack, error) {
	if token == "" {
		return nil, goerr.New("Slack bot token is required")
	}
	return newSlack(slack.New(token), channelID)
}

func newSlack(api poster, channelID string) (*Slack, error) {
	if channelID == "" {
		return nil, goerr.New("Slack channel ID is required")
	}
	return &Slack{api: api, channelID: channelID}, nil
}

// NotifyQuizAttempt reports a finished quiz
func (s *Slack) NotifyQuizAttempt(ctx context.Context, memory *model.Memory, attempt *model.QuizAttempt) error {
	text := fmt.Sprintf(":brain: Patient %s answered %d of %d questions correctly (score %d)",
		attempt.PatientID, attempt.CorrectAnswers, attempt.TotalQuestions, attempt.Score)
	if memory != nil && memory.BriefDescription != "" {
		text += fmt.Sprintf("\n> %s", memory.BriefDescription)
	}

	return s.post(ctx, text)
}

// NotifyGenerationFailure reports that questions could not be generated for
// a memory
func (s *Slack) NotifyGenerationFailure(ctx context.Context, memory *model.Memory, cause error) error {
	text := fmt.Sprintf(":warning: Question generation failed for memory %s (patient %s): %v",
		memory.ID, memory.PatientID, cause)

	return s.post(ctx, text)
}

func (s *Slack) post(ctx context.Context, text string) error {
	if _, _, err := s.api.PostMessageContext(ctx, s.channelID, slack.MsgOptionText(text, false)); err != nil {
		return goerr.Wrap(err, "failed to post Slack message", goerr.V("channel_id", s.channelID))
	}
	return nil
}

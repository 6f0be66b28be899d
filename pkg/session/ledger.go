package session

import (
	"fmt"
	"math"

	"CourseHub/internal/models"
	"CourseHub/pkg/apiclient"
)

// ProgressPercent derives the completion percentage from the distinct
// completed count and the total addressable content-item count, clamped to
// [0, 100].
func ProgressPercent(distinctCompleted, totalContentCount int) int {
	if totalContentCount < 1 {
		totalContentCount = 1
	}
	p := int(math.Round(100 * float64(distinctCompleted) / float64(totalContentCount)))
	if p > 100 {
		p = 100
	}
	if p < 0 {
		p = 0
	}
	return p
}

// ScoreQuiz computes scored and total points for a submission. A selection of
// -1 marks an unanswered question; partial submissions are rejected with a
// validation error before any round-trip.
func ScoreQuiz(questions []models.QuizQuestion, selections []int) (scored, total int, err error) {
	if len(selections) != len(questions) {
		return 0, 0, apiclient.NewError(apiclient.KindValidation,
			fmt.Sprintf("quiz has %d questions, got %d answers", len(questions), len(selections)))
	}
	for i, q := range questions {
		total += q.Points
		sel := selections[i]
		if sel < 0 {
			return 0, 0, apiclient.NewError(apiclient.KindValidation,
				fmt.Sprintf("question %d not answered", i+1))
		}
		if sel >= len(q.Options) {
			return 0, 0, apiclient.NewError(apiclient.KindValidation,
				fmt.Sprintf("question %d: option %d out of range", i+1, sel))
		}
		if sel == q.AnswerIndex {
			scored += q.Points
		}
	}
	return scored, total, nil
}

// QuizPhase is the per-quiz-item editing state.
type QuizPhase int

const (
	QuizUnattempted QuizPhase = iota
	QuizInProgress
	QuizSubmitted
	QuizRetaking
)

func (p QuizPhase) String() string {
	switch p {
	case QuizUnattempted:
		return "unattempted"
	case QuizInProgress:
		return "in-progress"
	case QuizSubmitted:
		return "submitted"
	case QuizRetaking:
		return "retaking"
	}
	return "unknown"
}

var quizTransitions = map[QuizPhase][]QuizPhase{
	QuizUnattempted: {QuizInProgress},
	QuizInProgress:  {QuizSubmitted},
	QuizSubmitted:   {QuizRetaking},
	QuizRetaking:    {QuizInProgress},
}

// TransitionQuizPhase validates one step of the quiz state machine. Retaking
// is only reachable from submitted, and submission only from in-progress.
func TransitionQuizPhase(from, to QuizPhase) error {
	for _, allowed := range quizTransitions[from] {
		if allowed == to {
			return nil
		}
	}
	return apiclient.NewError(apiclient.KindValidation,
		fmt.Sprintf("quiz cannot go from %s to %s", from, to))
}

// QuizPhaseFor reports the resting phase of a quiz item for an enrollment:
// submitted when an attempt is retained, unattempted otherwise. The editing
// phases only exist while a runner holds the quiz open.
func QuizPhaseFor(e *models.Enrollment, quizID string) QuizPhase {
	if e != nil && e.AttemptFor(quizID) != nil {
		return QuizSubmitted
	}
	return QuizUnattempted
}

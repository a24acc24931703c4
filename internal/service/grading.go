package service

import (
	"kvizmajstor_backend/internal/model"
	"kvizmajstor_backend/internal/util"
)

// Verdict is the outcome of grading one submission.
type Verdict struct {
	Score          int  `json:"score"`
	CorrectCount   int  `json:"correctCount"`
	TotalQuestions int  `json:"totalQuestions"`
	Passed         bool `json:"passed"`
}

// GradeSubmission scores a learner's answers against the authoritative
// question list.
//
// Every submitted answer is matched to its question by id; answers whose
// id matches no question are skipped silently. Duplicate question ids are
// each scored on their own; the submission is taken literally, not
// deduplicated. An answer is correct when both sides compare equal after
// canonicalization to lowercase string form, which makes bool and string
// spellings of true/false interchangeable.
//
// The score is floor(correct / total * 100) over the quiz's real question
// count, independent of how many answers were submitted; an empty quiz
// grades to 0.
func GradeSubmission(questions []model.QuizQuestion, answers []model.SubmittedAnswer) Verdict {
	totalQuestions := len(questions)
	correctCount := 0

	for _, answer := range answers {
		question := findQuestion(questions, answer.QuestionID)
		if question == nil {
			continue
		}
		if answer.Answer.Normalized() == question.CorrectAnswer.Normalized() {
			correctCount++
		}
	}

	score := 0
	if totalQuestions > 0 {
		score = correctCount * 100 / totalQuestions
	}

	return Verdict{
		Score:          score,
		CorrectCount:   correctCount,
		TotalQuestions: totalQuestions,
		Passed:         score >= util.PassingScore,
	}
}

func findQuestion(questions []model.QuizQuestion, id string) *model.QuizQuestion {
	for i := range questions {
		if questions[i].ID == id {
			return &questions[i]
		}
	}
	return nil
}

package service

import (
	"testing"

	"kvizmajstor_backend/internal/model"
)

func trueFalseQuestion(id string, answer bool) model.QuizQuestion {
	return model.QuizQuestion{
		UUIDBase:      model.UUIDBase{ID: id},
		Type:          "true-false",
		Question:      "statement " + id,
		CorrectAnswer: model.BoolAnswer(answer),
	}
}

func multipleQuestion(id, answer string, options ...string) model.QuizQuestion {
	return model.QuizQuestion{
		UUIDBase:      model.UUIDBase{ID: id},
		Type:          "multiple",
		Question:      "question " + id,
		Options:       options,
		CorrectAnswer: model.StringAnswer(answer),
	}
}

// The reference scenario: two true/false questions stored as native bools
// and one multiple-choice question.
func capitalQuiz() []model.QuizQuestion {
	return []model.QuizQuestion{
		trueFalseQuestion("q1", true),
		trueFalseQuestion("q2", false),
		multipleQuestion("q3", "Beograd", "Beograd", "Novi Sad", "Niš"),
	}
}

func TestGradeAllCorrectNativeBooleans(t *testing.T) {
	verdict := GradeSubmission(capitalQuiz(), []model.SubmittedAnswer{
		{QuestionID: "q1", Answer: model.BoolAnswer(true)},
		{QuestionID: "q2", Answer: model.BoolAnswer(false)},
		{QuestionID: "q3", Answer: model.StringAnswer("Beograd")},
	})

	if verdict.Score != 100 || verdict.CorrectCount != 3 {
		t.Fatalf("verdict = %+v, want score 100, correctCount 3", verdict)
	}
	if !verdict.Passed {
		t.Fatalf("expected a score of 100 to pass")
	}
}

func TestGradeBooleanStringSpellingsInterchangeable(t *testing.T) {
	// Any case spelling of "true"/"false" must grade equal to the
	// stored native boolean, and vice versa.
	spellings := []struct {
		q1, q2 model.AnswerValue
	}{
		{model.StringAnswer("true"), model.StringAnswer("false")},
		{model.StringAnswer("True"), model.StringAnswer("False")},
		{model.StringAnswer("TRUE"), model.StringAnswer("FALSE")},
		{model.BoolAnswer(true), model.BoolAnswer(false)},
	}

	for _, s := range spellings {
		verdict := GradeSubmission(capitalQuiz(), []model.SubmittedAnswer{
			{QuestionID: "q1", Answer: s.q1},
			{QuestionID: "q2", Answer: s.q2},
			{QuestionID: "q3", Answer: model.StringAnswer("BEOGRAD")},
		})
		if verdict.Score != 100 {
			t.Fatalf("spelling %v/%v graded %+v, want score 100", s.q1, s.q2, verdict)
		}
	}

	// Same tolerance when the stored side is a string.
	questions := []model.QuizQuestion{
		{UUIDBase: model.UUIDBase{ID: "q1"}, Type: "true-false", CorrectAnswer: model.StringAnswer("True")},
	}
	verdict := GradeSubmission(questions, []model.SubmittedAnswer{
		{QuestionID: "q1", Answer: model.BoolAnswer(true)},
	})
	if verdict.CorrectCount != 1 {
		t.Fatalf("bool against stored string graded %+v, want correct", verdict)
	}
}

func TestGradeAllWrong(t *testing.T) {
	verdict := GradeSubmission(capitalQuiz(), []model.SubmittedAnswer{
		{QuestionID: "q1", Answer: model.BoolAnswer(false)},
		{QuestionID: "q2", Answer: model.BoolAnswer(true)},
		{QuestionID: "q3", Answer: model.StringAnswer("Novi Sad")},
	})

	if verdict.Score != 0 || verdict.CorrectCount != 0 || verdict.Passed {
		t.Fatalf("verdict = %+v, want score 0, not passed", verdict)
	}
}

func TestGradeScoreIsFlooredOverQuizLength(t *testing.T) {
	questions := []model.QuizQuestion{
		trueFalseQuestion("q1", true),
		trueFalseQuestion("q2", true),
		trueFalseQuestion("q3", true),
	}

	verdict := GradeSubmission(questions, []model.SubmittedAnswer{
		{QuestionID: "q1", Answer: model.BoolAnswer(true)},
		{QuestionID: "q2", Answer: model.BoolAnswer(true)},
	})

	// 2/3 = 66.67, floored, and below the pass threshold.
	if verdict.Score != 66 {
		t.Fatalf("score = %d, want 66", verdict.Score)
	}
	if verdict.Passed {
		t.Fatalf("66 must not pass")
	}
	if verdict.TotalQuestions != 3 {
		t.Fatalf("totalQuestions = %d, want the quiz's real length 3", verdict.TotalQuestions)
	}
}

func TestGradePassThresholdBoundary(t *testing.T) {
	questions := make([]model.QuizQuestion, 10)
	answers := make([]model.SubmittedAnswer, 0, 7)
	for i := range questions {
		id := string(rune('a' + i))
		questions[i] = trueFalseQuestion(id, true)
		if len(answers) < 7 {
			answers = append(answers, model.SubmittedAnswer{QuestionID: id, Answer: model.BoolAnswer(true)})
		}
	}

	verdict := GradeSubmission(questions, answers)
	if verdict.Score != 70 || !verdict.Passed {
		t.Fatalf("verdict = %+v, want score 70 and passed", verdict)
	}
}

func TestGradeEmptyQuizScoresZero(t *testing.T) {
	verdict := GradeSubmission(nil, []model.SubmittedAnswer{
		{QuestionID: "q1", Answer: model.BoolAnswer(true)},
	})

	if verdict.Score != 0 || verdict.TotalQuestions != 0 || verdict.Passed {
		t.Fatalf("verdict = %+v, want zeroed score without division error", verdict)
	}
}

func TestGradeUnknownQuestionIDIsSkipped(t *testing.T) {
	verdict := GradeSubmission(capitalQuiz(), []model.SubmittedAnswer{
		{QuestionID: "nope", Answer: model.StringAnswer("Beograd")},
		{QuestionID: "q3", Answer: model.StringAnswer("Beograd")},
	})

	if verdict.CorrectCount != 1 {
		t.Fatalf("correctCount = %d, want 1 (unknown id contributes nothing)", verdict.CorrectCount)
	}
}

func TestGradeDuplicateAnswersScoredIndependently(t *testing.T) {
	questions := []model.QuizQuestion{
		trueFalseQuestion("q1", true),
		trueFalseQuestion("q2", false),
	}

	// The same question answered correctly twice inflates correctCount;
	// the submission is taken literally.
	verdict := GradeSubmission(questions, []model.SubmittedAnswer{
		{QuestionID: "q1", Answer: model.BoolAnswer(true)},
		{QuestionID: "q1", Answer: model.BoolAnswer(true)},
	})

	if verdict.CorrectCount != 2 {
		t.Fatalf("correctCount = %d, want 2", verdict.CorrectCount)
	}
	if verdict.Score != 100 {
		t.Fatalf("score = %d, want 100", verdict.Score)
	}
}

func TestGradeNumberAnswersCompareByStringForm(t *testing.T) {
	questions := []model.QuizQuestion{
		{UUIDBase: model.UUIDBase{ID: "q1"}, Type: "multiple", CorrectAnswer: model.NumberAnswer(4)},
	}

	verdict := GradeSubmission(questions, []model.SubmittedAnswer{
		{QuestionID: "q1", Answer: model.StringAnswer("4")},
	})
	if verdict.CorrectCount != 1 {
		t.Fatalf("number vs string form graded %+v, want correct", verdict)
	}

	verdict = GradeSubmission(questions, []model.SubmittedAnswer{
		{QuestionID: "q1", Answer: model.NumberAnswer(4.0)},
	})
	if verdict.CorrectCount != 1 {
		t.Fatalf("number vs number graded %+v, want correct", verdict)
	}
}

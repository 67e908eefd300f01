package model

import "time"

// QuizSessionSize is fixed: a session is always a completed 25-question
// attempt. The submit contract, the snapshot inserts and the score math all
// assume it.
const QuizSessionSize = 25

const SessionSubmitted = "submitted"

// QuizSession is created exactly once per submission, already in
// "submitted" state (there is no resume flow), and never mutated afterward.
type QuizSession struct {
	UUIDBase
	UserID        string    `gorm:"index;type:varchar(36);not null" json:"userId"`
	DomainID      *string   `gorm:"type:varchar(36)" json:"domainId,omitempty"` // filter used at start time
	QuestionCount int       `gorm:"not null" json:"questionCount"`
	Status        string    `gorm:"size:20;not null" json:"status"`
	SubmittedAt   time.Time `json:"submittedAt"`
	CorrectCount  int       `gorm:"not null" json:"correctCount"`
	PercentScore  int       `gorm:"not null" json:"percentScore"` // always correct_count*4
	CreatedByID   string    `gorm:"type:varchar(36)" json:"createdById"`
	UpdatedByID   string    `gorm:"type:varchar(36)" json:"updatedById"`
}

func (QuizSession) TableName() string {
	return "quiz_sessions"
}

// QuizSessionQuestion snapshots the question as it read at submission time,
// so later edits to the question bank never alter historical session review
// data.
type QuizSessionQuestion struct {
	UUIDBase
	QuizSessionID        string `gorm:"index;type:varchar(36);not null" json:"quizSessionId"`
	QuestionID           string `gorm:"index;type:varchar(36);not null" json:"questionId"`
	PromptSnapshot       string `gorm:"type:text;not null" json:"promptSnapshot"`
	ExplanationSnapshot  string `gorm:"type:text" json:"explanationSnapshot"`
	CitationTextSnapshot string `gorm:"type:text" json:"citationTextSnapshot"`
	DomainIDSnapshot     string `gorm:"type:varchar(36);not null" json:"domainIdSnapshot"`
	DifficultySnapshot   int    `gorm:"not null" json:"difficultySnapshot"`
	Ordinal              int    `gorm:"not null" json:"ordinal"` // 1..25, submission order
}

func (QuizSessionQuestion) TableName() string {
	return "quiz_session_questions"
}

// QuizAnswer stores the chosen choice by value (label and text), never by
// reference, for the same audit reason as the question snapshot. IsCorrect
// is computed server-side from the catalog, never taken from the client.
type QuizAnswer struct {
	UUIDBase
	QuizSessionQuestionID string `gorm:"uniqueIndex;type:varchar(36);not null" json:"quizSessionQuestionId"`
	ChosenChoiceLabel     string `gorm:"size:1;not null" json:"chosenChoiceLabel"`
	ChosenChoiceText      string `gorm:"type:text;not null" json:"chosenChoiceText"`
	IsCorrect             bool   `gorm:"not null" json:"isCorrect"`
}

func (QuizAnswer) TableName() string {
	return "quiz_answers"
}

// QuizSessionDomainScore holds one row per distinct domain among the 25
// snapshots; question counts across a session's rows always sum to 25.
type QuizSessionDomainScore struct {
	UUIDBase
	QuizSessionID string  `gorm:"index;type:varchar(36);not null" json:"quizSessionId"`
	DomainID      string  `gorm:"type:varchar(36);not null" json:"domainId"`
	QuestionCount int     `gorm:"not null" json:"questionCount"`
	CorrectCount  int     `gorm:"not null" json:"correctCount"`
	PercentScore  float64 `gorm:"not null" json:"percentScore"`
}

func (QuizSessionDomainScore) TableName() string {
	return "quiz_session_domain_scores"
}

package service

import (
	"errors"
	"fmt"
	"time"

	"quiz_portal_backend/internal/model"
	"quiz_portal_backend/internal/repository"
	"quiz_portal_backend/internal/util"

	"gorm.io/gorm"
)

// QuizService owns the quiz session lifecycle: drawing a question set,
// validating and re-scoring a submitted answer sheet, and persisting the
// resulting session graph. Scoring is always authoritative: the client's
// view of correctness is never consulted.
type QuizService struct {
	Questions *repository.QuestionRepository
	Quiz      *repository.QuizRepository
}

func NewQuizService(questions *repository.QuestionRepository, quiz *repository.QuizRepository) *QuizService {
	return &QuizService{Questions: questions, Quiz: quiz}
}

// StartChoice deliberately has no correctness field; the answer key must
// not be readable from the start payload.
type StartChoice struct {
	ChoiceID string `json:"choice_id"`
	Label    string `json:"choice_label"`
	Text     string `json:"choice_text"`
}

type StartQuestion struct {
	QuestionID   string        `json:"question_id"`
	Prompt       string        `json:"prompt"`
	Explanation  string        `json:"explanation"`
	CitationText string        `json:"citation_text"`
	Choices      []StartChoice `json:"choices"`
}

// StartQuiz draws exactly 25 random active questions, optionally filtered
// by domain. Fewer than 25 eligible questions is a data error, not a
// smaller quiz: the submit contract depends on the fixed count.
func (s *QuizService) StartQuiz(domainID *string) ([]StartQuestion, error) {
	if domainID != nil && !model.IsUUID(*domainID) {
		return nil, fmt.Errorf("%w: domain_id must be a UUID", util.ErrValidation)
	}

	qs, err := s.Questions.RandomActive(domainID, model.QuizSessionSize)
	if err != nil {
		return nil, err
	}
	if len(qs) < model.QuizSessionSize {
		return nil, fmt.Errorf("%w: need %d active questions, have %d",
			util.ErrNotEnoughQuestions, model.QuizSessionSize, len(qs))
	}

	out := make([]StartQuestion, 0, len(qs))
	for _, q := range qs {
		sq := StartQuestion{
			QuestionID:   q.ID,
			Prompt:       q.Prompt,
			Explanation:  q.Explanation,
			CitationText: q.CitationText,
			Choices:      make([]StartChoice, 0, len(q.Choices)),
		}
		for _, c := range q.Choices {
			sq.Choices = append(sq.Choices, StartChoice{
				ChoiceID: c.ID,
				Label:    c.Label,
				Text:     c.Text,
			})
		}
		out = append(out, sq)
	}
	return out, nil
}

type AnswerReq struct {
	QuestionID string `json:"question_id"`
	ChoiceID   string `json:"choice_id"`
}

type SubmitQuizReq struct {
	DomainID *string     `json:"domain_id"`
	Answers  []AnswerReq `json:"answers"`
}

type SubmitResult struct {
	QuizSessionID string `json:"quiz_session_id"`
	CorrectCount  int    `json:"correct_count"`
	PercentScore  int    `json:"percent_score"`
}

// ValidateSubmission checks the shape of the answer sheet: 25 entries,
// well-formed ids, pairwise-distinct question ids. Pure; no catalog
// access.
func ValidateSubmission(req *SubmitQuizReq) error {
	if req.DomainID != nil && !model.IsUUID(*req.DomainID) {
		return fmt.Errorf("%w: domain_id must be a UUID or null", util.ErrValidation)
	}

	if len(req.Answers) != model.QuizSessionSize {
		return fmt.Errorf("%w: answers must contain exactly %d items",
			util.ErrValidation, model.QuizSessionSize)
	}

	seen := make(map[string]bool, len(req.Answers))
	for _, a := range req.Answers {
		if !model.IsUUID(a.QuestionID) || !model.IsUUID(a.ChoiceID) {
			return fmt.Errorf("%w: each answer must include question_id and choice_id UUIDs", util.ErrValidation)
		}
		if seen[a.QuestionID] {
			return fmt.Errorf("%w: question_id values must be unique", util.ErrValidation)
		}
		seen[a.QuestionID] = true
	}
	return nil
}

// scoredAnswer is one answer after authoritative re-scoring, carrying the
// full snapshot tuple the persister stores.
type scoredAnswer struct {
	ordinal    int
	questionID string

	promptSnapshot       string
	explanationSnapshot  string
	citationTextSnapshot string
	domainIDSnapshot     string
	difficultySnapshot   int

	chosenChoiceLabel string
	chosenChoiceText  string
	isCorrect         bool
}

// score re-fetches every submitted question and choice from the catalog
// and re-derives correctness. Any id that does not resolve, and any
// choice paired with a question it does not belong to, fails the whole
// submission.
func (s *QuizService) score(answers []AnswerReq) ([]scoredAnswer, int, error) {
	questionIDs := make([]string, len(answers))
	choiceIDs := make([]string, len(answers))
	for i, a := range answers {
		questionIDs[i] = a.QuestionID
		choiceIDs[i] = a.ChoiceID
	}

	questions, err := s.Questions.ActiveByIDs(questionIDs)
	if err != nil {
		return nil, 0, err
	}
	if len(questions) != len(answers) {
		return nil, 0, fmt.Errorf("%w: one or more questions not found or not active", util.ErrIntegrity)
	}

	choices, err := s.Questions.ChoicesByIDs(choiceIDs)
	if err != nil {
		return nil, 0, err
	}
	if len(choices) != len(answers) {
		return nil, 0, fmt.Errorf("%w: one or more choices not found", util.ErrIntegrity)
	}

	questionByID := make(map[string]model.Question, len(questions))
	for _, q := range questions {
		questionByID[q.ID] = q
	}
	choiceByID := make(map[string]model.Choice, len(choices))
	for _, c := range choices {
		choiceByID[c.ID] = c
	}

	scored := make([]scoredAnswer, 0, len(answers))
	correct := 0
	for i, a := range answers {
		q, ok := questionByID[a.QuestionID]
		if !ok {
			return nil, 0, fmt.Errorf("%w: question lookup failed", util.ErrIntegrity)
		}
		c, ok := choiceByID[a.ChoiceID]
		if !ok {
			return nil, 0, fmt.Errorf("%w: choice lookup failed", util.ErrIntegrity)
		}
		if c.QuestionID != a.QuestionID {
			return nil, 0, fmt.Errorf("%w: a choice_id does not belong to its question_id", util.ErrIntegrity)
		}

		if c.IsCorrect {
			correct++
		}
		scored = append(scored, scoredAnswer{
			ordinal:              i + 1,
			questionID:           q.ID,
			promptSnapshot:       q.Prompt,
			explanationSnapshot:  q.Explanation,
			citationTextSnapshot: q.CitationText,
			domainIDSnapshot:     q.DomainID,
			difficultySnapshot:   q.Difficulty,
			chosenChoiceLabel:    c.Label,
			chosenChoiceText:     c.Text,
			isCorrect:            c.IsCorrect,
		})
	}

	return scored, correct, nil
}

// aggregateDomainScores groups scored answers by snapshot domain id, in
// first-seen order. Groups partition the answer set exactly.
func aggregateDomainScores(scored []scoredAnswer) []model.QuizSessionDomainScore {
	order := make([]string, 0)
	byDomain := make(map[string]*model.QuizSessionDomainScore)

	for _, a := range scored {
		agg, ok := byDomain[a.domainIDSnapshot]
		if !ok {
			agg = &model.QuizSessionDomainScore{DomainID: a.domainIDSnapshot}
			byDomain[a.domainIDSnapshot] = agg
			order = append(order, a.domainIDSnapshot)
		}
		agg.QuestionCount++
		if a.isCorrect {
			agg.CorrectCount++
		}
	}

	out := make([]model.QuizSessionDomainScore, 0, len(order))
	for _, id := range order {
		agg := byDomain[id]
		agg.PercentScore = float64(agg.CorrectCount*100) / float64(agg.QuestionCount)
		out = append(out, *agg)
	}
	return out
}

// SubmitQuiz validates, re-scores and persists one completed attempt,
// returning the new session id and score summary. The session and all of
// its child rows commit atomically or not at all.
func (s *QuizService) SubmitQuiz(user *model.AppUser, req *SubmitQuizReq) (*SubmitResult, error) {
	if err := ValidateSubmission(req); err != nil {
		return nil, err
	}

	scored, correctCount, err := s.score(req.Answers)
	if err != nil {
		return nil, err
	}

	// 25 is fixed, so integer division is exact: percent is always a
	// multiple of 4.
	percentScore := correctCount * 100 / model.QuizSessionSize

	session := &model.QuizSession{
		UserID:        user.ID,
		DomainID:      req.DomainID,
		QuestionCount: model.QuizSessionSize,
		Status:        model.SessionSubmitted,
		SubmittedAt:   time.Now(),
		CorrectCount:  correctCount,
		PercentScore:  percentScore,
		CreatedByID:   user.ID,
		UpdatedByID:   user.ID,
	}

	questions := make([]model.QuizSessionQuestion, 0, len(scored))
	answers := make([]model.QuizAnswer, 0, len(scored))
	for _, a := range scored {
		questions = append(questions, model.QuizSessionQuestion{
			QuestionID:           a.questionID,
			PromptSnapshot:       a.promptSnapshot,
			ExplanationSnapshot:  a.explanationSnapshot,
			CitationTextSnapshot: a.citationTextSnapshot,
			DomainIDSnapshot:     a.domainIDSnapshot,
			DifficultySnapshot:   a.difficultySnapshot,
			Ordinal:              a.ordinal,
		})
		answers = append(answers, model.QuizAnswer{
			ChosenChoiceLabel: a.chosenChoiceLabel,
			ChosenChoiceText:  a.chosenChoiceText,
			IsCorrect:         a.isCorrect,
		})
	}

	graph := &repository.SessionGraph{
		Session:      session,
		Questions:    questions,
		Answers:      answers,
		DomainScores: aggregateDomainScores(scored),
	}

	if err := s.Quiz.CreateSessionGraph(graph); err != nil {
		return nil, err
	}

	return &SubmitResult{
		QuizSessionID: session.ID,
		CorrectCount:  correctCount,
		PercentScore:  percentScore,
	}, nil
}

func (s *QuizService) SessionsForUser(userID string) ([]model.QuizSession, error) {
	return s.Quiz.SessionsByUser(userID)
}

// SessionReviewQuestion joins a snapshot question with its stored answer
// for the post-quiz review screen. Everything comes from the session's
// own rows; the live catalog is never consulted.
type SessionReviewQuestion struct {
	model.QuizSessionQuestion
	Answer *model.QuizAnswer `json:"answer,omitempty"`
}

type SessionReview struct {
	Session      *model.QuizSession             `json:"session"`
	Questions    []SessionReviewQuestion        `json:"questions"`
	DomainScores []model.QuizSessionDomainScore `json:"domainScores"`
}

func (s *QuizService) ReviewSession(user *model.AppUser, sessionID string) (*SessionReview, error) {
	session, err := s.Quiz.FindSession(sessionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNotFound
		}
		return nil, err
	}
	if session.UserID != user.ID {
		return nil, util.ErrPermissionDenied
	}

	questions, answers, scores, err := s.Quiz.SessionReview(sessionID)
	if err != nil {
		return nil, err
	}

	answerByQuestion := make(map[string]model.QuizAnswer, len(answers))
	for _, a := range answers {
		answerByQuestion[a.QuizSessionQuestionID] = a
	}

	review := &SessionReview{Session: session, DomainScores: scores}
	for _, q := range questions {
		rq := SessionReviewQuestion{QuizSessionQuestion: q}
		if a, ok := answerByQuestion[q.ID]; ok {
			ans := a
			rq.Answer = &ans
		}
		review.Questions = append(review.Questions, rq)
	}
	return review, nil
}

package repository

import (
	"fmt"

	"quiz_portal_backend/internal/model"

	"gorm.io/gorm"
)

type QuizRepository struct {
	DB *gorm.DB
}

func NewQuizRepository(db *gorm.DB) *QuizRepository {
	return &QuizRepository{DB: db}
}

// SessionGraph is everything one submission persists. Questions and
// Answers are parallel slices in ordinal order; the answer's owning
// session-question id is filled in during the insert.
type SessionGraph struct {
	Session      *model.QuizSession
	Questions    []model.QuizSessionQuestion
	Answers      []model.QuizAnswer
	DomainScores []model.QuizSessionDomainScore
}

// CreateSessionGraph writes the session, its 25 question snapshots, their
// 25 answers and the per-domain score rows in a single transaction. Any
// failure rolls back the whole graph; a session is never visible
// partially populated.
func (r *QuizRepository) CreateSessionGraph(g *SessionGraph) error {
	if len(g.Questions) != g.Session.QuestionCount || len(g.Answers) != g.Session.QuestionCount {
		return fmt.Errorf("session graph row mismatch: %d questions, %d answers, want %d",
			len(g.Questions), len(g.Answers), g.Session.QuestionCount)
	}

	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(g.Session).Error; err != nil {
			return err
		}

		for i := range g.Questions {
			g.Questions[i].QuizSessionID = g.Session.ID
			if err := tx.Create(&g.Questions[i]).Error; err != nil {
				return err
			}

			g.Answers[i].QuizSessionQuestionID = g.Questions[i].ID
			if err := tx.Create(&g.Answers[i]).Error; err != nil {
				return err
			}
		}

		for i := range g.DomainScores {
			g.DomainScores[i].QuizSessionID = g.Session.ID
			if err := tx.Create(&g.DomainScores[i]).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

func (r *QuizRepository) FindSession(id string) (*model.QuizSession, error) {
	var s model.QuizSession
	err := r.DB.First(&s, "id = ?", id).Error
	return &s, err
}

func (r *QuizRepository) SessionsByUser(userID string) ([]model.QuizSession, error) {
	var sessions []model.QuizSession
	err := r.DB.Where("user_id = ?", userID).Order("submitted_at desc").Find(&sessions).Error
	return sessions, err
}

// SessionReview returns the snapshot questions (with their answers) and
// the domain scores for one session, in ordinal order.
func (r *QuizRepository) SessionReview(sessionID string) ([]model.QuizSessionQuestion, []model.QuizAnswer, []model.QuizSessionDomainScore, error) {
	var questions []model.QuizSessionQuestion
	if err := r.DB.Where("quiz_session_id = ?", sessionID).Order("ordinal asc").Find(&questions).Error; err != nil {
		return nil, nil, nil, err
	}

	ids := make([]string, len(questions))
	for i, q := range questions {
		ids[i] = q.ID
	}

	var answers []model.QuizAnswer
	if len(ids) > 0 {
		if err := r.DB.Where("quiz_session_question_id IN ?", ids).Find(&answers).Error; err != nil {
			return nil, nil, nil, err
		}
	}

	var scores []model.QuizSessionDomainScore
	if err := r.DB.Where("quiz_session_id = ?", sessionID).Find(&scores).Error; err != nil {
		return nil, nil, nil, err
	}

	return questions, answers, scores, nil
}

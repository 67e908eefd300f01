package service

import (
	"fmt"
	"sync/atomic"
	"testing"

	"quiz_portal_backend/internal/model"
	"quiz_portal_backend/internal/repository"
	"quiz_portal_backend/pkg/database"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

var testDBSeq int64

// newTestDB opens a fresh in-memory database per call, migrated and
// seeded with the fixed role set. The sequence number keeps repeated
// calls within one test from sharing state.
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s_%d?mode=memory&cache=shared", t.Name(), atomic.AddInt64(&testDBSeq, 1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		t.Fatalf("migrate test db: %v", err)
	}
	return db
}

func newQuizService(db *gorm.DB) *QuizService {
	return NewQuizService(repository.NewQuestionRepository(db), repository.NewQuizRepository(db))
}

func seedDomain(t *testing.T, db *gorm.DB, name string) *model.Domain {
	t.Helper()
	d := &model.Domain{Name: name}
	if err := db.Create(d).Error; err != nil {
		t.Fatalf("seed domain: %v", err)
	}
	return d
}

// seedQuestion creates an active question with four choices; the choice
// labelled correctLabel is the correct one.
func seedQuestion(t *testing.T, db *gorm.DB, domainID, correctLabel string, n int) *model.Question {
	t.Helper()

	q := &model.Question{
		Prompt:       fmt.Sprintf("Prompt %d", n),
		Explanation:  fmt.Sprintf("Explanation %d", n),
		CitationText: fmt.Sprintf("Citation %d", n),
		Difficulty:   1 + n%3,
		DomainID:     domainID,
		IsActive:     true,
	}
	for _, label := range model.ChoiceLabels {
		q.Choices = append(q.Choices, model.Choice{
			Label:     label,
			Text:      fmt.Sprintf("Choice %s for %d", label, n),
			IsCorrect: label == correctLabel,
		})
	}
	if err := db.Create(q).Error; err != nil {
		t.Fatalf("seed question: %v", err)
	}
	return q
}

func seedQuestions(t *testing.T, db *gorm.DB, domainID string, count int) []*model.Question {
	t.Helper()
	qs := make([]*model.Question, 0, count)
	for i := 0; i < count; i++ {
		qs = append(qs, seedQuestion(t, db, domainID, model.ChoiceLabels[i%4], i))
	}
	return qs
}

func seedUser(t *testing.T, db *gorm.DB, subject string) *model.AppUser {
	t.Helper()
	u := &model.AppUser{
		SubjectID:   subject,
		Email:       subject + "@example.com",
		DisplayName: subject,
		IsActive:    true,
	}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return u
}

func choiceByLabel(t *testing.T, q *model.Question, label string) *model.Choice {
	t.Helper()
	for i := range q.Choices {
		if q.Choices[i].Label == label {
			return &q.Choices[i]
		}
	}
	t.Fatalf("question %s has no choice %s", q.ID, label)
	return nil
}

func correctChoice(t *testing.T, q *model.Question) *model.Choice {
	t.Helper()
	for i := range q.Choices {
		if q.Choices[i].IsCorrect {
			return &q.Choices[i]
		}
	}
	t.Fatalf("question %s has no correct choice", q.ID)
	return nil
}

func wrongChoice(t *testing.T, q *model.Question) *model.Choice {
	t.Helper()
	for i := range q.Choices {
		if !q.Choices[i].IsCorrect {
			return &q.Choices[i]
		}
	}
	t.Fatalf("question %s has no wrong choice", q.ID)
	return nil
}

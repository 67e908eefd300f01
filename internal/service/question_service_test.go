package service

import (
	"errors"
	"testing"

	"quiz_portal_backend/internal/model"
	"quiz_portal_backend/internal/repository"
	"quiz_portal_backend/internal/util"

	"gorm.io/gorm"
)

func newQuestionService(db *gorm.DB) *QuestionService {
	return NewQuestionService(repository.NewQuestionRepository(db), repository.NewDomainRepository(db))
}

func validQuestionReq(domainID string) *QuestionReq {
	return &QuestionReq{
		Prompt:       "Which valve separates the left atrium and ventricle?",
		Explanation:  "The mitral valve.",
		CitationText: "Gray's Anatomy, ch. 5",
		Difficulty:   2,
		DomainID:     domainID,
		Choices: []ChoiceReq{
			{Label: "A", Text: "Tricuspid", IsCorrect: false},
			{Label: "B", Text: "Mitral", IsCorrect: true},
			{Label: "C", Text: "Aortic", IsCorrect: false},
			{Label: "D", Text: "Pulmonary", IsCorrect: false},
		},
	}
}

func TestCreateQuestion(t *testing.T) {
	db := newTestDB(t)
	domain := seedDomain(t, db, "Cardiology")
	svc := newQuestionService(db)

	q, err := svc.Create(validQuestionReq(domain.ID))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if !q.IsActive {
		t.Fatal("new question should be active")
	}
	if len(q.Choices) != 4 {
		t.Fatalf("expected 4 choices, got %d", len(q.Choices))
	}

	stored, err := svc.Get(q.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if c := correctChoice(t, stored); c.Label != "B" {
		t.Fatalf("expected B correct, got %s", c.Label)
	}
}

func TestCreateQuestionChoiceValidation(t *testing.T) {
	db := newTestDB(t)
	domain := seedDomain(t, db, "Cardiology")
	svc := newQuestionService(db)

	tests := []struct {
		name   string
		mutate func(req *QuestionReq)
	}{
		{
			name:   "three choices",
			mutate: func(req *QuestionReq) { req.Choices = req.Choices[:3] },
		},
		{
			name:   "duplicate label",
			mutate: func(req *QuestionReq) { req.Choices[2].Label = "A" },
		},
		{
			name:   "label outside A-D",
			mutate: func(req *QuestionReq) { req.Choices[3].Label = "E" },
		},
		{
			name:   "empty choice text",
			mutate: func(req *QuestionReq) { req.Choices[1].Text = "   " },
		},
		{
			name:   "no correct choice",
			mutate: func(req *QuestionReq) { req.Choices[1].IsCorrect = false },
		},
		{
			name:   "two correct choices",
			mutate: func(req *QuestionReq) { req.Choices[0].IsCorrect = true },
		},
		{
			name:   "empty prompt",
			mutate: func(req *QuestionReq) { req.Prompt = " " },
		},
		{
			name:   "difficulty out of range",
			mutate: func(req *QuestionReq) { req.Difficulty = 4 },
		},
		{
			name:   "unknown domain",
			mutate: func(req *QuestionReq) { req.DomainID = model.GenerateUUID() },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validQuestionReq(domain.ID)
			tt.mutate(req)

			if _, err := svc.Create(req); !errors.Is(err, util.ErrValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestUpdateQuestionReplacesChoices(t *testing.T) {
	db := newTestDB(t)
	domain := seedDomain(t, db, "Cardiology")
	svc := newQuestionService(db)

	q, err := svc.Create(validQuestionReq(domain.ID))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	req := validQuestionReq(domain.ID)
	req.Prompt = "Updated prompt"
	req.Choices[1].IsCorrect = false
	req.Choices[3].IsCorrect = true

	updated, err := svc.Update(q.ID, req)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Prompt != "Updated prompt" {
		t.Fatalf("prompt not updated: %q", updated.Prompt)
	}

	stored, err := svc.Get(q.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if len(stored.Choices) != 4 {
		t.Fatalf("expected 4 choices after update, got %d", len(stored.Choices))
	}
	if c := correctChoice(t, stored); c.Label != "D" {
		t.Fatalf("expected D correct after update, got %s", c.Label)
	}
}

func TestUpdateQuestionDeactivation(t *testing.T) {
	db := newTestDB(t)
	domain := seedDomain(t, db, "Cardiology")
	svc := newQuestionService(db)

	q, err := svc.Create(validQuestionReq(domain.ID))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	inactive := false
	req := validQuestionReq(domain.ID)
	req.IsActive = &inactive

	updated, err := svc.Update(q.ID, req)
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.IsActive {
		t.Fatal("question should be inactive")
	}
}

func TestDeleteQuestion(t *testing.T) {
	db := newTestDB(t)
	domain := seedDomain(t, db, "Cardiology")
	svc := newQuestionService(db)

	q, err := svc.Create(validQuestionReq(domain.ID))
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if err := svc.Delete(q.ID); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	if _, err := svc.Get(q.ID); !errors.Is(err, util.ErrNotFound) {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
	if err := svc.Delete(model.GenerateUUID()); !errors.Is(err, util.ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown id, got %v", err)
	}
}

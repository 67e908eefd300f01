package service

import (
	"errors"
	"fmt"
	"strings"

	"quiz_portal_backend/internal/model"
	"quiz_portal_backend/internal/repository"
	"quiz_portal_backend/internal/util"

	"gorm.io/gorm"
)

// QuestionService owns the question bank. The quiz engine reads the bank
// but never writes it; all mutation goes through here so the 4-choice
// invariant is enforced in one place.
type QuestionService struct {
	Questions *repository.QuestionRepository
	Domains   *repository.DomainRepository
}

func NewQuestionService(questions *repository.QuestionRepository, domains *repository.DomainRepository) *QuestionService {
	return &QuestionService{Questions: questions, Domains: domains}
}

type ChoiceReq struct {
	Label     string `json:"choice_label"`
	Text      string `json:"choice_text"`
	IsCorrect bool   `json:"is_correct"`
}

type QuestionReq struct {
	Prompt       string      `json:"prompt"`
	Explanation  string      `json:"explanation"`
	CitationText string      `json:"citation_text"`
	Difficulty   int         `json:"difficulty"`
	DomainID     string      `json:"domain_id"`
	IsActive     *bool       `json:"is_active"`
	Choices      []ChoiceReq `json:"choices"`
}

// normalizeChoices enforces the bank invariant: exactly 4 choices labelled
// A-D, each label once, non-empty text, exactly one marked correct.
func normalizeChoices(choices []ChoiceReq) ([]model.Choice, error) {
	if len(choices) != 4 {
		return nil, fmt.Errorf("%w: choices must include exactly 4 items (A, B, C, D)", util.ErrValidation)
	}

	allowed := map[string]bool{"A": true, "B": true, "C": true, "D": true}
	seen := map[string]bool{}
	correctCount := 0

	out := make([]model.Choice, 0, 4)
	for _, c := range choices {
		label := strings.ToUpper(strings.TrimSpace(c.Label))
		text := strings.TrimSpace(c.Text)

		if !allowed[label] {
			return nil, fmt.Errorf("%w: choice_label must be one of A, B, C, D", util.ErrValidation)
		}
		if seen[label] {
			return nil, fmt.Errorf("%w: duplicate choice_label %q", util.ErrValidation, label)
		}
		seen[label] = true

		if text == "" {
			return nil, fmt.Errorf("%w: choice_text cannot be empty", util.ErrValidation)
		}
		if c.IsCorrect {
			correctCount++
		}

		out = append(out, model.Choice{Label: label, Text: text, IsCorrect: c.IsCorrect})
	}

	for _, lbl := range model.ChoiceLabels {
		if !seen[lbl] {
			return nil, fmt.Errorf("%w: choices must include labels A, B, C, and D", util.ErrValidation)
		}
	}
	if correctCount != 1 {
		return nil, fmt.Errorf("%w: exactly one choice must be marked correct", util.ErrValidation)
	}

	return out, nil
}

func (s *QuestionService) validate(req *QuestionReq) ([]model.Choice, error) {
	if strings.TrimSpace(req.Prompt) == "" {
		return nil, fmt.Errorf("%w: prompt is required", util.ErrValidation)
	}
	if req.Difficulty < 1 || req.Difficulty > 3 {
		return nil, fmt.Errorf("%w: difficulty must be between 1 and 3", util.ErrValidation)
	}
	if !model.IsUUID(req.DomainID) {
		return nil, fmt.Errorf("%w: domain_id must be a UUID", util.ErrValidation)
	}
	if _, err := s.Domains.FindByID(req.DomainID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: unknown domain_id", util.ErrValidation)
		}
		return nil, err
	}
	return normalizeChoices(req.Choices)
}

func (s *QuestionService) Create(req *QuestionReq) (*model.Question, error) {
	choices, err := s.validate(req)
	if err != nil {
		return nil, err
	}

	q := &model.Question{
		Prompt:       strings.TrimSpace(req.Prompt),
		Explanation:  req.Explanation,
		CitationText: req.CitationText,
		Difficulty:   req.Difficulty,
		DomainID:     req.DomainID,
		IsActive:     true,
		Choices:      choices,
	}
	if req.IsActive != nil {
		q.IsActive = *req.IsActive
	}

	if err := s.Questions.Create(q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *QuestionService) Update(id string, req *QuestionReq) (*model.Question, error) {
	q, err := s.Questions.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNotFound
		}
		return nil, err
	}

	choices, err := s.validate(req)
	if err != nil {
		return nil, err
	}

	q.Prompt = strings.TrimSpace(req.Prompt)
	q.Explanation = req.Explanation
	q.CitationText = req.CitationText
	q.Difficulty = req.Difficulty
	q.DomainID = req.DomainID
	if req.IsActive != nil {
		q.IsActive = *req.IsActive
	}
	q.Choices = choices

	if err := s.Questions.Update(q); err != nil {
		return nil, err
	}
	return q, nil
}

func (s *QuestionService) Get(id string) (*model.Question, error) {
	q, err := s.Questions.FindByID(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrNotFound
		}
		return nil, err
	}
	return q, nil
}

func (s *QuestionService) List(domainID *string, page, limit int) ([]model.Question, int64, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return s.Questions.List(domainID, page, limit)
}

func (s *QuestionService) Delete(id string) error {
	if _, err := s.Questions.FindByID(id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return util.ErrNotFound
		}
		return err
	}
	return s.Questions.Delete(id)
}

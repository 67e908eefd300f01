package repository

import (
	"quiz_portal_backend/internal/model"

	"gorm.io/gorm"
)

type QuestionRepository struct {
	DB *gorm.DB
}

func NewQuestionRepository(db *gorm.DB) *QuestionRepository {
	return &QuestionRepository{DB: db}
}

func (r *QuestionRepository) Create(q *model.Question) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		return tx.Create(q).Error
	})
}

// Update replaces the question fields and its full choice set in one
// transaction; the A-D choice invariant is validated by the service before
// it gets here.
func (r *QuestionRepository) Update(q *model.Question) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		choices := q.Choices
		q.Choices = nil
		if err := tx.Save(q).Error; err != nil {
			return err
		}
		if len(choices) == 0 {
			return nil
		}
		if err := tx.Unscoped().Where("question_id = ?", q.ID).Delete(&model.Choice{}).Error; err != nil {
			return err
		}
		for i := range choices {
			choices[i].ID = ""
			choices[i].QuestionID = q.ID
			if err := tx.Create(&choices[i]).Error; err != nil {
				return err
			}
		}
		q.Choices = choices
		return nil
	})
}

func (r *QuestionRepository) FindByID(id string) (*model.Question, error) {
	var q model.Question
	err := r.DB.Preload("Choices", func(db *gorm.DB) *gorm.DB {
		return db.Order("label asc")
	}).First(&q, "id = ?", id).Error
	return &q, err
}

func (r *QuestionRepository) List(domainID *string, page, limit int) ([]model.Question, int64, error) {
	query := r.DB.Model(&model.Question{})
	if domainID != nil {
		query = query.Where("domain_id = ?", *domainID)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var qs []model.Question
	offset := (page - 1) * limit
	err := query.Preload("Choices", func(db *gorm.DB) *gorm.DB {
		return db.Order("label asc")
	}).Order("created_at desc").Offset(offset).Limit(limit).Find(&qs).Error
	return qs, total, err
}

func (r *QuestionRepository) Delete(id string) error {
	return r.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("question_id = ?", id).Delete(&model.Choice{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.Question{}, "id = ?", id).Error
	})
}

// RandomActive samples n distinct active questions uniformly across the
// whole eligible pool (ORDER BY random() over the filtered set, not a
// shuffle of some id-ordered prefix), with choices ordered by label.
func (r *QuestionRepository) RandomActive(domainID *string, n int) ([]model.Question, error) {
	query := r.DB.Where("is_active = ?", true)
	if domainID != nil {
		query = query.Where("domain_id = ?", *domainID)
	}

	var qs []model.Question
	err := query.Preload("Choices", func(db *gorm.DB) *gorm.DB {
		return db.Order("label asc")
	}).Order("random()").Limit(n).Find(&qs).Error
	return qs, err
}

// ActiveByIDs fetches the authoritative question rows for a submission.
// Inactive and unknown ids simply do not come back; the caller compares
// row counts.
func (r *QuestionRepository) ActiveByIDs(ids []string) ([]model.Question, error) {
	var qs []model.Question
	err := r.DB.Where("id IN ? AND is_active = ?", ids, true).Find(&qs).Error
	return qs, err
}

func (r *QuestionRepository) ChoicesByIDs(ids []string) ([]model.Choice, error) {
	var cs []model.Choice
	err := r.DB.Where("id IN ?", ids).Find(&cs).Error
	return cs, err
}

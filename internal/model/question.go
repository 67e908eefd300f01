package model

// Choice labels; every question carries exactly one choice per label and
// exactly one of the four is marked correct.
var ChoiceLabels = []string{"A", "B", "C", "D"}

type Question struct {
	UUIDBase
	Prompt       string   `gorm:"type:text;not null" json:"prompt"`
	Explanation  string   `gorm:"type:text" json:"explanation"`
	CitationText string   `gorm:"type:text" json:"citationText"`
	Difficulty   int      `gorm:"default:1" json:"difficulty"` // 1-3
	DomainID     string   `gorm:"index;type:varchar(36)" json:"domainId"`
	IsActive     bool     `gorm:"default:true" json:"isActive"`
	Choices      []Choice `gorm:"foreignKey:QuestionID" json:"choices,omitempty"`
}

func (Question) TableName() string {
	return "questions"
}

type Choice struct {
	UUIDBase
	QuestionID string `gorm:"index:idx_question_label,unique;type:varchar(36)" json:"questionId"`
	Label      string `gorm:"index:idx_question_label,unique;size:1;not null" json:"label"`
	Text       string `gorm:"type:text;not null" json:"text"`
	IsCorrect  bool   `gorm:"default:false" json:"isCorrect"`
}

func (Choice) TableName() string {
	return "choices"
}

package model

// Domain is a topical grouping of questions, used for quiz filtering and
// per-topic score aggregation. Read-only to the quiz engine.
type Domain struct {
	UUIDBase
	Name       string  `gorm:"size:255;not null" json:"name"`
	CategoryID *string `gorm:"type:varchar(36)" json:"categoryId,omitempty"`
}

func (Domain) TableName() string {
	return "domains"
}

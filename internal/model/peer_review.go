package model

type PeerReview struct {
	BaseModel
	Content      string `gorm:"type:text;not null" json:"content"`
	ReviewerID   uint   `gorm:"not null;uniqueIndex:idx_reviewer_submission" json:"reviewerId"`
	SubmissionID uint   `gorm:"not null;uniqueIndex:idx_reviewer_submission" json:"submissionId"`

	Reviewer *User `gorm:"foreignKey:ReviewerID" json:"reviewer,omitempty"`
}

func (PeerReview) TableName() string {
	return "peer_reviews"
}

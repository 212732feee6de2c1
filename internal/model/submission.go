package model

import "time"

type Submission struct {
	BaseModel
	Content      string `gorm:"type:text" json:"content"`
	FileName     string `gorm:"size:255" json:"fileName"`
	FileSize     int64  `json:"fileSize"`
	StudentID    uint   `gorm:"not null;uniqueIndex:idx_student_assignment" json:"studentId"`
	AssignmentID uint   `gorm:"not null;uniqueIndex:idx_student_assignment" json:"assignmentId"`

	SubmittedAt time.Time `json:"submittedAt"`

	// Grading, set by the class owner. GradedAt stays nil until graded.
	Grade    string     `gorm:"size:10" json:"grade"`
	Feedback string     `gorm:"type:text" json:"feedback"`
	GradedAt *time.Time `json:"gradedAt"`

	Student     *User        `gorm:"foreignKey:StudentID" json:"student,omitempty"`
	PeerReviews []PeerReview `gorm:"foreignKey:SubmissionID" json:"peerReviews,omitempty"`
}

func (Submission) TableName() string {
	return "submissions"
}

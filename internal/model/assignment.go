package model

import "time"

type Assignment struct {
	BaseModel
	Title       string     `gorm:"size:200;not null" json:"title"`
	Description string     `gorm:"type:text" json:"description"`
	DueDate     *time.Time `json:"dueDate"`
	ClassID     uint       `gorm:"index;not null" json:"classId"`

	Submissions []Submission `gorm:"foreignKey:AssignmentID" json:"submissions,omitempty"`
}

func (Assignment) TableName() string {
	return "assignments"
}

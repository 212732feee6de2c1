package model

import "time"

type Class struct {
	BaseModel
	Name        string `gorm:"size:200;not null" json:"name"`
	Subject     string `gorm:"size:200;not null" json:"subject"`
	Grade       string `gorm:"size:50" json:"grade"`
	Description string `gorm:"type:text" json:"description"`
	Passcode    string `gorm:"size:10;not null" json:"-"`
	OwnerID     uint   `gorm:"index;not null" json:"ownerId"`

	Owner       *User        `gorm:"foreignKey:OwnerID" json:"owner,omitempty"`
	Students    []*User      `gorm:"many2many:class_students;" json:"students,omitempty"`
	Assignments []Assignment `gorm:"foreignKey:ClassID" json:"assignments,omitempty"`
}

func (Class) TableName() string {
	return "classes"
}

// ClassStudent is the enrollment join row. The composite primary key is
// the authoritative guard against duplicate enrollment.
type ClassStudent struct {
	ClassID  uint      `gorm:"primaryKey"`
	UserID   uint      `gorm:"primaryKey"`
	JoinedAt time.Time `gorm:"autoCreateTime"`
}

func (ClassStudent) TableName() string {
	return "class_students"
}

package model

type UserRole string

const (
	RoleStudent UserRole = "student"
	RoleTeacher UserRole = "teacher"
)

// ValidRole reports whether s is one of the two supported roles.
func ValidRole(s string) bool {
	return s == string(RoleStudent) || s == string(RoleTeacher)
}

type User struct {
	BaseModel
	Name         string   `gorm:"size:150;not null" json:"name"`
	Email        string   `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string   `gorm:"size:255;not null" json:"-"`
	Role         UserRole `gorm:"size:20;not null" json:"role"`

	OwnedClasses    []Class  `gorm:"foreignKey:OwnerID" json:"-"`
	EnrolledClasses []*Class `gorm:"many2many:class_students;" json:"-"`
}

func (User) TableName() string {
	return "users"
}

package model

// swagger:model Classroom
type Classroom struct {
	BaseModel
	Name      string `gorm:"size:100;not null" json:"name"`
	TeacherID uint   `gorm:"index;type:bigint unsigned;not null" json:"teacherId"`
	Teacher   *User  `gorm:"foreignKey:TeacherID" json:"teacher,omitempty"`
	Students  []User `gorm:"many2many:classroom_students" json:"students,omitempty"`
}

func (Classroom) TableName() string {
	return "classrooms"
}

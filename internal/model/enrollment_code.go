package model

// EnrollmentCode is the join token for a classroom, one per classroom.
// Codes are unique across all classrooms, not just within one.
// swagger:model EnrollmentCode
type EnrollmentCode struct {
	BaseModel
	Code        string `gorm:"size:16;uniqueIndex;not null" json:"code"`
	ClassroomID uint   `gorm:"uniqueIndex;type:bigint unsigned;not null" json:"classroomId"`
	IsActive    bool   `gorm:"default:true" json:"isActive"`
}

func (EnrollmentCode) TableName() string {
	return "enrollment_codes"
}

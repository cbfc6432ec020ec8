package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"time"

	"classquiz_backend/internal/config"
	"classquiz_backend/internal/model"
	"classquiz_backend/internal/repository"
	"classquiz_backend/internal/util"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const (
	codeAlphabet       = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	codeLength         = 8
	codeGenMaxAttempts = 10

	codeCacheKeyPrefix = "enrollment_code:classroom:"
)

type EnrollmentService struct {
	CodeRepo      *repository.EnrollmentCodeRepository
	ClassroomRepo *repository.ClassroomRepository
	UserRepo      *repository.UserRepository
	Redis         *redis.Client
	Cfg           *config.Config
	Logger        *zap.Logger
}

func NewEnrollmentService(
	codeRepo *repository.EnrollmentCodeRepository,
	classroomRepo *repository.ClassroomRepository,
	userRepo *repository.UserRepository,
	rdb *redis.Client,
	cfg *config.Config,
	logger *zap.Logger,
) *EnrollmentService {
	return &EnrollmentService{
		CodeRepo:      codeRepo,
		ClassroomRepo: classroomRepo,
		UserRepo:      userRepo,
		Redis:         rdb,
		Cfg:           cfg,
		Logger:        logger,
	}
}

// generateCode draws an 8-character code over A-Z0-9 that no classroom is
// using yet. Collisions are vanishingly rare at this keyspace, but the
// lookup loop keeps the guarantee explicit.
func (s *EnrollmentService) generateCode() (string, error) {
	for attempt := 0; attempt < codeGenMaxAttempts; attempt++ {
		buf := make([]byte, codeLength)
		for i := range buf {
			n, err := rand.Int(rand.Reader, big.NewInt(int64(len(codeAlphabet))))
			if err != nil {
				return "", err
			}
			buf[i] = codeAlphabet[n.Int64()]
		}
		code := string(buf)

		exists, err := s.CodeRepo.CodeExists(code)
		if err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", fmt.Errorf("could not generate a unique enrollment code after %d attempts", codeGenMaxAttempts)
}

// GetForClassroom returns the classroom's enrollment code, minting one on
// first request. A classroom has at most one code row; repeated calls hand
// back the same record.
func (s *EnrollmentService) GetForClassroom(classroomID, teacherID uint, role model.UserRole) (*model.EnrollmentCode, error) {
	if _, err := s.ClassroomRepo.FindVisible(classroomID, teacherID, role); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrClassroomNotFound
		}
		return nil, err
	}

	code, err := s.CodeRepo.FindByClassroom(classroomID)
	if err == nil {
		return code, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	value, err := s.generateCode()
	if err != nil {
		return nil, err
	}
	code = &model.EnrollmentCode{
		Code:        value,
		ClassroomID: classroomID,
		IsActive:    true,
	}
	if err := s.CodeRepo.Create(code); err != nil {
		return nil, err
	}
	s.cacheCode(code)
	return code, nil
}

// Rotate replaces the classroom's code with a fresh value and reactivates
// it, keeping the single row per classroom.
func (s *EnrollmentService) Rotate(classroomID, teacherID uint, role model.UserRole) (*model.EnrollmentCode, error) {
	code, err := s.GetForClassroom(classroomID, teacherID, role)
	if err != nil {
		return nil, err
	}

	value, err := s.generateCode()
	if err != nil {
		return nil, err
	}
	code.Code = value
	code.IsActive = true
	if err := s.CodeRepo.Update(code); err != nil {
		return nil, err
	}
	s.invalidateCode(classroomID)
	s.cacheCode(code)
	return code, nil
}

// SetActive toggles the code without changing its value.
func (s *EnrollmentService) SetActive(classroomID, teacherID uint, role model.UserRole, active bool) (*model.EnrollmentCode, error) {
	code, err := s.GetForClassroom(classroomID, teacherID, role)
	if err != nil {
		return nil, err
	}
	code.IsActive = active
	if err := s.CodeRepo.Update(code); err != nil {
		return nil, err
	}
	s.invalidateCode(classroomID)
	if active {
		s.cacheCode(code)
	}
	return code, nil
}

// Enroll joins the student to the classroom behind the code. Inactive or
// unknown codes are rejected with the same error so the code value leaks
// nothing about which classrooms exist.
func (s *EnrollmentService) Enroll(code string, studentID uint) (*model.Classroom, error) {
	record, err := s.CodeRepo.FindByCode(code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, util.ErrInvalidCode
		}
		return nil, err
	}
	if !record.IsActive {
		return nil, util.ErrInvalidCode
	}

	enrolled, err := s.ClassroomRepo.IsStudentEnrolled(record.ClassroomID, studentID)
	if err != nil {
		return nil, err
	}
	if enrolled {
		return nil, util.ErrAlreadyEnrolled
	}

	student, err := s.UserRepo.FindByID(studentID)
	if err != nil {
		return nil, err
	}
	if err := s.ClassroomRepo.AddStudent(record.ClassroomID, student); err != nil {
		return nil, err
	}
	return s.ClassroomRepo.FindByID(record.ClassroomID)
}

func (s *EnrollmentService) cacheCode(code *model.EnrollmentCode) {
	if s.Redis == nil {
		return
	}
	key := fmt.Sprintf("%s%d", codeCacheKeyPrefix, code.ClassroomID)
	ttl := time.Duration(s.Cfg.Enrollment.CodeCacheTTLMinutes) * time.Minute
	if err := s.Redis.Set(context.Background(), key, code.Code, ttl).Err(); err != nil {
		s.Logger.Warn("failed to cache enrollment code", zap.Uint("classroom_id", code.ClassroomID), zap.Error(err))
	}
}

func (s *EnrollmentService) invalidateCode(classroomID uint) {
	if s.Redis == nil {
		return
	}
	key := fmt.Sprintf("%s%d", codeCacheKeyPrefix, classroomID)
	if err := s.Redis.Del(context.Background(), key).Err(); err != nil {
		s.Logger.Warn("failed to drop cached enrollment code", zap.Uint("classroom_id", classroomID), zap.Error(err))
	}
}

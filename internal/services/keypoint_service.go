package services

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/yukikurage/study-planner-api/internal/constants"
	"github.com/yukikurage/study-planner-api/internal/models"
	"github.com/yukikurage/study-planner-api/internal/repository"
)

// KeyPointService manages a user's free-form study notes.
type KeyPointService struct {
	keyPointRepo repository.KeyPointRepository
}

func NewKeyPointService(keyPointRepo repository.KeyPointRepository) *KeyPointService {
	return &KeyPointService{keyPointRepo: keyPointRepo}
}

func (s *KeyPointService) CreateKeyPoint(ownerID uint64, content string) (*models.KeyPoint, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, invalid("content", "content is required")
	}
	if utf8.RuneCountInString(content) > constants.MaxKeyPointLength {
		return nil, invalid("content", "content must be at most %d characters", constants.MaxKeyPointLength)
	}

	keyPoint := &models.KeyPoint{
		Content: content,
		UserID:  ownerID,
	}
	if err := s.keyPointRepo.Create(keyPoint); err != nil {
		return nil, fmt.Errorf("failed to create key point: %w", err)
	}
	return keyPoint, nil
}

func (s *KeyPointService) ListKeyPoints(ownerID uint64) ([]models.KeyPoint, error) {
	keyPoints, err := s.keyPointRepo.ListByOwner(ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list key points: %w", err)
	}
	return keyPoints, nil
}

// DeleteKeyPoint removes a key point. Missing and foreign ids both yield ErrKeyPointNotFound.
func (s *KeyPointService) DeleteKeyPoint(ownerID, keyPointID uint64) error {
	if err := s.keyPointRepo.Delete(keyPointID, ownerID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrKeyPointNotFound
		}
		return fmt.Errorf("failed to delete key point: %w", err)
	}
	return nil
}

package service

import (
	"errors"

	"github.com/DmitriiShilkin/creative-hub/internal/repository"
	"gorm.io/gorm"
)

// FavoriteService owns the favorite markers consumed by the listing flags.
type FavoriteService struct {
	favoriteRepo repository.FavoriteRepositoryInterface
	eventRepo    repository.EventRepositoryInterface
	jobRepo      repository.JobRepositoryInterface
}

func NewFavoriteService(
	favoriteRepo repository.FavoriteRepositoryInterface,
	eventRepo repository.EventRepositoryInterface,
	jobRepo repository.JobRepositoryInterface,
) *FavoriteService {
	return &FavoriteService{
		favoriteRepo: favoriteRepo,
		eventRepo:    eventRepo,
		jobRepo:      jobRepo,
	}
}

func (s *FavoriteService) AddEventFavorite(userID, eventID uint) error {
	event, err := s.eventRepo.FindByID(eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Kind: "event", IDs: []uint{eventID}}
		}
		return err
	}
	if !repository.CanView(event.IsDraft, event.CreatorID, &userID) {
		return &NotFoundError{Kind: "event", IDs: []uint{eventID}}
	}

	if err := s.favoriteRepo.AddEventFavorite(userID, eventID); err != nil {
		if errors.Is(err, repository.ErrAlreadyMarked) {
			return ErrAlreadyFavorite
		}
		return err
	}
	return nil
}

func (s *FavoriteService) RemoveEventFavorite(userID, eventID uint) error {
	err := s.favoriteRepo.RemoveEventFavorite(userID, eventID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFavorite
	}
	return err
}

func (s *FavoriteService) AddJobFavorite(userID, jobID uint) error {
	job, err := s.jobRepo.FindByID(jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Kind: "job", IDs: []uint{jobID}}
		}
		return err
	}
	if !repository.CanView(job.IsDraft, job.AuthorID, &userID) {
		return &NotFoundError{Kind: "job", IDs: []uint{jobID}}
	}

	if err := s.favoriteRepo.AddJobFavorite(userID, jobID); err != nil {
		if errors.Is(err, repository.ErrAlreadyMarked) {
			return ErrAlreadyFavorite
		}
		return err
	}
	return nil
}

func (s *FavoriteService) RemoveJobFavorite(userID, jobID uint) error {
	err := s.favoriteRepo.RemoveJobFavorite(userID, jobID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotFavorite
	}
	return err
}

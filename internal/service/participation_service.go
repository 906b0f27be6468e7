package service

import (
	"errors"

	"github.com/DmitriiShilkin/creative-hub/internal/models"
	"github.com/DmitriiShilkin/creative-hub/internal/repository"
	"gorm.io/gorm"
)

// ParticipationService writes the sub-collections the counters are computed
// from: event participation rows and job proposals.
type ParticipationService struct {
	participantRepo repository.ParticipantRepositoryInterface
	proposalRepo    repository.ProposalRepositoryInterface
	eventRepo       repository.EventRepositoryInterface
	jobRepo         repository.JobRepositoryInterface
}

func NewParticipationService(
	participantRepo repository.ParticipantRepositoryInterface,
	proposalRepo repository.ProposalRepositoryInterface,
	eventRepo repository.EventRepositoryInterface,
	jobRepo repository.JobRepositoryInterface,
) *ParticipationService {
	return &ParticipationService{
		participantRepo: participantRepo,
		proposalRepo:    proposalRepo,
		eventRepo:       eventRepo,
		jobRepo:         jobRepo,
	}
}

func (s *ParticipationService) JoinEvent(userID, eventID uint) error {
	event, err := s.eventRepo.FindByID(eventID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &NotFoundError{Kind: "event", IDs: []uint{eventID}}
		}
		return err
	}
	// Drafts accept no participants, not even from the creator.
	if event.IsDraft {
		return &NotFoundError{Kind: "event", IDs: []uint{eventID}}
	}

	if err := s.participantRepo.Add(eventID, userID); err != nil {
		if errors.Is(err, repository.ErrAlreadyMarked) {
			return ErrAlreadyParticipant
		}
		return err
	}
	return nil
}

func (s *ParticipationService) LeaveEvent(userID, eventID uint) error {
	err := s.participantRepo.Remove(eventID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotParticipant
	}
	return err
}

type SubmitProposalInput struct {
	CoverLetter string `json:"cover_letter"`
	Price       *int64 `json:"price"`
}

func (s *ParticipationService) SubmitProposal(userID, jobID uint, input SubmitProposalInput) (*models.Proposal, error) {
	job, err := s.jobRepo.FindByID(jobID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, &NotFoundError{Kind: "job", IDs: []uint{jobID}}
		}
		return nil, err
	}
	if job.IsDraft {
		return nil, &NotFoundError{Kind: "job", IDs: []uint{jobID}}
	}
	if job.AuthorID == userID {
		return nil, ErrOwnItem
	}

	proposal := &models.Proposal{
		JobID:       jobID,
		UserID:      userID,
		CoverLetter: input.CoverLetter,
		Price:       input.Price,
	}
	if err := s.proposalRepo.Create(proposal); err != nil {
		if errors.Is(err, repository.ErrAlreadyMarked) {
			return nil, ErrAlreadyApplied
		}
		return nil, err
	}
	return proposal, nil
}

func (s *ParticipationService) WithdrawProposal(userID, jobID uint) error {
	err := s.proposalRepo.Delete(jobID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrNotParticipant
	}
	return err
}

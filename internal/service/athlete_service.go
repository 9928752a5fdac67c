package service

import (
	"alcyxob/coach-platform/internal/domain"
	"alcyxob/coach-platform/internal/repository"
	"context"
	"errors"
	"regexp"
	"strings"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrAthleteNotFound     = errors.New("athlete not found")
	ErrAthleteAccessDenied = errors.New("athlete is not on this coach's roster")
	ErrInvalidTransition   = errors.New("status change not allowed")
	ErrNoValidEmails       = errors.New("no valid email addresses given")
)

var emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// BulkAddResult reports what a bulk add created and which tokens it dropped.
type BulkAddResult struct {
	Created  []domain.Athlete `json:"created"`
	Rejected []string         `json:"rejected"`
}

type AthleteService interface {
	// AddAthletes parses a comma or newline separated list of emails and
	// creates one Pending athlete per valid, not yet listed address.
	AddAthletes(ctx context.Context, coachID primitive.ObjectID, emails string, category domain.AthleteCategory) (*BulkAddResult, error)
	ListAthletes(ctx context.Context, coachID primitive.ObjectID) ([]domain.Athlete, error)
	GetAthlete(ctx context.Context, coachID, athleteID primitive.ObjectID) (*domain.Athlete, error)
	FreezeAthlete(ctx context.Context, coachID, athleteID primitive.ObjectID) (*domain.Athlete, error)
	// UnfreezeAthlete always moves a frozen athlete to Connected.
	UnfreezeAthlete(ctx context.Context, coachID, athleteID primitive.ObjectID) (*domain.Athlete, error)
	DeleteAthlete(ctx context.Context, coachID, athleteID primitive.ObjectID) error
}

type athleteService struct {
	athleteRepo repository.AthleteRepository
	now         clock
}

func NewAthleteService(athleteRepo repository.AthleteRepository) AthleteService {
	return &athleteService{
		athleteRepo: athleteRepo,
		now:         utcNow,
	}
}

// splitEmailTags splits on commas and line breaks and drops empty tokens.
func splitEmailTags(input string) []string {
	fields := strings.FieldsFunc(input, func(r rune) bool {
		return r == ',' || r == '\n' || r == '\r'
	})
	tokens := make([]string, 0, len(fields))
	for _, f := range fields {
		if f = strings.TrimSpace(f); f != "" {
			tokens = append(tokens, f)
		}
	}
	return tokens
}

func (s *athleteService) AddAthletes(ctx context.Context, coachID primitive.ObjectID, emails string, category domain.AthleteCategory) (*BulkAddResult, error) {
	if category == "" {
		category = domain.CategoryOnline
	}
	if !category.Valid() {
		return nil, validationError("unknown category %q", category)
	}

	result := &BulkAddResult{Created: []domain.Athlete{}, Rejected: []string{}}
	seen := make(map[string]bool)
	joined := s.now()
	var batch []domain.Athlete
	for _, token := range splitEmailTags(emails) {
		if !emailPattern.MatchString(token) {
			result.Rejected = append(result.Rejected, token)
			continue
		}
		// stored as typed; case only matters for spotting repeats
		key := strings.ToLower(token)
		if seen[key] {
			continue
		}
		seen[key] = true
		batch = append(batch, domain.Athlete{
			CoachID:    coachID,
			Email:      token,
			Category:   category,
			Status:     domain.AthletePending,
			JoinedDate: joined,
		})
	}
	if len(batch) == 0 {
		return nil, ErrNoValidEmails
	}

	created, err := s.athleteRepo.CreateMany(ctx, batch)
	if err != nil {
		return nil, err
	}
	result.Created = created
	log.Infof("coach %s invited %d athletes, %d tokens rejected", coachID.Hex(), len(created), len(result.Rejected))
	return result, nil
}

func (s *athleteService) ListAthletes(ctx context.Context, coachID primitive.ObjectID) ([]domain.Athlete, error) {
	return s.athleteRepo.GetByCoachID(ctx, coachID)
}

func (s *athleteService) GetAthlete(ctx context.Context, coachID, athleteID primitive.ObjectID) (*domain.Athlete, error) {
	return lookupAthlete(ctx, s.athleteRepo, coachID, athleteID)
}

func lookupAthlete(ctx context.Context, repo repository.AthleteRepository, coachID, id primitive.ObjectID) (*domain.Athlete, error) {
	a, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAthleteNotFound
		}
		return nil, err
	}
	if a.CoachID != coachID {
		return nil, ErrAthleteAccessDenied
	}
	return a, nil
}

func (s *athleteService) setStatus(ctx context.Context, coachID, athleteID primitive.ObjectID, allowed func(domain.AthleteStatus) bool, to domain.AthleteStatus) (*domain.Athlete, error) {
	a, err := lookupAthlete(ctx, s.athleteRepo, coachID, athleteID)
	if err != nil {
		return nil, err
	}
	if !allowed(a.Status) {
		return nil, ErrInvalidTransition
	}
	if err := s.athleteRepo.UpdateStatus(ctx, athleteID, to); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrAthleteNotFound
		}
		return nil, err
	}
	a.Status = to
	return a, nil
}

func (s *athleteService) FreezeAthlete(ctx context.Context, coachID, athleteID primitive.ObjectID) (*domain.Athlete, error) {
	return s.setStatus(ctx, coachID, athleteID, func(st domain.AthleteStatus) bool {
		return st != domain.AthleteFrozen
	}, domain.AthleteFrozen)
}

func (s *athleteService) UnfreezeAthlete(ctx context.Context, coachID, athleteID primitive.ObjectID) (*domain.Athlete, error) {
	return s.setStatus(ctx, coachID, athleteID, func(st domain.AthleteStatus) bool {
		return st == domain.AthleteFrozen
	}, domain.AthleteConnected)
}

func (s *athleteService) DeleteAthlete(ctx context.Context, coachID, athleteID primitive.ObjectID) error {
	if _, err := lookupAthlete(ctx, s.athleteRepo, coachID, athleteID); err != nil {
		return err
	}
	if err := s.athleteRepo.Delete(ctx, athleteID, coachID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrAthleteNotFound
		}
		return err
	}
	return nil
}

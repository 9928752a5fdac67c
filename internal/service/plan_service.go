package service

import (
	"alcyxob/coach-platform/internal/builder"
	"alcyxob/coach-platform/internal/config"
	"alcyxob/coach-platform/internal/domain"
	"alcyxob/coach-platform/internal/repository"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	ErrPlanNotFound     = errors.New("plan not found")
	ErrPlanAccessDenied = errors.New("access denied to this plan")
	ErrDraftNotFound    = errors.New("plan draft not found or expired")
	ErrDraftTooLarge    = errors.New("plan draft is too large to keep")
)

const megabyte = 1024 * 1024

type PlanService interface {
	// ListPlans returns templates and the coach's custom plans in one list,
	// templates first. Plan.Source tells them apart.
	ListPlans(ctx context.Context, coachID primitive.ObjectID) ([]domain.Plan, error)
	GetPlan(ctx context.Context, coachID, planID primitive.ObjectID) (*domain.Plan, error)

	StartDraft(ctx context.Context, coachID primitive.ObjectID) (*builder.PlanWizard, error)
	GetDraft(ctx context.Context, coachID, draftID primitive.ObjectID) (*builder.PlanWizard, error)
	SetBasicInfo(ctx context.Context, coachID, draftID primitive.ObjectID, info builder.BasicInfo) (*builder.PlanWizard, error)
	NextStep(ctx context.Context, coachID, draftID primitive.ObjectID) (*builder.PlanWizard, error)
	PreviousStep(ctx context.Context, coachID, draftID primitive.ObjectID) (*builder.PlanWizard, error)

	// Day-slot and week operations. week and day are 0-based indices.
	AssignWorkout(ctx context.Context, coachID, draftID primitive.ObjectID, week, day int, workoutID primitive.ObjectID) (*builder.PlanWizard, error)
	RemoveWorkout(ctx context.Context, coachID, draftID primitive.ObjectID, week, day int) (*builder.PlanWizard, error)
	SetRestDay(ctx context.Context, coachID, draftID primitive.ObjectID, week, day int) (*builder.PlanWizard, error)
	AddWeek(ctx context.Context, coachID, draftID primitive.ObjectID) (*builder.PlanWizard, error)
	CloneWeek(ctx context.Context, coachID, draftID primitive.ObjectID, week int) (*builder.PlanWizard, error)
	DeleteWeek(ctx context.Context, coachID, draftID primitive.ObjectID, week int) (*builder.PlanWizard, error)

	// SaveDraft stores the reviewed draft as a custom plan and discards the draft.
	SaveDraft(ctx context.Context, coachID, draftID primitive.ObjectID) (*domain.Plan, error)
}

type planService struct {
	planRepo    repository.PlanRepository
	workoutRepo repository.WorkoutRepository
	drafts      *freecache.Cache
	draftTTL    time.Duration
	// serialises read-modify-write on drafts
	draftsMu sync.Mutex
	now      clock
}

// NewPlanService keeps wizard drafts in an in-process cache of cacheSizeMB;
// drafts untouched for draftTTL are evicted. The cache never shrinks below
// config.MinDraftCacheSizeMB, since a single entry may hold at most 1/1024
// of the cache and a full-length draft has to fit.
func NewPlanService(planRepo repository.PlanRepository, workoutRepo repository.WorkoutRepository, cacheSizeMB int, draftTTL time.Duration) PlanService {
	if cacheSizeMB < config.MinDraftCacheSizeMB {
		log.Warnf("draft cache of %d MB is too small, using %d MB", cacheSizeMB, config.MinDraftCacheSizeMB)
		cacheSizeMB = config.MinDraftCacheSizeMB
	}
	if draftTTL < time.Second {
		draftTTL = 24 * time.Hour
	}
	return &planService{
		planRepo:    planRepo,
		workoutRepo: workoutRepo,
		drafts:      freecache.NewCache(cacheSizeMB * megabyte),
		draftTTL:    draftTTL,
		now:         utcNow,
	}
}

func (s *planService) ListPlans(ctx context.Context, coachID primitive.ObjectID) ([]domain.Plan, error) {
	custom, err := s.planRepo.GetByCoachID(ctx, coachID)
	if err != nil {
		return nil, err
	}
	return append(domain.PlanTemplates(), custom...), nil
}

func (s *planService) GetPlan(ctx context.Context, coachID, planID primitive.ObjectID) (*domain.Plan, error) {
	return lookupPlan(ctx, s.planRepo, coachID, planID)
}

// lookupPlan resolves a template or one of the coach's custom plans.
func lookupPlan(ctx context.Context, repo repository.PlanRepository, coachID, id primitive.ObjectID) (*domain.Plan, error) {
	if p, ok := domain.PlanTemplate(id); ok {
		return p, nil
	}
	p, err := repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPlanNotFound
		}
		return nil, err
	}
	if p.CoachID != coachID {
		return nil, ErrPlanAccessDenied
	}
	return p, nil
}

func draftKey(id primitive.ObjectID) []byte {
	return []byte("plan-draft::" + id.Hex())
}

func (s *planService) storeDraft(w *builder.PlanWizard) error {
	raw, err := json.Marshal(w)
	if err != nil {
		return fmt.Errorf("marshal draft: %w", err)
	}
	if err := s.drafts.Set(draftKey(w.ID), raw, int(s.draftTTL.Seconds())); err != nil {
		if errors.Is(err, freecache.ErrLargeEntry) {
			err = ErrDraftTooLarge
		}
		return fmt.Errorf("cache draft %s: %w", w.ID.Hex(), err)
	}
	return nil
}

func (s *planService) loadDraft(coachID, draftID primitive.ObjectID) (*builder.PlanWizard, error) {
	raw, err := s.drafts.Get(draftKey(draftID))
	if err != nil {
		if errors.Is(err, freecache.ErrNotFound) {
			return nil, ErrDraftNotFound
		}
		return nil, err
	}
	w := &builder.PlanWizard{}
	if err := json.Unmarshal(raw, w); err != nil {
		return nil, fmt.Errorf("unmarshal draft %s: %w", draftID.Hex(), err)
	}
	// another coach's draft looks missing
	if w.CoachID != coachID {
		return nil, ErrDraftNotFound
	}
	return w, nil
}

func (s *planService) StartDraft(_ context.Context, coachID primitive.ObjectID) (*builder.PlanWizard, error) {
	w := builder.NewPlanWizard(coachID, s.now())
	if err := s.storeDraft(w); err != nil {
		return nil, err
	}
	log.Debugf("coach %s started plan draft %s", coachID.Hex(), w.ID.Hex())
	return w, nil
}

func (s *planService) GetDraft(_ context.Context, coachID, draftID primitive.ObjectID) (*builder.PlanWizard, error) {
	return s.loadDraft(coachID, draftID)
}

// mutate applies fn to the draft and stores it again, refreshing its TTL.
// Nothing is stored when fn fails.
func (s *planService) mutate(coachID, draftID primitive.ObjectID, fn func(*builder.PlanWizard) error) (*builder.PlanWizard, error) {
	s.draftsMu.Lock()
	defer s.draftsMu.Unlock()

	w, err := s.loadDraft(coachID, draftID)
	if err != nil {
		return nil, err
	}
	if err := fn(w); err != nil {
		return nil, err
	}
	if err := s.storeDraft(w); err != nil {
		return nil, err
	}
	return w, nil
}

func (s *planService) SetBasicInfo(_ context.Context, coachID, draftID primitive.ObjectID, info builder.BasicInfo) (*builder.PlanWizard, error) {
	if info.DurationWeeks < 0 || info.WorkoutsPerWeek < 0 || info.WorkoutsPerWeek > domain.DaysPerWeek {
		return nil, validationError("duration and workouts per week must be within range")
	}
	return s.mutate(coachID, draftID, func(w *builder.PlanWizard) error {
		return w.SetBasicInfo(info)
	})
}

func (s *planService) NextStep(_ context.Context, coachID, draftID primitive.ObjectID) (*builder.PlanWizard, error) {
	return s.mutate(coachID, draftID, (*builder.PlanWizard).Next)
}

func (s *planService) PreviousStep(_ context.Context, coachID, draftID primitive.ObjectID) (*builder.PlanWizard, error) {
	return s.mutate(coachID, draftID, (*builder.PlanWizard).Back)
}

func (s *planService) AssignWorkout(ctx context.Context, coachID, draftID primitive.ObjectID, week, day int, workoutID primitive.ObjectID) (*builder.PlanWizard, error) {
	workout, err := lookupWorkout(ctx, s.workoutRepo, coachID, workoutID)
	if err != nil {
		return nil, err
	}
	return s.mutate(coachID, draftID, func(w *builder.PlanWizard) error {
		return w.AssignWorkout(week, day, workout)
	})
}

func (s *planService) RemoveWorkout(_ context.Context, coachID, draftID primitive.ObjectID, week, day int) (*builder.PlanWizard, error) {
	return s.mutate(coachID, draftID, func(w *builder.PlanWizard) error {
		return w.RemoveWorkout(week, day)
	})
}

func (s *planService) SetRestDay(_ context.Context, coachID, draftID primitive.ObjectID, week, day int) (*builder.PlanWizard, error) {
	return s.mutate(coachID, draftID, func(w *builder.PlanWizard) error {
		return w.SetRestDay(week, day)
	})
}

func (s *planService) AddWeek(_ context.Context, coachID, draftID primitive.ObjectID) (*builder.PlanWizard, error) {
	return s.mutate(coachID, draftID, (*builder.PlanWizard).AddWeek)
}

func (s *planService) CloneWeek(_ context.Context, coachID, draftID primitive.ObjectID, week int) (*builder.PlanWizard, error) {
	return s.mutate(coachID, draftID, func(w *builder.PlanWizard) error {
		return w.CloneWeek(week)
	})
}

func (s *planService) DeleteWeek(_ context.Context, coachID, draftID primitive.ObjectID, week int) (*builder.PlanWizard, error) {
	return s.mutate(coachID, draftID, func(w *builder.PlanWizard) error {
		return w.DeleteWeek(week)
	})
}

func (s *planService) SaveDraft(ctx context.Context, coachID, draftID primitive.ObjectID) (*domain.Plan, error) {
	s.draftsMu.Lock()
	defer s.draftsMu.Unlock()

	w, err := s.loadDraft(coachID, draftID)
	if err != nil {
		return nil, err
	}
	plan, err := w.Build(s.now())
	if err != nil {
		return nil, err
	}
	if _, err := s.planRepo.Create(ctx, plan); err != nil {
		return nil, err
	}
	s.drafts.Del(draftKey(draftID))

	log.Infof("coach %s saved plan %s (%d weeks, %d workouts)", coachID.Hex(), plan.ID.Hex(), len(plan.Weeks), plan.TotalWorkouts)
	return plan, nil
}

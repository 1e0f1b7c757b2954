package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"photo-indexer/domain"
	"photo-indexer/usecase"
)

type stubProfileRepo struct {
	profiles []*domain.Profile
}

func (s *stubProfileRepo) CreateProfile(ctx context.Context, profile *domain.Profile) error {
	return nil
}

func (s *stubProfileRepo) GetProfile(ctx context.Context, id string, source domain.SourceType) (*domain.Profile, error) {
	return nil, nil
}

func (s *stubProfileRepo) ListProfiles(ctx context.Context, source domain.SourceType) ([]*domain.Profile, error) {
	return s.profiles, nil
}

func (s *stubProfileRepo) StreamProfiles(ctx context.Context, source domain.SourceType, fn func(*domain.Profile)) error {
	for _, p := range s.profiles {
		if p.Source() == source {
			fn(p)
		}
	}
	return nil
}

type countingQueue struct {
	mu   sync.Mutex
	jobs []domain.ImportJob
}

func (q *countingQueue) Enqueue(ctx context.Context, job domain.ImportJob) error {
	q.mu.Lock()
	defer q.mu.Unlock()
	q.jobs = append(q.jobs, job)
	return nil
}

func (q *countingQueue) count() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.jobs)
}

func TestSchedulerSweepsUntilCancelled(t *testing.T) {
	profile, err := domain.NewProfile("1234", "whitehouse", domain.ProfileUser, domain.SourceInstagram)
	if err != nil {
		t.Fatal(err)
	}
	queue := &countingQueue{}
	refresh := usecase.NewRefreshProfilesUsecase(&stubProfileRepo{profiles: []*domain.Profile{profile}}, queue)

	s := New(refresh, 5*time.Millisecond)
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan struct{})
	go func() {
		s.Start(ctx)
		close(done)
	}()

	deadline := time.After(time.Second)
	for queue.count() < 2 {
		select {
		case <-deadline:
			t.Fatal("scheduler never swept twice")
		case <-time.After(time.Millisecond):
		}
	}

	cancel()
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("scheduler did not stop on cancel")
	}

	job := queue.jobs[0]
	if job.DaysAgo == nil || *job.DaysAgo != usecase.DaysBackToCheckForUpdates {
		t.Errorf("job DaysAgo = %v, want the fixed lookback", job.DaysAgo)
	}
}

package store

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"releasetrain/internal/domain"
	"releasetrain/internal/domain/types"
)

const milestonesFile = "milestones.json"

// ErrDuplicateMilestone is returned when a repository already has a
// milestone with the same title.
var ErrDuplicateMilestone = errors.New("milestone already exists")

// MilestoneFileStore keeps milestones for any number of repositories in a
// single JSON file, keyed by "owner/name".
type MilestoneFileStore struct {
	dir string
	mu  sync.Mutex
}

// NewMilestoneFileStore returns a MilestoneFileStore rooted at dir.
func NewMilestoneFileStore(dir string) *MilestoneFileStore {
	return &MilestoneFileStore{dir: dir}
}

// ListMilestones returns the open milestones of repo in creation order.
func (s *MilestoneFileStore) ListMilestones(ctx context.Context, repo domain.RepositoryRef) ([]domain.Milestone, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load()
	if err != nil {
		return nil, err
	}
	var open []domain.Milestone
	for _, m := range all[repo.String()] {
		if m.State == types.MilestoneOpen {
			open = append(open, m)
		}
	}
	return open, nil
}

// CreateMilestone stores milestone under the next free number.
func (s *MilestoneFileStore) CreateMilestone(
	ctx context.Context,
	repo domain.RepositoryRef,
	milestone domain.Milestone,
) (domain.Milestone, error) {
	if err := ctx.Err(); err != nil {
		return domain.Milestone{}, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load()
	if err != nil {
		return domain.Milestone{}, err
	}
	key := repo.String()
	var next int64 = 1
	for _, m := range all[key] {
		if m.Title == milestone.Title {
			return domain.Milestone{}, fmt.Errorf("%w: %s in %s", ErrDuplicateMilestone, milestone.Title, key)
		}
		if m.Number >= next {
			next = m.Number + 1
		}
	}

	milestone.Number = next
	if milestone.State == "" {
		milestone.State = types.MilestoneOpen
	}
	milestone.DueOn = milestone.DueOn.UTC()
	all[key] = append(all[key], milestone)

	if err := os.MkdirAll(s.dir, 0o700); err != nil {
		return domain.Milestone{}, err
	}
	if err := writeJSON(s.path(), all, 0o600); err != nil {
		return domain.Milestone{}, err
	}
	return milestone, nil
}

func (s *MilestoneFileStore) load() (map[string][]domain.Milestone, error) {
	all := make(map[string][]domain.Milestone)
	if err := readJSON(s.path(), &all); err != nil {
		return nil, err
	}
	// A file holding JSON null decodes to a nil map.
	if all == nil {
		all = make(map[string][]domain.Milestone)
	}
	return all, nil
}

func (s *MilestoneFileStore) path() string {
	return filepath.Join(s.dir, milestonesFile)
}

// Compile-time assertion that MilestoneFileStore implements domain.MilestoneTracker.
var _ domain.MilestoneTracker = (*MilestoneFileStore)(nil)

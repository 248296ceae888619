package story

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"teamtrack-api/internal/domain/entity"
	apperrors "teamtrack-api/pkg/errors"
)

// fakeStoryRepo 内存仓储，可按故事文本注入插入失败
type fakeStoryRepo struct {
	mu      sync.Mutex
	saved   []*entity.UserStory
	failOn  map[string]error
	listErr error
}

func newFakeStoryRepo() *fakeStoryRepo {
	return &fakeStoryRepo{failOn: make(map[string]error)}
}

func (r *fakeStoryRepo) Insert(ctx context.Context, story *entity.UserStory) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err, ok := r.failOn[story.Story]; ok {
		return err
	}
	r.saved = append(r.saved, story)
	return nil
}

func (r *fakeStoryRepo) ListByProject(ctx context.Context, projectID string) ([]*entity.UserStory, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.listErr != nil {
		return nil, r.listErr
	}
	var out []*entity.UserStory
	for _, s := range r.saved {
		if s.ProjectID == projectID {
			out = append(out, s)
		}
	}
	return out, nil
}

func TestGatewaySaveAll_PersistsAllStories(t *testing.T) {
	repo := newFakeStoryRepo()
	gw := NewGateway(repo)

	stories := []string{
		"As a user, I want to log in, so that my data is safe.",
		"As an admin, I want to audit logins, so that I can spot abuse.",
	}
	err := gw.SaveAll(context.Background(), stories, "project-1", "user-1")
	require.NoError(t, err)
	assert.Len(t, repo.saved, 2)
	for _, s := range repo.saved {
		assert.Equal(t, "project-1", s.ProjectID)
		assert.Equal(t, "user-1", s.GeneratedBy)
	}
}

func TestGatewaySaveAll_NoProjectIDIsNoop(t *testing.T) {
	repo := newFakeStoryRepo()
	gw := NewGateway(repo)

	err := gw.SaveAll(context.Background(), []string{"As a user, I want x, so that y."}, "", "user-1")
	require.NoError(t, err)
	assert.Empty(t, repo.saved)
}

func TestGatewaySaveAll_EmptyStoriesIsNoop(t *testing.T) {
	repo := newFakeStoryRepo()
	gw := NewGateway(repo)

	err := gw.SaveAll(context.Background(), nil, "project-1", "user-1")
	require.NoError(t, err)
	assert.Empty(t, repo.saved)
}

func TestGatewaySaveAll_PartialFailureKeepsSiblings(t *testing.T) {
	repo := newFakeStoryRepo()
	failing := "As a user, I want the broken one, so that it fails."
	repo.failOn[failing] = errors.New("unique violation")
	gw := NewGateway(repo)

	stories := []string{
		"As a user, I want a, so that b.",
		failing,
		"As a user, I want c, so that d.",
		"As a user, I want e, so that f.",
	}
	err := gw.SaveAll(context.Background(), stories, "project-1", "user-1")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeDatabaseError))
	// 失败条目以外的插入全部落库，不做回滚
	assert.Len(t, repo.saved, 3)
}

func TestGatewayListByProject_EmptyIsNotError(t *testing.T) {
	repo := newFakeStoryRepo()
	gw := NewGateway(repo)

	got, err := gw.ListByProject(context.Background(), "empty-project")
	require.NoError(t, err)
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestGatewayListByProject_RepoError(t *testing.T) {
	repo := newFakeStoryRepo()
	repo.listErr = errors.New("connection reset")
	gw := NewGateway(repo)

	_, err := gw.ListByProject(context.Background(), "project-1")
	require.Error(t, err)
	assert.True(t, apperrors.IsCode(err, apperrors.CodeDatabaseError))
}

package service

import (
	"context"
	"database/sql"
	"fmt"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dingdong-api/core/constants"
	"dingdong-api/core/errors"
	"dingdong-api/modules/workspace/dto"
	"dingdong-api/modules/workspace/entity"
	"dingdong-api/modules/workspace/repository"
)

// fakeWorkspaceRepo mirrors the transactional semantics of the real
// repository over an in-memory slice: every mutation re-reads the owner's set
// at its start, validates before writing anything, and applies its writes as
// one unit. beforeUpdate, when set, runs once at the start of Update, standing
// in for a competing transaction that commits while the caller waits for the
// row locks.
type fakeWorkspaceRepo struct {
	workspaces   []entity.Workspace
	nextID       int64
	beforeUpdate func()
}

func newFakeWorkspaceRepo() *fakeWorkspaceRepo {
	return &fakeWorkspaceRepo{nextID: 1}
}

func (f *fakeWorkspaceRepo) owned(userID int64) []*entity.Workspace {
	var result []*entity.Workspace
	for i := range f.workspaces {
		if f.workspaces[i].UserID == userID && !f.workspaces[i].IsDeleted {
			result = append(result, &f.workspaces[i])
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].OrderNo < result[j].OrderNo })
	return result
}

func (f *fakeWorkspaceRepo) GetByUserID(_ context.Context, userID int64) ([]entity.Workspace, error) {
	var result []entity.Workspace
	for _, w := range f.owned(userID) {
		result = append(result, *w)
	}
	return result, nil
}

func (f *fakeWorkspaceRepo) GetByID(_ context.Context, id int64) (*entity.Workspace, error) {
	for i := range f.workspaces {
		if f.workspaces[i].ID == id && !f.workspaces[i].IsDeleted {
			w := f.workspaces[i]
			return &w, nil
		}
	}
	return nil, nil
}

func (f *fakeWorkspaceRepo) Create(_ context.Context, userID int64, title string) (*entity.Workspace, error) {
	owned := f.owned(userID)
	if len(owned) >= constants.MaxWorkspacesPerUser {
		return nil, repository.ErrWorkspaceLimit
	}

	created := entity.Workspace{ID: f.nextID, UserID: userID, Title: title, OrderNo: len(owned) + 1}
	f.nextID++
	f.workspaces = append(f.workspaces, created)
	return &created, nil
}

func (f *fakeWorkspaceRepo) Update(_ context.Context, userID int64, workspaceID int64, title *string, orderNo *int) (*entity.Workspace, error) {
	if f.beforeUpdate != nil {
		hook := f.beforeUpdate
		f.beforeUpdate = nil
		hook()
	}

	owned := f.owned(userID)
	var target *entity.Workspace
	for _, w := range owned {
		if w.ID == workspaceID {
			target = w
		}
	}
	if target == nil {
		return nil, sql.ErrNoRows
	}
	if orderNo != nil && (*orderNo < 1 || *orderNo > len(owned)) {
		return nil, repository.ErrOrderOutOfRange
	}

	if orderNo != nil && *orderNo != target.OrderNo {
		lo, hi, delta := *orderNo, target.OrderNo-1, 1
		if *orderNo > target.OrderNo {
			lo, hi, delta = target.OrderNo+1, *orderNo, -1
		}
		for _, w := range owned {
			if w.ID != workspaceID && w.OrderNo >= lo && w.OrderNo <= hi {
				w.OrderNo += delta
			}
		}
		target.OrderNo = *orderNo
	}
	if title != nil {
		target.Title = *title
	}

	updated := *target
	return &updated, nil
}

func (f *fakeWorkspaceRepo) SoftDelete(_ context.Context, userID int64, workspaceID int64) error {
	var target *entity.Workspace
	for _, w := range f.owned(userID) {
		if w.ID == workspaceID {
			target = w
		}
	}
	if target == nil {
		return sql.ErrNoRows
	}

	orderNo := target.OrderNo
	target.IsDeleted = true
	for _, w := range f.owned(userID) {
		if w.OrderNo > orderNo {
			w.OrderNo--
		}
	}
	return nil
}

func seedWorkspaces(t *testing.T, svc WorkspaceServiceInterface, userID int64, n int) {
	t.Helper()
	for i := 1; i <= n; i++ {
		_, appErr := svc.CreateWorkspace(context.Background(), userID, &dto.CreateWorkspaceRequest{
			Title: fmt.Sprintf("ws-%d", i),
		})
		require.Nil(t, appErr)
	}
}

// titlesInOrder returns workspace titles sorted by order_no, after asserting
// the ordering is dense 1..N.
func titlesInOrder(t *testing.T, svc WorkspaceServiceInterface, userID int64) []string {
	t.Helper()
	list, appErr := svc.GetWorkspaces(context.Background(), userID)
	require.Nil(t, appErr)

	titles := make([]string, 0, len(list))
	for i, w := range list {
		require.Equal(t, i+1, w.OrderNo, "ordering must stay dense")
		titles = append(titles, w.Title)
	}
	return titles
}

func TestCreateWorkspace(t *testing.T) {
	svc := NewWorkspaceService(newFakeWorkspaceRepo())

	created, appErr := svc.CreateWorkspace(context.Background(), 1, &dto.CreateWorkspaceRequest{Title: "first"})
	require.Nil(t, appErr)
	assert.Equal(t, 1, created.OrderNo)

	second, appErr := svc.CreateWorkspace(context.Background(), 1, &dto.CreateWorkspaceRequest{Title: "second"})
	require.Nil(t, appErr)
	assert.Equal(t, 2, second.OrderNo)
}

func TestCreateWorkspace_TitleValidation(t *testing.T) {
	svc := NewWorkspaceService(newFakeWorkspaceRepo())

	_, appErr := svc.CreateWorkspace(context.Background(), 1, &dto.CreateWorkspaceRequest{Title: "   "})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInvalidInput, appErr.Code)

	_, appErr = svc.CreateWorkspace(context.Background(), 1, &dto.CreateWorkspaceRequest{Title: "this title is far too long to fit"})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrInvalidInput, appErr.Code)
}

func TestCreateWorkspace_Limit(t *testing.T) {
	svc := NewWorkspaceService(newFakeWorkspaceRepo())
	seedWorkspaces(t, svc, 1, 10)

	_, appErr := svc.CreateWorkspace(context.Background(), 1, &dto.CreateWorkspaceRequest{Title: "one too many"})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrTooManyWorkspaces, appErr.Code)

	// another user is unaffected by the first user's count
	_, appErr = svc.CreateWorkspace(context.Background(), 2, &dto.CreateWorkspaceRequest{Title: "fine"})
	assert.Nil(t, appErr)
}

func TestUpdateWorkspace_MoveUp(t *testing.T) {
	svc := NewWorkspaceService(newFakeWorkspaceRepo())
	seedWorkspaces(t, svc, 1, 5)

	// ws-4 moves from position 4 to position 2
	orderNo := 2
	updated, appErr := svc.UpdateWorkspace(context.Background(), 1, 4, &dto.UpdateWorkspaceRequest{OrderNo: &orderNo})
	require.Nil(t, appErr)
	assert.Equal(t, 2, updated.OrderNo)

	assert.Equal(t, []string{"ws-1", "ws-4", "ws-2", "ws-3", "ws-5"}, titlesInOrder(t, svc, 1))
}

func TestUpdateWorkspace_MoveDown(t *testing.T) {
	svc := NewWorkspaceService(newFakeWorkspaceRepo())
	seedWorkspaces(t, svc, 1, 5)

	orderNo := 4
	updated, appErr := svc.UpdateWorkspace(context.Background(), 1, 2, &dto.UpdateWorkspaceRequest{OrderNo: &orderNo})
	require.Nil(t, appErr)
	assert.Equal(t, 4, updated.OrderNo)

	assert.Equal(t, []string{"ws-1", "ws-3", "ws-4", "ws-2", "ws-5"}, titlesInOrder(t, svc, 1))
}

func TestUpdateWorkspace_SamePositionIsNoop(t *testing.T) {
	svc := NewWorkspaceService(newFakeWorkspaceRepo())
	seedWorkspaces(t, svc, 1, 3)

	orderNo := 2
	updated, appErr := svc.UpdateWorkspace(context.Background(), 1, 2, &dto.UpdateWorkspaceRequest{OrderNo: &orderNo})
	require.Nil(t, appErr)
	assert.Equal(t, 2, updated.OrderNo)

	assert.Equal(t, []string{"ws-1", "ws-2", "ws-3"}, titlesInOrder(t, svc, 1))
}

func TestUpdateWorkspace_OrderOutOfRange(t *testing.T) {
	svc := NewWorkspaceService(newFakeWorkspaceRepo())
	seedWorkspaces(t, svc, 1, 3)

	for _, orderNo := range []int{0, -1, 4} {
		n := orderNo
		_, appErr := svc.UpdateWorkspace(context.Background(), 1, 1, &dto.UpdateWorkspaceRequest{OrderNo: &n})
		require.NotNil(t, appErr, "order_no %d must be rejected", orderNo)
		assert.Equal(t, errors.ErrWrongOrderNo, appErr.Code)
	}
}

func TestUpdateWorkspace_InvalidOrderLeavesTitleUntouched(t *testing.T) {
	svc := NewWorkspaceService(newFakeWorkspaceRepo())
	seedWorkspaces(t, svc, 1, 3)

	title := "renamed"
	orderNo := 99
	_, appErr := svc.UpdateWorkspace(context.Background(), 1, 2, &dto.UpdateWorkspaceRequest{Title: &title, OrderNo: &orderNo})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrWrongOrderNo, appErr.Code)

	// the rejected request must not have persisted the title half
	assert.Equal(t, []string{"ws-1", "ws-2", "ws-3"}, titlesInOrder(t, svc, 1))
}

func TestUpdateWorkspace_TitleAndOrderTogether(t *testing.T) {
	svc := NewWorkspaceService(newFakeWorkspaceRepo())
	seedWorkspaces(t, svc, 1, 3)

	title := "renamed"
	orderNo := 1
	updated, appErr := svc.UpdateWorkspace(context.Background(), 1, 3, &dto.UpdateWorkspaceRequest{Title: &title, OrderNo: &orderNo})
	require.Nil(t, appErr)
	assert.Equal(t, "renamed", updated.Title)
	assert.Equal(t, 1, updated.OrderNo)

	assert.Equal(t, []string{"renamed", "ws-1", "ws-2"}, titlesInOrder(t, svc, 1))
}

func TestUpdateWorkspace_NotFound(t *testing.T) {
	svc := NewWorkspaceService(newFakeWorkspaceRepo())

	title := "x"
	_, appErr := svc.UpdateWorkspace(context.Background(), 1, 99, &dto.UpdateWorkspaceRequest{Title: &title})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrWorkspaceNotFound, appErr.Code)
}

func TestUpdateWorkspace_AccessDenied(t *testing.T) {
	svc := NewWorkspaceService(newFakeWorkspaceRepo())
	seedWorkspaces(t, svc, 1, 1)

	title := "x"
	_, appErr := svc.UpdateWorkspace(context.Background(), 2, 1, &dto.UpdateWorkspaceRequest{Title: &title})
	require.NotNil(t, appErr)
	assert.Equal(t, errors.ErrWorkspaceAccessDenied, appErr.Code)
}

func TestUpdateWorkspace_ConcurrentMoveKeepsOrderingDense(t *testing.T) {
	repo := newFakeWorkspaceRepo()
	svc := NewWorkspaceService(repo)
	seedWorkspaces(t, svc, 1, 5)

	// A competing request moves ws-5 to position 1 and commits while this
	// request waits for the locks. The move to position 2 must then work from
	// the fresh positions, not from anything read before the locks were held.
	repo.beforeUpdate = func() {
		n := 1
		_, appErr := svc.UpdateWorkspace(context.Background(), 1, 5, &dto.UpdateWorkspaceRequest{OrderNo: &n})
		require.Nil(t, appErr)
	}

	orderNo := 2
	updated, appErr := svc.UpdateWorkspace(context.Background(), 1, 5, &dto.UpdateWorkspaceRequest{OrderNo: &orderNo})
	require.Nil(t, appErr)
	assert.Equal(t, 2, updated.OrderNo)

	assert.Equal(t, []string{"ws-1", "ws-5", "ws-2", "ws-3", "ws-4"}, titlesInOrder(t, svc, 1))
}

func TestDeleteWorkspace_CompactsOrdering(t *testing.T) {
	svc := NewWorkspaceService(newFakeWorkspaceRepo())
	seedWorkspaces(t, svc, 1, 5)

	appErr := svc.DeleteWorkspace(context.Background(), 1, 3)
	require.Nil(t, appErr)

	assert.Equal(t, []string{"ws-1", "ws-2", "ws-4", "ws-5"}, titlesInOrder(t, svc, 1))
}

func TestDeleteWorkspace_ThenCreateReusesFreedSlot(t *testing.T) {
	svc := NewWorkspaceService(newFakeWorkspaceRepo())
	seedWorkspaces(t, svc, 1, 10)

	require.Nil(t, svc.DeleteWorkspace(context.Background(), 1, 10))

	created, appErr := svc.CreateWorkspace(context.Background(), 1, &dto.CreateWorkspaceRequest{Title: "replacement"})
	require.Nil(t, appErr)
	assert.Equal(t, 10, created.OrderNo)
}

func TestReorderSequence_StaysDense(t *testing.T) {
	svc := NewWorkspaceService(newFakeWorkspaceRepo())
	seedWorkspaces(t, svc, 1, 6)

	moves := []struct {
		id      int64
		orderNo int
	}{
		{6, 1}, {1, 6}, {3, 3}, {2, 5}, {5, 2},
	}
	for _, m := range moves {
		n := m.orderNo
		_, appErr := svc.UpdateWorkspace(context.Background(), 1, m.id, &dto.UpdateWorkspaceRequest{OrderNo: &n})
		require.Nil(t, appErr)
	}

	// titlesInOrder asserts density; six workspaces must all survive
	assert.Len(t, titlesInOrder(t, svc, 1), 6)
}

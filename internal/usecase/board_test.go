package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/xavierca1/lintra-console/internal/entity"
	"github.com/xavierca1/lintra-console/internal/infra/integration/lintra"
	"github.com/xavierca1/lintra-console/internal/infra/metrics"
	"github.com/xavierca1/lintra-console/internal/infra/queue"
)

func TestStageTotal(t *testing.T) {
	store := seededStore(
		entity.Deal{ID: "d1", Title: "A", Value: 1000, StageID: "s1"},
		entity.Deal{ID: "d2", Title: "B", Value: 2500.5, StageID: "s1"},
	)
	b := NewBoard(store, new(MockOpportunityGateway))

	assert.Equal(t, 3500.5, b.StageTotal("s1"))
	assert.Equal(t, float64(0), b.StageTotal("s2"))
	assert.Empty(t, b.StageDeals("s2"))
}

func TestColumns_FollowStageOrder(t *testing.T) {
	store := seededStore(
		entity.Deal{ID: "d1", Title: "A", Value: 10, StageID: "s2"},
		entity.Deal{ID: "d2", Title: "B", Value: 20, StageID: "s1"},
		entity.Deal{ID: "d3", Title: "C", Value: 30, StageID: "s2"},
	)
	cols := NewBoard(store, new(MockOpportunityGateway)).Columns()

	require.Len(t, cols, 2)
	assert.Equal(t, "s1", cols[0].Stage.ID)
	assert.Equal(t, 1, cols[0].Count)
	assert.Equal(t, "s2", cols[1].Stage.ID)
	assert.Equal(t, 2, cols[1].Count)
	assert.Equal(t, float64(40), cols[1].Total)
	assert.Equal(t, "d1", cols[1].Deals[0].ID, "insertion order is kept")
	assert.Equal(t, "d3", cols[1].Deals[1].ID)
}

func TestDrop_WithoutDragIsNoop(t *testing.T) {
	gw := new(MockOpportunityGateway)
	store := seededStore(entity.Deal{ID: "d1", Title: "A", StageID: "s1"})
	b := NewBoard(store, gw)

	tr, err := b.Drop("s2")
	require.NoError(t, err)
	assert.Nil(t, tr)
	require.NoError(t, b.CompleteDrag(context.Background(), "s2"))

	d, _ := store.Deal("d1")
	assert.Equal(t, "s1", d.StageID)
	gw.AssertNotCalled(t, "MoveOpportunity", mock.Anything, mock.Anything, mock.Anything)
}

func TestDrop_OntoSourceIsNoop(t *testing.T) {
	gw := new(MockOpportunityGateway)
	store := seededStore(entity.Deal{ID: "d1", Title: "A", StageID: "s1"})
	b := NewBoard(store, gw)

	require.NoError(t, b.BeginDrag("d1", "s1"))
	require.NoError(t, b.CompleteDrag(context.Background(), "s1"))

	d, _ := store.Deal("d1")
	assert.Equal(t, "s1", d.StageID)
	gw.AssertNotCalled(t, "MoveOpportunity", mock.Anything, mock.Anything, mock.Anything)
	_, _, dragging := b.Dragging()
	assert.False(t, dragging)
}

func TestCompleteDrag_ValidMove(t *testing.T) {
	gw := new(MockOpportunityGateway)
	gw.On("MoveOpportunity", mock.Anything, "d1", "s2").Return(nil).Once()
	pub := new(MockPublisher)
	pub.On("PublishBoardEvent", mock.Anything, mock.MatchedBy(func(ev queue.BoardEvent) bool {
		return ev.Type == queue.EventDealStageChanged && ev.DealID == "d1" &&
			ev.FromStageID == "s1" && ev.ToStageID == "s2" && ev.ToStageName == "Fechado" &&
			ev.OwnerEmail == "ana@lintra.com.br"
	})).Return(nil).Once()

	store := seededStore(entity.Deal{ID: "d1", Title: "A", Value: 100, StageID: "s1", OwnerID: "u1"})
	store.SetUsers([]entity.User{{ID: "u1", Name: "Ana", Email: "ana@lintra.com.br"}})
	b := NewBoard(store, gw, WithPublisher(pub))

	require.NoError(t, b.BeginDrag("d1", "s1"))
	require.NoError(t, b.CompleteDrag(context.Background(), "s2"))

	assert.Empty(t, b.StageDeals("s1"))
	require.Len(t, b.StageDeals("s2"), 1)
	assert.Equal(t, float64(100), b.StageTotal("s2"))
	gw.AssertNumberOfCalls(t, "MoveOpportunity", 1)
	pub.AssertExpectations(t)
}

func TestDrop_AppliesLocallyBeforeSync(t *testing.T) {
	gw := new(MockOpportunityGateway)
	gw.On("MoveOpportunity", mock.Anything, "d1", "s2").Return(nil)
	store := seededStore(entity.Deal{ID: "d1", Title: "A", StageID: "s1"})
	b := NewBoard(store, gw)

	require.NoError(t, b.BeginDrag("d1", "s1"))
	tr, err := b.Drop("s2")
	require.NoError(t, err)
	require.NotNil(t, tr)

	d, _ := store.Deal("d1")
	assert.Equal(t, "s2", d.StageID)
	gw.AssertNotCalled(t, "MoveOpportunity", mock.Anything, mock.Anything, mock.Anything)

	require.NoError(t, tr.Sync(context.Background()))
	require.NoError(t, tr.Sync(context.Background()), "second sync returns the first result")
	gw.AssertNumberOfCalls(t, "MoveOpportunity", 1)
}

func TestSyncFailure_KeepOptimistic(t *testing.T) {
	gw := new(MockOpportunityGateway)
	gw.On("MoveOpportunity", mock.Anything, "d1", "s2").Return(errors.New("timeout"))
	store := seededStore(entity.Deal{ID: "d1", Title: "A", StageID: "s1"})
	b := NewBoard(store, gw, WithRollbackPolicy(KeepOptimistic))

	require.NoError(t, b.BeginDrag("d1", "s1"))
	err := b.CompleteDrag(context.Background(), "s2")
	require.Error(t, err)
	assert.Equal(t, "Erro ao sincronizar movimento.", err.Error())

	d, _ := store.Deal("d1")
	assert.Equal(t, "s2", d.StageID)
}

func TestSyncFailure_RollbackOnFailure(t *testing.T) {
	gw := new(MockOpportunityGateway)
	gw.On("MoveOpportunity", mock.Anything, "d1", "s2").
		Return(&lintra.APIError{Status: 500, Message: "stage locked"})
	store := seededStore(entity.Deal{ID: "d1", Title: "A", Value: 50, StageID: "s1"})
	b := NewBoard(store, gw)
	before := testutil.ToFloat64(metrics.DealMoves().WithLabelValues(metrics.MoveRolledBack))

	require.NoError(t, b.BeginDrag("d1", "s1"))
	tr, err := b.Drop("s2")
	require.NoError(t, err)
	err = tr.Sync(context.Background())
	require.Error(t, err)

	var actionErr *ActionError
	require.ErrorAs(t, err, &actionErr)
	assert.Equal(t, "Erro ao sincronizar movimento: stage locked", err.Error())
	assert.True(t, IsTechnicalError(err))
	assert.True(t, tr.RolledBack())

	d, _ := store.Deal("d1")
	assert.Equal(t, "s1", d.StageID)
	assert.Equal(t, float64(50), b.StageTotal("s1"))
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.DealMoves().WithLabelValues(metrics.MoveRolledBack)))
}

func TestSyncFailure_StaleRollbackIsSkipped(t *testing.T) {
	f := entity.Funnel{ID: "p1", Name: "Sales", Stages: []entity.Stage{
		{ID: "s1", Name: "Lead"}, {ID: "s2", Name: "Proposta"}, {ID: "s3", Name: "Fechado"},
	}}
	store := NewStore()
	store.SetFunnels([]entity.Funnel{f})
	store.AppendDeal(entity.Deal{ID: "d1", Title: "A", FunnelID: "p1", StageID: "s1"})

	gw := new(MockOpportunityGateway)
	gw.On("MoveOpportunity", mock.Anything, "d1", "s2").Return(errors.New("late failure"))
	gw.On("MoveOpportunity", mock.Anything, "d1", "s3").Return(nil)
	b := NewBoard(store, gw)

	require.NoError(t, b.BeginDrag("d1", "s1"))
	first, err := b.Drop("s2")
	require.NoError(t, err)
	require.NoError(t, b.BeginDrag("d1", "s2"))
	second, err := b.Drop("s3")
	require.NoError(t, err)

	require.NoError(t, second.Sync(context.Background()))
	require.Error(t, first.Sync(context.Background()))

	d, _ := store.Deal("d1")
	assert.Equal(t, "s3", d.StageID, "older failure must not revert the newer move")
	assert.False(t, first.RolledBack())
}

func TestBeginDrag_Errors(t *testing.T) {
	store := seededStore(
		entity.Deal{ID: "d1", Title: "A", StageID: "s1"},
		entity.Deal{ID: "d2", Title: "B", StageID: "s1"},
	)
	b := NewBoard(store, new(MockOpportunityGateway))

	err := b.BeginDrag("missing", "s1")
	assert.True(t, IsNotFound(err))

	err = b.BeginDrag("d1", "s2")
	var de *DomainError
	require.ErrorAs(t, err, &de)
	assert.Equal(t, CodeValidation, de.Code)

	require.NoError(t, b.BeginDrag("d1", "s1"))
	err = b.BeginDrag("d2", "s1")
	require.ErrorAs(t, err, &de)
	assert.Equal(t, CodeDragConflict, de.Code)

	b.CancelDrag()
	assert.NoError(t, b.BeginDrag("d2", "s1"))
}

func TestDrop_TargetOutsideFunnel(t *testing.T) {
	gw := new(MockOpportunityGateway)
	store := seededStore(entity.Deal{ID: "d1", Title: "A", StageID: "s1"})
	b := NewBoard(store, gw)

	require.NoError(t, b.BeginDrag("d1", "s1"))
	tr, err := b.Drop("other-funnel-stage")
	assert.Nil(t, tr)
	assert.ErrorIs(t, err, entity.ErrStageNotInFunnel)

	d, _ := store.Deal("d1")
	assert.Equal(t, "s1", d.StageID)
	gw.AssertNotCalled(t, "MoveOpportunity", mock.Anything, mock.Anything, mock.Anything)
}

func TestLoad_MergesWithoutDuplicates(t *testing.T) {
	gw := new(MockOpportunityGateway)
	gw.On("ListOpportunities", mock.Anything, "p1").Return([]entity.Deal{
		{ID: "d1", Title: "A (remote)", FunnelID: "p1", StageID: "s2"},
		{ID: "d2", Title: "B", FunnelID: "p1", StageID: "s1"},
	}, nil)
	store := seededStore(entity.Deal{ID: "d1", Title: "A", StageID: "s1"})
	b := NewBoard(store, gw)

	require.NoError(t, b.Load(context.Background(), "p1"))
	require.NoError(t, b.Load(context.Background(), "p1"))

	deals := store.Deals("p1")
	require.Len(t, deals, 2)
	assert.Equal(t, "A", deals[0].Title, "local copy wins")
}

func TestLoad_RemoteError(t *testing.T) {
	gw := new(MockOpportunityGateway)
	gw.On("ListOpportunities", mock.Anything, "p1").Return(nil, &lintra.APIError{Status: 401, Message: "unauthorized"})
	err := NewBoard(seededStore(), gw).Load(context.Background(), "p1")
	require.Error(t, err)
	assert.Equal(t, "Erro ao carregar oportunidades: unauthorized", err.Error())
}

func TestLoadDirectory(t *testing.T) {
	dir := new(MockDirectoryGateway)
	dir.On("ListUsers", mock.Anything).Return([]entity.User{{ID: "u1", Name: "Ana"}}, nil)
	dir.On("ListContacts", mock.Anything).Return([]entity.Contact{{ID: "c1", Name: "ACME"}}, nil)
	store := seededStore()

	require.NoError(t, NewBoard(store, new(MockOpportunityGateway), WithDirectory(dir)).LoadDirectory(context.Background()))
	assert.Len(t, store.Users(), 1)
	assert.Len(t, store.Contacts(), 1)
}

func TestLoadDirectory_OneFailureFailsAll(t *testing.T) {
	dir := new(MockDirectoryGateway)
	dir.On("ListUsers", mock.Anything).Return([]entity.User{{ID: "u1"}}, nil)
	dir.On("ListContacts", mock.Anything).Return(nil, errors.New("boom"))
	store := seededStore()

	err := NewBoard(store, new(MockOpportunityGateway), WithDirectory(dir)).LoadDirectory(context.Background())
	require.Error(t, err)
	assert.Empty(t, store.Users())
}

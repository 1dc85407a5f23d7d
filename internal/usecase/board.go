package usecase

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/xavierca1/lintra-console/internal/entity"
	"github.com/xavierca1/lintra-console/internal/infra/metrics"
	"github.com/xavierca1/lintra-console/internal/infra/queue"
)

// RollbackPolicy decides what happens to an optimistic move when the server rejects it.
type RollbackPolicy int

const (
	// RollbackOnFailure puts the deal back in its previous stage.
	RollbackOnFailure RollbackPolicy = iota
	// KeepOptimistic leaves the local move in place and only reports the error.
	KeepOptimistic
)

const actionSyncMove = "sincronizar movimento"

type dragState struct {
	dealID   string
	sourceID string
}

// Board is the Kanban view of the active funnel.
type Board struct {
	store     *Store
	deals     OpportunityGateway
	directory DirectoryGateway
	publisher EventPublisher
	policy    RollbackPolicy
	logger    *zap.Logger

	mu   sync.Mutex
	drag *dragState
}

type BoardOption func(*Board)

func WithRollbackPolicy(p RollbackPolicy) BoardOption {
	return func(b *Board) { b.policy = p }
}

func WithPublisher(p EventPublisher) BoardOption {
	return func(b *Board) { b.publisher = p }
}

func WithDirectory(d DirectoryGateway) BoardOption {
	return func(b *Board) { b.directory = d }
}

func WithBoardLogger(l *zap.Logger) BoardOption {
	return func(b *Board) { b.logger = l }
}

func NewBoard(store *Store, deals OpportunityGateway, opts ...BoardOption) *Board {
	b := &Board{
		store:  store,
		deals:  deals,
		policy: RollbackOnFailure,
		logger: zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

func (b *Board) Store() *Store { return b.store }

// StageDeals returns the active funnel's deals in stageID, in insertion order.
func (b *Board) StageDeals(stageID string) []entity.Deal {
	f, ok := b.store.ActiveFunnel()
	if !ok {
		return nil
	}
	var out []entity.Deal
	for _, d := range b.store.Deals(f.ID) {
		if d.StageID == stageID {
			out = append(out, d)
		}
	}
	return out
}

// StageTotal sums the values of a stage. An empty stage totals 0.
func (b *Board) StageTotal(stageID string) float64 {
	var total float64
	for _, d := range b.StageDeals(stageID) {
		total += d.Value
	}
	return total
}

// Columns returns one column per stage of the active funnel.
func (b *Board) Columns() []Column {
	f, ok := b.store.ActiveFunnel()
	if !ok {
		return nil
	}
	byStage := make(map[string][]entity.Deal, len(f.Stages))
	for _, d := range b.store.Deals(f.ID) {
		byStage[d.StageID] = append(byStage[d.StageID], d)
	}
	cols := make([]Column, 0, len(f.Stages))
	for _, s := range f.Stages {
		deals := byStage[s.ID]
		col := Column{Stage: s, Deals: deals, Count: len(deals)}
		for _, d := range deals {
			col.Total += d.Value
		}
		if col.Deals == nil {
			col.Deals = []entity.Deal{}
		}
		cols = append(cols, col)
	}
	return cols
}

// Load fetches the deals of a funnel and merges them into the store.
func (b *Board) Load(ctx context.Context, funnelID string) error {
	deals, err := b.deals.ListOpportunities(ctx, funnelID)
	if err != nil {
		return remoteFailure("carregar oportunidades", err)
	}
	added := b.store.MergeDeals(deals)
	b.logger.Debug("deals loaded",
		zap.String("funnel_id", funnelID),
		zap.Int("received", len(deals)),
		zap.Int("added", added),
	)
	return nil
}

// LoadDirectory fetches users and contacts concurrently. Both must succeed.
func (b *Board) LoadDirectory(ctx context.Context) error {
	if b.directory == nil {
		return nil
	}
	var (
		users    []entity.User
		contacts []entity.Contact
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		users, err = b.directory.ListUsers(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		contacts, err = b.directory.ListContacts(gctx)
		return err
	})
	if err := g.Wait(); err != nil {
		return remoteFailure("carregar usuários e contatos", err)
	}
	b.store.SetUsers(users)
	b.store.SetContacts(contacts)
	return nil
}

// BeginDrag picks up a deal. Only one drag may be in flight.
func (b *Board) BeginDrag(dealID, sourceStageID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.drag != nil {
		return &DomainError{Code: CodeDragConflict, Message: "já existe uma oportunidade sendo arrastada"}
	}
	d, ok := b.store.Deal(dealID)
	if !ok {
		return notFound("oportunidade não encontrada")
	}
	if d.StageID != sourceStageID {
		return validationError(errors.New("oportunidade não está na etapa de origem"))
	}
	b.drag = &dragState{dealID: dealID, sourceID: sourceStageID}
	return nil
}

func (b *Board) CancelDrag() {
	b.mu.Lock()
	b.drag = nil
	b.mu.Unlock()
}

// Dragging reports the deal currently picked up, if any.
func (b *Board) Dragging() (dealID, sourceStageID string, ok bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.drag == nil {
		return "", "", false
	}
	return b.drag.dealID, b.drag.sourceID, true
}

// Drop ends the drag on targetStageID. The local move is applied before Drop returns;
// the returned Transfer sends it to the server. Dropping with no drag active, or back
// onto the source stage, does nothing and returns a nil Transfer.
func (b *Board) Drop(targetStageID string) (*Transfer, error) {
	b.mu.Lock()
	drag := b.drag
	b.drag = nil
	b.mu.Unlock()

	if drag == nil || drag.sourceID == targetStageID {
		return nil, nil
	}

	d, ok := b.store.Deal(drag.dealID)
	if !ok {
		return nil, notFound("oportunidade não encontrada")
	}
	f, ok := b.store.Funnel(d.FunnelID)
	if !ok {
		return nil, notFound("funil não encontrado")
	}
	if !f.HasStage(targetStageID) {
		return nil, validationError(entity.ErrStageNotInFunnel)
	}

	t := &Transfer{
		board:       b,
		deal:        d,
		FromStageID: drag.sourceID,
		ToStageID:   targetStageID,
		txn:         NewTransaction(b.logger),
	}
	if s, ok := stageByID(f, targetStageID); ok {
		t.toStageName = s.Name
	}

	var seq uint64
	t.txn.AddOperation("move_local", func(context.Context) error {
		var err error
		_, seq, err = b.store.MoveDeal(d.ID, targetStageID)
		return err
	})
	t.txn.AddCompensation("restore_stage", func(context.Context) error {
		if b.policy != RollbackOnFailure {
			return nil
		}
		if b.store.RestoreStage(d.ID, drag.sourceID, seq) {
			t.rolledBack = true
		} else {
			b.logger.Info("rollback skipped, deal moved again", zap.String("deal_id", d.ID))
		}
		return nil
	})
	t.txn.AddOperation("sync_stage", func(ctx context.Context) error {
		return b.deals.MoveOpportunity(ctx, d.ID, targetStageID)
	})

	if _, err := t.txn.Next(context.Background()); err != nil {
		return nil, err
	}
	return t, nil
}

// CompleteDrag is Drop followed by Sync.
func (b *Board) CompleteDrag(ctx context.Context, targetStageID string) error {
	t, err := b.Drop(targetStageID)
	if err != nil || t == nil {
		return err
	}
	return t.Sync(ctx)
}

func stageByID(f entity.Funnel, id string) (entity.Stage, bool) {
	for _, s := range f.Stages {
		if s.ID == id {
			return s, true
		}
	}
	return entity.Stage{}, false
}

// Transfer is a move already applied locally and waiting for the server.
type Transfer struct {
	FromStageID string
	ToStageID   string

	board       *Board
	deal        entity.Deal
	toStageName string
	txn         *Transaction

	once       sync.Once
	err        error
	rolledBack bool
}

func (t *Transfer) DealID() string { return t.deal.ID }

// RolledBack reports whether a failed sync restored the previous stage.
func (t *Transfer) RolledBack() bool { return t.rolledBack }

// Sync sends the move to the server exactly once. Later calls return the first result.
func (t *Transfer) Sync(ctx context.Context) error {
	t.once.Do(func() { t.err = t.sync(ctx) })
	return t.err
}

func (t *Transfer) sync(ctx context.Context) error {
	b := t.board
	if err := t.txn.Execute(ctx); err != nil {
		outcome := metrics.MoveFailed
		if t.rolledBack {
			outcome = metrics.MoveRolledBack
		}
		metrics.RecordDealMove(outcome)
		b.logger.Warn("deal move rejected",
			zap.String("deal_id", t.deal.ID),
			zap.String("from", t.FromStageID),
			zap.String("to", t.ToStageID),
			zap.Bool("rolled_back", t.rolledBack),
			zap.Error(err),
		)
		return remoteFailure(actionSyncMove, err)
	}

	metrics.RecordDealMove(metrics.MoveSynced)
	b.publish(ctx, t.event())
	return nil
}

func (t *Transfer) event() queue.BoardEvent {
	ev := queue.NewBoardEvent(queue.EventDealStageChanged, t.deal.FunnelID)
	ev.DealID = t.deal.ID
	ev.DealTitle = t.deal.Title
	ev.FromStageID = t.FromStageID
	ev.ToStageID = t.ToStageID
	ev.ToStageName = t.toStageName
	ev.OwnerID = t.deal.OwnerID
	if t.deal.Owner != nil {
		ev.OwnerName = t.deal.Owner.Name
	}
	if u, ok := t.board.store.User(t.deal.OwnerID); ok {
		ev.OwnerName = u.Name
		ev.OwnerEmail = u.Email
	}
	ev.OccurredAt = time.Now().UTC()
	return ev
}

// publish is best effort: the move already succeeded on the server.
func (b *Board) publish(ctx context.Context, ev queue.BoardEvent) {
	if b.publisher == nil {
		return
	}
	if err := b.publisher.PublishBoardEvent(ctx, ev); err != nil {
		b.logger.Warn("board event not published",
			zap.String("type", ev.Type),
			zap.String("deal_id", ev.DealID),
			zap.Error(err),
		)
	}
}

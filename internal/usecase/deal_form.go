package usecase

import (
	"context"

	"go.uber.org/zap"

	"github.com/xavierca1/lintra-console/internal/entity"
	"github.com/xavierca1/lintra-console/internal/infra/integration/lintra"
	"github.com/xavierca1/lintra-console/internal/infra/queue"
)

// DealForm backs the create, edit, detail and delete flows of a deal.
type DealForm struct {
	store     *Store
	deals     OpportunityGateway
	publisher EventPublisher
	logger    *zap.Logger
}

func NewDealForm(store *Store, deals OpportunityGateway, publisher EventPublisher, logger *zap.Logger) *DealForm {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DealForm{store: store, deals: deals, publisher: publisher, logger: logger}
}

// SubmitCreate validates the input and creates the deal in the active funnel. Without
// a stage in the input the funnel's first stage is used.
func (f *DealForm) SubmitCreate(ctx context.Context, in DealInput) (*entity.Deal, error) {
	fields, errs := ValidateDealInput(in)
	if len(errs) > 0 {
		return nil, validationErrors(errs)
	}

	funnel, ok := f.store.ActiveFunnel()
	if !ok {
		return nil, notFound("funil não encontrado")
	}
	stageID := fields.StageID
	if stageID == "" {
		first, ok := funnel.FirstStage()
		if !ok {
			return nil, validationError(entity.ErrNoStages)
		}
		stageID = first.ID
	} else if !funnel.HasStage(stageID) {
		return nil, validationError(entity.ErrStageNotInFunnel)
	}

	draft := f.apply(entity.Deal{FunnelID: funnel.ID, StageID: stageID}, fields)
	created, err := f.deals.CreateOpportunity(ctx, opportunityInput(draft))
	if err != nil {
		return nil, remoteFailure("criar oportunidade", err)
	}

	// o servidor pode omitir campos que acabou de receber
	if created.FunnelID == "" {
		created.FunnelID = draft.FunnelID
	}
	if created.StageID == "" {
		created.StageID = draft.StageID
	}
	if created.Owner == nil {
		created.Owner = draft.Owner
	}
	f.store.AppendDeal(*created)
	f.logger.Info("deal created", zap.String("deal_id", created.ID), zap.String("stage_id", created.StageID))

	ev := queue.NewBoardEvent(queue.EventDealCreated, created.FunnelID)
	ev.DealID, ev.DealTitle, ev.ToStageID = created.ID, created.Title, created.StageID
	f.publish(ctx, ev)
	return created, nil
}

// SubmitUpdate sends the full field set and mirrors exactly that set in the store.
func (f *DealForm) SubmitUpdate(ctx context.Context, dealID string, in DealInput) (*entity.Deal, error) {
	current, ok := f.store.Deal(dealID)
	if !ok {
		return nil, notFound("oportunidade não encontrada")
	}
	fields, errs := ValidateDealInput(in)
	if len(errs) > 0 {
		return nil, validationErrors(errs)
	}
	if fields.StageID != "" {
		funnel, ok := f.store.Funnel(current.FunnelID)
		if !ok || !funnel.HasStage(fields.StageID) {
			return nil, validationError(entity.ErrStageNotInFunnel)
		}
	}

	next := f.apply(current, fields)
	if _, err := f.deals.UpdateOpportunity(ctx, dealID, opportunityInput(next)); err != nil {
		return nil, remoteFailure("atualizar oportunidade", err)
	}
	if err := f.store.ReplaceDeal(next); err != nil {
		return nil, notFound("oportunidade não encontrada")
	}
	f.logger.Info("deal updated", zap.String("deal_id", dealID))
	return &next, nil
}

// Delete removes the deal after confirmation. There is no undo.
func (f *DealForm) Delete(ctx context.Context, dealID string, confirm Confirmer) (bool, error) {
	d, ok := f.store.Deal(dealID)
	if !ok {
		return false, notFound("oportunidade não encontrada")
	}
	if !confirm.Confirm("Tem certeza que deseja excluir esta oportunidade?") {
		return false, nil
	}
	if err := f.deals.DeleteOpportunity(ctx, dealID); err != nil {
		return false, remoteFailure("excluir oportunidade", err)
	}
	_ = f.store.RemoveDeal(dealID)
	f.logger.Info("deal deleted", zap.String("deal_id", dealID))

	ev := queue.NewBoardEvent(queue.EventDealDeleted, d.FunnelID)
	ev.DealID, ev.DealTitle, ev.FromStageID = d.ID, d.Title, d.StageID
	f.publish(ctx, ev)
	return true, nil
}

// Detail returns the deal as held in the store.
func (f *DealForm) Detail(dealID string) (entity.Deal, error) {
	d, ok := f.store.Deal(dealID)
	if !ok {
		return entity.Deal{}, notFound("oportunidade não encontrada")
	}
	return d, nil
}

// apply writes validated fields onto base. It is the only place form fields reach a deal.
func (f *DealForm) apply(base entity.Deal, fields dealFields) entity.Deal {
	d := base.Clone()
	d.Title = fields.Title
	d.Description = fields.Description
	d.Value = fields.Value
	d.Probability = fields.Probability
	d.ContactID = fields.ContactID
	d.OwnerID = fields.OwnerID
	d.ExpectedClose = fields.ExpectedClose
	if fields.StageID != "" {
		d.StageID = fields.StageID
	}
	d.ClientProfile = fields.Profile
	d.ContactNumber = entity.DigitsOnly(fields.Profile.ContactNumber)
	d.ExtraLinks = append([]string(nil), fields.Profile.ExtraLinks...)

	d.Owner = nil
	switch u, ok := f.store.User(d.OwnerID); {
	case ok:
		d.Owner = &entity.UserRef{ID: u.ID, Name: u.Name}
	case base.Owner != nil && base.OwnerID == d.OwnerID:
		// diretório ainda não carregado: mantém o nome que já conhecíamos
		d.Owner = &entity.UserRef{ID: d.OwnerID, Name: base.Owner.Name}
	}
	return d
}

func opportunityInput(d entity.Deal) lintra.OpportunityInput {
	return lintra.OpportunityInput{
		Title:         d.Title,
		Description:   d.Description,
		Amount:        d.Value,
		Probability:   d.Probability,
		PipelineID:    d.FunnelID,
		StageID:       d.StageID,
		ContactID:     d.ContactID,
		OwnerID:       d.OwnerID,
		DueDate:       lintra.FormatDate(d.ExpectedClose),
		ClientProfile: d.ClientProfile,
	}
}

func (f *DealForm) publish(ctx context.Context, ev queue.BoardEvent) {
	if f.publisher == nil {
		return
	}
	if err := f.publisher.PublishBoardEvent(ctx, ev); err != nil {
		f.logger.Warn("board event not published", zap.String("type", ev.Type), zap.Error(err))
	}
}

package usecase

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/xavierca1/lintra-console/internal/entity"
)

// PresetColors offered by the stage editor.
var PresetColors = []string{
	"#F59E0B", "#3B82F6", "#10B981", "#8B5CF6", "#EC4899",
	"#06B6D4", "#F43F5E", "#84CC16", "#6366F1", "#64748B",
}

// DefaultStages seed a new funnel.
var DefaultStages = []entity.Stage{
	{Name: "Lead", Color: "#F59E0B"},
	{Name: "Negociação", Color: "#8B5CF6"},
	{Name: "Fechado", Color: "#10B981"},
}

// NextColor picks a random preset for the next stage.
func NextColor() string {
	return PresetColors[rand.IntN(len(PresetColors))]
}

// DraftStage is a stage being edited. Key identifies it while its position changes.
type DraftStage struct {
	Key string `json:"key"`
	entity.Stage
}

// FunnelSaver persists a committed draft. An empty id means create.
type FunnelSaver interface {
	SaveFunnel(ctx context.Context, id, name string, stages []entity.Stage) (*entity.Funnel, error)
}

// StageEditor holds the draft stage list of the funnel modal. Nothing is sent to the
// server until Commit.
type StageEditor struct {
	mu       sync.Mutex
	funnelID string
	name     string
	stages   []DraftStage
	dragFrom int
}

// NewStageEditor opens a draft. A nil funnel starts a creation draft with the default stages.
func NewStageEditor(funnel *entity.Funnel) *StageEditor {
	e := &StageEditor{dragFrom: -1}
	seed := DefaultStages
	if funnel != nil {
		e.funnelID = funnel.ID
		e.name = funnel.Name
		seed = funnel.Stages
	}
	for _, s := range seed {
		e.stages = append(e.stages, DraftStage{Key: uuid.NewString(), Stage: s})
	}
	return e
}

// Editing reports whether the draft edits an existing funnel.
func (e *StageEditor) Editing() bool { return e.funnelID != "" }

func (e *StageEditor) FunnelID() string { return e.funnelID }

func (e *StageEditor) Name() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.name
}

// Stages returns a copy of the draft list.
func (e *StageEditor) Stages() []DraftStage {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]DraftStage(nil), e.stages...)
}

// AddStage appends a stage without an identifier. An empty color falls back to a preset.
func (e *StageEditor) AddStage(name, color string) (DraftStage, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return DraftStage{}, validationError(entity.ErrEmptyStageName)
	}
	if color == "" {
		color = NextColor()
	} else if !entity.ValidColor(color) {
		return DraftStage{}, validationError(fmt.Errorf("cor inválida: %s", color))
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	s := DraftStage{Key: uuid.NewString(), Stage: entity.Stage{Name: name, Color: color}}
	e.stages = append(e.stages, s)
	return s, nil
}

// RemoveStage drops the stage at index. Deals assigned to it are not checked.
func (e *StageEditor) RemoveStage(index int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if index < 0 || index >= len(e.stages) {
		return e.outOfRange(index)
	}
	e.stages = append(e.stages[:index], e.stages[index+1:]...)
	e.dragFrom = -1
	return nil
}

// ReorderStage removes the stage at from and inserts it at to in the shortened list.
func (e *StageEditor) ReorderStage(from, to int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.reorder(from, to)
}

// ReorderByKey moves the stage identified by key to position to.
func (e *StageEditor) ReorderByKey(key string, to int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	for i, s := range e.stages {
		if s.Key == key {
			return e.reorder(i, to)
		}
	}
	return notFound("etapa não encontrada")
}

func (e *StageEditor) reorder(from, to int) error {
	n := len(e.stages)
	if from < 0 || from >= n {
		return e.outOfRange(from)
	}
	if to < 0 || to >= n {
		return e.outOfRange(to)
	}
	if from == to {
		return nil
	}
	moved := e.stages[from]
	rest := append(e.stages[:from:from], e.stages[from+1:]...)
	out := make([]DraftStage, 0, n)
	out = append(out, rest[:to]...)
	out = append(out, moved)
	out = append(out, rest[to:]...)
	e.stages = out
	return nil
}

// BeginStageDrag starts dragging the stage at index.
func (e *StageEditor) BeginStageDrag(index int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	if index < 0 || index >= len(e.stages) {
		return e.outOfRange(index)
	}
	e.dragFrom = index
	return nil
}

// DropStage ends the stage drag at target. Without an active drag it does nothing.
func (e *StageEditor) DropStage(target int) error {
	e.mu.Lock()
	defer e.mu.Unlock()
	from := e.dragFrom
	e.dragFrom = -1
	if from < 0 {
		return nil
	}
	return e.reorder(from, target)
}

// Commit validates the draft and hands it to saver. Validation failures never reach
// the network.
func (e *StageEditor) Commit(ctx context.Context, name string, saver FunnelSaver) (*entity.Funnel, error) {
	e.mu.Lock()
	name = strings.TrimSpace(name)
	stages := make([]entity.Stage, len(e.stages))
	for i, s := range e.stages {
		stages[i] = s.Stage
	}
	e.mu.Unlock()

	draft := entity.Funnel{ID: e.funnelID, Name: name, Stages: stages}
	if err := draft.Validate(); err != nil {
		return nil, validationError(err)
	}

	f, err := saver.SaveFunnel(ctx, e.funnelID, name, stages)
	if err != nil {
		return nil, err
	}
	e.mu.Lock()
	e.name = name
	e.mu.Unlock()
	return f, nil
}

func (e *StageEditor) outOfRange(i int) error {
	return validationError(fmt.Errorf("posição %d fora do intervalo (0..%d)", i, len(e.stages)-1))
}

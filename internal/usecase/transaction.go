package usecase

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// Transaction runs named operations in order. When one fails, the compensations of
// the operations that already ran are executed in reverse order.
type Transaction struct {
	operations    []Operation
	compensations []Compensation
	done          int
	logger        *zap.Logger
}

type Operation struct {
	Name string
	Fn   func(context.Context) error
}

type Compensation struct {
	Name string
	Fn   func(context.Context) error
}

func NewTransaction(logger *zap.Logger) *Transaction {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Transaction{logger: logger}
}

// AddOperation registers the next operation. Its compensation, if any, must be
// registered with AddCompensation right after.
func (t *Transaction) AddOperation(name string, fn func(context.Context) error) {
	t.operations = append(t.operations, Operation{name, fn})
	t.compensations = append(t.compensations, Compensation{})
}

// AddCompensation attaches fn to the last registered operation.
func (t *Transaction) AddCompensation(name string, fn func(context.Context) error) {
	if len(t.compensations) == 0 {
		return
	}
	t.compensations[len(t.compensations)-1] = Compensation{name, fn}
}

// Next runs a single pending operation. It returns false when nothing was left to run.
func (t *Transaction) Next(ctx context.Context) (bool, error) {
	if t.done >= len(t.operations) {
		return false, nil
	}
	op := t.operations[t.done]
	if err := op.Fn(ctx); err != nil {
		rolled := t.rollback(ctx)
		return true, fmt.Errorf("operation '%s' failed: %w (rolled back %d operations)", op.Name, err, rolled)
	}
	t.done++
	return true, nil
}

// Execute runs every pending operation.
func (t *Transaction) Execute(ctx context.Context) error {
	for {
		ran, err := t.Next(ctx)
		if err != nil {
			return err
		}
		if !ran {
			return nil
		}
	}
}

// Done reports how many operations completed.
func (t *Transaction) Done() int {
	return t.done
}

func (t *Transaction) rollback(ctx context.Context) int {
	rolled := 0
	for i := t.done - 1; i >= 0; i-- {
		comp := t.compensations[i]
		if comp.Fn == nil {
			continue
		}
		if err := comp.Fn(ctx); err != nil {
			t.logger.Warn("compensation failed, local state may diverge",
				zap.String("compensation", comp.Name),
				zap.Error(err),
			)
			continue
		}
		rolled++
	}
	t.done = 0
	t.operations = nil
	t.compensations = nil
	return rolled
}

package entity

import (
	"regexp"
	"strings"
)

var hexColor = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// Stage é uma etapa do funil. ID fica vazio até o funil ser salvo no servidor.
type Stage struct {
	ID    string `json:"id,omitempty"`
	Name  string `json:"name"`
	Color string `json:"color"`
}

func (s Stage) Validate() error {
	if strings.TrimSpace(s.Name) == "" {
		return ErrEmptyStageName
	}
	return nil
}

// ValidColor reports whether c is a six hex digit colour like "#10B981".
func ValidColor(c string) bool {
	return hexColor.MatchString(c)
}

// Funnel (pipeline). The order of Stages is the only ranking signal.
type Funnel struct {
	ID     string  `json:"id"`
	Name   string  `json:"name"`
	Stages []Stage `json:"stages"`
}

func (f *Funnel) Validate() error {
	if strings.TrimSpace(f.Name) == "" {
		return ErrEmptyFunnelName
	}
	if len(f.Stages) == 0 {
		return ErrNoStages
	}
	for _, s := range f.Stages {
		if err := s.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (f *Funnel) HasStage(stageID string) bool {
	return f.StageIndex(stageID) >= 0
}

// StageIndex returns the position of stageID, or -1.
func (f *Funnel) StageIndex(stageID string) int {
	if stageID == "" {
		return -1
	}
	for i, s := range f.Stages {
		if s.ID == stageID {
			return i
		}
	}
	return -1
}

func (f *Funnel) FirstStage() (Stage, bool) {
	if len(f.Stages) == 0 {
		return Stage{}, false
	}
	return f.Stages[0], true
}

func (f *Funnel) LastStage() (Stage, bool) {
	if len(f.Stages) == 0 {
		return Stage{}, false
	}
	return f.Stages[len(f.Stages)-1], true
}

// Clone devolve uma cópia independente (stages incluídas).
func (f Funnel) Clone() Funnel {
	out := f
	out.Stages = append([]Stage(nil), f.Stages...)
	return out
}

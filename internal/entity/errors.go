package entity

import "errors"

var (
	ErrNotFound         = errors.New("registro não encontrado")
	ErrStageNotInFunnel = errors.New("etapa não pertence ao funil")
	ErrFunnelNotFound   = errors.New("funil não encontrado")
	ErrDealNotFound     = errors.New("oportunidade não encontrada")
	ErrEmptyStageName   = errors.New("nome da etapa é obrigatório")
	ErrEmptyFunnelName  = errors.New("nome do funil é obrigatório")
	ErrNoStages         = errors.New("adicione pelo menos uma etapa")
)

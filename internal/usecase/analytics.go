package usecase

import (
	"sort"

	"github.com/xavierca1/lintra-console/internal/entity"
)

type StageSummary struct {
	Stage entity.Stage `json:"stage"`
	Count int          `json:"count"`
	Value float64      `json:"value"`
	// Share is Value relative to the largest stage, in percent.
	Share float64 `json:"share"`
}

type Summary struct {
	TotalDeals     int            `json:"totalDeals"`
	TotalValue     float64        `json:"totalValue"`
	OpenValue      float64        `json:"openValue"`
	ClosedDeals    int            `json:"closedDeals"`
	ClosedValue    float64        `json:"closedValue"`
	ConversionRate float64        `json:"conversionRate"`
	AverageTicket  float64        `json:"averageTicket"`
	Stages         []StageSummary `json:"stages"`
	TopDeals       []entity.Deal  `json:"topDeals"`
}

const topDealsLimit = 5

// Summarize computes the dashboard figures of a funnel. The last stage counts as closed.
func Summarize(funnel entity.Funnel, deals []entity.Deal) Summary {
	sum := Summary{Stages: make([]StageSummary, len(funnel.Stages))}
	index := make(map[string]int, len(funnel.Stages))
	for i, s := range funnel.Stages {
		sum.Stages[i].Stage = s
		index[s.ID] = i
	}
	closedID := ""
	if last, ok := funnel.LastStage(); ok {
		closedID = last.ID
	}

	var inFunnel []entity.Deal
	for _, d := range deals {
		if d.FunnelID != "" && d.FunnelID != funnel.ID {
			continue
		}
		inFunnel = append(inFunnel, d)
		sum.TotalDeals++
		sum.TotalValue += d.Value
		if closedID != "" && d.StageID == closedID {
			sum.ClosedDeals++
			sum.ClosedValue += d.Value
		} else {
			sum.OpenValue += d.Value
		}
		if i, ok := index[d.StageID]; ok {
			sum.Stages[i].Count++
			sum.Stages[i].Value += d.Value
		}
	}

	var maxValue float64
	for _, s := range sum.Stages {
		if s.Value > maxValue {
			maxValue = s.Value
		}
	}
	if maxValue > 0 {
		for i := range sum.Stages {
			sum.Stages[i].Share = sum.Stages[i].Value / maxValue * 100
		}
	}

	if sum.TotalDeals > 0 {
		sum.ConversionRate = float64(sum.ClosedDeals) / float64(sum.TotalDeals) * 100
	}
	if sum.ClosedDeals > 0 {
		sum.AverageTicket = sum.ClosedValue / float64(sum.ClosedDeals)
	}

	sort.SliceStable(inFunnel, func(i, j int) bool { return inFunnel[i].Value > inFunnel[j].Value })
	if len(inFunnel) > topDealsLimit {
		inFunnel = inFunnel[:topDealsLimit]
	}
	sum.TopDeals = inFunnel
	return sum
}

package economy

import (
	"log/slog"
	"math"

	"github.com/katalvlaran/wareflow/core"
)

// createRequestedWorkers makes or plans workers for demand that supplies
// cannot cover. Only worker economies with warehouses do this.
func (e *Economy) createRequestedWorkers() {
	if e.kind != core.KindWorker || len(e.warehouses) == 0 {
		return
	}
	for i := 0; i < e.s.cat.TypeCount(core.KindWorker); i++ {
		if t := TypeIndex(i); e.s.cat.Buildable(t) {
			e.createRequestedWorker(t)
		}
	}
}

func (e *Economy) createRequestedWorker(t TypeIndex) {
	// 1) Demand a rookie could meet, minus what is already around.
	demand := 0
	for _, r := range e.requests {
		if r.typ == t && r.minExperience == 0 && r.Open() {
			demand += r.OpenCount()
		}
	}
	if demand == 0 {
		return
	}
	for _, s := range e.supplies {
		demand -= s.Available(core.KindWorker, t, 0)
	}
	if demand <= 0 {
		return
	}

	// 2) Create right away where the ingredients are in stock.
	cost := e.s.cat.BuildCost(t)
	available := make([]int, len(cost))
	planned := 0
	for _, w := range e.warehouses {
		ws := w.Supply()
		planned += w.PlannedWorkers(t)
		for ws.canCreate(cost) {
			ws.createWorker(t, cost)
			if p := w.PlannedWorkers(t); p > 0 {
				w.PlanWorkers(t, p-1)
				planned--
			}
			e.s.log.Debug("worker created",
				slog.Any("warehouse", w.Serial()),
				slog.String("type", e.s.cat.TypeName(core.KindWorker, t)))
			demand--
			if demand == 0 {
				return
			}
		}
		for i, c := range cost {
			available[i] += ws.Stock(c.Kind, c.Type)
		}
	}

	// 3) How many could be built from stock scattered over warehouses, and
	// which ingredient limits it.
	canCreate := math.MaxInt
	scarcest := 0
	atLeastOne := false
	wares := e.s.EconomyOf(e.warehouses[0].BaseFlag(), core.KindWare)
	for i, c := range cost {
		amount := c.Amount
		if amount < 1 {
			amount = 1
		}
		if n := available[i] / amount; n <= canCreate {
			scarcest, canCreate = i, n
		}
		// A zero target would never attract the ware; plan one worker so
		// its request does.
		if c.Kind == core.KindWare && wares != nil && wares.TargetQuantity(c.Type).Quantity == 0 {
			atLeastOne = true
		}
	}

	// 4) Adjust plans, never beyond what demand or stock justify.
	switch {
	case planned > canCreate && (!atLeastOne || planned > 1):
		for _, w := range e.warehouses {
			p := w.PlannedWorkers(t)
			reduce := min(p, planned-canCreate)
			w.PlanWorkers(t, p-reduce)
			planned -= reduce
		}
	case planned < demand:
		goal := min(canCreate, demand)
		if atLeastOne && goal == 0 {
			goal = 1
		}
		for _, w := range e.warehouses {
			stock := 0
			if len(cost) > 0 {
				stock = w.Supply().Stock(cost[scarcest].Kind, cost[scarcest].Type)
			}
			planned -= w.PlannedWorkers(t)
			plan := max(0, min(stock, goal-planned))
			w.PlanWorkers(t, plan)
			planned += plan
		}
		if planned < goal {
			w := e.warehouses[0]
			w.PlanWorkers(t, w.PlannedWorkers(t)+goal-planned)
		}
	}
}

package scenario_test

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/cucumber/godog"

	"github.com/katalvlaran/wareflow/core"
	"github.com/katalvlaran/wareflow/economy"
	"github.com/katalvlaran/wareflow/scenario"
)

func TestFeatures(t *testing.T) {
	suite := godog.TestSuite{
		ScenarioInitializer: initializeEconomyScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{"features"},
			TestingT: t,
		},
	}

	if suite.Run() != 0 {
		t.Fatal("non-zero status returned, failed to run feature tests")
	}
}

type economyContext struct {
	world *scenario.World
}

func (ec *economyContext) reset() { ec.world = nil }

func (ec *economyContext) load(name string, opts ...economy.Option) error {
	doc, err := scenario.Load(filepath.Join("testdata", name+".yaml"))
	if err != nil {
		return err
	}
	ec.world, err = scenario.Build(doc, opts...)

	return err
}

func (ec *economyContext) theScenario(name string) error { return ec.load(name) }

func (ec *economyContext) theScenarioWithAutoDelivery(name string) error {
	return ec.load(name, economy.WithAutoDelivery())
}

func (ec *economyContext) theSessionRunsUntil(at int) error {
	return ec.world.Run(economy.Time(at))
}

func (ec *economyContext) request(name string) (*economy.Request, error) {
	r := ec.world.Request(name)
	if r == nil {
		return nil, fmt.Errorf("no request %q", name)
	}

	return r, nil
}

func (ec *economyContext) requestHasTransfersInFlight(name string, n int) error {
	r, err := ec.request(name)
	if err != nil {
		return err
	}
	if got := len(r.Transfers()); got != n {
		return fmt.Errorf("request %q has %d transfers, want %d", name, got, n)
	}

	return nil
}

func (ec *economyContext) requestImports(name string, want bool) error {
	r, err := ec.request(name)
	if err != nil {
		return err
	}
	for _, t := range r.Transfers() {
		if t.Imported() != want {
			return fmt.Errorf("transfer %d of %q: imported=%t", t.Serial(), name, t.Imported())
		}
	}

	return nil
}

func (ec *economyContext) requestIsServedFrom(name, warehouse string) error {
	r, err := ec.request(name)
	if err != nil {
		return err
	}
	d := ec.world.Depot(warehouse)
	if d == nil {
		return fmt.Errorf("no warehouse %q", warehouse)
	}
	for _, t := range r.Transfers() {
		if t.Supply() != economy.Supply(d.Supply()) {
			return fmt.Errorf("transfer %d of %q comes from supply %d", t.Serial(), name, t.Supply().Serial())
		}
	}

	return nil
}

func (ec *economyContext) requestReceived(name string, n int) error {
	r, err := ec.request(name)
	if err != nil {
		return err
	}
	if r.Delivered() != n {
		return fmt.Errorf("request %q received %d, want %d", name, r.Delivered(), n)
	}

	return nil
}

func (ec *economyContext) warehouseHolds(warehouse string, n int, ware string) error {
	d := ec.world.Depot(warehouse)
	if d == nil {
		return fmt.Errorf("no warehouse %q", warehouse)
	}
	t := ec.world.Catalog.Index(core.KindWare, ware)
	if t < 0 {
		return fmt.Errorf("no ware %q", ware)
	}
	if got := d.Stock(core.KindWare, t); got != n {
		return fmt.Errorf("warehouse %q holds %d %s, want %d", warehouse, got, ware, n)
	}

	return nil
}

func (ec *economyContext) theSessionIsConsistent() error { return ec.world.Session.Validate() }

func initializeEconomyScenario(ctx *godog.ScenarioContext) {
	ec := &economyContext{}

	ctx.Before(func(ctx context.Context, sc *godog.Scenario) (context.Context, error) {
		ec.reset()
		return ctx, nil
	})

	ctx.Step(`^the scenario "([^"]*)"$`, ec.theScenario)
	ctx.Step(`^the scenario "([^"]*)" with auto delivery$`, ec.theScenarioWithAutoDelivery)
	ctx.Step(`^the session runs until (\d+)$`, ec.theSessionRunsUntil)
	ctx.Step(`^request "([^"]*)" has (\d+) transfers? in flight$`, ec.requestHasTransfersInFlight)
	ctx.Step(`^request "([^"]*)" imports$`, func(name string) error { return ec.requestImports(name, true) })
	ctx.Step(`^request "([^"]*)" does not import$`, func(name string) error { return ec.requestImports(name, false) })
	ctx.Step(`^request "([^"]*)" is served from warehouse "([^"]*)"$`, ec.requestIsServedFrom)
	ctx.Step(`^request "([^"]*)" received (\d+) units?$`, ec.requestReceived)
	ctx.Step(`^warehouse "([^"]*)" holds (\d+) "([^"]*)"$`, ec.warehouseHolds)
	ctx.Step(`^the session is consistent$`, ec.theSessionIsConsistent)
}

package scenario

import (
	"errors"

	"github.com/katalvlaran/wareflow/economy"
)

// Sentinel errors for scenario files.
var (
	// ErrUnknownName indicates a reference to an object or type the
	// scenario does not define.
	ErrUnknownName = errors.New("scenario: unknown name")

	// ErrDuplicateName indicates two objects of one section sharing a name.
	ErrDuplicateName = errors.New("scenario: duplicate name")

	// ErrTypeChoice indicates an entry naming both a ware and a worker, or
	// neither.
	ErrTypeChoice = errors.New("scenario: exactly one of ware or worker must be set")

	// ErrEvent indicates an event with no action, or more than one.
	ErrEvent = errors.New("scenario: event must carry exactly one action")

	// ErrTopology indicates a topology entry with no shape, or more than one.
	ErrTopology = errors.New("scenario: topology must name exactly one shape")
)

// Document is the YAML form of a scenario.
type Document struct {
	Name       string          `yaml:"name"`
	Until      economy.Time    `yaml:"until" validate:"gte=0"`
	Catalog    CatalogSpec     `yaml:"catalog"`
	Flags      []FlagSpec      `yaml:"flags" validate:"dive"`
	Topologies []TopologySpec  `yaml:"topologies" validate:"dive"`
	Roads      []RoadSpec      `yaml:"roads" validate:"dive"`
	Warehouses []WarehouseSpec `yaml:"warehouses" validate:"dive"`
	Requests   []RequestSpec   `yaml:"requests" validate:"dive"`
	Supplies   []SupplySpec    `yaml:"supplies" validate:"dive"`
	Events     []EventSpec     `yaml:"events" validate:"dive"`
}

// TopologySpec generates a block of flags and roads. Flags are named by the
// id scheme with prefix prepended ("number": g0, g1, ...; "excel": gA, gB, ...)
// and can be referenced by later sections like declared flags. Roads cost the
// distance of their ends plus a slack drawn from [slack_min, slack_max].
type TopologySpec struct {
	IDs      string      `yaml:"ids" validate:"omitempty,oneof=number excel"`
	Prefix   string      `yaml:"prefix"`
	X        int         `yaml:"x"`
	Y        int         `yaml:"y"`
	Player   uint8       `yaml:"player"`
	Spacing  int         `yaml:"spacing" validate:"gte=0"`
	Seed     int64       `yaml:"seed"`
	SlackMin int64       `yaml:"slack_min" validate:"gte=0"`
	SlackMax int64       `yaml:"slack_max" validate:"gtefield=SlackMin"`
	Carries  []string    `yaml:"carries" validate:"dive,oneof=ware worker"`
	Path     *CountSpec  `yaml:"path"`
	Star     *CountSpec  `yaml:"star"`
	Grid     *GridSpec   `yaml:"grid"`
	Sparse   *SparseSpec `yaml:"random_sparse"`
}

// CountSpec sizes a path or star.
type CountSpec struct {
	N int `yaml:"n" validate:"gte=2"`
}

// GridSpec sizes a grid.
type GridSpec struct {
	Rows int `yaml:"rows" validate:"gte=1"`
	Cols int `yaml:"cols" validate:"gte=1"`
}

// SparseSpec sizes a random sparse network; each pair of flags is joined
// with probability p.
type SparseSpec struct {
	N int     `yaml:"n" validate:"gte=1"`
	P float64 `yaml:"p" validate:"gte=0,lte=1"`
}

// CatalogSpec lists the ware and worker types.
type CatalogSpec struct {
	Wares   []TypeSpec `yaml:"wares" validate:"dive"`
	Workers []TypeSpec `yaml:"workers" validate:"dive"`
}

// TypeSpec is one ware or worker type.
type TypeSpec struct {
	Name      string     `yaml:"name" validate:"required"`
	Target    int        `yaml:"target" validate:"gte=0"`
	Buildable bool       `yaml:"buildable"`
	Cost      []CostSpec `yaml:"cost" validate:"dive"`
}

// CostSpec is one ingredient of a buildable worker.
type CostSpec struct {
	Ware   string `yaml:"ware"`
	Worker string `yaml:"worker"`
	Amount int    `yaml:"amount" validate:"gte=1"`
}

// FlagSpec places a flag.
type FlagSpec struct {
	Name   string `yaml:"name" validate:"required"`
	X      int    `yaml:"x"`
	Y      int    `yaml:"y"`
	Player uint8  `yaml:"player"`
}

// RoadSpec joins two flags. Carries defaults to both kinds.
type RoadSpec struct {
	From     string   `yaml:"from" validate:"required"`
	To       string   `yaml:"to" validate:"required,nefield=From"`
	Cost     int64    `yaml:"cost" validate:"gte=0"`
	Carries  []string `yaml:"carries" validate:"dive,oneof=ware worker"`
	Waterway bool     `yaml:"waterway"`
}

// WarehouseSpec builds a depot. Stock and policies are keyed by type name.
type WarehouseSpec struct {
	Name           string            `yaml:"name" validate:"required"`
	Flag           string            `yaml:"flag" validate:"required"`
	Wares          map[string]int    `yaml:"wares" validate:"dive,gte=0"`
	Workers        map[string]int    `yaml:"workers" validate:"dive,gte=0"`
	WarePolicies   map[string]string `yaml:"ware_policies" validate:"dive,oneof=normal prefer dontstock remove"`
	WorkerPolicies map[string]string `yaml:"worker_policies" validate:"dive,oneof=normal prefer dontstock remove"`
}

// RequestSpec registers a request for a ware or a worker.
type RequestSpec struct {
	Name          string        `yaml:"name" validate:"required"`
	Flag          string        `yaml:"flag" validate:"required"`
	Ware          string        `yaml:"ware"`
	Worker        string        `yaml:"worker"`
	Count         int           `yaml:"count" validate:"gte=1"`
	Priority      *int          `yaml:"priority" validate:"omitempty,gte=0"`
	RequiredTime  *economy.Time `yaml:"required_time"`
	Interval      int64         `yaml:"interval" validate:"gte=0"`
	MinExperience int           `yaml:"min_experience" validate:"gte=0"`
	NoImports     bool          `yaml:"no_imports"`
}

// SupplySpec registers a loose item (ware) or an idle worker.
type SupplySpec struct {
	Name       string `yaml:"name"`
	Flag       string `yaml:"flag" validate:"required"`
	Ware       string `yaml:"ware"`
	Worker     string `yaml:"worker"`
	Experience int    `yaml:"experience" validate:"gte=0"`
	Ship       bool   `yaml:"ship"`
}

// EventSpec is one timed change. Exactly one action is set.
type EventSpec struct {
	At              economy.Time `yaml:"at" validate:"gte=0"`
	AddStock        *StockEvent  `yaml:"add_stock"`
	SetTarget       *TargetEvent `yaml:"set_target"`
	SetPolicy       *PolicyEvent `yaml:"set_policy"`
	RemoveRoad      *RoadSpec    `yaml:"remove_road"`
	AddRoad         *RoadSpec    `yaml:"add_road"`
	RemoveWarehouse string       `yaml:"remove_warehouse"`
	CancelRequest   string       `yaml:"cancel_request"`
	CompleteAll     bool         `yaml:"complete_all"`
}

// StockEvent changes warehouse stock by Amount, which may be negative.
type StockEvent struct {
	Warehouse string `yaml:"warehouse" validate:"required"`
	Ware      string `yaml:"ware"`
	Worker    string `yaml:"worker"`
	Amount    int    `yaml:"amount"`
}

// TargetEvent sets the target quantity of the economy at Flag.
type TargetEvent struct {
	Flag     string `yaml:"flag" validate:"required"`
	Ware     string `yaml:"ware"`
	Worker   string `yaml:"worker"`
	Quantity int    `yaml:"quantity" validate:"gte=0"`
}

// PolicyEvent changes a warehouse stock policy.
type PolicyEvent struct {
	Warehouse string `yaml:"warehouse" validate:"required"`
	Ware      string `yaml:"ware"`
	Worker    string `yaml:"worker"`
	Policy    string `yaml:"policy" validate:"oneof=normal prefer dontstock remove"`
}

package economy

import "github.com/katalvlaran/wareflow/core"

// BuildCost is one ingredient of a worker: Amount units of a ware or worker.
type BuildCost struct {
	Kind   core.Kind
	Type   TypeIndex
	Amount int
}

// Catalog describes the ware and worker types of a session.
type Catalog interface {
	// TypeCount returns the number of types of kind.
	TypeCount(kind core.Kind) int
	// TypeName returns a printable name for logs.
	TypeName(kind core.Kind, t TypeIndex) string
	// DefaultTarget is the target quantity of a new economy.
	DefaultTarget(kind core.Kind, t TypeIndex) int
	// Buildable reports whether warehouses may create the worker type.
	Buildable(worker TypeIndex) bool
	// BuildCost lists what one worker of the type consumes.
	BuildCost(worker TypeIndex) []BuildCost
}

// TypeSpec describes one type in a Table.
type TypeSpec struct {
	Name      string
	Target    int
	Buildable bool
	Cost      []BuildCost
}

// Table is a Catalog backed by two slices.
type Table struct {
	Wares   []TypeSpec
	Workers []TypeSpec
}

func (t *Table) specs(kind core.Kind) []TypeSpec {
	if kind == core.KindWorker {
		return t.Workers
	}

	return t.Wares
}

// TypeCount returns the number of types of kind.
func (t *Table) TypeCount(kind core.Kind) int { return len(t.specs(kind)) }

// TypeName returns the name of type i, or a placeholder for unknown indices.
func (t *Table) TypeName(kind core.Kind, i TypeIndex) string {
	specs := t.specs(kind)
	if i < 0 || int(i) >= len(specs) {
		return "?"
	}

	return specs[i].Name
}

// DefaultTarget returns the standing stock new economies want of type i.
func (t *Table) DefaultTarget(kind core.Kind, i TypeIndex) int {
	specs := t.specs(kind)
	if i < 0 || int(i) >= len(specs) {
		return 0
	}

	return specs[i].Target
}

// Buildable reports whether warehouses may create workers of this type.
func (t *Table) Buildable(worker TypeIndex) bool {
	if worker < 0 || int(worker) >= len(t.Workers) {
		return false
	}

	return t.Workers[worker].Buildable
}

// BuildCost lists the units consumed to create one worker of this type.
func (t *Table) BuildCost(worker TypeIndex) []BuildCost {
	if worker < 0 || int(worker) >= len(t.Workers) {
		return nil
	}

	return t.Workers[worker].Cost
}

// Index returns the type called name, or -1.
func (t *Table) Index(kind core.Kind, name string) TypeIndex {
	for i, s := range t.specs(kind) {
		if s.Name == name {
			return TypeIndex(i)
		}
	}

	return -1
}

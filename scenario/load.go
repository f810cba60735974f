package scenario

import (
	"bytes"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Load reads and validates the scenario at path.
func Load(path string) (*Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	doc, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return doc, nil
}

// Parse decodes and validates a scenario. Unknown keys are rejected.
func Parse(raw []byte) (*Document, error) {
	var doc Document
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	if err := validator.New().Struct(&doc); err != nil {
		return nil, fmt.Errorf("validate: %w", err)
	}
	for i, ts := range doc.Topologies {
		if ts.shapes() != 1 {
			return nil, fmt.Errorf("%w: topologies[%d]", ErrTopology, i)
		}
	}
	for i, ev := range doc.Events {
		if ev.actions() != 1 {
			return nil, fmt.Errorf("%w: events[%d]", ErrEvent, i)
		}
	}

	return &doc, nil
}

func (ts TopologySpec) shapes() int {
	return count(ts.Path != nil, ts.Star != nil, ts.Grid != nil, ts.Sparse != nil)
}

func (ev EventSpec) actions() int {
	return count(
		ev.AddStock != nil,
		ev.SetTarget != nil,
		ev.SetPolicy != nil,
		ev.RemoveRoad != nil,
		ev.AddRoad != nil,
		ev.RemoveWarehouse != "",
		ev.CancelRequest != "",
		ev.CompleteAll,
	)
}

// count returns how many of set are true.
func count(set ...bool) int {
	n := 0
	for _, s := range set {
		if s {
			n++
		}
	}

	return n
}

// Package scenario loads economy setups from YAML and plays them.
//
// A scenario names its catalog, flags, roads, warehouses, requests and loose
// supplies, plus timed events (stock arriving, roads removed, targets or
// policies changed). Build turns a Document into a World: a live
// economy.Session with every object registered in file order, so the same
// file always yields the same serials and the same sync stream.
//
//	doc, err := scenario.Load("testdata/two_districts.yaml")
//	w, err := scenario.Build(doc)
//	err = w.Run(doc.Until)
//
// Objects are referenced by name throughout the file and looked up on the
// World afterwards (Flag, Depot, Request, Supply).
package scenario

// Package rpunits is an in-memory physical-units conversion engine.
//
// Units live in a registry as named nodes of a conversion graph. Each unit
// is either a basis or defined relative to one, and any two units of the
// same type may be related directly. A conversion between compound
// expressions such as "cm2/Vs" and "m2/kVus" decomposes both sides into
// terms, pairs the terms by type and exponent and walks the fewest-hop
// chain between each pair.
//
// The engine is organized under four subpackages:
//
//	rule/   conversion steps (affine or custom function) and their chains
//	core/   thread-safe directed graph of units with one step per edge
//	bfs/    breadth-first traversal and fewest-hop chain search
//	units/  registry, metric prefixes, expression and value parsers,
//	        presets, YAML definitions and the integer-code facade
//
// Quick example:
//
//	res, code := units.Convert("5.00bar", "psi", units.UnitsOn)
//	// res == "72.52psi", code == 0
//
// A runnable tour lives in examples/:
//
//	go run ./examples
package rpunits

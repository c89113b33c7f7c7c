// Package pkg provides the core libraries for pysize disk footprint
// measurement.
//
// # Overview
//
// pysize answers one question: how many bytes does each dependency in a
// Python manifest really cost once installed, transitive dependencies
// included. The pkg directory is organized along the measurement
// pipeline:
//
//  1. [manifest] - extract package specifiers from requirements.txt or
//     pyproject.toml
//  2. [venv] - provision throwaway virtual environments and run pip
//  3. [probe] - per-package before/after size measurement
//  4. [report] - CSV report and console summary
//
// # Architecture
//
// The data flow through a run:
//
//	requirements.txt / pyproject.toml
//	         ↓
//	    [manifest] package (extract specifiers)
//	         ↓
//	    [probe] package (provision → measure → install → measure → teardown,
//	                     one environment per package, via [venv])
//	         ↓
//	    [report] package (sorted CSV + console table)
//
// Supporting packages: [errors] for structured error codes and
// [buildinfo] for version stamping.
package pkg

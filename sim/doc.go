// Package sim provides the core year-stepping simulation engine for solar
// and storage deployment.
//
// # Reading Guide
//
// Start with these three files to understand the simulation kernel:
//   - config.go: the Scenario schema (regions, technology variants, knobs)
//   - state.go: SimulationState, the only data that crosses year boundaries,
//     and CostSnapshot, the frozen pre-year costs every region trades at
//   - engine.go: the annual loop sequencing the four sub-models
//
// # Architecture
//
// Each simulated year flows strictly forward through four sub-models:
//   - technology.go: learning-curve unit costs (pure functions of cumulative capacity)
//   - market.go: single-clearing-price market with inverse-cost demand allocation
//   - investment.go: NPV evaluation and greedy selection under budget and headroom
//   - grid.go: the apply phase committing funded capacity into state
//
// Grid output feeds back into next year's costs through the cumulative
// capacity counters. Within a year every region reads the same CostSnapshot
// and all mutation is deferred to the apply phase, so region evaluation is
// order-independent and safe to parallelize.
//
// Result records and their CSV/summary serialization live in sim/report,
// which depends on nothing here.
package sim

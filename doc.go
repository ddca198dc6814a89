// Package simulador computes the transition schedule between a client's
// current fund portfolio and a target model portfolio.
//
// Given the current holdings, each carrying a redemption settlement delay,
// and a target allocation expressed as percentages per fund, the engine
// produces a day-by-day schedule of redemptions and investments whose
// projected cash balance never goes negative on any simulated day.
//
// The package is a pure library: it owns no I/O beyond the optional fund
// base loaders, and a single simulation run is strictly sequential. The
// fund Directory and the business Calendar are immutable after load and
// may be shared across concurrent runs.
package simulador

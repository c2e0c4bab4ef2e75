// Package segment aggregates the outcomes of the independent checks run on
// one precast girder segment.
//
// Aggregation has two phases. During the fill phase each check collaborator
// writes its result into a Builder. Build consumes the Builder and returns an
// Artifact, which is read-only: it answers whether the segment passed, which
// concrete strengths it requires at release, for a given interval and limit
// state, and for final conditions, and whether rebar-assisted allowable
// tensile stresses were applicable or used.
//
// Required strengths follow one rule everywhere: the governing value is the
// largest requirement among the contributing locations, except that the first
// infeasible location ends the search and is returned as is.
//
// An Artifact never mutates after Build and may be read from multiple
// goroutines. Builders are not safe for concurrent use.
package segment

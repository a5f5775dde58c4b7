// Package reducer folds update events into keyed collections.
//
// A Collection holds at most one entity per key. Rules classify each event as
// an upsert, a removal or unknown; Reduce applies one event without touching
// its input, Apply does the same in place. Alarm and command history rules
// are provided.
package reducer

// Package datasource keeps live collections for the console views.
//
// A DataSource folds a one-shot snapshot and a standing update stream into a
// keyed collection through reducer rules, and publishes the ordered result to
// any number of Connect subscribers. Fetch and stream run concurrently and
// their interleaving is not ordered; the fold is idempotent so the collection
// converges. A failed fetch clears the loading flag and surfaces the error,
// and Load can be called again to retry.
package datasource

// Package services contains the application services of PromptKeeper.
//
// RecordService is the record repository: every operation reads the full
// collection, mutates it, writes it back, and returns the refreshed
// collection so the caller can re-render. Mutations also publish a short
// outcome message through an Announcer.
package services

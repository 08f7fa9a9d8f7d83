// Package cli provides the interactive PromptKeeper command-line client.
//
// It wires configuration, local storage, the record service and an export
// sink, and runs a read–eval–print loop that translates typed commands into
// record service calls. After every mutation the collection is re-rendered;
// outcome announcements go to stderr.
//
// Commands:
//   - list / l, search, show
//   - add, delete, rate
//   - note, editnote, delnote
//   - import, export, status
//   - help, exit / quit
//
// The REPL is started via App.Run(ctx), which blocks until the user exits or
// input ends.
package cli

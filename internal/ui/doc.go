// Package ui contains the Bubble Tea program that powers the album browser.
// The Model type focuses on message orchestration; dedicated helpers own
// browsing, input, rendering, and result routing.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages.
//   - Update routes each message through a typed handler registry so every
//     tea.Msg is handled by a focused function (key presses, window resizes,
//     query completions, backend events).
//   - Browse helpers (browse.go) submit asynchronous catalog lookups through a
//     query.Correlator and mutate the navigation stack optimistically. Filter
//     and key handling (input.go) keeps all text entry concerns isolated from
//     the event loop.
//
// State ownership:
//   - Navigation state lives in internal/browser.Stack, which tracks levels,
//     cursors, filters, and the preview slot.
//   - All stack mutation happens on the interactive goroutine. Lookups run as
//     tea.Cmd values and report back as query.Done messages; results.go vets
//     each completion (owner, slot generation, origin path) before applying
//     it, so completions arriving out of order or after navigation moved on
//     are dropped rather than misapplied.
//
// Backend interactions:
//   - A backend.Watcher streams server idle events; Update waits for those
//     events and refreshes the album listing or the cached queue length when
//     the catalog or the play queue changes externally.
package ui

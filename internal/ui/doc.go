// Package ui contains the Bubble Tea program that renders the kernel module
// console.
//
// Message flow:
//   - Bubble Tea invokes Model.Update with incoming messages. Key presses are
//     not handled directly: handleKeyMsg pushes them onto the
//     backend.Multiplexer queue, where they are merged with the kernel log
//     poller and the tick source.
//   - A wait command blocks on the queue and returns each event as a
//     muxEventMsg. step applies it to the state machine, then prepareFrame
//     recomputes the filtered module list and enqueues the synthetic keys
//     some transitions need (an Enter when the input panel gains focus).
//   - Default key handling lives in navigation.go and text entry in input.go.
//     Confirming and cancelling staged commands goes through the
//     internal/ui/command bus.
//
// State ownership:
//   - Panel selection, layout sizes, the input buffer and the options overlay
//     live in internal/ui/state.App.
//   - Module list, pending command, log window and kernel info are owned by
//     kernel.Kernel. Only the Update goroutine touches either.
//
// Rendering is split between view.go (layout and boxes) and panels.go (one
// renderer per panel).
package ui

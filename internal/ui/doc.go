// Package ui contains the Bubble Tea program that hosts the grab menus. The
// Model is the host the menu engine observes: it owns the chest list and the
// open menu of every viewport, and it reports what the engine asks for
// through the host.Host interface.
//
// Message flow:
//   - Key and mouse messages are not acted on directly. They are queued on
//     the viewport they belong to and delivered on the next tick.
//   - Every tick runs an update phase per viewport (UpdateBegin, the queued
//     input, UpdateEnd) followed by one render phase per viewport
//     (RenderBegin, the pane draws, RenderEnd). Input the engine suppressed
//     never reaches the host's own handlers.
//   - Update routes each tea.Msg through a typed handler registry so every
//     message kind is handled by a focused function.
//
// State ownership:
//   - The chest list of a viewport lives in internal/ui/state.Level.
//   - Containers, locks and pane bindings belong to the engine
//     (internal/container and internal/grabmenu); the Model only opens
//     chests through Manager.OpenContainer and closes menus.
//
// Backend interactions:
//   - A backend.Watcher streams world changes; Update waits for those events
//     and hands them to applyBackendEvent, which updates the world through
//     the dispatcher and reopens menus over chests that were rebuilt.
//   - A reloaded configuration arrives as ConfigMsg and rebinds every open
//     menu under the new options.
package ui

// Package ui implements the interactive sync screen using bubbletea's Elm architecture.
//
// The TUI drives a single workflow: load state arrives from the CLI
// already prepared (audio on the transport, lyrics in the session), and
// the user taps keys against playback:
//  1. [SyncView] : transport controls plus advance/rewind/undo stamping
//  2. [ConfirmSaveView] : confirmation when saving with zero timestamps
//  3. [SavedView] : export result and the path written
//
// The [Model] implements bubbletea/Elm's standard Init/Update/View pattern.
// A fixed-cadence tick polls the transport position for the footer readout;
// it is display-only and never calls into the session's mutators.
//
// Bindings follow the classic sync-tool layout (space play/pause, enter
// next line, backspace back line, u undo, ctrl+s save) with contextual help
// displayed via charmbracelet/bubbles/help.
package ui

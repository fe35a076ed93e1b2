// Package cli provides the interactive jobtrack command-line client.
//
// It wires configuration, local storage, the cloud API client, and an
// interactive REPL that supports online/offline operation. Typical flow:
// restore a saved session if any, start a background connectivity watcher,
// and execute user commands against the active profile.
//
// Key features:
//   - Profile management (create, select, delete)
//   - Application tracking: add, list, show, status changes, notes
//   - Attachments: attach, detach, list stored documents
//   - Export: CSV of applications, zip bundle of documents
//   - Optional cloud account with two-way record sync
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// See App, StartOnlineStatusWatcher, and runREPL for details.
package cli

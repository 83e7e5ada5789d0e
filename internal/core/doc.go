// Package core provides the business logic for the daily-routine task import
// pipeline and the custom-task operations built around it.
//
// This package has no transport dependencies. It can be driven by the web
// handlers, the CLI, or tests without modification.
//
// # Architecture
//
// An import moves through three stages:
//
//   - Source Readers: turn a payload (spreadsheet, CSV, or pipe-delimited text)
//     into a sequence of [RawRow] without judging validity. Readers are
//     registered per [FileKind] and looked up with [ReaderFor].
//   - Row Validator: [ValidateRow] converts one RawRow into a [TaskDraft] or
//     rejects it. It is pure and total.
//   - Import Session: [ImportSession] holds the accepted drafts of the most
//     recent parse until they are cleared or committed to a [TaskSink].
//
// [Service] owns one session per user, bounds concurrent parses with an
// [ImportLimiter], and evicts idle sessions on a cron schedule.
//
// # Import Flow
//
//  1. Client calls [Service.ImportFile] or [Service.ImportText]
//  2. The file kind is detected from the extension ([DetectKind])
//  3. The reader produces RawRows, each row is validated
//  4. The session's pending drafts are replaced wholesale by the accepted rows
//  5. [Service.Commit] pushes each draft, in order, into the user's task store
//
// # Error Handling
//
// Import failures are never fatal. They are recorded on the session and
// mapped to user-facing messages with [MapError] / [LocalizedMessage].
// Each category has a code for support reference:
//
//   - IMP001-IMP005: import errors (unsupported type, parse, empty, no rows)
//   - FILE001-FILE004: file errors (size, encoding, missing file)
//   - UPL002-UPL005: request errors (busy, cancelled, timeout)
//   - TSK001-TSK003: task store errors
package core

// Package core drives a library sync: it reads component categories from a
// spreadsheet, rebuilds the library database from them and writes the DbLib
// file that points the EDA tool at that database.
//
// # Sync
//
// [Service.Sync] runs the steps in a fixed order:
//
//  1. read every tab (name, row count, header row) from the [Source]
//  2. validate every category; any failure aborts before the database is touched
//  3. drop every table in the library database
//  4. derive and create one table per category
//  5. insert component rows, assigning missing component IDs and writing them
//     back to the spreadsheet
//  6. build the DbLib file from the derived categories and write it
//
// Table derivation hands back a resolved category, and the DbLib builder only
// accepts resolved categories, so step 6 cannot run ahead of step 4.
//
// # Concurrency
//
// Syncs never overlap: [SyncLimiter] holds a single slot and a second request
// waits for [Options.MaxWait] before failing with [ErrSyncInProgress].
// [Service.StartSyncScheduler] resyncs periodically.
//
// # Error Handling
//
// Technical errors are mapped to user-facing messages with [MapError]. Codes
// are grouped by origin:
//
//   - SCH001-SCH005: schema problems in the spreadsheet
//   - SYNC001-SYNC004: sync driver (busy, cancelled, timed out, DbLib write)
//   - SHEET001-SHEET004: Google Sheets access
//   - DB001-DB005, DB007: library database
package core

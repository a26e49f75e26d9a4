// # Error Codes Reference
//
// This file defines user-facing error messages with codes for support
// reference. Codes are grouped by where the failure happened.
//
// # Schema Errors (SCH001-SCH099)
//
//	SCH001 - Missing required field: a tab lacks a required column
//	         Action: Add the missing column header to the tab
//	         Patterns: "missing required field"
//
//	SCH002 - Empty header: a column has no header text
//	         Action: Name or delete the empty column
//	         Patterns: "empty header"
//
//	SCH003 - Name collision: two columns map to the same database column
//	         Action: Rename one of the columns
//	         Patterns: "storage name collision"
//
//	SCH004 - Unknown dialect: the configured database driver is unsupported
//	         Action: Set DB_DRIVER to mysql or postgres
//	         Patterns: "unknown dialect"
//
//	SCH005 - Link header too long: a link header exceeds 255 characters
//	         Action: Shorten the header
//	         Patterns: "link header(s) longer than"
//
// # Sync Errors (SYNC001-SYNC099)
//
//	SYNC001 - Busy: another sync is running
//	          Action: Wait for it to finish
//	          Patterns: "sync in progress"
//
//	SYNC002 - Cancelled: the sync was cancelled
//	          Patterns: "context canceled"
//
//	SYNC003 - Timed out: the sync exceeded SYNC_TIMEOUT
//	          Patterns: "context deadline exceeded"
//
//	SYNC004 - DbLib not written: the DbLib file could not be written
//	          Patterns: "write dblib"
//
// # Spreadsheet Errors (SHEET001-SHEET099)
//
//	SHEET001 - Credentials: the service-account key could not be used
//	           Patterns: "credentials", "create sheets service"
//
//	SHEET002 - Not found: spreadsheet or tab does not exist
//	           Patterns: "error 404", "requested entity was not found"
//
//	SHEET003 - Forbidden: the service account has no access
//	           Patterns: "error 403", "permission"
//
//	SHEET004 - Quota: the Sheets API rate limit was hit
//	           Patterns: "error 429", "quota"
//
// # Database Errors (DB001-DB099)
//
//	DB001 - Access denied
//	        Patterns: "access denied", "password authentication failed"
//
//	DB002 - Unknown database
//	        Patterns: "unknown database", "sqlstate 3d000"
//
//	DB003 - Connection refused
//	        Patterns: "connection refused"
//
//	DB004 - Connection reset
//	        Patterns: "connection reset", "bad connection"
//
//	DB005 - Timeout
//	        Patterns: "i/o timeout", "timeout"
//
//	DB007 - Value too long for its column
//	        Patterns: "data too long", "value too long"
//
// # Default Error (ERR000)
//
//	ERR000 - Unknown error: check the logs for the technical error
//
// Patterns are matched case-insensitively with strings.Contains; the first
// match wins, so specific patterns come before general ones.

package core

import (
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string `json:"message"`
	Action  string `json:"action"`
	Code    string `json:"code"`
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

var (
	msgSheetCredentials = UserMessage{
		Message: "Could not authenticate with Google Sheets",
		Action:  "Check SHEET_CREDENTIALS_FILE points to a valid service-account key",
		Code:    "SHEET001",
	}
	msgSheetNotFound = UserMessage{
		Message: "Spreadsheet or tab not found",
		Action:  "Check SHEET_ID and that the tab still exists",
		Code:    "SHEET002",
	}
	msgSheetForbidden = UserMessage{
		Message: "No access to the spreadsheet",
		Action:  "Share the spreadsheet with the service account as an editor",
		Code:    "SHEET003",
	}
	msgSheetQuota = UserMessage{
		Message: "Google Sheets rate limit reached",
		Action:  "Wait a minute and sync again",
		Code:    "SHEET004",
	}
	msgDBAccess = UserMessage{
		Message: "Database rejected the credentials",
		Action:  "Check DB_USER and DB_PASSWORD",
		Code:    "DB001",
	}
	msgDBUnknown = UserMessage{
		Message: "Library database does not exist",
		Action:  "Create the database or fix DB_NAME",
		Code:    "DB002",
	}
	msgDBReset = UserMessage{
		Message: "Database connection was interrupted",
		Action:  "Please try again",
		Code:    "DB004",
	}
	msgDBTimeout = UserMessage{
		Message: "Database operation timed out",
		Action:  "Check the database is reachable and try again",
		Code:    "DB005",
	}
	msgDBTooLong = UserMessage{
		Message: "A cell value is too long for its column",
		Action:  "Shorten the value; text columns hold 255 characters",
		Code:    "DB007",
	}
)

// errorPatterns maps technical error text (lower case) to user messages.
// The first match wins.
var errorPatterns = []errorPattern{
	// Schema
	{"missing required field", UserMessage{
		Message: "A category is missing required fields",
		Action:  "Add the missing column headers to the tab",
		Code:    "SCH001",
	}},
	{"empty header", UserMessage{
		Message: "A column has an empty header",
		Action:  "Name or delete the empty column",
		Code:    "SCH002",
	}},
	{"storage name collision", UserMessage{
		Message: "Two columns map to the same database column",
		Action:  "Rename one of the columns so their names differ",
		Code:    "SCH003",
	}},
	{"unknown dialect", UserMessage{
		Message: "Unsupported database driver",
		Action:  "Set DB_DRIVER to mysql or postgres",
		Code:    "SCH004",
	}},
	{"link header(s) longer than", UserMessage{
		Message: "A link column header is too long",
		Action:  "Shorten the header to 255 characters or fewer",
		Code:    "SCH005",
	}},

	// Sync
	{"sync in progress", UserMessage{
		Message: "Another sync is already running",
		Action:  "Wait for it to finish and check the sync status",
		Code:    "SYNC001",
	}},
	{"context canceled", UserMessage{
		Message: "Sync was cancelled",
		Action:  "Start the sync again",
		Code:    "SYNC002",
	}},
	{"context deadline exceeded", UserMessage{
		Message: "Sync timed out",
		Action:  "Raise SYNC_TIMEOUT or check the spreadsheet and database are responsive",
		Code:    "SYNC003",
	}},
	{"write dblib", UserMessage{
		Message: "The DbLib file could not be written",
		Action:  "Check DBLIB_FILE points to a writable location",
		Code:    "SYNC004",
	}},

	// Spreadsheet
	{"create sheets service", msgSheetCredentials},
	{"credentials", msgSheetCredentials},
	{"error 404", msgSheetNotFound},
	{"requested entity was not found", msgSheetNotFound},
	{"error 403", msgSheetForbidden},
	{"permission", msgSheetForbidden},
	{"error 429", msgSheetQuota},
	{"quota", msgSheetQuota},

	// Database
	{"access denied", msgDBAccess},
	{"password authentication failed", msgDBAccess},
	{"unknown database", msgDBUnknown},
	{"sqlstate 3d000", msgDBUnknown}, // postgres invalid_catalog_name
	{"connection refused", UserMessage{
		Message: "Unable to connect to database",
		Action:  "Check DB_HOST and DB_PORT and that the server is running",
		Code:    "DB003",
	}},
	{"connection reset", msgDBReset},
	{"bad connection", msgDBReset},
	{"i/o timeout", msgDBTimeout},
	{"timeout", msgDBTimeout},
	{"data too long", msgDBTooLong},
	{"value too long", msgDBTooLong},
}

// defaultMessage is returned when no pattern matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Check the logs for details",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message. If no
// pattern matches, the ERR000 fallback is returned; nil maps to the zero value.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			return ep.msg
		}
	}
	return defaultMessage
}

// FormatUserError creates a formatted error string for display:
// "Message (Code: XXX). Action".
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	return fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
}

// IsUserFacing reports whether err matches a known pattern.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}

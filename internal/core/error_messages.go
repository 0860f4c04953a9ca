package core

// # Error Codes Reference
//
// This file maps pipeline errors to user-friendly messages with codes for
// support reference. Users can quote the code when reporting a problem.
//
// # File Errors (FILE001-FILE099)
//
//	FILE001 - File too large: Upload exceeds the configured size limit
//	          Patterns: "file too large"
//	FILE002 - Invalid CSV: File is not a valid CSV
//	          Patterns: "invalid csv"
//	FILE003 - Encoding error: File is neither UTF-8 nor EUC-KR
//	          Patterns: "encoding error"
//	FILE004 - No files: No billing export was uploaded
//	          Patterns: "no files provided"
//	FILE005 - No valid data: Uploads contained no billing rows
//	          Patterns: "no valid data"
//	FILE006 - Too many files: More parts than UPLOAD_MAX_FILES
//	          Patterns: "too many files"
//
// # Column Errors (COL001-COL099)
//
//	COL001 - Missing column: A required column (cost) could not be resolved
//	         Patterns: "missing required column"
//
// # Report Errors (RPT001-RPT099)
//
//	RPT001 - Empty report: There are no suggestions to export
//	RPT002 - Unsupported format: Report format is not csv or pdf
//	RPT003 - Invalid request: Report request body could not be decoded
//	RPT004 - Rendering failed: The report could not be generated
//
// # Upload Errors (UPL001-UPL099)
//
//	UPL002 - System busy: Too many analyses in progress
//	UPL004 - Request cancelled
//	UPL005 - Request timeout
//
// # Rate Limiting (RATE001)
//
//	RATE001 - Rate limited: Too many requests
//
// # Default Error (ERR000)
//
// Fallback when no pattern matches. Check application logs for the
// original technical error.
//
// Patterns are matched case-insensitively using strings.Contains and the
// first matching pattern wins.

import (
	"fmt"
	"strings"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
}

type errorPattern struct {
	pattern string
	msg     UserMessage
}

var errorPatterns = []errorPattern{
	// File errors
	{
		pattern: "file too large",
		msg: UserMessage{
			Message: "Upload exceeds the maximum size limit",
			Action:  "Split the export into smaller files",
			Code:    "FILE001",
		},
	},
	{
		pattern: "invalid csv",
		msg: UserMessage{
			Message: "File is not a valid CSV",
			Action:  "Ensure file is comma-separated with consistent columns",
			Code:    "FILE002",
		},
	},
	{
		pattern: "encoding error",
		msg: UserMessage{
			Message: "File contains invalid characters",
			Action:  "Save file as UTF-8 or EUC-KR encoding",
			Code:    "FILE003",
		},
	},
	{
		pattern: "no files provided",
		msg: UserMessage{
			Message: "No billing export was uploaded",
			Action:  "Please select at least one CSV file",
			Code:    "FILE004",
		},
	},
	{
		pattern: "no valid data",
		msg: UserMessage{
			Message: "The uploaded files contain no billing rows",
			Action:  "Upload a CSV export with data rows",
			Code:    "FILE005",
		},
	},
	{
		pattern: "too many files",
		msg: UserMessage{
			Message: "Too many files in one upload",
			Action:  "Upload fewer files per analysis",
			Code:    "FILE006",
		},
	},

	// Column errors
	{
		pattern: "missing required column",
		msg: UserMessage{
			Message: "A required cost column is missing",
			Action:  "Include a cost column such as cost, UnblendedCost or CostInBillingCurrency",
			Code:    "COL001",
		},
	},

	// Report errors
	{
		pattern: "no suggestions to report",
		msg: UserMessage{
			Message: "There are no suggestions to export",
			Action:  "Run an analysis that produces suggestions first",
			Code:    "RPT001",
		},
	},
	{
		pattern: "unsupported format",
		msg: UserMessage{
			Message: "Report format is not supported",
			Action:  "Use format=csv or format=pdf",
			Code:    "RPT002",
		},
	},
	{
		pattern: "invalid report request",
		msg: UserMessage{
			Message: "Report request could not be read",
			Action:  "Send the JSON returned by /analyze",
			Code:    "RPT003",
		},
	},
	{
		pattern: "report rendering failed",
		msg: UserMessage{
			Message: "The report could not be generated",
			Action:  "Please try again or download the CSV report",
			Code:    "RPT004",
		},
	},

	// Upload errors
	{
		pattern: "too many concurrent analyses",
		msg: UserMessage{
			Message: "System is busy processing other analyses",
			Action:  "Please wait a moment and try again",
			Code:    "UPL002",
		},
	},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "UPL004",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Try uploading smaller files or check your connection",
			Code:    "UPL005",
		},
	},

	// Rate limiting
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
}

var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
// If no pattern matches, the ERR000 fallback is returned.
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

// FormatUserError renders err as "Message (Code: XXX). Action".
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

package core

// # Error Codes Reference
//
// User-facing messages carry a code so a user can quote it when reporting a
// problem. Storage failures also carry a reference (see StorageError.Ref)
// that appears next to the diagnostic line in the log.
//
// # Database Errors (DB001-DB099)
//
//	DB001 - Constraint: The record was rejected by the store
//	DB004 - Unavailable: Unable to open the inventory store
//	DB006 - Timeout: Operation timed out
//	DB007 - Busy: The store is locked by another operation
//	DB008 - Read-only: The store cannot be written
//	DB009 - Corrupt: The store file is damaged
//	DB010 - Schema: The store is missing its tables
//
// # Validation Errors (VAL001-VAL099)
//
//	VAL002 - Invalid number
//	VAL003 - Required field
//	VAL007 - Invalid email
//	VAL008 - Negative value
//	VAL009 - Already saved
//
// # Request Errors (REQ001-REQ099)
//
//	REQ001 - Request cancelled
//	REQ002 - Request timed out
//	REQ003 - Invalid identifier
//	REQ004 - Unreadable request body
//
// # Rate Limiting (RATE001)
//
// # Default Error (ERR000)
//
// Typed errors are checked first. Anything left is matched case-insensitively
// against errorPatterns; the first match wins.

import (
	"errors"
	"fmt"
	"strings"

	"github.com/JonMunkholm/inventory/internal/database"
)

// UserMessage provides user-friendly error information with actionable guidance.
type UserMessage struct {
	Message string // What happened (user-friendly)
	Action  string // What to do about it
	Code    string // Error code for support reference
	Field   string // Offending form field, for validation errors
	Ref     string // Log correlation reference, for storage errors
}

var kindMessages = map[database.ErrorKind]UserMessage{
	database.KindConstraint: {
		Message: "The record was rejected by the store",
		Action:  "Check the entered values and try again",
		Code:    "DB001",
	},
	database.KindUnavailable: {
		Message: "Unable to open the inventory store",
		Action:  "Check that the database file is accessible and try again",
		Code:    "DB004",
	},
	database.KindTimeout: {
		Message: "Operation timed out",
		Action:  "Please try again",
		Code:    "DB006",
	},
	database.KindBusy: {
		Message: "The store is busy with another operation",
		Action:  "Please try again in a moment",
		Code:    "DB007",
	},
	database.KindReadOnly: {
		Message: "The store cannot be written",
		Action:  "Check file permissions on the database",
		Code:    "DB008",
	},
	database.KindCorrupt: {
		Message: "The store file is damaged",
		Action:  "Restore the database from a backup",
		Code:    "DB009",
	},
	database.KindSchema: {
		Message: "The store is missing its tables",
		Action:  "Restart the application to recreate the schema",
		Code:    "DB010",
	},
}

var reasonMessages = map[Reason]UserMessage{
	ReasonRequired: {
		Message: "Required field is empty",
		Action:  "Fill in the highlighted field",
		Code:    "VAL003",
	},
	ReasonNotNumeric: {
		Message: "Invalid number format detected",
		Action:  "Enter a plain decimal number without currency symbols",
		Code:    "VAL002",
	},
	ReasonNotInteger: {
		Message: "Invalid number format detected",
		Action:  "Enter a whole number",
		Code:    "VAL002",
	},
	ReasonNegative: {
		Message: "Value must not be negative",
		Action:  "Enter zero or a positive number",
		Code:    "VAL008",
	},
	ReasonInvalidEmail: {
		Message: "Invalid email address",
		Action:  "Enter an address like name@example.com",
		Code:    "VAL007",
	},
}

// errorPattern defines a pattern to match and its corresponding user message.
type errorPattern struct {
	pattern string
	msg     UserMessage
}

// errorPatterns maps technical error text (case-insensitive) to user messages.
// Specific patterns come before general ones.
var errorPatterns = []errorPattern{
	{
		pattern: "constraint failed",
		msg:     kindMessages[database.KindConstraint],
	},
	{
		pattern: "violates",
		msg:     kindMessages[database.KindConstraint],
	},
	{
		pattern: "connection refused",
		msg:     kindMessages[database.KindUnavailable],
	},
	{
		pattern: "unable to open",
		msg:     kindMessages[database.KindUnavailable],
	},
	{
		pattern: "database is locked",
		msg:     kindMessages[database.KindBusy],
	},
	{
		pattern: "deadlock",
		msg:     kindMessages[database.KindBusy],
	},
	{
		pattern: "no such table",
		msg:     kindMessages[database.KindSchema],
	},
	{
		pattern: "context canceled",
		msg: UserMessage{
			Message: "Request was cancelled",
			Action:  "Please try again",
			Code:    "REQ001",
		},
	},
	{
		pattern: "context deadline exceeded",
		msg: UserMessage{
			Message: "Request timed out",
			Action:  "Please try again",
			Code:    "REQ002",
		},
	},
	{
		pattern: "invalid id",
		msg: UserMessage{
			Message: "Invalid record identifier",
			Action:  "Reload the list and try again",
			Code:    "REQ003",
		},
	},
	{
		pattern: "invalid request body",
		msg: UserMessage{
			Message: "The request could not be read",
			Action:  "Send the form fields as a JSON object",
			Code:    "REQ004",
		},
	},
	{
		pattern: "timeout",
		msg:     kindMessages[database.KindTimeout],
	},
	{
		pattern: "rate limit",
		msg: UserMessage{
			Message: "Too many requests",
			Action:  "Please wait a moment before trying again",
			Code:    "RATE001",
		},
	},
}

var alreadyPersistedMessage = UserMessage{
	Message: "This record has already been saved",
	Action:  "Clear the form to enter a new record",
	Code:    "VAL009",
}

// defaultMessage is returned when nothing matches (ERR000).
var defaultMessage = UserMessage{
	Message: "An unexpected error occurred",
	Action:  "Please try again or contact support",
	Code:    "ERR000",
}

// MapError converts a technical error to a user-friendly message.
//
// Validation errors keep their own wording and field. Storage errors are
// classified by driver error code and keep their log reference. Anything
// else falls back to the pattern table.
func MapError(err error) UserMessage {
	if err == nil {
		return UserMessage{}
	}

	var ve *ValidationError
	if errors.As(err, &ve) {
		msg, ok := reasonMessages[ve.Reason]
		if !ok {
			msg = defaultMessage
		}
		msg.Message = ve.Message
		msg.Field = ve.Field
		return msg
	}

	if errors.Is(err, ErrAlreadyPersisted) {
		return alreadyPersistedMessage
	}

	if errors.Is(err, ErrWritesBusy) {
		return kindMessages[database.KindBusy]
	}

	var ref string
	var se *StorageError
	if errors.As(err, &se) {
		ref = se.Ref.String()
	}

	if msg, ok := kindMessages[database.Classify(err)]; ok {
		msg.Ref = ref
		return msg
	}

	errStr := strings.ToLower(err.Error())
	for _, ep := range errorPatterns {
		if strings.Contains(errStr, ep.pattern) {
			msg := ep.msg
			msg.Ref = ref
			return msg
		}
	}

	msg := defaultMessage
	msg.Ref = ref
	return msg
}

// FormatUserError creates a formatted error string for display.
// The format is: "Message (Code: XXX). Action", with " Ref: <uuid>" appended
// for storage errors.
func FormatUserError(err error) string {
	msg := MapError(err)
	if msg.Message == "" {
		return ""
	}
	s := fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
	if msg.Ref != "" {
		s += " Ref: " + msg.Ref
	}
	return s
}

// IsUserFacing reports whether err maps to a specific message rather than
// the generic ERR000 fallback.
func IsUserFacing(err error) bool {
	if err == nil {
		return false
	}
	return MapError(err).Code != defaultMessage.Code
}

// IsValidation reports whether err is a user-correctable input error.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

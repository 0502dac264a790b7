package errors

import "strings"

// ErrorCode is a string representation of a specific error condition.
// Codes are grouped by module prefix: COMMON, ING (ingestion input), DOC
// (document decoding), EXT (extraction), PBK (playbook), REG (region), COV
// (coverage analysis).
type ErrorCode string

func (c ErrorCode) String() string {
	return string(c)
}

// Common error codes.
const (
	ErrCodeInternal        ErrorCode = "COMMON_001"
	ErrCodeBadRequest      ErrorCode = "COMMON_002"
	ErrCodeNotFound        ErrorCode = "COMMON_003"
	ErrCodeTimeout         ErrorCode = "COMMON_004"
	ErrCodeSerialization   ErrorCode = "COMMON_005"
	ErrCodeDatabaseError   ErrorCode = "COMMON_006"
	ErrCodeCacheError      ErrorCode = "COMMON_007"
	ErrCodeStorageError    ErrorCode = "COMMON_008"
	ErrCodeExternalService ErrorCode = "COMMON_009"
	ErrCodeUnknown         ErrorCode = "COMMON_000"

	// CodeOK is the sentinel returned by GetCode for a nil error.
	CodeOK ErrorCode = "OK"
)

// Ingestion input error codes.  These map to the "rejected immediately, not
// retried" class of failures: the caller supplied nothing the engine can work
// with.
const (
	ErrCodeMissingContent     ErrorCode = "ING_001"
	ErrCodeEmptyInput         ErrorCode = "ING_002"
	ErrCodeIngestionNotFound  ErrorCode = "ING_003"
	ErrCodeUnsupportedFormat  ErrorCode = "ING_004"
	ErrCodeIngestionCorrupted ErrorCode = "ING_005"
)

// Document decoding error codes.  Decoding itself never fails for "no text
// found"; these cover infrastructure-level problems around it.
const (
	ErrCodeDocumentFetchFailed ErrorCode = "DOC_001"
	ErrCodeContentDecodeFailed ErrorCode = "DOC_002"
)

// Extraction error codes.
const (
	ErrCodeStrategyFailed      ErrorCode = "EXT_001"
	ErrCodeStrategyTimeout     ErrorCode = "EXT_002"
	ErrCodeUnparseableContent  ErrorCode = "EXT_003"
	ErrCodeStrategyBadResponse ErrorCode = "EXT_004"
)

// Playbook error codes.
const (
	ErrCodePlaybookNotFound ErrorCode = "PBK_001"
)

// Region resolution error codes.
const (
	ErrCodeRegionUnresolved ErrorCode = "REG_001"
)

// Coverage analysis error codes.
const (
	ErrCodeCoverageFailed ErrorCode = "COV_001"
)

// errorCodeMessage maps ErrorCodes to default messages.
var errorCodeMessage = map[ErrorCode]string{
	ErrCodeInternal:        "internal error",
	ErrCodeBadRequest:      "bad request",
	ErrCodeNotFound:        "resource not found",
	ErrCodeTimeout:         "operation timed out",
	ErrCodeSerialization:   "serialization failed",
	ErrCodeDatabaseError:   "database error",
	ErrCodeCacheError:      "cache error",
	ErrCodeStorageError:    "object storage error",
	ErrCodeExternalService: "external service error",

	ErrCodeMissingContent:     "no content and no document reference supplied",
	ErrCodeEmptyInput:         "extracted text is empty after normalization",
	ErrCodeIngestionNotFound:  "ingestion record not found",
	ErrCodeUnsupportedFormat:  "unsupported document format",
	ErrCodeIngestionCorrupted: "ingestion payload is corrupted",

	ErrCodeDocumentFetchFailed: "failed to fetch document from storage",
	ErrCodeContentDecodeFailed: "failed to decode document content envelope",

	ErrCodeStrategyFailed:      "external extraction strategy failed",
	ErrCodeStrategyTimeout:     "external extraction strategy timed out",
	ErrCodeUnparseableContent:  "no clauses could be extracted from the document",
	ErrCodeStrategyBadResponse: "external extraction strategy returned an invalid payload",

	ErrCodePlaybookNotFound: "no playbook matches the requested contract type",

	ErrCodeRegionUnresolved: "governing law could not be mapped to a region",

	ErrCodeCoverageFailed: "coverage evaluation failed",
}

// DefaultMessageForCode returns the default message for an ErrorCode.
func DefaultMessageForCode(code ErrorCode) string {
	if msg, ok := errorCodeMessage[code]; ok {
		return msg
	}
	return "unknown error"
}

// ModuleForCode returns the module prefix of an ErrorCode ("ING", "EXT", ...).
// It is used as a metric label by the monitoring layer.
func ModuleForCode(code ErrorCode) string {
	parts := strings.Split(string(code), "_")
	if len(parts) > 0 && parts[0] != "" {
		return parts[0]
	}
	return "UNKNOWN"
}

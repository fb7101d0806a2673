package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError

	// Logging errors
	CreateLogFileError

	// Database errors
	DBConnectionError
	DBTableCheckError
	DBEmptyDatabaseError
	DBNotConnectedError
	DBTableExistsCheckError
	DBQueryTablesError
	DBScanTableError
	DBDropTableError

	// Schema errors
	SchemaGORMConnectionError
	SchemaCreateError
	SchemaMigrateError
	SchemaConstraintError

	// Populate errors
	PopulateSourceNotFoundError
	PopulateSourceReadError
	PopulateTruncateError
	PopulateCopyError
	PopulateAllTablesFailedError

	// Store errors
	SchemaIntrospectionError
	ExecutionError
	UnknownColumnError

	// Pipeline errors
	ExtractionInputError
	GenerationEmptyError
	GenerationDomainError
	GenerationFailedError
	GenerationTimeoutError
	SafetyRejectedError
	EmptyResultError
	EmptyQuestionError

	// LLM transport errors
	LLMConfigError
	LLMRequestError
	LLMResponseError

	// HTTP errors
	ServerStartError
	RequestDecodeError
)

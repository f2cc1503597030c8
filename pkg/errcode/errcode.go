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
	DBUnsupportedDriverError
	DBTableCheckError
	DBEmptyDatabaseError
	DBNotConnectedError
	DBTableExistsCheckError
	DBDropTableError

	// Schema errors
	SchemaCreateError
	SchemaMigrateError

	// Store errors
	StoreCreateError
	StoreBulkCreateError
	StoreListError
	StoreGetError

	// Populate errors
	PopulateOpenFileError
	PopulateMalformedDocumentError
	PopulateInsertError

	// Optimize errors
	OptimizeVacuumError
	OptimizeAnalyzeError

	// Server errors
	ServerStartError
	ServerShutdownError
)

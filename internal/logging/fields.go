package logging

// Field names for structured logging.
const (
	FieldError      = "error"
	FieldPath       = "path"
	FieldDirectory  = "dir"
	FieldFiles      = "files"
	FieldWorkingDir = "working_dir"
	FieldConfig     = "config"
	FieldMode       = "mode"
	FieldBackup     = "backup"

	FieldFilesScanned    = "files_scanned"
	FieldFilesChanged    = "files_changed"
	FieldLinesChanged    = "lines_changed"
	FieldFindings        = "findings"
	FieldOutputsInserted = "outputs_inserted"
	FieldOutputsLeftover = "outputs_leftover"

	FieldVersion  = "version"
	FieldCommit   = "commit"
	FieldBuilt    = "built"
	FieldRuleSet  = "rule_set"
	FieldRule     = "rule"
	FieldSeverity = "severity"
)

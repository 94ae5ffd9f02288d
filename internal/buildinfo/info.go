package buildinfo

// Set via ldflags during release builds. Version also gates project-file
// compatibility: files written by another major version are rejected on
// load.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

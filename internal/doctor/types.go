package doctor

// Severity ranks how serious an issue is.
type Severity string

const (
	// SeverityError blocks the assignment flow entirely.
	SeverityError Severity = "error"
	// SeverityWarning degrades behavior but the tool still works.
	SeverityWarning Severity = "warning"
)

// Issue represents a problem detected by doctor.
type Issue struct {
	Worktree    string // worktree name, empty for repo-level issues
	Description string // human-readable description
	Severity    Severity
	FixAction   string // what --fix would do, empty when unfixable
	EnvPath     string // env file a fix rewrites
	Key         string // key a fix upserts
	Port        int    // derived port a fix writes
}

// Stats tracks counts for the summary.
type Stats struct {
	WorktreesHealthy int // worktrees whose stored port matches
	EnvIssues        int // drifted, missing or duplicated keys
	MissingFiles     int // worktrees without an env file
	Collisions       int // ports shared by multiple names
}

package constants

// Scope selects which config file a command reads or writes.
type Scope string

const (
	// ScopeLocal is the project config at ./.jiggle/config.yaml
	ScopeLocal Scope = "local"

	// ScopeGlobal is the user config at ~/.jiggle/config.yaml
	ScopeGlobal Scope = "global"

	// ScopeBoth merges global then local, local winning.
	ScopeBoth Scope = "both"
)

// Valid returns true if the scope is a recognized value.
func (s Scope) Valid() bool {
	switch s {
	case ScopeLocal, ScopeGlobal, ScopeBoth:
		return true
	}
	return false
}

// String returns the string representation of the scope.
func (s Scope) String() string {
	return string(s)
}

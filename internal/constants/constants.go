// Package constants provides named constants used throughout the jiggle codebase.
// This centralizes magic numbers for better maintainability and documentation.
package constants

// Proposal constants
const (
	// DefaultProposalScale is the standard deviation of the Normal(0, scale)
	// increment added to a latent site on every re-declaration.
	DefaultProposalScale = 0.2
)

// Site naming constants
const (
	// VectorSiteSeparator joins a vector declaration's name and element index,
	// so element i of "v" is stored as site "v_i".
	VectorSiteSeparator = "_"
)

// Chain defaults used by the runner and the CLI when neither config nor flags
// say otherwise.
const (
	// DefaultSteps is the number of transitions performed after initialization.
	DefaultSteps = 10000

	// DefaultBurnIn is the number of leading transitions discarded from summaries.
	DefaultBurnIn = 1000

	// DefaultThin keeps every n-th retained transition. 1 keeps all of them.
	DefaultThin = 1

	// DefaultSeed seeds the chain's random source when none is configured.
	DefaultSeed = 1
)

// Summary quantiles reported per site.
var SummaryQuantiles = []float64{0.05, 0.5, 0.95}

// Decision log constants
const (
	// DecisionsFile is the JSONL file the decision logger appends to.
	DecisionsFile = "decisions.jsonl"

	// ConfigDirName is the directory (under home or the project root) holding
	// config.yaml and decisions.jsonl.
	ConfigDirName = ".jiggle"

	// ConfigFileName is the YAML config file inside ConfigDirName.
	ConfigFileName = "config.yaml"
)

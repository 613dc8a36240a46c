package parameter

// Population
const (
	// PopulationSize is the default number of runners per generation
	PopulationSize = 10
)

// Genetic Algorithm - Linear policy genes
const (
	// GeneCount is weights for obstacle x, obstacle width, speed plus bias
	GeneCount = 4

	GeneMin = -1.0
	GeneMax = 1.0
)

// Genetic Algorithm - Operators
const (
	// GAMutationRate is the probability each outgoing chromosome gets one gene redrawn
	GAMutationRate = 1.0

	// GASelectionFixed picks slots 0 and 1 as parents
	GASelectionFixed = "fixed"

	// GASelectionRank picks the two best scored members as parents
	GASelectionRank = "rank"
)

// Policy input normalization
const (
	PolicyScaleX     = 600.0
	PolicyScaleWidth = 600.0
	PolicyScaleSpeed = 100.0
)

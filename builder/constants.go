// SPDX-License-Identifier: MIT

package builder

// Method tags used as error context.
const (
	MethodCycle             = "Cycle"
	MethodPath              = "Path"
	MethodStar              = "Star"
	MethodWheel             = "Wheel"
	MethodComplete          = "Complete"
	MethodCompleteBipartite = "CompleteBipartite"
	MethodRandomSparse      = "RandomSparse"
	MethodRandomRegular     = "RandomRegular"
	MethodGrid              = "Grid"
	MethodExpression        = "Expression"
)

// Minimum sizes.
const (
	MinCycleNodes    = 3
	MinPathNodes     = 2
	MinStarNodes     = 2
	MinWheelNodes    = 4
	MinCompleteNodes = 2
	MinGridDim       = 1
	MinPartition     = 1
)

// Probability domain.
const (
	MinProbability = 0.0
	MaxProbability = 1.0
)

// DefaultGenePrefix names synthetic genes "g0", "g1", ...
const DefaultGenePrefix = "g"

// DefaultCellPrefix names synthetic cells "cell0", "cell1", ...
const DefaultCellPrefix = "cell"

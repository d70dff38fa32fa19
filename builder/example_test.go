package builder_test

import (
	"fmt"

	"github.com/katalvlaran/scent/builder"
)

// ExampleBuild overlays a star on a cycle sharing gene IDs.
func ExampleBuild() {
	topo, err := builder.Build(
		[]builder.BuilderOption{builder.WithSymbNumb("TF")},
		builder.Cycle(5),
		builder.Star(3),
	)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(topo.Genes(), topo.EdgeCount())
	// Output:
	// [TF0 TF1 TF2 TF3 TF4] 6
}

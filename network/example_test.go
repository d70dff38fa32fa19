package network_test

import (
	"fmt"

	"github.com/katalvlaran/scent/network"
)

// ExampleBuild builds a small interaction network and restricts it to the
// genes an assay actually measured.
func ExampleBuild() {
	topo, err := network.Build(
		[]string{"TP53", "MDM2", "CDKN1A", "EGFR"},
		[]network.Edge{
			{A: "TP53", B: "MDM2"},
			{A: "TP53", B: "CDKN1A"},
			{A: "MDM2", B: "TP53"}, // duplicate, collapsed
			{A: "EGFR", B: "CDKN1A"},
		},
	)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(topo.GeneCount(), topo.EdgeCount())

	sub, err := topo.RestrictTo([]string{"MDM2", "TP53", "CDKN1A"})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(sub.Genes(), sub.EdgeCount())
	// Output:
	// 4 3
	// [TP53 MDM2 CDKN1A] 2
}

// ExampleTopology_Components lists connected components in index order.
func ExampleTopology_Components() {
	topo, _ := network.BuildIndexed(5, [][2]int{{0, 3}, {1, 2}})
	fmt.Println(topo.Components())
	// Output:
	// [[0 3] [1 2] [4]]
}

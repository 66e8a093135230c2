package lang_test

import (
	"errors"
	"fmt"

	"github.com/ardnew/daex/lang"
	"github.com/ardnew/daex/model"
)

func ExampleTranslate() {
	out, err := lang.Translate("Vmax*S/(Km+S)", lang.NewSet("Vmax", "Km"))
	if err != nil {
		panic(err)
	}

	fmt.Println(out)
	// Output: p.Vmax.*S./(p.Km + S)
}

func ExampleReferences() {
	refs, _ := lang.References("x + 2*y - z", lang.NewSet("x", "y", "z", "w"))

	fmt.Println(refs)
	// Output: [x y z]
}

func ExampleOrder() {
	states := []model.State{
		{ID: "a2", Kind: model.KindAssignment, Equation: "a1+1"},
		{ID: "a1", Kind: model.KindAssignment, Equation: "v1*2"},
		{ID: "v1", Kind: model.KindODE, Equation: "-v1"},
	}

	ids, _ := lang.Order(states)

	fmt.Println(ids)
	// Output: [v1 a1 a2]
}

func ExampleOrder_cycle() {
	states := []model.State{
		{ID: "a", Kind: model.KindAssignment, Equation: "b+1"},
		{ID: "b", Kind: model.KindAssignment, Equation: "2*a"},
	}

	_, err := lang.Order(states)

	var de *lang.DependencyError
	if errors.As(err, &de) {
		fmt.Println(de.States, de.Cycle)
	}
	// Output: [a b] [a b a]
}

package align_test

import (
	"fmt"

	"github.com/motiontree/motiontree/align"
)

func ExampleNeedlemanWunsch() {
	a := "RATTACA"
	b := "RCATGCV"

	scoring := align.NewScoring(-1)
	score, alignA, alignB, err := align.NeedlemanWunsch(a, b, scoring)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Printf("score: %d, A: %s, B: %s", score, alignA, alignB)

	// Output: score: 0, A: R-ATTACA, B: RCA-TGCV
}

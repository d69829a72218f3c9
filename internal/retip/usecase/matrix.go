package usecase

import (
	"fmt"

	"gonum.org/v1/gonum/mat"

	"github.com/oloBion/retip/internal/pkg/pkgerror"
	"github.com/oloBion/retip/internal/retip/entity"
)

// DesignMatrix splits a built dataset into a feature matrix and the RT target.
// Features keep the dataset's column order; the names are returned alongside.
func DesignMatrix(t *entity.Table) (*mat.Dense, *mat.VecDense, []string, error) {
	if !t.HasColumn(entity.ColumnRT) {
		return nil, nil, nil, pkgerror.NewPrecondition(entity.ColumnRT, "column is required as the target")
	}

	features := t.Without(entity.ColumnRT).Columns()
	if t.NumRows() == 0 || len(features) == 0 {
		return nil, nil, nil, pkgerror.NewPrecondition(entity.ColumnRT,
			fmt.Sprintf("dataset of %d rows and %d features has nothing to fit", t.NumRows(), len(features)))
	}

	x := mat.NewDense(t.NumRows(), len(features), nil)
	y := mat.NewVecDense(t.NumRows(), nil)

	for i := range t.NumRows() {
		rt, ok := t.At(i, entity.ColumnRT).Float()
		if !ok {
			return nil, nil, nil, pkgerror.NewPrecondition(entity.ColumnRT, fmt.Sprintf("row %d has no numeric value", i+1))
		}
		y.SetVec(i, rt)

		for j, name := range features {
			v, ok := t.At(i, name).Float()
			if !ok {
				return nil, nil, nil, pkgerror.NewPrecondition(name, fmt.Sprintf("row %d has no numeric value", i+1))
			}
			x.Set(i, j, v)
		}
	}

	return x, y, features, nil
}

package usecase

import (
	"fmt"
	"math"
	"math/rand/v2"

	"github.com/oloBion/retip/internal/pkg/pkgerror"
	"github.com/oloBion/retip/internal/pkg/pkguid"
	"github.com/oloBion/retip/internal/retip/entity"
)

// pcgStream decorrelates the two PCG words derived from one seed.
const pcgStream uint64 = 0x9e3779b97f4a7c15

// splitEpsilon absorbs float error in fraction*n before rounding up.
const splitEpsilon = 1e-9

var newSeedSource = func() (pkguid.NumberID, error) {
	sf, err := pkguid.NewSnowflake()
	if err != nil {
		return nil, err
	}
	return sf, nil
}

// RandomSplitter shuffles rows with a seeded PCG generator and holds out
// ceil(fraction*n) of them for testing.
type RandomSplitter struct{}

func (RandomSplitter) Split(t *entity.Table, fraction float64, seed int64) (*entity.Table, *entity.Table, error) {
	if math.IsNaN(fraction) || fraction < 0 || fraction >= 1 {
		return nil, nil, pkgerror.NewConfiguration("test_size", fraction, "must be in [0, 1)")
	}

	n := t.NumRows()
	if fraction == 0 || n == 0 {
		return t.Clone(), t.Empty(), nil
	}

	nTest := int(math.Ceil(fraction*float64(n) - splitEpsilon))
	if nTest >= n {
		return nil, nil, pkgerror.NewConfiguration("test_size", fraction,
			fmt.Sprintf("holds out %d of %d rows and leaves nothing to train on", nTest, n))
	}

	rng := rand.New(rand.NewPCG(uint64(seed), uint64(seed)^pcgStream))
	perm := rng.Perm(n)

	return t.Take(perm[nTest:]), t.Take(perm[:nTest]), nil
}

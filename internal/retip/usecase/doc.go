// Package usecase assembles a modeling dataset from a retention-time record table.
//
// A Pipeline validates the records, computes descriptors once per distinct
// SMILES, drops incomplete rows and columns, and splits what remains into
// training and test rows:
//
//	p, err := usecase.Open(dep, cfg, "rt.csv", "")
//	train, err := p.TrainingData(ctx)
//
// The dataset and split are built lazily and cached until Invalidate.
package usecase

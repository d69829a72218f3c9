// Package chem ships the default structure parser and descriptor calculator.
//
// The parser reads a practical subset of SMILES (organic-subset and bracket
// atoms, bonds, branches, ring closures and dot-separated fragments) into a
// Molecule graph with implicit hydrogens resolved. The calculator derives
// constitutional descriptors from that graph. Both sit behind the pipeline's
// collaborator interfaces and can be swapped for a full cheminformatics
// toolkit without touching the dataset code.
package chem

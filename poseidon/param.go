package poseidon

import "math/rand"

// HashSize is the number of field elements in a hash output.
const HashSize = 4

// Rate is the number of state elements absorbed per permutation call.
const Rate = 8

type Params struct {
	// number of full rounds
	NumFullRounds int
	// number of half full rounds
	NumHalfFullRounds int
	// number of partial rounds
	NumPartRounds int
	// number of half partial rounds
	NumHalfPartialRounds int
	// number of states
	NumStates int
	// mds matrix
	MdsMatrix [][]uint64
	// external round constants
	ExternalRoundConstant [][]uint64
	// internal round constants
	InternalRoundConstant []uint64
}

// NewParams returns the permutation parameters. Round constants are derived
// from a fixed seed, not an audited constant set.
func NewParams() *Params {
	r := rand.New(rand.NewSource(42))

	numFullRounds := 8
	numPartRounds := 22
	numStates := 12

	externalRoundConstant := make([][]uint64, numStates)
	for i := 0; i < numStates; i++ {
		externalRoundConstant[i] = make([]uint64, numFullRounds)
		for j := 0; j < numFullRounds; j++ {
			externalRoundConstant[i][j] = randomGoldilocks(r)
		}
	}

	internalRoundConstant := make([]uint64, numPartRounds)
	for i := 0; i < numPartRounds; i++ {
		internalRoundConstant[i] = randomGoldilocks(r)
	}

	mds := make([][]uint64, numStates)
	for i := 0; i < numStates; i++ {
		mds[i] = make([]uint64, numStates)
		for j := 0; j < numStates; j++ {
			mds[i][j] = randomGoldilocks(r)
		}
	}

	return &Params{
		NumFullRounds:         numFullRounds,
		NumHalfFullRounds:     numFullRounds / 2,
		NumPartRounds:         numPartRounds,
		NumHalfPartialRounds:  numPartRounds / 2,
		NumStates:             numStates,
		MdsMatrix:             mds,
		ExternalRoundConstant: externalRoundConstant,
		InternalRoundConstant: internalRoundConstant,
	}
}

const goldilocksModulus = 0xffffffff00000001

func randomGoldilocks(r *rand.Rand) uint64 {
	t := r.Uint64()
	for t >= goldilocksModulus || t == 0 {
		t = r.Uint64()
	}
	return t
}

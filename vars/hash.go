package vars

// HashOutVariable is one hash output laid over HashOutSize slots.
type HashOutVariable struct {
	Elements [HashOutSize]Variable
}

// MerkleCapVariable is the top rows of a Merkle tree; a cap of height h has
// 1<<h entries.
type MerkleCapVariable []HashOutVariable

// MerkleProofVariable is an authentication path of sibling hashes.
type MerkleProofVariable struct {
	Siblings []HashOutVariable
}

// Package similarity compares chapter fingerprints pairwise.
//
// Every unordered pair is scored exactly by cosine distance; there is no
// approximate index. The full distance matrix is held in memory, so the cost
// grows with the square of the sample count. That is fine for the tens to
// low hundreds of chapters a disc carries.
package similarity

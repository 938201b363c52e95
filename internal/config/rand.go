package config

import (
	"fmt"
	"hash/maphash"
	"math/rand/v2"
	"os"
)

// NewRand seeds a PCG generator from MINES_SEED ("a:b") when set, randomly
// otherwise.
func NewRand() (*rand.Rand, error) {
	seed, ok := os.LookupEnv("MINES_SEED")
	if !ok || seed == "" {
		return rand.New(rand.NewPCG(
			new(maphash.Hash).Sum64(), new(maphash.Hash).Sum64(),
		)), nil
	}
	return ParseRandSeed(seed)
}

func ParseRandSeed(seed string) (*rand.Rand, error) {
	var s1, s2 uint64
	n, err := fmt.Sscanf(seed, "%d:%d", &s1, &s2)
	if n != 2 || err != nil {
		return nil, fmt.Errorf(`invalid seed "%s", want two integers like "1:2"`, seed)
	}
	return rand.New(rand.NewPCG(s1, s2)), nil
}

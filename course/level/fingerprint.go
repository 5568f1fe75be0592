package level

import (
	"encoding/binary"
	"math"

	"github.com/cespare/xxhash/v2"
	"github.com/go-gl/mathgl/mgl64"
)

// Fingerprint hashes the names of the executed operations and the cursor path
// of a level. Two levels with equal fingerprints were, with overwhelming
// probability, built by the same sequence of operations along the same path.
func Fingerprint(ops []Operation, path []mgl64.Vec2) uint64 {
	d := xxhash.New()
	for _, op := range ops {
		_, _ = d.WriteString(Name(op))
		_, _ = d.Write([]byte{0})
	}
	var buf [8]byte
	for _, p := range path {
		for _, v := range p {
			binary.LittleEndian.PutUint64(buf[:], math.Float64bits(v))
			_, _ = d.Write(buf[:])
		}
	}
	return d.Sum64()
}

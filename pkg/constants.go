package dupscan

// Default scan parameters
const (
	// DefaultAlgorithm is the digest algorithm used when none is configured.
	// xxh64 is a fast non-cryptographic hash; duplicate detection needs a
	// content-identity check, not a security primitive.
	DefaultAlgorithm = "xxh64"

	// DefaultChunkSize is the read size for streaming digests. Memory use per
	// digest worker is bounded by this value regardless of file size.
	DefaultChunkSize = 8192

	// DefaultHashWorkers is the number of concurrent digest workers.
	DefaultHashWorkers = 4
)

// Channel capacities for the scan pipeline
const (
	// entryChannelSize bounds the walker-to-workers queue so traversal cannot
	// run unboundedly ahead of hashing.
	entryChannelSize = 50
)

// Output format constants
const (
	FormatHuman  = "human"
	FormatJSON   = "json"
	FormatFdupes = "fdupes"
)

// Diagnostic operation labels, recorded with each skipped path. Open and
// read failures both surface as DiagRead since both abandon the same digest.
const (
	DiagStat    = "stat"
	DiagReadDir = "readdir"
	DiagRead    = "read"
	DiagCycle   = "cycle"
)

package tensor

const (
	// MaxExponent bounds the tabulated sigmoid domain. Outside
	// [-MaxExponent, MaxExponent) FastSigmoid saturates to 0 or 1.
	MaxExponent = 6.0

	// SigmoidTableSize is the number of buckets covering the domain.
	SigmoidTableSize = 10000
)

// sigmoidTable is built once at package init and only read afterwards, so
// concurrent lookups need no synchronisation.
var sigmoidTable = buildSigmoidTable()

func buildSigmoidTable() []float32 {
	table := make([]float32, SigmoidTableSize)
	span := 2.0 * MaxExponent / SigmoidTableSize
	for i := range table {
		// midpoint of bucket i
		x := -MaxExponent + (float64(i)+0.5)*span
		table[i] = Sigmoid(float32(x))
	}
	return table
}

// FastSigmoid returns the tabulated logistic sigmoid of x. NaN maps to 0.
func FastSigmoid(x float32) float32 {
	switch {
	case x >= MaxExponent:
		return 1
	case !(x >= -MaxExponent):
		return 0
	}
	f := (x + MaxExponent) / (2 * MaxExponent)
	idx := int(f * SigmoidTableSize)
	// f can round up to exactly 1 for x just below MaxExponent.
	idx = max(0, min(idx, SigmoidTableSize-1))
	return sigmoidTable[idx]
}

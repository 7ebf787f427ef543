package match3

// Random is the source of randomness for generation and refill.
// *math/rand.Rand satisfies it.
type Random interface {
	// Intn returns a value in [0, n).
	Intn(n int) int
}

// ScriptedRandom replays a fixed sequence of values, wrapping each into
// [0, n). When the script runs out it defers to Fallback, or returns 0 if
// Fallback is nil. It lets tests pin refill types exactly.
type ScriptedRandom struct {
	Values   []int
	Fallback Random
	next     int
}

// NewScriptedRandom creates a ScriptedRandom over values.
func NewScriptedRandom(values ...int) *ScriptedRandom {
	return &ScriptedRandom{Values: values}
}

// Intn returns the next scripted value modulo n.
func (r *ScriptedRandom) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	if r.next >= len(r.Values) {
		if r.Fallback != nil {
			return r.Fallback.Intn(n)
		}
		return 0
	}
	v := r.Values[r.next] % n
	r.next++
	if v < 0 {
		v += n
	}
	return v
}

// Queue appends values to the script.
func (r *ScriptedRandom) Queue(values ...int) {
	r.Values = append(r.Values, values...)
}

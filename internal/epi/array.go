package epi

// Array holds one value per population sub-group (e.g. per age bin).
// A length-1 Array broadcasts across any compartment shape.
type Array []float64

func (a Array) Clone() Array {
	c := make(Array, len(a))
	copy(c, a)
	return c
}

func (a Array) Sum() float64 {
	total := 0.0
	for _, v := range a {
		total += v
	}
	return total
}

func (a Array) Fill(v float64) {
	for i := range a {
		a[i] = v
	}
}

// Scaled returns a new Array with every element multiplied by k.
func (a Array) Scaled(k float64) Array {
	c := make(Array, len(a))
	for i, v := range a {
		c[i] = v * k
	}
	return c
}

// Scalar wraps a single value as a broadcastable Array.
func Scalar(v float64) Array {
	return Array{v}
}

// Zeros returns an Array of n zero elements.
func Zeros(n int) Array {
	return make(Array, n)
}

// at reads element i with length-1 broadcast.
func (a Array) at(i int) float64 {
	if len(a) == 1 {
		return a[0]
	}
	return a[i]
}

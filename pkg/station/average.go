package station

import "io"

type averaged struct {
	Sampler
	n int
}

// Averaged returns a Sampler that reports the mean of n consecutive samples
// of s. For n <= 1 it returns s. Close is forwarded if s is an io.Closer.
func Averaged(s Sampler, n int) Sampler {
	if n <= 1 {
		return s
	}
	return &averaged{Sampler: s, n: n}
}

func (a *averaged) Sample(ch Channel) (float32, error) {
	var sum float32
	for i := 0; i < a.n; i++ {
		v, err := a.Sampler.Sample(ch)
		if err != nil {
			return 0, err
		}
		sum += v
	}
	return sum / float32(a.n), nil
}

func (a *averaged) Close() error {
	if c, ok := a.Sampler.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

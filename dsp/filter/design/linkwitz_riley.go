package design

import "github.com/Darbouka/VRMusic-Studio-sub002/dsp/filter/biquad"

// LinkwitzRileyLP designs a lowpass Linkwitz-Riley cascade of the given
// even order by cascading two Butterworth filters of half the order.
// Returns nil for odd or non-positive orders and invalid frequencies.
func LinkwitzRileyLP(freq float64, order int, sampleRate float64) []biquad.Coefficients {
	if !validLR(freq, order, sampleRate) {
		return nil
	}
	bw := ButterworthLP(freq, order/2, sampleRate)
	return append(bw, bw...)
}

// LinkwitzRileyHP designs the matching highpass cascade. For orders ≡ 2 mod 4
// the polarity is inverted so that LP + HP is allpass for every even order.
func LinkwitzRileyHP(freq float64, order int, sampleRate float64) []biquad.Coefficients {
	if !validLR(freq, order, sampleRate) {
		return nil
	}
	bw := ButterworthHP(freq, order/2, sampleRate)
	sections := append(bw, bw...)
	if order%4 == 2 {
		sections[0].B0 = -sections[0].B0
		sections[0].B1 = -sections[0].B1
		sections[0].B2 = -sections[0].B2
	}
	return sections
}

func validLR(freq float64, order int, sampleRate float64) bool {
	return order > 0 && order%2 == 0 && sampleRate > 0 && freq > 0 && freq < sampleRate/2
}

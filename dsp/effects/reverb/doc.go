// Package reverb implements a Schroeder/Freeverb reverberator: eight parallel
// damped comb filters summed into four serial allpass diffusers, with stereo
// width, freeze, pre-delay and wet-path low/high cut.
package reverb

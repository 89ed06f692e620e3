// Package bus mixes named channels into one stereo signal.
//
// Each channel takes its signal either from the bus input or from an
// attached Source (an inference collaborator), optionally runs it through an
// effectchain.Chain, and contributes mix*signal to the weighted sum.
package bus

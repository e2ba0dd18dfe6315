// Package password implements constraint-satisfying secure password
// generation, compliance templates, and strength analysis.
//
// Generation is constructive: a validated policy contributes its per-class
// minimum counts first, the rest of the positions are filled from the union
// alphabet, and the result is shuffled with an unbiased permutation. Every
// draw, including the shuffle, comes from a CSPRNG; there is no
// generate-then-retry loop, so generation always terminates and infeasible
// policies fail up front with a typed error.
//
// # Usage
//
//	gen := password.New()
//	policy, err := password.Resolve("high-security")
//	if err != nil {
//		// handle error
//	}
//	pw, err := gen.Generate(policy)
//	if err != nil {
//		// handle error
//	}
//	report := password.Analyze(pw, 0)
//
// # Error Handling
//
// Failures are reported through package sentinels (ErrPolicyLength,
// ErrPolicyMinimums, ErrEmptyAlphabet, ErrUnknownTemplate, ...) wrapped
// with the offending context; compare with errors.Is.
package password

// Package polyroot provides the complex-value helpers, polynomial arithmetic
// and root finders shared by the filter design packages.
//
// Complex values are plain complex128. Polynomials are []float64 or
// []complex128 in descending power order unless a function documents
// otherwise.
//
// The iterative root finders are best effort: convergence of simultaneous
// iterations is not formally guaranteed. Callers that rely on the roots for
// filter design should check the root count and their half-plane placement.
package polyroot

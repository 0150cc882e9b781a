// Package export writes graded quiz results to documents. The page layout
// is computed separately from rendering so that the same results always
// produce the same lines in the same order.
package export

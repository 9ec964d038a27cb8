// Package shared holds code used across packages that belongs to no single
// layer.
//
// The testutil subpackage provides export fixtures in the cost and revenue
// layouts and a buffered slog handler for asserting on log output:
//
//	func TestSomething(t *testing.T) {
//	    logger, handler := testutil.NewTestLogger(t)
//	    // exercise code with logger
//	    testutil.AssertNoErrors(t, handler)
//	}
package shared

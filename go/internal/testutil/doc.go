// Package testutil provides shared test fixtures for RelayCoach packages.
//
// [Athlete], [Team] and [Session] build valid domain values and fail the
// test on error. [Clock] is the fixed clock every fixture validates against,
// so date-of-birth rules do not depend on the wall clock.
//
// [RequireReceive] wraps the select-with-timeout pattern used by tests that
// wait on channels fed by other goroutines.
//
// All helpers call t.Fatalf on failure rather than returning errors,
// since test setup failures are not recoverable.
package testutil

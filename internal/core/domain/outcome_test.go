// internal/core/domain/outcome_test.go
package domain

import (
	"errors"
	"testing"

	"onca/internal/testutil"
)

func TestOutcomeConstructors(t *testing.T) {
	ok := OK(SourceArchive, nil)
	testutil.AssertTrue(t, ok.Succeeded(), "ok succeeded")
	testutil.AssertNotNil(t, ok.Results, "results never nil")
	testutil.AssertEqual(t, ok.Results.Len(), 0, "empty results")

	rl := RateLimited(SourceWhoisHistory, nil)
	testutil.AssertEqual(t, rl.Kind, OutcomeRateLimited, "rate limited kind")
	testutil.AssertTrue(t, errors.Is(rl.Err, ErrSourceRateLimited), "default reason")
	testutil.AssertEqual(t, rl.Results.Len(), 0, "no results when throttled")

	cause := errors.New("boom")
	failed := Failed(SourceWebSearch, cause)
	testutil.AssertEqual(t, failed.Kind, OutcomeFailed, "failed kind")
	testutil.AssertFalse(t, failed.Succeeded(), "failed did not succeed")
	testutil.AssertTrue(t, errors.Is(failed.Err, cause), "cause kept")
}

func TestOutcomeKind_String(t *testing.T) {
	testutil.AssertEqual(t, OutcomeOK.String(), "ok", "ok")
	testutil.AssertEqual(t, OutcomeRateLimited.String(), "rate-limited", "rate limited")
	testutil.AssertEqual(t, OutcomeFailed.String(), "failed", "failed")
	testutil.AssertEqual(t, OutcomeKind(7).String(), "unknown", "unknown")
}

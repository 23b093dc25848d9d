// Package moderation resolves user-submitted content reports.
//
// A Dispatcher takes a report, an action kind and the acting staff member,
// checks the Authorization Gate and the report's lifecycle state, invokes the
// mutator for that kind, appends an audit entry and finally moves the report
// to its next status with a compare-and-set write. Side effects that already
// happened are never rolled back: when the status write loses a race with
// another dispatch the caller gets ErrAlreadyResolved and the side effect stands.
package moderation

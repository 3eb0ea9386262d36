// Package scheduler implements the timetable domain: the trainee, session and
// day-booking record store, the lookup indices derived from it, the scheduling
// queries answered from those indices, and the booking policy that enforces the
// weekly hour cap and date based status rules.
//
// A Timetable is not safe for concurrent use. Callers that share one across
// goroutines must serialise access themselves.
package scheduler

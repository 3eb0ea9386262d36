// Package http provides HTTP handlers and middleware for the timetable API.
//
// The router exposes the following endpoints:
//   - GET /trainees, POST /trainees, PUT /trainees/{id}, DELETE /trainees/{id}:
//     roster management exchanging the `traineeDTO` payload defined in
//     trainee_handler.go. Deleting a trainee also removes its sessions and
//     bookings and reports how many were removed.
//   - GET /trainees/{id}/weekly-stats?date=YYYY-MM-DD&exclude={booking id}:
//     planned, present and remaining hours of the week containing date.
//   - GET /sessions?week=YYYY-MM-DD&day=N&time=HH:MM, POST /sessions,
//     PUT /sessions/{id}, DELETE /sessions/{id}: sessions pinned to a weekly
//     time slot. Updates cannot move a session to another slot.
//   - GET /bookings?date=YYYY-MM-DD, POST /bookings, PUT /bookings/{id},
//     DELETE /bookings/{id}: whole-day bookings. A booking that would exceed
//     the weekly hour cap is answered with 409 and the cap figures.
//   - GET /calendar/week?date=, GET /calendar/month?month=YYYY-MM,
//     GET /calendar/slots, GET /holidays: read-only calendar views.
//   - GET /export downloads the timetable document; POST /import replaces the
//     collections present in an uploaded document.
//   - GET /healthz and GET /metrics for operators.
//
// Request/response DTOs live alongside their respective handlers so tests and
// documentation share the same ground truth.
package http

// Package calendar holds the date-key and week arithmetic shared by the
// timetable, along with the fixed time slots and the holiday gate that decides
// whether a date can carry sessions or bookings.
//
// A date-key is a "YYYY-MM-DD" string naming a local wall-clock day. Weeks
// start on Monday and day indices run from 0 (Monday) to 6 (Sunday).
package calendar

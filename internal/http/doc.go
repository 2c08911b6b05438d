// Package http provides the HTTP surface of the shift calendar service.
//
// The router exposes a single route:
//   - GET /{username}: returns the account's synthesized schedule as an
//     iCalendar document with `Content-Type: text/calendar` and a
//     `Content-Disposition` attachment header, suitable for calendar
//     subscriptions. Unknown usernames yield a plain-text 404; corrupt
//     upstream data yields a 500.
//
// There is no authentication beyond the username path match: subscribers
// treat the URL as the secret.
package http

// Package api defines the request and response messages of the cardplanner
// Connect services. Messages are plain Go structs encoded as JSON; the
// validate tags are checked by the service layer before any storage call.
package api

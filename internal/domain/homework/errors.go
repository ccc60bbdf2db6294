// internal/domain/homework/errors.go
package homework

import "fmt"

// Errors returned by the API client.
var ErrServerUnavailable = fmt.Errorf("homework API is unavailable")
var ErrNoData = fmt.Errorf("homework API returned no data")
var ErrMalformedResponse = fmt.Errorf("homework API returned a malformed body")

// Errors returned by response validation and status formatting.
var ErrUnexpectedType = fmt.Errorf("unexpected data type")
var ErrMissingHomeworks = fmt.Errorf("response has no 'homeworks' field")
var ErrUnknownStatus = fmt.Errorf("unknown homework status")

// ErrSendFailed is returned when a chat message could not be delivered.
var ErrSendFailed = fmt.Errorf("failed to send message")

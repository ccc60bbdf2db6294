// internal/domain/homework/homework.go
package homework

import (
	"encoding/json"
	"fmt"
)

// Status is a review status code reported by the homework API.
type Status string

const (
	StatusApproved  Status = "approved"
	StatusReviewing Status = "reviewing"
	StatusRejected  Status = "rejected"
)

// Verdicts maps every known status code to the text shown in chat.
var Verdicts = map[Status]string{
	StatusApproved:  "Работа проверена: ревьюеру всё понравилось. Ура!",
	StatusReviewing: "Работа взята на проверку ревьюером.",
	StatusRejected:  "Работа проверена: у ревьюера есть замечания.",
}

// Homework is a single record of the 'homeworks' list.
type Homework struct {
	Name   string
	Status Status
}

// FromRecord extracts a Homework from a decoded JSON record.
// It does not check the status against Verdicts.
func FromRecord(record any) (Homework, error) {
	fields, ok := record.(map[string]any)
	if !ok {
		return Homework{}, fmt.Errorf("homework record is %T, want object: %w", record, ErrUnexpectedType)
	}
	name, _ := fields["homework_name"].(string)
	status, _ := fields["status"].(string)
	return Homework{Name: name, Status: Status(status)}, nil
}

// ValidateResponse checks that body is an object carrying a 'homeworks' list
// and returns that list unchanged. An empty list is not an error.
func ValidateResponse(body any) ([]any, error) {
	response, ok := body.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("response is %T, want object: %w", body, ErrUnexpectedType)
	}
	raw, ok := response["homeworks"]
	if !ok {
		return nil, ErrMissingHomeworks
	}
	homeworks, ok := raw.([]any)
	if !ok {
		return nil, fmt.Errorf("'homeworks' is %T, want list: %w", raw, ErrUnexpectedType)
	}
	return homeworks, nil
}

// CurrentDate returns the optional 'current_date' field of a response.
func CurrentDate(body any) (int64, bool) {
	response, ok := body.(map[string]any)
	if !ok {
		return 0, false
	}
	switch v := response["current_date"].(type) {
	case json.Number:
		n, err := v.Int64()
		return n, err == nil
	case float64:
		return int64(v), true
	default:
		return 0, false
	}
}

// ParseStatus builds the chat message for one homework record.
func ParseStatus(record any) (string, error) {
	hw, err := FromRecord(record)
	if err != nil {
		return "", err
	}
	if hw.Name == "" {
		return "", fmt.Errorf("homework name is empty: %w", ErrUnknownStatus)
	}
	verdict, ok := Verdicts[hw.Status]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, hw.Status)
	}
	return fmt.Sprintf("Изменился статус проверки работы \"%s\". %s", hw.Name, verdict), nil
}

package homework

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func decode(t *testing.T, raw string) any {
	t.Helper()
	dec := json.NewDecoder(strings.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		t.Fatalf("decode %q: %v", raw, err)
	}
	return v
}

func TestValidateResponse(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		body    string
		wantLen int
		wantErr error
	}{
		{name: "one homework", body: `{"homeworks":[{"homework_name":"hw1","status":"approved"}]}`, wantLen: 1},
		{name: "empty list", body: `{"homeworks":[],"current_date":1700000000}`, wantLen: 0},
		{name: "missing homeworks", body: `{}`, wantErr: ErrMissingHomeworks},
		{name: "only current_date", body: `{"current_date":1700000000}`, wantErr: ErrMissingHomeworks},
		{name: "homeworks not a list", body: `{"homeworks":{"a":1}}`, wantErr: ErrUnexpectedType},
		{name: "body is a list", body: `[{"homeworks":[]}]`, wantErr: ErrUnexpectedType},
		{name: "body is a string", body: `"homeworks"`, wantErr: ErrUnexpectedType},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ValidateResponse(decode(t, tt.body))
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ValidateResponse error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("ValidateResponse error: %v", err)
			}
			if len(got) != tt.wantLen {
				t.Fatalf("len = %d, want %d", len(got), tt.wantLen)
			}
		})
	}
}

func TestValidateResponseReturnsRecordsUnchanged(t *testing.T) {
	t.Parallel()
	body := decode(t, `{"homeworks":[{"homework_name":"hw1","status":"approved","id":7},{"homework_name":"hw2","status":"rejected"}]}`)
	want := body.(map[string]any)["homeworks"]

	got, err := ValidateResponse(body)
	if err != nil {
		t.Fatalf("ValidateResponse error: %v", err)
	}
	if diff := cmp.Diff(want, any(got)); diff != "" {
		t.Fatalf("records changed (-want +got):\n%s", diff)
	}
}

func TestParseStatusVerdicts(t *testing.T) {
	t.Parallel()
	tests := []struct {
		status string
		want   string
	}{
		{status: "approved", want: `Изменился статус проверки работы "hw1". Работа проверена: ревьюеру всё понравилось. Ура!`},
		{status: "reviewing", want: `Изменился статус проверки работы "hw1". Работа взята на проверку ревьюером.`},
		{status: "rejected", want: `Изменился статус проверки работы "hw1". Работа проверена: у ревьюера есть замечания.`},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.status, func(t *testing.T) {
			t.Parallel()
			record := map[string]any{"homework_name": "hw1", "status": tt.status}
			got, err := ParseStatus(record)
			if err != nil {
				t.Fatalf("ParseStatus error: %v", err)
			}
			if got != tt.want {
				t.Fatalf("ParseStatus = %q, want %q", got, tt.want)
			}
			again, _ := ParseStatus(record)
			if again != got {
				t.Fatalf("ParseStatus is not deterministic: %q vs %q", again, got)
			}
		})
	}
}

func TestParseStatusErrors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		record  any
		wantErr error
	}{
		{name: "unknown status", record: map[string]any{"homework_name": "hw1", "status": "lost"}, wantErr: ErrUnknownStatus},
		{name: "missing status", record: map[string]any{"homework_name": "hw1"}, wantErr: ErrUnknownStatus},
		{name: "empty name", record: map[string]any{"homework_name": "", "status": "approved"}, wantErr: ErrUnknownStatus},
		{name: "missing name", record: map[string]any{"status": "approved"}, wantErr: ErrUnknownStatus},
		{name: "status wrong type", record: map[string]any{"homework_name": "hw1", "status": json.Number("1")}, wantErr: ErrUnknownStatus},
		{name: "record not an object", record: []any{"hw1"}, wantErr: ErrUnexpectedType},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := ParseStatus(tt.record)
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("ParseStatus error = %v, want %v", err, tt.wantErr)
			}
			if got != "" {
				t.Fatalf("ParseStatus = %q, want empty message", got)
			}
		})
	}
}

func TestCurrentDate(t *testing.T) {
	t.Parallel()
	if got, ok := CurrentDate(decode(t, `{"homeworks":[],"current_date":1700000000}`)); !ok || got != 1700000000 {
		t.Fatalf("CurrentDate = %d, %v; want 1700000000, true", got, ok)
	}
	if _, ok := CurrentDate(decode(t, `{"homeworks":[]}`)); ok {
		t.Fatal("CurrentDate reported a value for a response without current_date")
	}
	if _, ok := CurrentDate(decode(t, `[]`)); ok {
		t.Fatal("CurrentDate reported a value for a non-object body")
	}
}

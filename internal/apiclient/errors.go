package apiclient

import (
	"encoding/json"
	"errors"
	"fmt"
)

// RemoteError is returned when the backend answered with a non-success
// status. Message carries the server-reported detail when present.
type RemoteError struct {
	StatusCode int
	Message    string
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Message)
}

// AsRemoteError reports whether err wraps a RemoteError.
func AsRemoteError(err error) (*RemoteError, bool) {
	var remote *RemoteError
	if errors.As(err, &remote) {
		return remote, true
	}
	return nil, false
}

// EntryID tolerates both string and numeric entry ids on the wire; the
// backend stores entries with integer primary keys but the contract
// does not pin the type.
type EntryID string

func (e *EntryID) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*e = EntryID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("entry_id: expected string or number, got %s", data)
	}
	*e = EntryID(n.String())
	return nil
}

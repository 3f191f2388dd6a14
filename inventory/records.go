package inventory

import (
	"database/sql/driver"
	"encoding/json"
	"errors"

	"atlas-rooms/item"
)

// Records is the persisted form of an inventory, stored as a single JSON
// column on the holder's record.
type Records map[string]item.Record

func (r Records) Value() (driver.Value, error) {
	if r == nil {
		return "{}", nil
	}
	b, err := json.Marshal(r)
	if err != nil {
		return nil, err
	}
	return string(b), nil
}

func (r *Records) Scan(value interface{}) error {
	if value == nil {
		*r = make(Records)
		return nil
	}

	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return errors.New("unsupported inventory column type")
	}

	if len(data) == 0 {
		*r = make(Records)
		return nil
	}
	return json.Unmarshal(data, r)
}

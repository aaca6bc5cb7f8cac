package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// Tags is an opaque list of variant/addon labels, stored as a jsonb
// column. The values are frozen at cart-add time and copied verbatim
// into the order snapshot.
type Tags []string

func (t Tags) Value() (driver.Value, error) {
	if t == nil {
		t = Tags{}
	}
	return json.Marshal(t)
}

func (t *Tags) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = Tags{}
		return nil
	case []byte:
		return json.Unmarshal(v, t)
	case string:
		return json.Unmarshal([]byte(v), t)
	default:
		return fmt.Errorf("cannot scan %T into Tags", src)
	}
}

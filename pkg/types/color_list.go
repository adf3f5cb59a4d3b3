package types

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
)

// ColorList is an ordered list of color names persisted as a JSON array.
// Order is significant: the first entry is the product's primary color.
type ColorList []string

// Value marshals the list into JSON for the database.
func (c ColorList) Value() (driver.Value, error) {
	if c == nil {
		return "[]", nil
	}
	buf, err := json.Marshal(c)
	if err != nil {
		return nil, err
	}
	return string(buf), nil
}

// Scan decodes the stored JSON array back into the list.
func (c *ColorList) Scan(value any) error {
	if value == nil {
		*c = ColorList{}
		return nil
	}

	var raw []byte
	switch v := value.(type) {
	case string:
		raw = []byte(v)
	case []byte:
		raw = v
	default:
		return fmt.Errorf("colorlist: unsupported scan type %T", value)
	}

	result := make(ColorList, 0)
	if err := json.Unmarshal(raw, &result); err != nil {
		return err
	}
	*c = result
	return nil
}

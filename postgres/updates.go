package postgres

import (
	"bytes"
	"database/sql/driver"
	"encoding/json"
	"fmt"

	"github.com/xy-planning-network/enums"
	"gorm.io/datatypes"
)

// An Updates is a map of key-value pairs where key is the database column and the value is the data.
//
// An Updates is also an enums.Record,
// so a Field or MultiField can write codes into it directly:
//
//	u := postgres.Updates{}
//	_ = status.Set(u, "shipped")
//	err := db.Model(new(Order)).Where("id = ?", id).Update(u)
type Updates map[string]any

var _ enums.Record = Updates{}

// Column returns the value set for name.
func (u Updates) Column(name string) (any, bool) {
	v, ok := u[name]
	return v, ok
}

// SetColumn sets value for name.
func (u Updates) SetColumn(name string, value any) error {
	if u == nil {
		return fmt.Errorf("%w: nil Updates", enums.ErrUnaddressable)
	}

	u[name] = value
	return nil
}

func (u Updates) valid() error {
	if len(u) == 0 {
		return fmt.Errorf("%w: no columns set", enums.ErrMissingData)
	}

	return nil
}

// bindable copies u, replacing enums.Values with their codes.
func (u Updates) bindable() map[string]any {
	m := make(map[string]any, len(u))
	for k, v := range u {
		m[k] = bindable(v)
	}

	return m
}

// StripNils removes all entries from the map where the value resolves to nil, i.e. NULL,
// or is an invalid enums.Enumerable.
func (u Updates) StripNils() {
	for k, v := range u {
		switch t := v.(type) {
		case nil:
			delete(u, k)

		case datatypes.JSON:
			if t == nil || bytes.Equal([]byte(t), []byte(datatypes.JSON(json.RawMessage(`null`)))) {
				delete(u, k)
			}

		case enums.Enumerable:
			if err := t.Valid(); err != nil {
				delete(u, k)
			}

		case driver.Valuer:
			val, err := t.Value()
			if err != nil || val == nil {
				delete(u, k)
			}
		}
	}
}

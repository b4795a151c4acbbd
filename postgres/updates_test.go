package postgres_test

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/enums"
	"github.com/xy-planning-network/enums/postgres"
	"gorm.io/datatypes"
)

func TestUpdatesStripNils(t *testing.T) {
	// Arrange
	d := enums.MustDefine("status", []enums.Label{{Name: "pending", Code: 0}, {Name: "shipped", Code: 1}})
	shipped, err := d.Value("shipped")
	require.Nil(t, err)

	u := postgres.Updates{
		"nil":           nil,
		"null-json":     datatypes.JSON("null"),
		"empty-json":    datatypes.JSON(nil),
		"json":          datatypes.JSON(`{"a":1}`),
		"null-string":   sql.NullString{},
		"string":        sql.NullString{String: "a", Valid: true},
		"invalid-value": enums.Value{},
		"value":         shipped,
		"int":           0,
	}

	// Act
	u.StripNils()

	// Assert
	require.Equal(t, postgres.Updates{
		"json":   datatypes.JSON(`{"a":1}`),
		"string": sql.NullString{String: "a", Valid: true},
		"value":  shipped,
		"int":    0,
	}, u)
}

func TestUpdatesRecord(t *testing.T) {
	// Arrange
	d := enums.MustDefine("status", []enums.Label{{Name: "pending", Code: 0}, {Name: "shipped", Code: 1}})
	f := &enums.Field{Column: "status", Definition: d}
	u := postgres.Updates{}

	// Act
	err := f.Set(u, "shipped")

	// Assert
	require.Nil(t, err)
	require.Equal(t, postgres.Updates{"status": 1}, u)

	// Arrange
	var nilUpdates postgres.Updates

	// Act
	err = nilUpdates.SetColumn("status", 1)

	// Assert
	require.ErrorIs(t, err, enums.ErrUnaddressable)
}

func TestUpdateRequiresColumns(t *testing.T) {
	// Arrange
	db := dryRun(t)

	// Act
	err := db.Model(new(ticket)).Where("id = ?", 1).Update(postgres.Updates{})

	// Assert
	require.ErrorIs(t, err, enums.ErrMissingData)
}

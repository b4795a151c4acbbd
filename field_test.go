package enums_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/enums"
	"github.com/xy-planning-network/enums/filter"
)

func newPriorityField(t *testing.T) *enums.Field {
	t.Helper()

	reg, err := enums.NewRegistry([]enums.Entity{{
		Name: "support_tickets",
		Fields: []enums.Field{{
			Column:     "priority",
			Definition: enums.MustDefine("priority", priorityLabels, enums.WithDefault("medium")),
			Naming:     enums.Prefix(""),
		}},
	}})
	require.Nil(t, err)

	f, err := reg.Field("support_tickets", "priority")
	require.Nil(t, err)

	return f
}

func TestFieldGet(t *testing.T) {
	// Arrange
	f := newPriorityField(t)

	// Act
	label, err := f.Get(enums.Row{"priority": int64(3)})

	// Assert
	require.Nil(t, err)
	require.Equal(t, "urgent", label)

	// Act
	_, err = f.Get(enums.Row{"priority": 99})

	// Assert
	require.ErrorIs(t, err, enums.ErrUnknownCode)

	// Act
	_, err = f.Get(enums.Row{"priority": nil})

	// Assert
	require.ErrorIs(t, err, enums.ErrMissingData)

	// Act
	_, err = f.Get(enums.Row{})

	// Assert
	require.ErrorIs(t, err, enums.ErrNotExist)
}

func TestFieldValue(t *testing.T) {
	// Arrange
	f := newPriorityField(t)

	// Act
	v, err := f.Value(enums.Row{"priority": 4})

	// Assert
	require.Nil(t, err)
	require.True(t, v.Is("critical"))
}

func TestFieldIs(t *testing.T) {
	// Arrange
	f := newPriorityField(t)
	rec := enums.Row{"priority": 2}

	// Act
	high, err := f.Is(rec, "high")
	require.Nil(t, err)

	low, err := f.Is(rec, "low")
	require.Nil(t, err)

	_, err = f.Is(rec, "severe")

	// Assert
	require.True(t, high)
	require.False(t, low)
	require.ErrorIs(t, err, enums.ErrUnknownLabel)

	// Act
	legacy, err := f.Is(enums.Row{"priority": 99}, "high")

	// Assert
	require.Nil(t, err)
	require.False(t, legacy)
}

func TestFieldSet(t *testing.T) {
	// Arrange
	f := newPriorityField(t)
	rec := enums.Row{"priority": 0}

	// Act
	err := f.Set(rec, "critical")

	// Assert
	require.Nil(t, err)
	require.Equal(t, 4, rec["priority"])

	// Act
	err = f.Set(rec, "severe")

	// Assert
	require.ErrorIs(t, err, enums.ErrUnknownLabel)
	require.Equal(t, 4, rec["priority"])
}

func TestFieldAssign(t *testing.T) {
	// Arrange
	f := newPriorityField(t)
	rec := enums.Row{}

	// Act
	require.Nil(t, f.Assign(rec, "high"))
	require.Equal(t, 2, rec["priority"])

	require.Nil(t, f.Assign(rec, "3"))
	require.Equal(t, 3, rec["priority"])

	require.Nil(t, f.Assign(rec, int64(1)))
	require.Equal(t, 1, rec["priority"])

	err := f.Assign(rec, 42)

	// Assert
	require.ErrorIs(t, err, enums.ErrUnknownCode)
	require.Equal(t, 1, rec["priority"])
}

func TestFieldAssignZeroValue(t *testing.T) {
	// Arrange
	f := newPriorityField(t)
	rec := enums.Row{}

	// Act
	var err error
	require.NotPanics(t, func() { err = f.Assign(rec, enums.Value{}) })

	// Assert
	require.ErrorIs(t, err, enums.ErrNotValid)
	require.NotContains(t, rec, "priority")
}

func TestFieldInit(t *testing.T) {
	// Arrange
	f := newPriorityField(t)
	rec := enums.Row{}

	// Act
	err := f.Init(rec)

	// Assert
	require.Nil(t, err)
	require.Equal(t, 1, rec["priority"])

	// Arrange
	noDefault := &enums.Field{Column: "priority", Definition: enums.MustDefine("priority", priorityLabels)}
	rec = enums.Row{}

	// Act
	err = noDefault.Init(rec)

	// Assert
	require.Nil(t, err)
	require.Empty(t, rec)
}

func TestFieldDefaultOverride(t *testing.T) {
	// Arrange
	f := &enums.Field{
		Column:     "priority",
		Definition: enums.MustDefine("priority", priorityLabels, enums.WithDefault("medium")),
		Default:    "low",
	}

	// Act
	label, ok := f.DefaultLabel()

	// Assert
	require.True(t, ok)
	require.Equal(t, "low", label)
}

func TestFieldIn(t *testing.T) {
	// Arrange
	f := newPriorityField(t)
	in, err := f.In("high", "urgent", "critical")
	require.Nil(t, err)

	notIn, err := f.NotIn("high", "urgent", "critical")
	require.Nil(t, err)

	matched := make(map[int]bool)
	excluded := make(map[int]bool)

	// Act
	for _, code := range []int{0, 1, 2, 3, 4} {
		rec := enums.Row{"priority": code}

		ok, err := in.Match(rec)
		require.Nil(t, err)
		matched[code] = ok

		ok, err = notIn.Match(rec)
		require.Nil(t, err)
		excluded[code] = ok
	}

	// Assert
	require.Equal(t, map[int]bool{0: false, 1: false, 2: true, 3: true, 4: true}, matched)
	require.Equal(t, map[int]bool{0: true, 1: true, 2: false, 3: false, 4: false}, excluded)
	require.Equal(t, "priority IN (2, 3, 4)", in.String())

	// Act
	_, err = f.In("high", "severe")

	// Assert
	require.ErrorIs(t, err, enums.ErrUnknownLabel)
}

func TestFieldEq(t *testing.T) {
	// Arrange
	f := newPriorityField(t)

	// Act
	eq, err := f.Eq("urgent")

	// Assert
	require.Nil(t, err)
	require.Equal(t, filter.Eq("priority", 3), eq)
}

func TestFieldPredicates(t *testing.T) {
	// Arrange
	f := newPriorityField(t)

	// Act
	ps := f.Predicates()

	// Assert
	require.Len(t, ps, 5)

	names := make([]string, len(ps))
	for i, p := range ps {
		names[i] = p.Name
		require.Same(t, f, p.Field())
	}
	require.Equal(t, []string{
		"priority_low",
		"priority_medium",
		"priority_high",
		"priority_urgent",
		"priority_critical",
	}, names)

	// Arrange
	critical := ps[4]
	rec := enums.Row{"priority": 0}

	// Act
	require.Nil(t, critical.Set(rec))
	ok, err := critical.Is(rec)

	// Assert
	require.Nil(t, err)
	require.True(t, ok)
	require.Equal(t, filter.Eq("priority", 4), critical.Filter())
}

func TestNaming(t *testing.T) {
	tcs := []struct {
		name     string
		naming   enums.Naming
		expected string
	}{
		{"none", enums.Naming{}, "critical"},
		{"prefix-column", enums.Prefix(""), "priority_critical"},
		{"prefix-qualifier", enums.Prefix("ticket"), "ticket_critical"},
		{"suffix-column", enums.Suffix(""), "critical_priority"},
		{"suffix-qualifier", enums.Suffix("level"), "critical_level"},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Arrange
			f := &enums.Field{Column: "priority", Naming: tc.naming}

			// Act
			actual := f.MethodName("critical")

			// Assert
			require.Equal(t, tc.expected, actual)
		})
	}

	require.Equal(t, "prefix", enums.NamingPrefix.String())
	require.Equal(t, "suffix", enums.NamingSuffix.String())
	require.Equal(t, "none", enums.NamingNone.String())
}

package enums_test

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xy-planning-network/enums"
)

var priorityLabels = []enums.Label{
	{Name: "low", Code: 0},
	{Name: "medium", Code: 1},
	{Name: "high", Code: 2},
	{Name: "urgent", Code: 3},
	{Name: "critical", Code: 4},
}

func TestDefine(t *testing.T) {
	tcs := []struct {
		name   string
		defn   string
		labels []enums.Label
		opts   []enums.DefinitionOption
		err    error
	}{
		{"ok", "priority", priorityLabels, nil, nil},
		{"ok-default", "priority", priorityLabels, []enums.DefinitionOption{enums.WithDefault("medium")}, nil},
		{"no-name", " ", priorityLabels, nil, enums.ErrMissingData},
		{"no-labels", "priority", nil, nil, enums.ErrMissingData},
		{"empty-label", "priority", []enums.Label{{Name: "", Code: 0}}, nil, enums.ErrNotValid},
		{"negative-code", "priority", []enums.Label{{Name: "low", Code: -1}}, nil, enums.ErrNotValid},
		{
			"duplicate-label",
			"priority",
			[]enums.Label{{Name: "low", Code: 0}, {Name: "low", Code: 1}},
			nil,
			enums.ErrDuplicateLabel,
		},
		{
			"duplicate-code",
			"priority",
			[]enums.Label{{Name: "low", Code: 0}, {Name: "high", Code: 0}},
			nil,
			enums.ErrDuplicateCode,
		},
		{"bad-default", "priority", priorityLabels, []enums.DefinitionOption{enums.WithDefault("severe")}, enums.ErrUnknownLabel},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			d, err := enums.Define(tc.defn, tc.labels, tc.opts...)

			// Assert
			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
				require.Nil(t, d)
				return
			}

			require.Nil(t, err)
			require.Equal(t, tc.defn, d.Name())
			require.Equal(t, len(tc.labels), d.Len())
		})
	}
}

func TestMustDefinePanics(t *testing.T) {
	require.Panics(t, func() { enums.MustDefine("priority", nil) })
	require.NotPanics(t, func() { enums.MustDefine("priority", priorityLabels) })
}

func TestDefinitionRoundTrip(t *testing.T) {
	// Arrange
	d := enums.MustDefine("priority", priorityLabels)

	for _, l := range priorityLabels {
		t.Run(l.Name, func(t *testing.T) {
			// Act
			code, err := d.CodeOf(l.Name)
			require.Nil(t, err)

			label, err := d.LabelOf(code)
			require.Nil(t, err)

			// Assert
			require.Equal(t, l.Code, code)
			require.Equal(t, l.Name, label)
		})
	}
}

func TestDefinitionUnknown(t *testing.T) {
	// Arrange
	d := enums.MustDefine("priority", priorityLabels)

	// Act
	_, codeErr := d.LabelOf(99)
	_, labelErr := d.CodeOf("severe")

	// Assert
	require.ErrorIs(t, codeErr, enums.ErrUnknownCode)
	require.ErrorIs(t, labelErr, enums.ErrUnknownLabel)
	require.False(t, d.Valid(99))
	require.False(t, d.Has("severe"))
	require.True(t, d.Valid(4))
	require.True(t, d.Has("critical"))
}

func TestDefinitionOrder(t *testing.T) {
	// Arrange
	d := enums.MustDefine("rating", []enums.Label{
		{Name: "five_stars", Code: 5},
		{Name: "one_star", Code: 1},
		{Name: "three_stars", Code: 3},
	})

	// Assert
	require.Equal(t, []string{"five_stars", "one_star", "three_stars"}, d.Labels())
	require.Equal(t, []int{5, 1, 3}, d.Codes())

	// Act
	pairs := d.Pairs()
	pairs[0].Code = 99

	// Assert
	require.Equal(t, 5, d.Pairs()[0].Code)
}

func TestSequential(t *testing.T) {
	// Act
	d, err := enums.Sequential("status", "pending", "active", "archived")

	// Assert
	require.Nil(t, err)
	require.Equal(t, []int{0, 1, 2}, d.Codes())

	// Act
	_, err = enums.Sequential("status", "pending", "pending")

	// Assert
	require.ErrorIs(t, err, enums.ErrDuplicateLabel)
}

func TestDefinitionDefault(t *testing.T) {
	// Arrange
	withDef := enums.MustDefine("priority", priorityLabels, enums.WithDefault("medium"))
	without := enums.MustDefine("priority", priorityLabels)

	// Act
	label, ok := withDef.Default()
	_, none := without.Default()

	// Assert
	require.True(t, ok)
	require.Equal(t, "medium", label)
	require.False(t, none)
}

func TestCodesOf(t *testing.T) {
	// Arrange
	d := enums.MustDefine("priority", priorityLabels)

	// Act
	codes, err := d.CodesOf("high", "urgent", "critical")

	// Assert
	require.Nil(t, err)
	require.Equal(t, []int{2, 3, 4}, codes)

	// Act
	codes, err = d.CodesOf("high", "severe")

	// Assert
	require.ErrorIs(t, err, enums.ErrUnknownLabel)
	require.Nil(t, codes)
}

type stringer string

func (s stringer) String() string { return string(s) }

func TestNormalize(t *testing.T) {
	d := enums.MustDefine("priority", priorityLabels)
	other := enums.MustDefine("status", []enums.Label{{Name: "high", Code: 2}})
	high, _ := d.Value("high")
	otherHigh, _ := other.Value("high")

	tcs := []struct {
		name     string
		v        any
		expected int
		err      error
	}{
		{"label", "urgent", 3, nil},
		{"numeric-string", "4", 4, nil},
		{"int", 1, 1, nil},
		{"int64", int64(2), 2, nil},
		{"value", high, 2, nil},
		{"stringer", stringer("low"), 0, nil},
		{"unknown-label", "severe", 0, enums.ErrUnknownLabel},
		{"unknown-numeric-string", "9", 0, enums.ErrUnknownCode},
		{"unknown-int", 99, 0, enums.ErrUnknownCode},
		{"other-definition", otherHigh, 0, enums.ErrNotValid},
		{"zero-value", enums.Value{}, 0, enums.ErrNotValid},
		{"nil", nil, 0, enums.ErrNotValid},
		{"float", 1.5, 0, enums.ErrNotValid},
	}

	for _, tc := range tcs {
		t.Run(tc.name, func(t *testing.T) {
			// Act
			actual, err := d.Normalize(tc.v)

			// Assert
			require.ErrorIs(t, err, tc.err)
			require.Equal(t, tc.expected, actual)
		})
	}
}

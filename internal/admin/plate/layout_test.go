package plate

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPartCount(t *testing.T) {
	t.Parallel()

	require.Equal(t, 4, TypeCar.PartCount())
	require.Equal(t, 4, TypeDiplomatic.PartCount())
	require.Equal(t, 3, TypePublic.PartCount())
	require.Equal(t, 3, TypeMilitary.PartCount())
	require.Equal(t, 3, TypePolice.PartCount())
	require.Zero(t, Type("tractor").PartCount())
}

func TestParseType(t *testing.T) {
	t.Parallel()

	typ, err := ParseType(" Police ")
	require.NoError(t, err)
	require.Equal(t, TypePolice, typ)

	_, err = ParseType("boat")
	require.ErrorIs(t, err, ErrUnknownType)
	require.Contains(t, err.Error(), "diplomatic")
}

func TestTypesAreAllValid(t *testing.T) {
	t.Parallel()

	require.Len(t, Types, 5)
	for _, typ := range Types {
		require.True(t, typ.Valid(), typ.String())
		parsed, err := ParseType(typ.String())
		require.NoError(t, err)
		require.Equal(t, typ, parsed)
	}
}

func TestComputeLayoutIgnoresExtraParts(t *testing.T) {
	t.Parallel()

	l, err := ComputeLayout(TypePublic, []string{"AB", "123", "77", "ignored"})
	require.NoError(t, err)
	require.Equal(t, Layout{Type: TypePublic, Slot1: "AB", Slot2: "123", Region: "77"}, l)
	require.Equal(t, []string{BaseClass, "public"}, l.Classes())
}

func TestComputeLayoutThreeDigitClasses(t *testing.T) {
	t.Parallel()

	l, err := ComputeLayout(TypeCar, []string{"A", "123", "BC", "777"})
	require.NoError(t, err)
	require.True(t, l.ThreeDigit)
	require.Equal(t, []string{BaseClass, "car", ThreeDigitClass}, l.Classes())
}

package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPageTypeClassification(t *testing.T) {
	require.True(t, PageMeta.IsMetaMixAMD())
	require.True(t, PageMix1.IsMetaMixAMD())
	require.True(t, PageMix2.IsMetaMixAMD())
	require.True(t, PageAMD.IsMetaMixAMD())
	require.False(t, PageData.IsMetaMixAMD())

	require.True(t, PageMix1.HasRows())
	require.True(t, PageData.HasRows())
	require.False(t, PageMeta.HasRows())

	require.True(t, PageComp.Known())
	require.False(t, PageType(9999).Known())
}

func TestPageTypeString(t *testing.T) {
	require.Equal(t, "DATA", PageData.String())
	require.Equal(t, "MIX", PageMix1.String())
	require.Equal(t, "MIX", PageMix2.String())
	require.Equal(t, "UNKNOWN", PageType(1).String())
}

func TestCompressionTypeString(t *testing.T) {
	require.Equal(t, "None", CompressionNone.String())
	require.Equal(t, "RLE", CompressionRLE.String())
	require.Equal(t, "RDC", CompressionRDC.String())
}

func TestColumnTypeString(t *testing.T) {
	require.Equal(t, "number", ColumnNumber.String())
	require.Equal(t, "string", ColumnString.String())
	require.Equal(t, "unknown", ColumnUnknown.String())
}

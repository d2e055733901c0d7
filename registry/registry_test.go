package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zeroed-tech/viewstate-decoder/errs"
	"github.com/zeroed-tech/viewstate-decoder/format"
)

func TestRegisterAndLookup(t *testing.T) {
	r := New()
	layout := format.Layout{ClassInfo: format.ClassInfo{ObjectId: 1, Name: "Pair"}}

	require.NoError(t, r.Register(1, layout))

	got, err := r.Lookup(1)
	require.NoError(t, err)
	assert.Equal(t, "Pair", got.ClassInfo.Name)
	assert.Equal(t, 1, r.Count())
}

func TestRegisterDuplicate(t *testing.T) {
	r := New()
	layout := format.Layout{ClassInfo: format.ClassInfo{ObjectId: 1, Name: "Pair"}}
	require.NoError(t, r.Register(1, layout))

	err := r.Register(1, layout)
	require.ErrorIs(t, err, errs.ErrDuplicateClassMetadata)
}

func TestLookupMiss(t *testing.T) {
	r := New()
	_, err := r.Lookup(99)
	require.ErrorIs(t, err, errs.ErrUnknownClassMetadata)
}

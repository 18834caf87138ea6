package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShareLinkCanonicalization(t *testing.T) {
	db := newTestDB(t)
	svc := NewShareLinkService(db)

	link, err := svc.Create("pillar=media&countries=USA,GBR&utm_source=mail")
	require.NoError(t, err)
	assert.Len(t, link.Code, 10)

	// Same view, different param order and extra junk: same code.
	again, err := svc.Create("countries=USA,GBR&pillar=media")
	require.NoError(t, err)
	assert.Equal(t, link.Code, again.Code)

	// Different view: different code.
	other, err := svc.Create("countries=USA&pillar=media")
	require.NoError(t, err)
	assert.NotEqual(t, link.Code, other.Code)
}

func TestShareLinkResolveCountsHits(t *testing.T) {
	db := newTestDB(t)
	svc := NewShareLinkService(db)

	link, err := svc.Create("countries=FRA&pillar=social")
	require.NoError(t, err)

	for i := 0; i < 3; i++ {
		resolved, err := svc.Resolve(link.Code)
		require.NoError(t, err)
		assert.Equal(t, link.Query, resolved.Query)
	}

	final, err := svc.Resolve(link.Code)
	require.NoError(t, err)
	assert.Equal(t, int64(3), final.Hits)
}

func TestShareLinkUnknownCode(t *testing.T) {
	db := newTestDB(t)
	svc := NewShareLinkService(db)

	_, err := svc.Resolve("missing")
	assert.Error(t, err)
}

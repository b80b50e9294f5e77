package org

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "全公司", DisplayName(All))
	assert.Equal(t, "客服中心", DisplayName("cs"))
	assert.Equal(t, "", DisplayName("hr"))
}

func TestParseUnit(t *testing.T) {
	id, err := ParseUnit("sales1")
	require.NoError(t, err)
	assert.Equal(t, UnitID("sales1"), id)

	_, err = ParseUnit("prod")
	assert.ErrorIs(t, err, ErrUnknownUnit)
}

func TestParseRole(t *testing.T) {
	r, err := ParseRole("manager")
	require.NoError(t, err)
	assert.Equal(t, RoleManager, r)
	assert.Equal(t, "部門主管", r.Label())

	_, err = ParseRole("ceo")
	assert.ErrorIs(t, err, ErrUnknownRole)
}

func TestUnitFor(t *testing.T) {
	assert.Equal(t, ManagedUnit, UnitFor(RoleManager))
	assert.Equal(t, All, UnitFor(RoleGM))
}

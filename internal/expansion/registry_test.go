package expansion

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetConfigExactMatch(t *testing.T) {
	reg := NewRegistry()

	wotlk := reg.GetConfig(WotLK, TrinityCore)
	assert.Equal(t, "Wrath of the Lich King", wotlk.Name)
	assert.Equal(t, "3.3.5a", wotlk.Version)
	assert.Equal(t, "WoW.exe", wotlk.Executable)
	assert.Equal(t, "SRP6", wotlk.AuthAlgorithm)
	assert.Equal(t, 80, wotlk.MaxLevel)

	mop := reg.GetConfig(MoP, TrinityCore)
	assert.Equal(t, "Mists of Pandaria", mop.Name)
	assert.Equal(t, "Wow-64.exe", mop.Executable)
	assert.Equal(t, "SRP6_v2", mop.AuthAlgorithm)
	assert.Equal(t, 90, mop.MaxLevel)
}

func TestGetConfigFallsBackToDefault(t *testing.T) {
	reg := NewRegistry()
	def := reg.GetConfig(WotLK, TrinityCore)

	// Pairs without an entry resolve to the default, including enum
	// values far outside the declared range. The lookup is total.
	for _, pair := range []struct {
		exp Expansion
		emu Emulator
	}{
		{Classic, TrinityCore},
		{WotLK, AzerothCore},
		{Dragonflight, OregonCore},
		{Expansion(99), Emulator(-3)},
	} {
		got := reg.GetConfig(pair.exp, pair.emu)
		assert.Equal(t, def, got, "pair %v/%v", pair.exp, pair.emu)
		assert.NotEmpty(t, got.Name)
	}
}

func TestResolveTableNamePerEmulatorSchema(t *testing.T) {
	reg := NewRegistry()

	// The MoP schema keeps accounts in battlenet_accounts while WotLK
	// uses the plain account table.
	mopAccount, err := reg.ResolveTableName(MoP, TrinityCore, RoleAccount)
	require.NoError(t, err)
	assert.Equal(t, "battlenet_accounts", mopAccount)

	wotlkAccount, err := reg.ResolveTableName(WotLK, TrinityCore, RoleAccount)
	require.NoError(t, err)
	assert.Equal(t, "account", wotlkAccount)

	chars, err := reg.ResolveTableName(WotLK, TrinityCore, RoleCharacters)
	require.NoError(t, err)
	assert.Equal(t, "characters", chars)
}

func TestResolveTableNameUnknownRole(t *testing.T) {
	reg := NewRegistry()

	_, err := reg.ResolveTableName(WotLK, TrinityCore, "auctionhouse")
	assert.ErrorIs(t, err, ErrUnknownRole)
}

func TestSupportedListsDeclaredOrder(t *testing.T) {
	reg := NewRegistry()

	exps := reg.SupportedExpansions()
	require.Len(t, exps, 10)
	assert.Equal(t, "Classic (1.12.1)", exps[0])
	assert.Equal(t, "Wrath of the Lich King (3.3.5a)", exps[2])
	assert.Equal(t, "Dragonflight (10.2.0)", exps[9])

	emus := reg.SupportedEmulators()
	require.Len(t, emus, 6)
	assert.Equal(t, "TrinityCore", emus[0])
	assert.Equal(t, "OregonCore", emus[5])

	// Stable across calls, and mutations by one caller must not leak
	// into the next.
	exps[0] = "mutated"
	assert.Equal(t, "Classic (1.12.1)", reg.SupportedExpansions()[0])
}

func TestEnumStrings(t *testing.T) {
	assert.Equal(t, "Mists of Pandaria (5.4.8)", MoP.String())
	assert.Equal(t, "AzerothCore", AzerothCore.String())
	assert.Equal(t, "Unknown", Expansion(42).String())
	assert.Equal(t, "Unknown", Emulator(-1).String())
}

func TestParseIdentifiers(t *testing.T) {
	exp, ok := ParseExpansion("MOP")
	require.True(t, ok)
	assert.Equal(t, MoP, exp)

	emu, ok := ParseEmulator("AZEROTHCORE")
	require.True(t, ok)
	assert.Equal(t, AzerothCore, emu)

	_, ok = ParseExpansion("PANDARIA")
	assert.False(t, ok)
}

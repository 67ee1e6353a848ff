// Package expansion holds the static configuration matrix that maps a
// (game expansion, emulator core) pair to the schema, executable and
// authentication details of that deployment target. The registry is
// populated once at startup and is read-only afterwards.
package expansion

// Expansion identifies a game-content version. The numeric values are
// stable and mirror the order the launcher UI presents them in.
type Expansion int

const (
	Classic Expansion = iota
	TBC
	WotLK
	Cata
	MoP
	WoD
	Legion
	BfA
	Shadowlands
	Dragonflight
)

// Emulator identifies a server-emulation core variant.
type Emulator int

const (
	TrinityCore Emulator = iota
	AzerothCore
	CMaNGOS
	SkyFire
	MaNGOS
	OregonCore
)

// expansionNames is indexed by Expansion and doubles as the declared
// enumeration order for UI population.
var expansionNames = []string{
	"Classic (1.12.1)",
	"The Burning Crusade (2.4.3)",
	"Wrath of the Lich King (3.3.5a)",
	"Cataclysm (4.3.4)",
	"Mists of Pandaria (5.4.8)",
	"Warlords of Draenor (6.2.4)",
	"Legion (7.3.5)",
	"Battle for Azeroth (8.3.7)",
	"Shadowlands (9.2.7)",
	"Dragonflight (10.2.0)",
}

// emulatorNames is indexed by Emulator.
var emulatorNames = []string{
	"TrinityCore",
	"AzerothCore",
	"CMaNGOS",
	"SkyFire",
	"MangOS",
	"OregonCore",
}

// String returns the display name of the expansion, or "Unknown" for
// values outside the declared range.
func (e Expansion) String() string {
	if e < 0 || int(e) >= len(expansionNames) {
		return "Unknown"
	}
	return expansionNames[e]
}

// String returns the display name of the emulator, or "Unknown" for
// values outside the declared range.
func (e Emulator) String() string {
	if e < 0 || int(e) >= len(emulatorNames) {
		return "Unknown"
	}
	return emulatorNames[e]
}

// ParseExpansion maps a short identifier (as used in configuration, e.g.
// "WOTLK" or "MOP") to its Expansion value. Unknown identifiers return
// false so callers can apply their own default.
func ParseExpansion(s string) (Expansion, bool) {
	switch s {
	case "CLASSIC":
		return Classic, true
	case "TBC":
		return TBC, true
	case "WOTLK":
		return WotLK, true
	case "CATA":
		return Cata, true
	case "MOP":
		return MoP, true
	case "WOD":
		return WoD, true
	case "LEGION":
		return Legion, true
	case "BFA":
		return BfA, true
	case "SHADOWLANDS":
		return Shadowlands, true
	case "DRAGONFLIGHT":
		return Dragonflight, true
	}
	return 0, false
}

// ParseEmulator maps a short identifier (e.g. "TRINITYCORE") to its
// Emulator value.
func ParseEmulator(s string) (Emulator, bool) {
	switch s {
	case "TRINITYCORE":
		return TrinityCore, true
	case "AZEROTHCORE":
		return AzerothCore, true
	case "CMANGOS":
		return CMaNGOS, true
	case "SKYFIRE":
		return SkyFire, true
	case "MANGOS":
		return MaNGOS, true
	case "OREGONCORE":
		return OregonCore, true
	}
	return 0, false
}

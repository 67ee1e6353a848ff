package expansion

import "errors"

// ErrUnknownRole is returned by ResolveTableName when the requested
// logical role is not declared by the resolved configuration. Unlike a
// missing expansion/emulator pair, which falls back to the default
// configuration, an unknown role is a programmer error and is never
// masked.
var ErrUnknownRole = errors.New("unknown logical table role")

// Logical table roles shared by every emulator schema. The physical
// table name behind each role differs per expansion/emulator pair.
const (
	RoleAccount    = "account"
	RoleCharacters = "characters"
	RoleWorld      = "world"
)

// Config bundles everything the launcher needs to know about one
// expansion/emulator deployment target.
type Config struct {
	Name            string            `json:"name"`
	Version         string            `json:"version"`
	RealmlistFormat string            `json:"realmlist_format"`
	Executable      string            `json:"executable"`
	AuthAlgorithm   string            `json:"auth_algorithm"`
	MaxLevel        int               `json:"max_level"`
	TableNames      map[string]string `json:"-"`
}

// ResolveTableName maps a logical role ("account", "characters",
// "world") to the physical table name this configuration uses.
func (c Config) ResolveTableName(role string) (string, error) {
	name, ok := c.TableNames[role]
	if !ok {
		return "", ErrUnknownRole
	}
	return name, nil
}

type configKey struct {
	exp Expansion
	emu Emulator
}

// Registry is the lookup table over all known expansion/emulator
// configurations. It is built once by NewRegistry and never mutated, so
// concurrent reads need no locking. Construct it explicitly and pass it
// to whoever needs it; there is no package-level instance.
type Registry struct {
	configs map[configKey]Config
}

// NewRegistry builds the registry from the hard-coded configuration
// table. Only the pairs actually deployed carry a full entry; GetConfig
// resolves every other pair to the (WotLK, TrinityCore) default.
func NewRegistry() *Registry {
	r := &Registry{configs: make(map[configKey]Config)}

	r.configs[configKey{WotLK, TrinityCore}] = Config{
		Name:            "Wrath of the Lich King",
		Version:         "3.3.5a",
		RealmlistFormat: "set realmlist %s",
		Executable:      "WoW.exe",
		AuthAlgorithm:   "SRP6",
		MaxLevel:        80,
		TableNames: map[string]string{
			RoleAccount:    "account",
			RoleCharacters: "characters",
			RoleWorld:      "world",
		},
	}

	r.configs[configKey{MoP, TrinityCore}] = Config{
		Name:            "Mists of Pandaria",
		Version:         "5.4.8",
		RealmlistFormat: "set realmlist %s",
		Executable:      "Wow-64.exe",
		AuthAlgorithm:   "SRP6_v2",
		MaxLevel:        90,
		TableNames: map[string]string{
			RoleAccount:    "battlenet_accounts",
			RoleCharacters: "characters",
			RoleWorld:      "world",
		},
	}

	return r
}

// GetConfig returns the configuration for the given pair. It is total:
// when the pair has no entry (including enum values outside the declared
// range) the documented default entry (WotLK, TrinityCore) is returned
// instead, never an empty Config.
func (r *Registry) GetConfig(exp Expansion, emu Emulator) Config {
	if cfg, ok := r.configs[configKey{exp, emu}]; ok {
		return cfg
	}
	return r.configs[configKey{WotLK, TrinityCore}]
}

// ResolveTableName resolves the physical table name for a logical role
// under the given pair, applying the same default-pair fallback as
// GetConfig.
func (r *Registry) ResolveTableName(exp Expansion, emu Emulator, role string) (string, error) {
	return r.GetConfig(exp, emu).ResolveTableName(role)
}

// SupportedExpansions returns the display names of every expansion the
// launcher can present, in declared enum order. The slice is a copy.
func (r *Registry) SupportedExpansions() []string {
	out := make([]string, len(expansionNames))
	copy(out, expansionNames)
	return out
}

// SupportedEmulators returns the display names of every emulator
// variant, in declared enum order.
func (r *Registry) SupportedEmulators() []string {
	out := make([]string, len(emulatorNames))
	copy(out, emulatorNames)
	return out
}

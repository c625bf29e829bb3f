// Package rbac holds the fixed role-to-capability mapping. Adding or adjusting
// a role is a table edit; business logic never branches on roles directly.
package rbac

import "github.com/assetcare/asset-admin/internal/core/domain"

// Verb is a gated operation class.
type Verb string

const (
	VerbRead   Verb = "read"
	VerbCreate Verb = "create"
	VerbUpdate Verb = "update"
	VerbDelete Verb = "delete"
)

type verbSet map[Verb]struct{}

func verbs(vs ...Verb) verbSet {
	set := make(verbSet, len(vs))
	for _, v := range vs {
		set[v] = struct{}{}
	}
	return set
}

var readOnly = verbs(VerbRead)
var fullAccess = verbs(VerbRead, VerbCreate, VerbUpdate, VerbDelete)

// capabilities maps role -> kind -> allowed verbs. Every authenticated role
// can read every kind; all write verbs are admin-only.
var capabilities = map[domain.Role]map[domain.Kind]verbSet{
	domain.RoleAdmin: {
		domain.KindUser:         fullAccess,
		domain.KindObject:       fullAccess,
		domain.KindEquipment:    fullAccess,
		domain.KindOrganization: fullAccess,
		domain.KindDefect:       fullAccess,
		domain.KindResource:     fullAccess,
		domain.KindSettings:     verbs(VerbRead, VerbUpdate),
	},
	domain.RoleWorker:  readOnlyCatalog(),
	domain.RoleAnalyst: readOnlyCatalog(),
	domain.RoleHead:    readOnlyCatalog(),
	domain.RoleSenior:  readOnlyCatalog(),
}

func readOnlyCatalog() map[domain.Kind]verbSet {
	return map[domain.Kind]verbSet{
		domain.KindUser:         readOnly,
		domain.KindObject:       readOnly,
		domain.KindEquipment:    readOnly,
		domain.KindOrganization: readOnly,
		domain.KindDefect:       readOnly,
		domain.KindResource:     readOnly,
		domain.KindSettings:     readOnly,
	}
}

// Allowed reports whether role may perform verb on kind.
func Allowed(role domain.Role, kind domain.Kind, verb Verb) bool {
	kinds, ok := capabilities[role]
	if !ok {
		return false
	}
	set, ok := kinds[kind]
	if !ok {
		return false
	}
	_, ok = set[verb]
	return ok
}

// Settings field names as they appear on the wire.
const (
	FieldUserBlockingPeriod = "userBlockingPeriod"
	FieldIdlePeriod         = "idlePeriod"
	FieldBackupInterval     = "backupInterval"
	FieldBackupCount        = "backupCount"
)

// settingsVisibility maps role -> visible settings fields. Roles differ only
// in the projected field subset; none is denied the read outright.
var settingsVisibility = map[domain.Role][]string{
	domain.RoleAdmin:   {FieldUserBlockingPeriod, FieldIdlePeriod, FieldBackupInterval, FieldBackupCount},
	domain.RoleAnalyst: {FieldUserBlockingPeriod, FieldIdlePeriod, FieldBackupInterval, FieldBackupCount},
	domain.RoleHead:    {FieldUserBlockingPeriod, FieldBackupInterval, FieldBackupCount},
	domain.RoleSenior:  {FieldIdlePeriod},
	domain.RoleWorker:  {FieldIdlePeriod},
}

// SettingsFields returns the settings fields visible to role.
func SettingsFields(role domain.Role) []string {
	return settingsVisibility[role]
}

// ProjectSettings renders the settings record with only the fields role is
// allowed to see.
func ProjectSettings(s domain.Settings, role domain.Role) map[string]int64 {
	values := map[string]int64{
		FieldUserBlockingPeriod: s.UserBlockingPeriod,
		FieldIdlePeriod:         s.IdlePeriod,
		FieldBackupInterval:     s.BackupInterval,
		FieldBackupCount:        s.BackupCount,
	}
	out := make(map[string]int64, len(settingsVisibility[role]))
	for _, field := range settingsVisibility[role] {
		out[field] = values[field]
	}
	return out
}

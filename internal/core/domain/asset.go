package domain

import "time"

// Kind names a resource kind managed by the backend. Values double as the
// plural route segment for the kind.
type Kind string

const (
	KindUser         Kind = "users"
	KindObject       Kind = "objects"
	KindEquipment    Kind = "equipments"
	KindOrganization Kind = "organizations"
	KindDefect       Kind = "defects"
	KindResource     Kind = "resources"
	KindSettings     Kind = "settings"
)

// The per-kind status for mutations against an unknown id is deliberately
// asymmetric: the authoritative backend answers 404 for users and 400 for the
// asset kinds on update, and 404 for objects but an idempotent 200/null for
// equipment, organizations and defects on delete. Kept as explicit tables so
// nobody "fixes" it silently.
var updateMissingNotFound = map[Kind]bool{
	KindUser: true,
}

var deleteMissingNotFound = map[Kind]bool{
	KindObject: true,
}

// UpdateMissing returns the error for an update against an unknown id.
func UpdateMissing(kind Kind) error {
	if updateMissingNotFound[kind] {
		return ErrNotFound
	}
	return ErrValidation
}

// DeleteMissing returns the error for a delete against an unknown id, or nil
// when the kind treats it as an idempotent no-op.
func DeleteMissing(kind Kind) error {
	if deleteMissingNotFound[kind] {
		return ErrNotFound
	}
	return nil
}

// Region is a fixed catalog entry referenced by objects and organizations.
type Region struct {
	ID   int64  `json:"id" bson:"_id"`
	Name string `json:"name" bson:"name"`
}

// FileResource is an uploaded file attachable to objects and defects. The
// content lives in blob storage; this record is the metadata row.
type FileResource struct {
	ID          int64     `json:"id" bson:"_id"`
	FileName    string    `json:"fileName" bson:"fileName"`
	ContentType string    `json:"contentType" bson:"contentType"`
	Size        int64     `json:"size" bson:"size"`
	Path        string    `json:"-" bson:"path"`
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	CreatedBy   int64     `json:"createdBy" bson:"createdBy"`
}

// ObjectState is the lifecycle state of a tracked object. Removed objects
// disappear from reads and filtered lists.
type ObjectState int

const (
	ObjectActive  ObjectState = 0
	ObjectRemoved ObjectState = 1
)

// Object is a physical site or installation.
type Object struct {
	ID               int64       `json:"id" bson:"_id"`
	Name             string      `json:"name" bson:"name"`
	RegionID         int64       `json:"regionId" bson:"regionId"`
	District         string      `json:"district" bson:"district"`
	OrganizationName string      `json:"organizationName" bson:"organizationName"`
	ResourceIDs      []int64     `json:"resourceIds" bson:"resourceIds"`
	State            ObjectState `json:"state" bson:"state"`
	CreatedAt        time.Time   `json:"createdAt" bson:"createdAt"`
	UpdatedAt        time.Time   `json:"updatedAt" bson:"updatedAt"`
	CreatedBy        int64       `json:"createdBy" bson:"createdBy"`
	UpdatedBy        int64       `json:"updatedBy" bson:"updatedBy"`
}

// EquipmentState mirrors ObjectState for installed equipment.
type EquipmentState int

const (
	EquipmentActive  EquipmentState = 0
	EquipmentRemoved EquipmentState = 1
)

// Equipment is a unit installed on an object.
type Equipment struct {
	ID         int64          `json:"id" bson:"_id"`
	ObjectID   int64          `json:"objectId" bson:"objectId"`
	SystemType string         `json:"systemType" bson:"systemType"`
	Brand      string         `json:"brand" bson:"brand"`
	Model      string         `json:"model" bson:"model"`
	Location   string         `json:"location" bson:"location"`
	CategoryID int64          `json:"categoryId" bson:"categoryId"`
	State      EquipmentState `json:"state" bson:"state"`
	CreatedAt  time.Time      `json:"createdAt" bson:"createdAt"`
	UpdatedAt  time.Time      `json:"updatedAt" bson:"updatedAt"`
	CreatedBy  int64          `json:"createdBy" bson:"createdBy"`
	UpdatedBy  int64          `json:"updatedBy" bson:"updatedBy"`
}

// OrganizationState: a disabled organization stays in storage but direct
// fetches answer 404 and further updates are rejected.
type OrganizationState int

const (
	OrganizationActive   OrganizationState = 0
	OrganizationDisabled OrganizationState = 1
)

// Organization is a contractor responsible for defect repair.
type Organization struct {
	ID        int64             `json:"id" bson:"_id"`
	Name      string            `json:"name" bson:"name"`
	INN       string            `json:"inn" bson:"inn"`
	Comment   string            `json:"comment" bson:"comment"`
	RegionIDs []int64           `json:"regionIds" bson:"regionIds"`
	State     OrganizationState `json:"state" bson:"state"`
	CreatedAt time.Time         `json:"createdAt" bson:"createdAt"`
	UpdatedAt time.Time         `json:"updatedAt" bson:"updatedAt"`
	CreatedBy int64             `json:"createdBy" bson:"createdBy"`
	UpdatedBy int64             `json:"updatedBy" bson:"updatedBy"`
}

// DefectState: deletion marks the row (state 3) and keeps it filterable.
type DefectState int

const (
	DefectActive            DefectState = 0
	DefectMarkedForDeletion DefectState = 3
)

var defectTransitions = map[DefectState][]DefectState{
	DefectActive: {DefectMarkedForDeletion},
}

// CanTransitionTo reports whether the transition from s to next is allowed.
func (s DefectState) CanTransitionTo(next DefectState) bool {
	for _, allowed := range defectTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Defect is a reported equipment failure.
type Defect struct {
	ID                  int64       `json:"id" bson:"_id"`
	StringID            string      `json:"stringId" bson:"stringId"`
	EquipmentID         int64       `json:"equipmentId" bson:"equipmentId"`
	OrganizationID      int64       `json:"organizationId" bson:"organizationId"`
	ResourceIDs         []int64     `json:"resourceIds" bson:"resourceIds"`
	AssignedAt          string      `json:"assignedAt" bson:"assignedAt"`
	Comment             string      `json:"comment" bson:"comment"`
	CauseFailureComment string      `json:"causeFailureComment" bson:"causeFailureComment"`
	State               DefectState `json:"state" bson:"state"`
	ReportedAt          time.Time   `json:"reportedAt" bson:"reportedAt"`
	SpentRepairTime     *int64      `json:"spentRepairTime" bson:"spentRepairTime"`
	RepairStartedAt     *time.Time  `json:"repairStartedAt" bson:"repairStartedAt"`
	RepairFinishedAt    *time.Time  `json:"repairFinishedAt" bson:"repairFinishedAt"`
	ClosedAt            *time.Time  `json:"closedAt" bson:"closedAt"`
	CreatedAt           time.Time   `json:"createdAt" bson:"createdAt"`
	UpdatedAt           time.Time   `json:"updatedAt" bson:"updatedAt"`
	CreatedBy           int64       `json:"createdBy" bson:"createdBy"`
	UpdatedBy           int64       `json:"updatedBy" bson:"updatedBy"`
}

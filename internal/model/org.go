package model

// Sector is a state-minister sector, the top of the reporting hierarchy.
type Sector struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Department belongs to exactly one sector.
type Department struct {
	ID         int    `json:"id"`
	Name       string `json:"name"`
	SectorID   int    `json:"sector_id"`
	SectorName string `json:"sector_name,omitempty"`
}

// IndicatorGroup is a node in the indicator hierarchy. A group is either
// sector-scoped (no department) or department-scoped; levels start at 0 for
// roots and each child sits one level below its parent.
type IndicatorGroup struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	Unit          string `json:"unit,omitempty"`
	ParentID      *int   `json:"parent"`
	SectorID      *int   `json:"sector"`
	DepartmentID  *int   `json:"department"`
	Level         int    `json:"level"`
	HierarchyPath string `json:"hierarchy_path"`
}

// Indicator is a leaf entity, optionally attached to one group.
type Indicator struct {
	ID             int    `json:"id"`
	Name           string `json:"name"`
	Unit           string `json:"unit"`
	Description    string `json:"description"`
	DepartmentID   int    `json:"department_id"`
	DepartmentName string `json:"department_name,omitempty"`
	SectorID       int    `json:"sector_id,omitempty"`
	SectorName     string `json:"sector_name,omitempty"`
	GroupID        *int   `json:"group"`
}

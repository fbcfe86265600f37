package approver

type ApproverItem struct {
	ID          string   `json:"id" binding:"omitempty,uuid"`
	UserID      string   `json:"user_id" binding:"required,uuid"`
	Name        string   `json:"name" binding:"required"`
	Org         *string  `json:"org"`
	Department  *string  `json:"department"`
	Division    *string  `json:"division"`
	Unit        *string  `json:"unit"`
	EmployeeIDs []string `json:"employee_ids" binding:"dive,uuid"`
}

// BulkSaveRequest upserts items and hard-deletes only DeletedIDs.
type BulkSaveRequest struct {
	Items      []ApproverItem `json:"items" binding:"dive"`
	DeletedIDs []string       `json:"deleted_ids" binding:"dive,uuid"`
}

type ApproverResponse struct {
	ID          string   `json:"id"`
	UserID      string   `json:"user_id"`
	Name        string   `json:"name"`
	Org         *string  `json:"org,omitempty"`
	Department  *string  `json:"department,omitempty"`
	Division    *string  `json:"division,omitempty"`
	Unit        *string  `json:"unit,omitempty"`
	EmployeeIDs []string `json:"employee_ids"`
}

type BulkSaveResponse struct {
	Items   []ApproverResponse `json:"items"`
	Deleted int64              `json:"deleted"`
}

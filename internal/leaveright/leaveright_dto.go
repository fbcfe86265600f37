package leaveright

type LeaveRightItem struct {
	ID       string `json:"id" binding:"omitempty,uuid"`
	Level    string `json:"level" binding:"required,max=20"`
	Vacation int    `json:"vacation" binding:"min=0"`
	Business int    `json:"business" binding:"min=0"`
	Sick     int    `json:"sick" binding:"min=0"`
	Active   *bool  `json:"active"`
}

// BulkSaveRequest upserts items and hard-deletes only DeletedIDs.
// Rows missing from Items are left untouched.
type BulkSaveRequest struct {
	Items      []LeaveRightItem `json:"items" binding:"dive"`
	DeletedIDs []string         `json:"deleted_ids" binding:"dive,uuid"`
}

type LeaveRightResponse struct {
	ID       string `json:"id"`
	Level    string `json:"level"`
	Vacation int    `json:"vacation"`
	Business int    `json:"business"`
	Sick     int    `json:"sick"`
	Active   bool   `json:"active"`
}

type BulkSaveResponse struct {
	Items   []LeaveRightResponse `json:"items"`
	Deleted int64                `json:"deleted"`
}

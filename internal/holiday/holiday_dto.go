package holiday

type HolidayItem struct {
	ID    string  `json:"id" binding:"omitempty,uuid"`
	Date  string  `json:"date" binding:"required,datetime=2006-01-02"`
	Title string  `json:"title" binding:"required,max=200"`
	Note  *string `json:"note"`
}

// BulkSaveRequest upserts items and hard-deletes only DeletedIDs.
type BulkSaveRequest struct {
	Items      []HolidayItem `json:"items" binding:"dive"`
	DeletedIDs []string      `json:"deleted_ids" binding:"dive,uuid"`
}

type HolidayResponse struct {
	ID    string  `json:"id"`
	Date  string  `json:"date"`
	Title string  `json:"title"`
	Note  *string `json:"note,omitempty"`
}

type BulkSaveResponse struct {
	Items   []HolidayResponse `json:"items"`
	Deleted int               `json:"deleted"`
}

type ImportResponse struct {
	Imported int               `json:"imported"`
	Items    []HolidayResponse `json:"items"`
}

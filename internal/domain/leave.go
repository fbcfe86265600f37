package domain

type LeaveKind string

const (
	KindAnnual        LeaveKind = "ANNUAL"
	KindSick          LeaveKind = "SICK"
	KindBusiness      LeaveKind = "BUSINESS"
	KindMaternity     LeaveKind = "MATERNITY"
	KindBirthday      LeaveKind = "BIRTHDAY"
	KindOrdain        LeaveKind = "ORDAIN"
	KindUnpaid        LeaveKind = "UNPAID"
	KindAnnualHoliday LeaveKind = "ANNUAL_HOLIDAY"
)

var leaveKinds = map[LeaveKind]struct{}{
	KindAnnual:        {},
	KindSick:          {},
	KindBusiness:      {},
	KindMaternity:     {},
	KindBirthday:      {},
	KindOrdain:        {},
	KindUnpaid:        {},
	KindAnnualHoliday: {},
}

func (k LeaveKind) Valid() bool {
	_, ok := leaveKinds[k]
	return ok
}

type Session string

const (
	SessionFull Session = "FULL"
	SessionAM   Session = "AM"
	SessionPM   Session = "PM"
)

func (s Session) Valid() bool {
	return s == SessionFull || s == SessionAM || s == SessionPM
}

type LeaveStatus string

const (
	StatusPending  LeaveStatus = "PENDING"
	StatusApproved LeaveStatus = "APPROVED"
	StatusRejected LeaveStatus = "REJECTED"
)

// IsDecision reports whether s is a terminal outcome an approver may choose.
func (s LeaveStatus) IsDecision() bool {
	return s == StatusApproved || s == StatusRejected
}

type HRAction string

const (
	HRConfirm   HRAction = "confirm"
	HRUnconfirm HRAction = "unconfirm"
)

func (a HRAction) Valid() bool {
	return a == HRConfirm || a == HRUnconfirm
}

const DateLayout = "2006-01-02"

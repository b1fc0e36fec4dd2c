package models

// Complaint statuses as recorded by the complaint platform. Only RESOLVED and
// REJECTED affect scoring; any other value counts toward totals only.
const (
	ComplaintOpen     = "OPEN"
	ComplaintResolved = "RESOLVED"
	ComplaintRejected = "REJECTED"
)

// NeutralPlatformMean is the platform rating mean assumed before any rating exists
// (midpoint of the 1-5 scale).
const NeutralPlatformMean = 3.0

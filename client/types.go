package client

// ------------------------------
// Canonical domain types
// ------------------------------

// Attachment is a document reference on a school record. The registry
// may omit the object or its URL entirely; normalization substitutes
// the "#" placeholder so the reference is always navigable.
type Attachment struct {
	URL string
}

// School is the canonical in-memory school record. Facility flags are
// real booleans (the wire encodes them as strings with inconsistent
// casing) and attachments are always populated. Timestamps are kept
// verbatim as received; rendering localizes them at display time.
type School struct {
	ID                  string
	SchoolName          string
	City                string
	ContractManagerName string
	PhoneNumber         string
	Email               string

	KindergartenStudents     int
	Primary1to4Students      int
	Primary5to6Students      int
	Intermediate1to2Students int
	Intermediate3Students    int
	SecondaryStudents        int

	HasComputerLab bool
	HasInternet    bool

	CommercialRegistration Attachment
	ContractManagerID      Attachment

	CreatedAt string
	UpdatedAt string
}

// TotalStudents is the derived enrollment across all six grade bands.
func (s School) TotalStudents() int {
	return s.KindergartenStudents + s.Primary1to4Students +
		s.Primary5to6Students + s.Intermediate1to2Students +
		s.Intermediate3Students + s.SecondaryStudents
}

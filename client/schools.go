package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
)

// placeholderURL stands in for absent or malformed document references.
const placeholderURL = "#"

// rawAttachment is the wire shape of a document reference.
type rawAttachment struct {
	URL string `json:"url"`
}

// rawSchool is the wire shape of a school entry. Facility flags arrive
// as strings with inconsistent casing and attachment objects may be
// missing; normalize converts each entry to the canonical School.
type rawSchool struct {
	ID                  string `json:"_id"`
	SchoolName          string `json:"schoolName"`
	City                string `json:"city"`
	ContractManagerName string `json:"contractManagerName"`
	PhoneNumber         string `json:"phoneNumber"`
	Email               string `json:"email"`

	KindergartenStudents     int `json:"kindergartenStudents"`
	Primary1to4Students      int `json:"primary1to4Students"`
	Primary5to6Students      int `json:"primary5to6Students"`
	Intermediate1to2Students int `json:"intermediate1to2Students"`
	Intermediate3Students    int `json:"intermediate3Students"`
	SecondaryStudents        int `json:"secondaryStudents"`

	HasComputerLab string `json:"hasComputerLab"`
	HasInternet    string `json:"hasInternet"`

	CommercialRegistration *rawAttachment `json:"commercialRegistration"`
	ContractManagerID      *rawAttachment `json:"contractManagerId"`

	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// listSchoolsResponse mirrors the allschools endpoint response shape.
type listSchoolsResponse struct {
	Schools []rawSchool `json:"schools"`
}

// FetchAllSchools retrieves the full school directory via
// GET /api/school/allschools, authenticated by the `token` header.
// The operation is all-or-nothing: any transport failure, non-success
// status, or undecodable body yields an error and no records.
func (c *Client) FetchAllSchools(ctx context.Context, token string) ([]School, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/api/school/allschools", c.baseURL)
	req, err := c.newRequest(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("token", token)

	resp, err := c.http.Do(req)
	observeRequest("allschools", err)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("fetch schools: status %d", resp.StatusCode)
	}
	var out listSchoolsResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("fetch schools: decode: %w", err)
	}

	schools := make([]School, 0, len(out.Schools))
	for _, raw := range out.Schools {
		schools = append(schools, normalize(raw))
	}
	return schools, nil
}

// normalize maps one raw wire entry to the canonical record shape.
func normalize(raw rawSchool) School {
	return School{
		ID:                  raw.ID,
		SchoolName:          raw.SchoolName,
		City:                raw.City,
		ContractManagerName: raw.ContractManagerName,
		PhoneNumber:         raw.PhoneNumber,
		Email:               raw.Email,

		KindergartenStudents:     raw.KindergartenStudents,
		Primary1to4Students:      raw.Primary1to4Students,
		Primary5to6Students:      raw.Primary5to6Students,
		Intermediate1to2Students: raw.Intermediate1to2Students,
		Intermediate3Students:    raw.Intermediate3Students,
		SecondaryStudents:        raw.SecondaryStudents,

		HasComputerLab: wireBool(raw.HasComputerLab),
		HasInternet:    wireBool(raw.HasInternet),

		CommercialRegistration: attachment(raw.CommercialRegistration),
		ContractManagerID:      attachment(raw.ContractManagerID),

		CreatedAt: raw.CreatedAt,
		UpdatedAt: raw.UpdatedAt,
	}
}

// wireBool is the single decode point for the registry's stringified
// booleans: a case-insensitive "true" is true, everything else
// (including absent) is false.
func wireBool(s string) bool {
	return strings.EqualFold(s, "true")
}

func attachment(raw *rawAttachment) Attachment {
	if raw == nil || raw.URL == "" {
		return Attachment{URL: placeholderURL}
	}
	return Attachment{URL: raw.URL}
}

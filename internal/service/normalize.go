package service

import (
	"strings"

	"citizen_registry/internal/model"
	"citizen_registry/internal/utils"

	"github.com/araddon/dateparse"
)

// Row is one parsed spreadsheet row. Keys are lower-cased and trimmed at
// construction so alias lookup is case-insensitive.
type Row map[string]string

// NewRow pairs a header line with one line of cells. Extra cells are
// dropped, missing cells stay absent.
func NewRow(header, cells []string) Row {
	row := make(Row, len(header))
	for i, key := range header {
		if i >= len(cells) {
			break
		}
		key = strings.ToLower(strings.TrimSpace(key))
		if key == "" {
			continue
		}
		row[key] = cells[i]
	}
	return row
}

// lookup returns the first non-empty value among the aliases, trimmed.
// First match wins; an empty or whitespace-only cell falls through to the
// next alias.
func (r Row) lookup(aliases ...string) *string {
	for _, key := range aliases {
		if v, ok := r[key]; ok {
			v = strings.TrimSpace(v)
			if v != "" {
				return &v
			}
		}
	}
	return nil
}

// Ordered alias lists per canonical field. Upstream spreadsheets arrive
// with several naming conventions for the same columns.
var (
	ninAliases    = []string{"nin"}
	firstAliases  = []string{"first_name", "firstname"}
	lastAliases   = []string{"last_name", "lastname", "surname"}
	genderAliases = []string{"gender"}
	dobAliases    = []string{"date_of_birth", "dob", "dateofbirth"}
	stateAliases  = []string{"state"}
	lgaAliases    = []string{"lga"}
	wardAliases   = []string{"ward"}
	phoneAliases  = []string{"phone", "phone_number"}
	pvcAliases    = []string{"has_pvc", "pvcstatus", "pvc_status"}
	emailAliases  = []string{"email"}
	addrAliases   = []string{"house_address", "address"}
)

// NormalizeRow maps one heterogeneous spreadsheet row onto a canonical
// NINRecord, computing the hash and masked form along the way.
// The second return value is false when the row must be skipped: no NIN,
// or a trimmed NIN shorter than 11 characters. Skipped rows are neither
// successes nor errors.
func NormalizeRow(row Row) (*model.NINRecord, bool) {
	var nin string
	if v := row.lookup(ninAliases...); v != nil {
		nin = *v
	}
	if len(nin) < 11 {
		return nil, false
	}

	rec := &model.NINRecord{
		NINHash:   utils.HashNIN(nin),
		NINMasked: utils.MaskNIN(nin),
		FirstName: row.lookup(firstAliases...),
		LastName:  row.lookup(lastAliases...),
		Gender:    row.lookup(genderAliases...),
		State:     row.lookup(stateAliases...),
		LGA:       row.lookup(lgaAliases...),
		Ward:      row.lookup(wardAliases...),
		Phone:     row.lookup(phoneAliases...),
		Email:     row.lookup(emailAliases...),
		Address:   row.lookup(addrAliases...),
		PVCStatus: model.PVCStatusNo,
	}

	if v := row.lookup(pvcAliases...); v != nil {
		// Upper-cased but otherwise stored as-is: values outside YES/NO
		// are kept as a data-quality signal, not rejected.
		rec.PVCStatus = strings.ToUpper(*v)
	}

	if v := row.lookup(dobAliases...); v != nil {
		if t, err := dateparse.ParseAny(*v); err == nil {
			rec.DateOfBirth = &t
		}
		// Unparseable dates stay null, never fail the row
	}

	return rec, true
}

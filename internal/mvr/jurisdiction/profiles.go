package jurisdiction

// standardStatuses is the vocabulary most states share
var standardStatuses = []string{"VALID", "SUSPENDED", "REVOKED"}

// profiles lists every known state in detection scan order. The five
// states with dedicated layouts or offense-code tables are matched by
// full name ahead of this list; the rest are matched by abbreviation
// with word boundaries so "IN" inside prose does not select Indiana
// unless it stands alone.
var profiles = []*Profile{
	{
		ID:             "ARIZONA",
		Codes:          []string{"AZ", "ARIZONA"},
		SectionHeaders: []string{"violations/convictionsfailures"},
		StatusFormats:  standardStatuses,
		SpecialCodes:   []string{"28-701", "28-729", "28-1381", "28-1382", "28-1383"},
		Format:         FormatDelimitedTable,
	},
	{
		ID:             "CALIFORNIA",
		Codes:          []string{"CA", "CALIFORNIA"},
		SectionHeaders: []string{"violations/convictions", "conviction record"},
		StatusFormats:  standardStatuses,
		SpecialCodes:   []string{"23152A", "23152B", "23103", "23140"},
		Format:         FormatDelimitedTable,
	},
	{
		ID:             "WISCONSIN",
		Codes:          []string{"WI", "WISCONSIN"},
		SectionHeaders: []string{"violations/convictions"},
		StatusFormats:  standardStatuses,
		Format:         FormatColumnar,
		RecordTokens:   []string{"VIOL", "ACCD", "CONV", "SUSP"},
	},
	{
		ID:            "TEXAS",
		Codes:         []string{"TX", "TEXAS"},
		StatusFormats: standardStatuses,
		SpecialCodes:  []string{"TRC 49.04", "49.04", "TRC 49.045", "49.045", "TPC 49.04"},
		Format:        FormatDelimitedTable,
	},
	{
		ID:            "FLORIDA",
		Codes:         []string{"FL", "FLORIDA"},
		StatusFormats: []string{"VALID", "SUSPENDED", "REVOKED", "CANCELLED"},
		SpecialCodes:  []string{"316.193", "322.2615"},
		Format:        FormatDelimitedTable,
	},
	{ID: "ALABAMA", Codes: []string{"AL"}, StatusFormats: standardStatuses},
	{ID: "ALASKA", Codes: []string{"AK"}, StatusFormats: standardStatuses},
	{ID: "ARKANSAS", Codes: []string{"AR"}, StatusFormats: standardStatuses},
	{ID: "COLORADO", Codes: []string{"CO"}, StatusFormats: standardStatuses},
	{ID: "CONNECTICUT", Codes: []string{"CT"}, StatusFormats: standardStatuses},
	{ID: "DELAWARE", Codes: []string{"DE"}, StatusFormats: standardStatuses},
	{ID: "GEORGIA", Codes: []string{"GA"}, StatusFormats: standardStatuses,
		SpecialCodes: []string{"40-6-391", "O.C.G.A. 40-6-391"}},
	{ID: "HAWAII", Codes: []string{"HI"}, StatusFormats: standardStatuses},
	{ID: "IDAHO", Codes: []string{"ID"}, StatusFormats: standardStatuses},
	{ID: "ILLINOIS", Codes: []string{"IL"}, StatusFormats: standardStatuses,
		SpecialCodes: []string{"625 ILCS 5/11-501"}},
	{ID: "INDIANA", Codes: []string{"IN"}, StatusFormats: standardStatuses},
	{ID: "IOWA", Codes: []string{"IA"}, StatusFormats: standardStatuses},
	{ID: "KANSAS", Codes: []string{"KS"}, StatusFormats: standardStatuses},
	{ID: "KENTUCKY", Codes: []string{"KY"}, StatusFormats: standardStatuses},
	{ID: "LOUISIANA", Codes: []string{"LA"}, StatusFormats: standardStatuses},
	{ID: "MAINE", Codes: []string{"ME"}, StatusFormats: standardStatuses},
	{ID: "MARYLAND", Codes: []string{"MD"}, StatusFormats: standardStatuses},
	{ID: "MASSACHUSETTS", Codes: []string{"MA"}, StatusFormats: standardStatuses},
	{ID: "MICHIGAN", Codes: []string{"MI"}, StatusFormats: standardStatuses,
		SpecialCodes: []string{"257.625", "MCL 257.625"}},
	{ID: "MINNESOTA", Codes: []string{"MN"}, StatusFormats: standardStatuses},
	{ID: "MISSISSIPPI", Codes: []string{"MS"}, StatusFormats: standardStatuses},
	{ID: "MISSOURI", Codes: []string{"MO"}, StatusFormats: standardStatuses},
	{ID: "MONTANA", Codes: []string{"MT"}, StatusFormats: standardStatuses},
	{ID: "NEBRASKA", Codes: []string{"NE"}, StatusFormats: standardStatuses},
	{ID: "NEVADA", Codes: []string{"NV"}, StatusFormats: standardStatuses},
	{ID: "NEW_HAMPSHIRE", Codes: []string{"NH"}, StatusFormats: standardStatuses},
	{ID: "NEW_JERSEY", Codes: []string{"NJ"}, StatusFormats: standardStatuses},
	{ID: "NEW_MEXICO", Codes: []string{"NM"}, StatusFormats: standardStatuses},
	{ID: "NEW_YORK", Codes: []string{"NY"}, StatusFormats: standardStatuses,
		SpecialCodes: []string{"VTL 1192", "1192.1", "1192.2", "1192.3"}},
	{ID: "NORTH_CAROLINA", Codes: []string{"NC"}, StatusFormats: standardStatuses},
	{ID: "NORTH_DAKOTA", Codes: []string{"ND"}, StatusFormats: standardStatuses},
	{ID: "OHIO", Codes: []string{"OH"}, StatusFormats: standardStatuses,
		SpecialCodes: []string{"4511.19", "ORC 4511.19"}},
	{ID: "OKLAHOMA", Codes: []string{"OK"}, StatusFormats: standardStatuses},
	{ID: "OREGON", Codes: []string{"OR"}, StatusFormats: standardStatuses},
	{ID: "PENNSYLVANIA", Codes: []string{"PA"}, StatusFormats: standardStatuses,
		SpecialCodes: []string{"3802", "75 Pa.C.S. 3802"}},
	{ID: "RHODE_ISLAND", Codes: []string{"RI"}, StatusFormats: standardStatuses},
	{ID: "SOUTH_CAROLINA", Codes: []string{"SC"}, StatusFormats: standardStatuses},
	{ID: "SOUTH_DAKOTA", Codes: []string{"SD"}, StatusFormats: standardStatuses},
	{ID: "TENNESSEE", Codes: []string{"TN"}, StatusFormats: standardStatuses},
	{ID: "UTAH", Codes: []string{"UT"}, StatusFormats: standardStatuses},
	{ID: "VERMONT", Codes: []string{"VT"}, StatusFormats: standardStatuses},
	{ID: "VIRGINIA", Codes: []string{"VA"}, StatusFormats: standardStatuses},
	{ID: "WASHINGTON", Codes: []string{"WA"}, StatusFormats: standardStatuses},
	{ID: "WEST_VIRGINIA", Codes: []string{"WV"}, StatusFormats: standardStatuses},
	{ID: "WYOMING", Codes: []string{"WY"}, StatusFormats: standardStatuses},
	{ID: "WASHINGTON_DC", Codes: []string{"DC"}, StatusFormats: standardStatuses},
}

// ByID returns the profile with the given ID, or the Generic profile
func ByID(id string) *Profile {
	if id == GenericID {
		return Generic
	}
	for _, p := range profiles {
		if p.ID == id {
			return p
		}
	}
	return Generic
}

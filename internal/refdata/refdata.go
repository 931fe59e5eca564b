// Package refdata holds static lookup tables: airport display names,
// route terminal assignments, and month name maps. Pure data, safe for
// concurrent readers.
package refdata

import "strings"

// airportNames maps IATA airport codes to display names as printed on
// the rendered ticket.
var airportNames = map[string]string{
	"ICN": "Seoul (Incheon)",
	"GMP": "Seoul (Gimpo)",
	"PUS": "Busan (Gimhae)",
	"CJU": "Jeju",
	"TAE": "Daegu",
	"CJJ": "Cheongju",
	"CEB": "Cebu",
	"MNL": "Manila",
	"CRK": "Clark",
	"KLO": "Kalibo",
	"TAG": "Tagbilaran (Bohol)",
	"BKK": "Bangkok (Suvarnabhumi)",
	"HKT": "Phuket",
	"CNX": "Chiang Mai",
	"DAD": "Da Nang",
	"CXR": "Nha Trang (Cam Ranh)",
	"SGN": "Ho Chi Minh City",
	"HAN": "Hanoi",
	"NRT": "Tokyo (Narita)",
	"KIX": "Osaka (Kansai)",
	"FUK": "Fukuoka",
	"OKA": "Okinawa (Naha)",
	"CTS": "Sapporo (New Chitose)",
	"TPE": "Taipei (Taoyuan)",
	"KHH": "Kaohsiung",
	"HKG": "Hong Kong",
	"MFM": "Macau",
	"VTE": "Vientiane",
	"ULN": "Ulaanbaatar",
	"PQC": "Phu Quoc",
	"SPN": "Saipan",
	"GUM": "Guam",
}

// AirportName returns the display name for an IATA code, or empty when
// no entry exists.
func AirportName(code string) string {
	return airportNames[strings.ToUpper(code)]
}

// IsAirport reports whether code is a known IATA airport code.
func IsAirport(code string) bool {
	_, ok := airportNames[strings.ToUpper(code)]
	return ok
}

// Terminals holds the terminal pair printed for a route. Either side
// may be empty when the airport has a single terminal.
type Terminals struct {
	Departure string
	Arrival   string
}

// routeTerminals maps "DEP-ARR" route keys to terminal pairs. Routes
// absent from this table simply render without terminal numbers.
var routeTerminals = map[string]Terminals{
	"ICN-CEB": {"T1", ""},
	"CEB-ICN": {"", "T1"},
	"ICN-MNL": {"T1", "T3"},
	"MNL-ICN": {"T3", "T1"},
	"ICN-CRK": {"T1", ""},
	"CRK-ICN": {"", "T1"},
	"ICN-KLO": {"T1", ""},
	"KLO-ICN": {"", "T1"},
	"ICN-BKK": {"T1", ""},
	"BKK-ICN": {"", "T1"},
	"ICN-DAD": {"T1", ""},
	"DAD-ICN": {"", "T1"},
	"ICN-CXR": {"T1", ""},
	"CXR-ICN": {"", "T1"},
	"ICN-SGN": {"T1", "T2"},
	"SGN-ICN": {"T2", "T1"},
	"ICN-HAN": {"T1", "T2"},
	"HAN-ICN": {"T2", "T1"},
	"ICN-NRT": {"T1", "T1"},
	"NRT-ICN": {"T1", "T1"},
	"ICN-KIX": {"T1", "T1"},
	"KIX-ICN": {"T1", "T1"},
	"ICN-FUK": {"T1", "I"},
	"FUK-ICN": {"I", "T1"},
	"ICN-TPE": {"T1", "T2"},
	"TPE-ICN": {"T2", "T1"},
	"PUS-CEB": {"I", ""},
	"CEB-PUS": {"", "I"},
	"PUS-BKK": {"I", ""},
	"BKK-PUS": {"", "I"},
	"PUS-DAD": {"I", ""},
	"DAD-PUS": {"", "I"},
	"PUS-NRT": {"I", "T1"},
	"NRT-PUS": {"T1", "I"},
	"PUS-KIX": {"I", "T1"},
	"KIX-PUS": {"T1", "I"},
	"GMP-HND": {"I", "T3"},
	"HND-GMP": {"T3", "I"},
}

// RouteTerminals returns the terminal pair for a departure/arrival
// airport pair. The zero value means no entry exists for the route.
func RouteTerminals(dep, arr string) Terminals {
	return routeTerminals[strings.ToUpper(dep)+"-"+strings.ToUpper(arr)]
}

// monthNumbers maps English month names, abbreviated and full, to month
// numbers.
var monthNumbers = map[string]int{
	"JAN": 1, "FEB": 2, "MAR": 3, "APR": 4, "MAY": 5, "JUN": 6,
	"JUL": 7, "AUG": 8, "SEP": 9, "OCT": 10, "NOV": 11, "DEC": 12,
	"JANUARY": 1, "FEBRUARY": 2, "MARCH": 3, "APRIL": 4, "JUNE": 6,
	"JULY": 7, "AUGUST": 8, "SEPTEMBER": 9, "OCTOBER": 10,
	"NOVEMBER": 11, "DECEMBER": 12,
}

var monthAbbrevs = [13]string{"",
	"JAN", "FEB", "MAR", "APR", "MAY", "JUN",
	"JUL", "AUG", "SEP", "OCT", "NOV", "DEC",
}

var monthNames = [13]string{"",
	"January", "February", "March", "April", "May", "June",
	"July", "August", "September", "October", "November", "December",
}

// MonthNumber converts an English month name (abbreviated or full, any
// case) to 1-12. Returns 0 for unknown names.
func MonthNumber(name string) int {
	return monthNumbers[strings.ToUpper(strings.TrimSpace(name))]
}

// MonthAbbrev returns the canonical three-letter month abbreviation for
// 1-12, or empty for anything else.
func MonthAbbrev(n int) string {
	if n < 1 || n > 12 {
		return ""
	}
	return monthAbbrevs[n]
}

// MonthName returns the full English month name for 1-12, or empty for
// anything else.
func MonthName(n int) string {
	if n < 1 || n > 12 {
		return ""
	}
	return monthNames[n]
}

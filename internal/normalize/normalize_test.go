package normalize

import "testing"

func TestNormalize_HangulGaps(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "spaced syllables collapse",
			input: "예 약 번 호 : ABC123",
			want:  "예약번호 : ABC123",
		},
		{
			name:  "tab separated syllables collapse",
			input: "단\t체\t명",
			want:  "단체명",
		},
		{
			name:  "already joined text unchanged",
			input: "예약번호 : ABC123",
			want:  "예약번호 : ABC123",
		},
		{
			name:  "space between hangul and latin preserved",
			input: "예약석 15 석",
			want:  "예약석 15 석",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.input)
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestNormalize_Labels(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"Booking  Reference  No. : JA1234", "Booking Reference No. : JA1234"},
		{"Booking\tReference : ET5678", "Booking Reference : ET5678"},
		{"Booking  Date : 2025. 10. 27", "Booking date : 2025. 10. 27"},
		{"Not  Valid  Before", "Not Valid Before"},
		{"Ticket\nNumber", "Ticket Number"},
	}

	for _, tt := range tests {
		got := Normalize(tt.input)
		if got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestNormalize_NonBreakingSpace(t *testing.T) {
	got := Normalize("ROEL JR\u00a0MR\u00a0Adult")
	want := "ROEL JR MR Adult"
	if got != want {
		t.Errorf("Normalize = %q, want %q", got, want)
	}

	got = Normalize("ROEL JR&nbsp;MR&nbsp;Adult")
	if got != want {
		t.Errorf("Normalize = %q, want %q", got, want)
	}
}

func TestNormalize_Pure(t *testing.T) {
	input := "7C2405 ICN - CEB 22:45"
	if got := Normalize(input); got != input {
		t.Errorf("Normalize(%q) = %q, want input unchanged", input, got)
	}
	if got := Normalize(""); got != "" {
		t.Errorf("Normalize(\"\") = %q, want empty", got)
	}
}

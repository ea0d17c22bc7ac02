package instrument

import "testing"

func TestParseTimeOfDay(t *testing.T) {
	testCases := []struct {
		desc    string
		input   string
		want    TimeOfDay
		wantErr bool
	}{
		{"morning", "09:30", 9*60 + 30, false},
		{"afternoon", "14:05", 14*60 + 5, false},
		{"midnight", "00:00", 0, false},
		{"last minute", "23:59", 23*60 + 59, false},
		{"hour overflow", "24:00", 0, true},
		{"minute overflow", "12:60", 0, true},
		{"missing zero pad", "9:30", 0, true},
		{"garbage", "noon", 0, true},
		{"empty", "", 0, true},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			got, err := ParseTimeOfDay(tc.input)
			if tc.wantErr {
				if err == nil {
					t.Fatalf("expected error for %q, got %v", tc.input, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("time mismatch! should be %d but got %d", tc.want, got)
			}
		})
	}
}

func TestTimeOfDayString(t *testing.T) {
	if got := (TimeOfDay(9*60 + 30)).String(); got != "09:30" {
		t.Fatalf("string mismatch: %s", got)
	}
}

func TestSessionsValidate(t *testing.T) {
	night := func(open, close TimeOfDay) *Window {
		return &Window{Open: open, Close: close}
	}

	testCases := []struct {
		desc    string
		input   Sessions
		wantErr bool
	}{
		{
			"day only",
			Sessions{Day: Window{Open: 9*60 + 30, Close: 14*60 + 5}},
			false,
		},
		{
			"day and night",
			Sessions{Day: Window{Open: 9 * 60, Close: 14 * 60}, Night: night(18*60, 22*60)},
			false,
		},
		{
			"day open equals close",
			Sessions{Day: Window{Open: 9 * 60, Close: 9 * 60}},
			true,
		},
		{
			"day open after close",
			Sessions{Day: Window{Open: 15 * 60, Close: 9 * 60}},
			true,
		},
		{
			"night inverted",
			Sessions{Day: Window{Open: 9 * 60, Close: 14 * 60}, Night: night(22*60, 18*60)},
			true,
		},
		{
			"overlapping windows",
			Sessions{Day: Window{Open: 9 * 60, Close: 14 * 60}, Night: night(13*60, 18*60)},
			true,
		},
		{
			"adjacent windows",
			Sessions{Day: Window{Open: 9 * 60, Close: 14 * 60}, Night: night(14*60, 18*60)},
			false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.desc, func(t *testing.T) {
			err := tc.input.Validate()
			if tc.wantErr && err == nil {
				t.Fatal("expected error, got nil")
			}
			if !tc.wantErr && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestValidMonthCode(t *testing.T) {
	for _, code := range []string{"F", "G", "H", "J", "K", "M", "N", "Q", "U", "V", "X", "Z"} {
		if !ValidMonthCode(code) {
			t.Fatalf("code %s should be valid", code)
		}
	}
	for _, code := range []string{"A", "f", "ZZ", ""} {
		if ValidMonthCode(code) {
			t.Fatalf("code %q should be invalid", code)
		}
	}
}

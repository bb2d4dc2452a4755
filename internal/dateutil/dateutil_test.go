package dateutil

import (
	"errors"
	"testing"
	"time"
)

func TestParseDateFormat(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		format  string
		want    string
		wantErr error
	}{
		{
			name:   "ISO date",
			format: "YYYY-MM-DD",
			want:   "2006-01-02",
		},
		{
			name:   "slash separated",
			format: "YYYY/MM/DD",
			want:   "2006/01/02",
		},
		{
			name:   "non-padded month and day",
			format: "YYYY/M/D",
			want:   "2006/1/2",
		},
		{
			name:   "long format with full month name",
			format: "MMMM D, YYYY",
			want:   "January 2, 2006",
		},
		{
			name:   "short year",
			format: "YY.MM.DD",
			want:   "06.01.02",
		},
		{
			name:   "brackets preserve literal text",
			format: "[Date]: YYYY",
			want:   "Date: 2006",
		},
		{
			name:   "empty brackets are valid",
			format: "YYYY[]MM",
			want:   "200601",
		},
		{
			name:    "unclosed bracket returns error",
			format:  "[Date YYYY",
			wantErr: ErrInvalidDateFormat,
		},
		{
			name:    "empty format returns error",
			format:  "",
			wantErr: ErrInvalidDateFormat,
		},
		{
			name:    "format exceeding max length returns error",
			format:  string(make([]byte, MaxDateFormatLength+1)),
			wantErr: ErrInvalidDateFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseDateFormat(tt.format)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("ParseDateFormat(%q) error = %v, wantErr %v", tt.format, err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("ParseDateFormat(%q) unexpected error: %v", tt.format, err)
			}
			if got != tt.want {
				t.Errorf("ParseDateFormat(%q) = %q, want %q", tt.format, got, tt.want)
			}
		})
	}
}

func TestParseDate(t *testing.T) {
	t.Parallel()

	tokyo := time.FixedZone("JST", 9*60*60)

	tests := []struct {
		name    string
		value   string
		formats []string
		want    time.Time
		wantErr error
	}{
		{
			name:  "default slash format",
			value: "2019/03/08",
			want:  time.Date(2019, time.March, 8, 0, 0, 0, 0, tokyo),
		},
		{
			name:  "default dash format",
			value: "2019-03-08",
			want:  time.Date(2019, time.March, 8, 0, 0, 0, 0, tokyo),
		},
		{
			name:  "default non-padded format",
			value: "2019/3/8",
			want:  time.Date(2019, time.March, 8, 0, 0, 0, 0, tokyo),
		},
		{
			name:  "surrounding whitespace ignored",
			value: "  2020-12-31 ",
			want:  time.Date(2020, time.December, 31, 0, 0, 0, 0, tokyo),
		},
		{
			name:    "custom format",
			value:   "08.03.2019",
			formats: []string{"DD.MM.YYYY"},
			want:    time.Date(2019, time.March, 8, 0, 0, 0, 0, tokyo),
		},
		{
			name:    "no format matches",
			value:   "March 8th",
			wantErr: ErrInvalidDate,
		},
		{
			name:    "impossible calendar date",
			value:   "2019-02-30",
			wantErr: ErrInvalidDate,
		},
		{
			name:    "invalid format is reported",
			value:   "2019-03-08",
			formats: []string{"[YYYY"},
			wantErr: ErrInvalidDateFormat,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseDate(tt.value, tt.formats, tokyo)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("ParseDate(%q) error = %v, wantErr %v", tt.value, err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("ParseDate(%q) unexpected error: %v", tt.value, err)
			}
			if !got.Equal(tt.want) || got.Location() != tokyo {
				t.Errorf("ParseDate(%q) = %v, want %v", tt.value, got, tt.want)
			}
		})
	}
}

func TestParseDate_NilLocationUsesLocal(t *testing.T) {
	t.Parallel()

	got, err := ParseDate("2021-01-15", nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Location() != time.Local {
		t.Errorf("Location() = %v, want Local", got.Location())
	}
	if got.Hour() != 0 || got.Minute() != 0 {
		t.Errorf("time = %v, want midnight", got)
	}
}

func TestValidateFormats(t *testing.T) {
	t.Parallel()

	if err := ValidateFormats([]string{"YYYY-MM-DD", "DD/MM/YYYY"}); err != nil {
		t.Errorf("valid formats: unexpected error %v", err)
	}
	if err := ValidateFormats([]string{"YYYY", ""}); !errors.Is(err, ErrInvalidDateFormat) {
		t.Errorf("error = %v, want ErrInvalidDateFormat", err)
	}
}

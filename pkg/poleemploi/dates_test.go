package poleemploi_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/emploitools/offresemploi/pkg/poleemploi"
)

func TestFormatDate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		in   time.Time
		want string
	}{
		{
			name: "UTC midnight",
			in:   time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
			want: "2020-01-01T00:00:00Z",
		},
		{
			name: "sub-second precision dropped",
			in:   time.Date(2023, 6, 15, 12, 30, 45, 999999999, time.UTC),
			want: "2023-06-15T12:30:45Z",
		},
		{
			name: "non-UTC zone converted",
			in:   time.Date(2020, 1, 1, 1, 0, 0, 0, time.FixedZone("CET", 3600)),
			want: "2020-01-01T00:00:00Z",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, poleemploi.FormatDate(tt.in))
		})
	}
}

func TestFormatDate_UsableAsSearchParam(t *testing.T) {
	t.Parallel()

	ts := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)
	params := poleemploi.SearchParams{
		"minCreationDate": poleemploi.FormatDate(ts),
	}

	assert.Regexp(t,
		`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}Z$`,
		params["minCreationDate"],
	)
}

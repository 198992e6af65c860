package poleemploi_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/emploitools/offresemploi/pkg/poleemploi"
)

func TestParseContentRange(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		header  string
		want    poleemploi.ContentRange
		wantErr bool
	}{
		{
			name:   "offres label",
			header: "offres 0-149/300749",
			want:   poleemploi.ContentRange{FirstIndex: 0, LastIndex: 149, MaxResults: 300749},
		},
		{
			name:   "offresEmploi label",
			header: "offresEmploi 0-149/300749",
			want:   poleemploi.ContentRange{FirstIndex: 0, LastIndex: 149, MaxResults: 300749},
		},
		{
			name:   "later window",
			header: "offres 150-299/520",
			want:   poleemploi.ContentRange{FirstIndex: 150, LastIndex: 299, MaxResults: 520},
		},
		{
			name:   "zero results",
			header: "offres 0-0/0",
			want:   poleemploi.ContentRange{},
		},
		{
			name:   "surrounding whitespace",
			header: "  offres 0-9/10 ",
			want:   poleemploi.ContentRange{FirstIndex: 0, LastIndex: 9, MaxResults: 10},
		},
		{name: "empty header", header: "", wantErr: true},
		{name: "missing label", header: "0-149/300749", wantErr: true},
		{name: "missing max", header: "offres 0-149", wantErr: true},
		{name: "non-numeric bounds", header: "offres a-b/c", wantErr: true},
		{name: "byte-range style", header: "bytes 0-499/1234 extra", wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := poleemploi.ParseContentRange(tt.header)

			if tt.wantErr {
				require.Error(t, err)
				var parseErr *poleemploi.ParseError
				assert.ErrorAs(t, err, &parseErr)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

package services

import (
	"testing"

	"github.com/hagwonlab/homework-board/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDueDate(t *testing.T) {
	strPtr := func(s string) *string { return &s }

	tests := []struct {
		name    string
		raw     *string
		want    *string
		wantErr bool
	}{
		{name: "nil is not an error", raw: nil, want: nil},
		{name: "empty string is not an error", raw: strPtr(""), want: nil},
		{name: "valid date", raw: strPtr("2030-05-01"), want: strPtr("2030-05-01")},
		{name: "us format rejected", raw: strPtr("05/01/2030"), wantErr: true},
		{name: "month out of range", raw: strPtr("2030-13-01"), wantErr: true},
		{name: "day out of range", raw: strPtr("2030-02-30"), wantErr: true},
		{name: "unpadded", raw: strPtr("2030-5-1"), wantErr: true},
		{name: "not a date at all", raw: strPtr("soon"), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NormalizeDueDate(tt.raw)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperr.IsValidation(err))
				return
			}
			require.NoError(t, err)
			if tt.want == nil {
				assert.Nil(t, got)
			} else {
				require.NotNil(t, got)
				assert.Equal(t, *tt.want, *got)
			}
		})
	}
}

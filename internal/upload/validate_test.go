package upload

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		meta    FileMeta
		wantErr error
	}{
		{
			name:    "accepts jpeg",
			meta:    FileMeta{Name: "plan.jpg", MIMEType: "image/jpeg", Size: 1024},
			wantErr: nil,
		},
		{
			name:    "accepts png",
			meta:    FileMeta{Name: "plan.png", MIMEType: "image/png", Size: 1024},
			wantErr: nil,
		},
		{
			name:    "accepts file exactly at the size limit",
			meta:    FileMeta{Name: "plan.png", MIMEType: "image/png", Size: MaxFileSizeBytes},
			wantErr: nil,
		},
		{
			name:    "rejects gif",
			meta:    FileMeta{Name: "plan.gif", MIMEType: "image/gif", Size: 1024},
			wantErr: ErrInvalidType,
		},
		{
			name:    "rejects pdf",
			meta:    FileMeta{Name: "plan.pdf", MIMEType: "application/pdf", Size: 1024},
			wantErr: ErrInvalidType,
		},
		{
			name:    "rejects empty mime type",
			meta:    FileMeta{Name: "plan", MIMEType: "", Size: 1024},
			wantErr: ErrInvalidType,
		},
		{
			name:    "rejects file over the size limit",
			meta:    FileMeta{Name: "plan.png", MIMEType: "image/png", Size: MaxFileSizeBytes + 1},
			wantErr: ErrFileTooLarge,
		},
		{
			name:    "type check wins over size check",
			meta:    FileMeta{Name: "plan.gif", MIMEType: "image/gif", Size: MaxFileSizeBytes + 1},
			wantErr: ErrInvalidType,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := Validate(tt.meta)
			if tt.wantErr == nil {
				require.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

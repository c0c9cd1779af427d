package linkid

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractDriveFileID(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    string
		wantErr error
	}{
		{name: "file/d view link", raw: "https://drive.google.com/file/d/ABC123/view", want: "ABC123"},
		{name: "file/d without suffix", raw: "https://drive.google.com/file/d/1a2B3c_D-e4", want: "1a2B3c_D-e4"},
		{name: "file/d with query", raw: "https://drive.google.com/file/d/ABC123/view?usp=sharing", want: "ABC123"},
		{name: "uc id form", raw: "https://drive.google.com/uc?id=ABC123", want: "ABC123"},
		{name: "open id form", raw: "https://drive.google.com/open?id=ABC123", want: "ABC123"},
		{name: "bare id passes through", raw: "1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms", want: "1BxiMVs0XRA5nFMdKvBdBZjgmUUqptlbs74OgvE2upms"},
		{name: "empty string", raw: "", wantErr: ErrNotDriveLink},
		{name: "whitespace only", raw: "   ", wantErr: ErrNotDriveLink},
		{name: "other host", raw: "https://example.com/x", wantErr: ErrNotDriveLink},
		{name: "lookalike host", raw: "https://drive.google.com.evil.com/file/d/ABC123/view", wantErr: ErrNotDriveLink},
		{name: "drive host without id", raw: "https://drive.google.com/drive/my-drive", wantErr: ErrNotDriveLink},
		{name: "uc without id", raw: "https://drive.google.com/uc", wantErr: ErrNotDriveLink},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExtractDriveFileID(tt.raw)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestDriveViewerURL(t *testing.T) {
	assert.Equal(t, "https://drive.google.com/file/d/ABC123/view", DriveViewerURL("ABC123"))
	assert.Equal(t, "", DriveViewerURL(""))
}

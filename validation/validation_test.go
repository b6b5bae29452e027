package validation

import "testing"

func TestValidateLink(t *testing.T) {
	v := NewValidator()

	tests := []struct {
		name    string
		link    string
		wantErr bool
	}{
		{
			name:    "standard watch link",
			link:    "https://www.youtube.com/watch?v=dQw4w9WgXcQ",
			wantErr: false,
		},
		{
			name: "short link without video id parameter",
			// Still valid input; the title resolver handles the missing v=.
			link:    "https://youtu.be/bad",
			wantErr: false,
		},
		{
			name:    "empty link",
			link:    "",
			wantErr: true,
		},
		{
			name:    "non-http scheme",
			link:    "ftp://example.com/video",
			wantErr: true,
		},
		{
			name:    "missing scheme",
			link:    "youtube.com/watch?v=abc",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateLink(tt.link)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateLink(%q) error = %v, wantErr %v", tt.link, err, tt.wantErr)
			}
		})
	}
}

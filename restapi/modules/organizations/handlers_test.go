package organizations

import (
	"errors"
	"mime/multipart"
	"net/textproto"
	"testing"

	"github.com/dvinubius/bootcamp-backend/model"
)

func uploadHeader(name, contentType string, size int64) *multipart.FileHeader {
	return &multipart.FileHeader{
		Filename: name,
		Size:     size,
		Header:   textproto.MIMEHeader{"Content-Type": {contentType}},
	}
}

func TestPhotoFilename(t *testing.T) {
	cases := []struct {
		name    string
		file    *multipart.FileHeader
		want    string
		wantErr bool
	}{
		{"jpeg", uploadHeader("campus.jpg", "image/jpeg", 2048), "photo_org-1.jpg", false},
		{"png keeps extension", uploadHeader("front.view.png", "image/png", 500), "photo_org-1.png", false},
		{"not an image", uploadHeader("notes.pdf", "application/pdf", 500), "", true},
		{"too large", uploadHeader("huge.jpg", "image/jpeg", 1000001), "", true},
		{"at the limit", uploadHeader("fits.jpg", "image/jpeg", 1000000), "photo_org-1.jpg", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := photoFilename("org-1", tc.file, 1000000)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected an error")
				}
				var resp *model.ErrorResponse
				if !errors.As(err, &resp) || resp.StatusCode != 400 {
					t.Fatalf("expected a 400, got %v", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tc.want {
				t.Fatalf("got %q, want %q", got, tc.want)
			}
		})
	}
}

package avatar

import (
	"bytes"
	"fmt"
	"io"
	"regexp"

	"github.com/disintegration/imaging"

	"github.com/actionanand/Ctrl-Alt-Del/internal/constants"
)

var allowedName = regexp.MustCompile(`\.(png|jpg|jpeg)$`)

// RejectError is returned for uploads refused before or during decoding.
type RejectError struct {
	Message string
}

func (e *RejectError) Error() string {
	return e.Message
}

var (
	ErrNotAnImage   = &RejectError{Message: "Please choose an image!"}
	ErrFileTooLarge = &RejectError{Message: "File too large"}
	ErrMissingFile  = &RejectError{Message: "Please upload an image!"}
)

// CheckUpload applies the upload filter: the file name must end in .png, .jpg
// or .jpeg and the file must not exceed MaxAvatarBytes.
func CheckUpload(filename string, size int64) error {
	if !allowedName.MatchString(filename) {
		return ErrNotAnImage
	}
	if size > constants.MaxAvatarBytes {
		return ErrFileTooLarge
	}
	return nil
}

// Process decodes an uploaded image and returns it cropped and scaled to a
// fixed AvatarSize square, encoded as PNG.
func Process(r io.Reader) ([]byte, error) {
	img, err := imaging.Decode(r, imaging.AutoOrientation(true))
	if err != nil {
		return nil, ErrNotAnImage
	}

	resized := imaging.Fill(img, constants.AvatarSize, constants.AvatarSize, imaging.Center, imaging.Lanczos)

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, resized, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encode avatar: %w", err)
	}
	return buf.Bytes(), nil
}

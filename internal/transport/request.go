package transport

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/tmorrell/cruxlog/internal/domain/climb"
)

// maxMultipartMemory bounds the in-memory portion of multipart parsing;
// larger parts spill to temp files.
const maxMultipartMemory = 8 << 20

type logPayload struct {
	climb.Input
	RemoveImage bool `json:"removeImage"`
}

// parseLogRequest decodes a create/update request body. JSON bodies carry
// fields only; multipart bodies may additionally carry an "image" file and a
// "removeImage=1" flag. The image is read past the validation ceiling by one
// byte so oversized uploads surface a validation error instead of a silent
// truncation.
func parseLogRequest(r *http.Request) (climb.Input, *climb.ImageUpload, bool, error) {
	contentType := r.Header.Get("Content-Type")

	if strings.HasPrefix(contentType, "multipart/form-data") {
		if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
			return climb.Input{}, nil, false, fmt.Errorf("parse multipart form: %w", err)
		}

		in := climb.Input{
			Date:        r.FormValue("date"),
			Environment: r.FormValue("environment"),
			Location:    r.FormValue("location"),
			RouteName:   r.FormValue("routeName"),
			ClimbType:   r.FormValue("climbType"),
			GradeSystem: r.FormValue("gradeSystem"),
			Grade:       r.FormValue("grade"),
			Progress:    r.FormValue("progress"),
		}
		removeImage := r.FormValue("removeImage") == "1"

		img, err := readImagePart(r)
		if err != nil {
			return climb.Input{}, nil, false, err
		}
		return in, img, removeImage, nil
	}

	var payload logPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		return climb.Input{}, nil, false, fmt.Errorf("decode body: %w", err)
	}
	return payload.Input, nil, payload.RemoveImage, nil
}

func readImagePart(r *http.Request) (*climb.ImageUpload, error) {
	file, header, err := r.FormFile("image")
	if err == http.ErrMissingFile {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read image part: %w", err)
	}
	defer file.Close()

	data, err := io.ReadAll(io.LimitReader(file, climb.MaxImageBytes+1))
	if err != nil {
		return nil, fmt.Errorf("read image data: %w", err)
	}

	contentType := header.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}

	return &climb.ImageUpload{ContentType: contentType, Data: data}, nil
}

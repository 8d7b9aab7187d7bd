package test

import (
	"bytes"
	"mime/multipart"
	"testing"

	"github.com/stretchr/testify/assert"
)

// CSVFile builds a multipart request body containing one file field
//
// The content is returned as a buffer and a map for the HTTP request headers
func CSVFile(t *testing.T, fileName, content string) (*bytes.Buffer, map[string]string) {
	body := new(bytes.Buffer)

	mw := multipart.NewWriter(body)

	w, err := mw.CreateFormFile("file", fileName)
	if err != nil {
		assert.Fail(t, err.Error())
	}

	if _, err := w.Write([]byte(content)); err != nil {
		assert.Fail(t, err.Error())
	}

	mw.Close()

	return body, map[string]string{"Content-Type": mw.FormDataContentType()}
}

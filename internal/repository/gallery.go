package repository

import (
	"bytes"
	"html/template"
	"path/filepath"
)

var galleryTemplate = template.Must(template.New("gallery").Parse(`<!doctype html>
<html>
<head>
  <meta charset="utf-8" />
  <title>Image Gallery</title>
  <style>body{font-family:Arial,sans-serif} img{max-width:100%;height:auto;margin:8px 0}</style>
</head>
<body>
{{range .}}<div><img src="{{.}}" alt="image" /></div>
{{end}}</body>
</html>
`))

func renderGallery(files []string) ([]byte, error) {
	names := make([]string, 0, len(files))
	for _, f := range files {
		names = append(names, filepath.Base(f))
	}

	var buf bytes.Buffer
	if err := galleryTemplate.Execute(&buf, names); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

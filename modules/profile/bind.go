package profile

import (
	"encoding/json"
	"errors"
	"mime"
	"net/http"
	"net/url"

	"github.com/dmitrymomot/fieldrules/pkg/catalog"
	"github.com/dmitrymomot/fieldrules/pkg/validator"
)

const (
	maxBodyBytes  = 1 << 20
	maxFormMemory = 1 << 20
)

// bindRecord decodes a JSON object or a form submission into a record.
// Form fields whose rule is a collection keep all non-empty values; every
// other field keeps its first value.
func bindRecord(w http.ResponseWriter, r *http.Request, cat *catalog.Catalog) (validator.Record, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if err != nil {
		return nil, errors.Join(ErrUnsupportedMediaType, err)
	}

	switch mediaType {
	case "application/json":
		var rec validator.Record
		if err := json.NewDecoder(r.Body).Decode(&rec); err != nil {
			return nil, errors.Join(ErrMalformedBody, err)
		}
		if rec == nil {
			rec = validator.Record{}
		}
		return rec, nil
	case "application/x-www-form-urlencoded":
		if err := r.ParseForm(); err != nil {
			return nil, errors.Join(ErrMalformedBody, err)
		}
		return formRecord(r.PostForm, cat), nil
	case "multipart/form-data":
		if err := r.ParseMultipartForm(maxFormMemory); err != nil {
			return nil, errors.Join(ErrMalformedBody, err)
		}
		return formRecord(r.MultipartForm.Value, cat), nil
	}
	return nil, ErrUnsupportedMediaType
}

func formRecord(values url.Values, cat *catalog.Catalog) validator.Record {
	rec := make(validator.Record, len(values))
	for name, vs := range values {
		if rule, ok := cat.Get(name); ok && rule.Kind == catalog.KindCollection {
			items := make([]string, 0, len(vs))
			for _, v := range vs {
				if v != "" {
					items = append(items, v)
				}
			}
			rec[name] = items
			continue
		}
		if len(vs) > 0 {
			rec[name] = vs[0]
		}
	}
	return rec
}

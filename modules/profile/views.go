package profile

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"

	"github.com/dmitrymomot/fieldrules/pkg/catalog"
	"github.com/dmitrymomot/fieldrules/pkg/validator"
)

func inputID(field string) string    { return "f-" + field }
func feedbackID(field string) string { return "feedback-" + field }

// formView renders the profile form. Every text input carries the restricted
// pattern and a required flag when the rule rejects an empty value; length
// and everything else is judged by the server as the user types.
func formView(action, validateBase string, ds []validator.Descriptor) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		var b strings.Builder
		b.WriteString(`<form id="profile-form" method="post" action="`)
		b.WriteString(templ.EscapeString(action))
		b.WriteString(`">`)
		for _, d := range ds {
			writeField(&b, validateBase, d)
		}
		b.WriteString(`<button type="submit">Save</button></form>`)
		_, err := io.WriteString(w, b.String())
		return err
	})
}

func writeField(b *strings.Builder, validateBase string, d validator.Descriptor) {
	id := templ.EscapeString(inputID(d.Field))
	fmt.Fprintf(b, `<div class="field"><label for="%s">%s</label>`, id, templ.EscapeString(d.Field))

	b.WriteString(`<input id="` + id + `" name="` + templ.EscapeString(d.Field) + `"`)
	b.WriteString(` type="` + inputType(d.Field) + `"`)
	if d.Kind == catalog.KindCollection {
		// comma separated; splitCollection turns it into items
		b.WriteString(` data-collection="true"`)
	} else if d.Pattern != "" {
		b.WriteString(` pattern="` + templ.EscapeString(d.Pattern) + `"`)
	}
	// Length bounds stay on the server: HTML minlength and maxlength count
	// UTF-16 code units, not NFC runes.
	if d.Required {
		b.WriteString(` required`)
	}
	b.WriteString(` data-bind="` + templ.EscapeString(d.Field) + `"`)
	b.WriteString(` data-on-input__debounce.300ms="@post('` + templ.EscapeString(validateBase+d.Field) + `')"`)
	b.WriteString(`>`)

	b.WriteString(`<p id="` + templ.EscapeString(feedbackID(d.Field)) + `" class="feedback"></p></div>`)
}

func inputType(field string) string {
	if field == "password" {
		return "password"
	}
	return "text"
}

// feedbackView renders the feedback element for one verdict. The element id
// is stable so datastar can morph it in place.
func feedbackView(v validator.FieldVerdict) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if v.Accepted {
			_, err := fmt.Fprintf(w, `<p id="%s" class="feedback" data-accepted="true"></p>`, templ.EscapeString(feedbackID(v.Field)))
			return err
		}
		_, err := fmt.Fprintf(w,
			`<p id="%s" class="feedback" data-accepted="false" data-reason="%s" data-key="%s">%s</p>`,
			templ.EscapeString(feedbackID(v.Field)),
			templ.EscapeString(string(v.Reason)),
			templ.EscapeString(v.TranslationKey),
			templ.EscapeString(v.Message),
		)
		return err
	})
}

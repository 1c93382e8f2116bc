package validator

import (
	"maps"
	"slices"
)

// Record is a field-name to value mapping for one submitted form or payload.
// Text fields hold strings; collection fields hold slices or counts.
type Record map[string]any

// Field is one named value for ValidateFields.
type Field struct {
	Name  string
	Value any
}

// Report aggregates the verdicts of one record.
type Report struct {
	Accepted bool           `json:"accepted"`
	Verdicts []FieldVerdict `json:"verdicts"`
}

// Failures returns the rejected verdicts in report order.
func (r Report) Failures() []FieldVerdict {
	var out []FieldVerdict
	for _, v := range r.Verdicts {
		if !v.Accepted {
			out = append(out, v)
		}
	}
	return out
}

// Verdict returns the verdict for field, if it was evaluated.
func (r Report) Verdict(field string) (FieldVerdict, bool) {
	i := slices.IndexFunc(r.Verdicts, func(v FieldVerdict) bool { return v.Field == field })
	if i < 0 {
		return FieldVerdict{}, false
	}
	return r.Verdicts[i], true
}

// Err returns the failures as ValidationErrors, or nil when the report was
// accepted.
func (r Report) Err() error {
	if r.Accepted {
		return nil
	}
	var errs ValidationErrors
	for _, v := range r.Failures() {
		errs.Add(v.validationError())
	}
	return errs
}

// ValidateRecord evaluates every field present in rec and never stops at the
// first failure. Known fields are reported in catalog order, unknown fields
// after them in lexical order. A contract violation aborts the whole call.
func (e *Evaluator) ValidateRecord(rec Record) (Report, error) {
	fields := make([]Field, 0, len(rec))
	for _, name := range e.catalog.Fields() {
		if v, ok := rec[name]; ok {
			fields = append(fields, Field{Name: name, Value: v})
		}
	}
	for _, name := range slices.Sorted(maps.Keys(rec)) {
		if !e.catalog.Has(name) {
			fields = append(fields, Field{Name: name, Value: rec[name]})
		}
	}
	return e.ValidateFields(fields...)
}

// ValidateFields evaluates fields in the order given.
func (e *Evaluator) ValidateFields(fields ...Field) (Report, error) {
	report := Report{Accepted: true, Verdicts: make([]FieldVerdict, 0, len(fields))}
	for _, f := range fields {
		v, err := e.Evaluate(f.Name, f.Value)
		if err != nil {
			return Report{}, err
		}
		report.Verdicts = append(report.Verdicts, v)
		report.Accepted = report.Accepted && v.Accepted
	}
	return report, nil
}

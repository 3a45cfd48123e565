package travelplan

import "encoding/json"

// document holds the provider's JSON for a section. Typed fields are a view used
// for validation; the stored and served form is the original object, so keys the
// view does not declare are kept.
type document struct {
	raw json.RawMessage
}

func (d *document) keep(b []byte) {
	d.raw = append(json.RawMessage(nil), b...)
}

// Raw returns the section as the provider sent it, or nil for values built in code.
func (d document) Raw() json.RawMessage {
	return d.raw
}

func (d ItineraryDay) MarshalJSON() ([]byte, error) {
	if d.raw != nil {
		return d.raw, nil
	}
	type plain ItineraryDay
	return json.Marshal(plain(d))
}

func (d *ItineraryDay) UnmarshalJSON(b []byte) error {
	type plain ItineraryDay
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*d = ItineraryDay(p)
	d.keep(b)
	return nil
}

func (e Eateries) MarshalJSON() ([]byte, error) {
	if e.raw != nil {
		return e.raw, nil
	}
	type plain Eateries
	return json.Marshal(plain(e))
}

func (e *Eateries) UnmarshalJSON(b []byte) error {
	type plain Eateries
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*e = Eateries(p)
	e.keep(b)
	return nil
}

func (f Faqs) MarshalJSON() ([]byte, error) {
	if f.raw != nil {
		return f.raw, nil
	}
	type plain Faqs
	return json.Marshal(plain(f))
}

func (f *Faqs) UnmarshalJSON(b []byte) error {
	type plain Faqs
	var p plain
	if err := json.Unmarshal(b, &p); err != nil {
		return err
	}
	*f = Faqs(p)
	f.keep(b)
	return nil
}
